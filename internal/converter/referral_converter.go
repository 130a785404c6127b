package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

func ReferralToResponse(r *entity.Referral) *dto.ReferralResponse {
	return &dto.ReferralResponse{
		ID:            r.ID,
		PatientID:     r.PatientID,
		FromDoctorID:  r.FromDoctorID,
		ToDoctorID:    r.ToDoctorID,
		Reason:        r.Reason,
		Notes:         r.Notes,
		Status:        string(r.Status),
		ReferralDate:  r.ReferralDate,
		CompletedDate: r.CompletedDate,
	}
}

func ReferralDetailsToResponses(details []entity.ReferralDetail) []dto.ReferralResponse {
	responses := make([]dto.ReferralResponse, len(details))
	for i := range details {
		response := ReferralToResponse(&details[i].Referral)
		response.PatientName = details[i].PatientName
		response.FromDoctorName = details[i].FromDoctorName
		response.ToDoctorName = details[i].ToDoctorName
		responses[i] = *response
	}
	return responses
}

func SoapNoteToResponse(n *entity.SoapNote) *dto.SoapNoteResponse {
	return &dto.SoapNoteResponse{
		ID:            n.ID,
		AppointmentID: n.AppointmentID,
		Subjective:    n.Subjective,
		Objective:     n.Objective,
		Assessment:    n.Assessment,
		Plan:          n.Plan,
		CreatedAt:     n.CreatedAt,
		UpdatedAt:     n.UpdatedAt,
	}
}

func RefillRequestToResponse(r *entity.RefillRequest) *dto.RefillRequestResponse {
	return &dto.RefillRequestResponse{
		ID:                r.ID,
		PatientID:         r.PatientID,
		PrescriptionID:    r.PrescriptionID,
		DoctorID:          r.DoctorID,
		RequestDate:       r.RequestDate,
		Status:            string(r.Status),
		Notes:             r.Notes,
		ApprovedDate:      r.ApprovedDate,
		NewPrescriptionID: r.NewPrescriptionID,
	}
}

func RefillRequestDetailsToResponses(details []entity.RefillRequestDetail) []dto.RefillRequestResponse {
	responses := make([]dto.RefillRequestResponse, len(details))
	for i := range details {
		response := RefillRequestToResponse(&details[i].RefillRequest)
		response.PatientName = details[i].PatientName
		response.DoctorName = details[i].DoctorName
		response.Diagnosis = details[i].Diagnosis
		responses[i] = *response
	}
	return responses
}
