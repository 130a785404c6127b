package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:                    patient.ID,
		UserID:                patient.UserID,
		FirstName:             patient.FirstName,
		LastName:              patient.LastName,
		DateOfBirth:           formatDate(patient.DateOfBirth),
		Gender:                patient.Gender,
		Phone:                 patient.Phone,
		Email:                 patient.Email,
		Address:               patient.Address,
		BloodGroup:            patient.BloodGroup,
		EmergencyContactName:  patient.EmergencyContactName,
		EmergencyContactPhone: patient.EmergencyContactPhone,
		MedicalHistory:        patient.MedicalHistory,
		Allergies:             patient.Allergies,
		CreatedAt:             patient.CreatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
