package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		AppointmentDate: formatDate(a.AppointmentDate),
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Status:          string(a.Status),
		Reason:          a.Reason,
		Notes:           a.Notes,
		IsEmergency:     a.IsEmergency,
		CreatedAt:       a.CreatedAt,
	}
}

// AppointmentDetailsToResponses converts enriched appointments to DTOs
func AppointmentDetailsToResponses(details []entity.AppointmentDetail) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(details))
	for i := range details {
		response := AppointmentToResponse(&details[i].Appointment)
		response.PatientName = details[i].PatientName
		response.DoctorName = details[i].DoctorName
		response.DepartmentName = details[i].DepartmentName
		responses[i] = *response
	}
	return responses
}
