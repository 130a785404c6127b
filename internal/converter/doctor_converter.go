package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:                doctor.ID,
		UserID:            doctor.UserID,
		Name:              doctor.User.Name,
		Email:             doctor.User.Email,
		Phone:             doctor.User.Phone,
		DepartmentID:      doctor.DepartmentID,
		Specialization:    doctor.Specialization,
		LicenseNumber:     doctor.LicenseNumber,
		YearsOfExperience: doctor.YearsOfExperience,
	}
	if doctor.Department != nil {
		response.DepartmentName = doctor.Department.Name
	}
	return response
}

// DoctorsToResponses converts a slice of Doctor entities to DoctorResponse DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
