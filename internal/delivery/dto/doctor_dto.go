package dto

import (
	"github.com/google/uuid"
)

// Request DTOs

// CreateDoctorRequest creates the login account and the clinical profile
// together.
type CreateDoctorRequest struct {
	Username          string     `json:"username" validate:"required,min=3,max=100"`
	Password          string     `json:"password" validate:"required,min=6"`
	Name              string     `json:"name" validate:"required,min=2"`
	Email             string     `json:"email" validate:"required,email"`
	Phone             string     `json:"phone" validate:"omitempty,max=30"`
	DepartmentID      *uuid.UUID `json:"department_id"`
	Specialization    string     `json:"specialization" validate:"required"`
	LicenseNumber     string     `json:"license_number" validate:"required"`
	YearsOfExperience *int       `json:"years_of_experience" validate:"omitempty,gte=0,lte=80"`
}

// Response DTOs

type DoctorResponse struct {
	ID                uuid.UUID  `json:"id"`
	UserID            uuid.UUID  `json:"user_id"`
	Name              string     `json:"name"`
	Email             string     `json:"email"`
	Phone             string     `json:"phone,omitempty"`
	DepartmentID      *uuid.UUID `json:"department_id,omitempty"`
	DepartmentName    string     `json:"department_name,omitempty"`
	Specialization    string     `json:"specialization"`
	LicenseNumber     string     `json:"license_number"`
	YearsOfExperience *int       `json:"years_of_experience,omitempty"`
}
