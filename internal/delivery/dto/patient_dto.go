package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	FirstName             string `json:"first_name" validate:"required,max=100"`
	LastName              string `json:"last_name" validate:"required,max=100"`
	DateOfBirth           string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender                string `json:"gender" validate:"required,oneof=male female other"`
	Phone                 string `json:"phone" validate:"omitempty,max=30"`
	Email                 string `json:"email" validate:"omitempty,email"`
	Address               string `json:"address"`
	BloodGroup            string `json:"blood_group" validate:"omitempty,max=5"`
	EmergencyContactName  string `json:"emergency_contact_name" validate:"omitempty,max=150"`
	EmergencyContactPhone string `json:"emergency_contact_phone" validate:"omitempty,max=30"`
	MedicalHistory        string `json:"medical_history"`
	Allergies             string `json:"allergies"`
}

// UpdatePatientRequest is a partial update: nil fields are left unchanged.
type UpdatePatientRequest struct {
	FirstName             *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName              *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	DateOfBirth           *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender                *string `json:"gender" validate:"omitempty,oneof=male female other"`
	Phone                 *string `json:"phone" validate:"omitempty,max=30"`
	Email                 *string `json:"email" validate:"omitempty,email"`
	Address               *string `json:"address"`
	BloodGroup            *string `json:"blood_group" validate:"omitempty,max=5"`
	EmergencyContactName  *string `json:"emergency_contact_name" validate:"omitempty,max=150"`
	EmergencyContactPhone *string `json:"emergency_contact_phone" validate:"omitempty,max=30"`
	MedicalHistory        *string `json:"medical_history"`
	Allergies             *string `json:"allergies"`
}

// Response DTOs

type PatientResponse struct {
	ID                    uuid.UUID  `json:"id"`
	UserID                *uuid.UUID `json:"user_id,omitempty"`
	FirstName             string     `json:"first_name"`
	LastName              string     `json:"last_name"`
	DateOfBirth           string     `json:"date_of_birth"`
	Gender                string     `json:"gender"`
	Phone                 string     `json:"phone,omitempty"`
	Email                 string     `json:"email,omitempty"`
	Address               string     `json:"address,omitempty"`
	BloodGroup            string     `json:"blood_group,omitempty"`
	EmergencyContactName  string     `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `json:"emergency_contact_phone,omitempty"`
	MedicalHistory        string     `json:"medical_history,omitempty"`
	Allergies             string     `json:"allergies,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
}
