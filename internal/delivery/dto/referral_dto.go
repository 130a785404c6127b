package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

// CreateReferralRequest is sent by the referring doctor, taken from the
// session.
type CreateReferralRequest struct {
	PatientID  uuid.UUID `json:"patient_id" validate:"required"`
	ToDoctorID uuid.UUID `json:"to_doctor_id" validate:"required"`
	Reason     string    `json:"reason" validate:"required"`
	Notes      string    `json:"notes"`
}

type UpdateReferralStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=accepted completed cancelled"`
}

type CreateSoapNoteRequest struct {
	AppointmentID uuid.UUID `json:"appointment_id" validate:"required"`
	Subjective    string    `json:"subjective"`
	Objective     string    `json:"objective"`
	Assessment    string    `json:"assessment"`
	Plan          string    `json:"plan"`
}

type UpdateSoapNoteRequest struct {
	Subjective *string `json:"subjective"`
	Objective  *string `json:"objective"`
	Assessment *string `json:"assessment"`
	Plan       *string `json:"plan"`
}

type CreateRefillRequest struct {
	PrescriptionID uuid.UUID `json:"prescription_id" validate:"required"`
	Notes          string    `json:"notes"`
}

type UpdateRefillStatusRequest struct {
	Status            string     `json:"status" validate:"required,oneof=approved denied completed"`
	NewPrescriptionID *uuid.UUID `json:"new_prescription_id"`
	Notes             *string    `json:"notes"`
}

// Response DTOs

type ReferralResponse struct {
	ID             uuid.UUID  `json:"id"`
	PatientID      uuid.UUID  `json:"patient_id"`
	PatientName    string     `json:"patient_name,omitempty"`
	FromDoctorID   uuid.UUID  `json:"from_doctor_id"`
	FromDoctorName string     `json:"from_doctor_name,omitempty"`
	ToDoctorID     uuid.UUID  `json:"to_doctor_id"`
	ToDoctorName   string     `json:"to_doctor_name,omitempty"`
	Reason         string     `json:"reason"`
	Notes          string     `json:"notes,omitempty"`
	Status         string     `json:"status"`
	ReferralDate   time.Time  `json:"referral_date"`
	CompletedDate  *time.Time `json:"completed_date,omitempty"`
}

type SoapNoteResponse struct {
	ID            uuid.UUID `json:"id"`
	AppointmentID uuid.UUID `json:"appointment_id"`
	Subjective    string    `json:"subjective"`
	Objective     string    `json:"objective"`
	Assessment    string    `json:"assessment"`
	Plan          string    `json:"plan"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RefillRequestResponse struct {
	ID                uuid.UUID  `json:"id"`
	PatientID         uuid.UUID  `json:"patient_id"`
	PatientName       string     `json:"patient_name,omitempty"`
	PrescriptionID    uuid.UUID  `json:"prescription_id"`
	Diagnosis         string     `json:"diagnosis,omitempty"`
	DoctorID          uuid.UUID  `json:"doctor_id"`
	DoctorName        string     `json:"doctor_name,omitempty"`
	RequestDate       time.Time  `json:"request_date"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	ApprovedDate      *time.Time `json:"approved_date,omitempty"`
	NewPrescriptionID *uuid.UUID `json:"new_prescription_id,omitempty"`
}
