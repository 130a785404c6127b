package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type PrescriptionMedicationRequest struct {
	MedicationID uuid.UUID `json:"medication_id" validate:"required"`
	Dosage       string    `json:"dosage" validate:"required,max=100"`
	Frequency    string    `json:"frequency" validate:"required,max=100"`
	Duration     string    `json:"duration" validate:"required,max=100"`
	Instructions string    `json:"instructions"`
}

// CreatePrescriptionRequest is issued by the calling doctor; the doctor is
// taken from the session, not the body.
type CreatePrescriptionRequest struct {
	PatientID     uuid.UUID                       `json:"patient_id" validate:"required"`
	AppointmentID *uuid.UUID                      `json:"appointment_id"`
	Diagnosis     string                          `json:"diagnosis"`
	Notes         string                          `json:"notes"`
	Medications   []PrescriptionMedicationRequest `json:"medications" validate:"omitempty,dive"`
}

// Response DTOs

type PrescriptionMedicationResponse struct {
	ID             uuid.UUID `json:"id"`
	MedicationID   uuid.UUID `json:"medication_id"`
	MedicationName string    `json:"medication_name,omitempty"`
	Strength       string    `json:"strength,omitempty"`
	Dosage         string    `json:"dosage"`
	Frequency      string    `json:"frequency"`
	Duration       string    `json:"duration"`
	Instructions   string    `json:"instructions,omitempty"`
}

type PrescriptionResponse struct {
	ID               uuid.UUID                        `json:"id"`
	PatientID        uuid.UUID                        `json:"patient_id"`
	PatientName      string                           `json:"patient_name,omitempty"`
	DoctorID         uuid.UUID                        `json:"doctor_id"`
	DoctorName       string                           `json:"doctor_name,omitempty"`
	AppointmentID    *uuid.UUID                       `json:"appointment_id,omitempty"`
	PrescriptionDate time.Time                        `json:"prescription_date"`
	Diagnosis        string                           `json:"diagnosis,omitempty"`
	Notes            string                           `json:"notes,omitempty"`
	Medications      []PrescriptionMedicationResponse `json:"medications,omitempty"`
}
