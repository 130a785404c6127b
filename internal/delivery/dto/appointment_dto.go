package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID        uuid.UUID `json:"doctor_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	StartTime       string    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime         string    `json:"end_time" validate:"required,datetime=15:04"`
	Reason          string    `json:"reason"`
	Notes           string    `json:"notes"`
	IsEmergency     bool      `json:"is_emergency"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled no_show"`
	Notes  string `json:"notes"`
}

// AppointmentListQuery carries the optional query-string filters of the
// appointment list.
type AppointmentListQuery struct {
	PatientID string `json:"patient_id" validate:"omitempty,uuid"`
	DoctorID  string `json:"doctor_id" validate:"omitempty,uuid"`
	Date      string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Status    string `json:"status" validate:"omitempty,oneof=scheduled completed cancelled no_show"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	PatientID       uuid.UUID `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	DepartmentName  string    `json:"department_name,omitempty"`
	AppointmentDate string    `json:"appointment_date"`
	StartTime       string    `json:"start_time"`
	EndTime         string    `json:"end_time"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	IsEmergency     bool      `json:"is_emergency"`
	CreatedAt       time.Time `json:"created_at"`
}
