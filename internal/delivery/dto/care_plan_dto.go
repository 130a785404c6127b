package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateFeedbackRequest struct {
	DoctorID      uuid.UUID  `json:"doctor_id" validate:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id"`
	Rating        int        `json:"rating" validate:"required,min=1,max=5"`
	Comment       string     `json:"comment"`
}

type CreatePrescriptionTemplateRequest struct {
	TemplateName string                          `json:"template_name" validate:"required,max=200"`
	Condition    string                          `json:"condition" validate:"omitempty,max=200"`
	Diagnosis    string                          `json:"diagnosis"`
	Notes        string                          `json:"notes"`
	IsPublic     bool                            `json:"is_public"`
	Medications  []PrescriptionMedicationRequest `json:"medications" validate:"required,min=1,dive"`
}

type CreateRecurringAppointmentRequest struct {
	PatientID     uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID      uuid.UUID `json:"doctor_id" validate:"required"`
	FrequencyDays int       `json:"frequency_days" validate:"required,min=1,max=365"`
	StartDate     string    `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate       string    `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime     string    `json:"start_time" validate:"required,datetime=15:04"`
	EndTime       string    `json:"end_time" validate:"required,datetime=15:04"`
	Reason        string    `json:"reason"`
}

type RecurringAppointmentListQuery struct {
	PatientID string `json:"patient_id" validate:"omitempty,uuid"`
	DoctorID  string `json:"doctor_id" validate:"omitempty,uuid"`
}

type UpdateRecurringAppointmentRequest struct {
	FrequencyDays *int    `json:"frequency_days" validate:"omitempty,min=1,max=365"`
	EndDate       *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	StartTime     *string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime       *string `json:"end_time" validate:"omitempty,datetime=15:04"`
	Reason        *string `json:"reason"`
	IsActive      *bool   `json:"is_active"`
}

// Response DTOs

type FeedbackResponse struct {
	ID            uuid.UUID  `json:"id"`
	DoctorID      uuid.UUID  `json:"doctor_id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	PatientName   string     `json:"patient_name,omitempty"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Rating        int        `json:"rating"`
	Comment       string     `json:"comment,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DoctorFeedbackResponse lists a doctor's feedback with its average rating,
// rounded to one decimal. A doctor without feedback averages zero.
type DoctorFeedbackResponse struct {
	DoctorID      uuid.UUID          `json:"doctor_id"`
	AverageRating float64            `json:"average_rating"`
	Count         int                `json:"count"`
	Feedback      []FeedbackResponse `json:"feedback"`
}

type PrescriptionTemplateResponse struct {
	ID           uuid.UUID                        `json:"id"`
	DoctorID     uuid.UUID                        `json:"doctor_id"`
	TemplateName string                           `json:"template_name"`
	Condition    string                           `json:"condition,omitempty"`
	Diagnosis    string                           `json:"diagnosis,omitempty"`
	Notes        string                           `json:"notes,omitempty"`
	IsPublic     bool                             `json:"is_public"`
	Medications  []PrescriptionMedicationResponse `json:"medications"`
	CreatedAt    time.Time                        `json:"created_at"`
}

type RecurringAppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	PatientID     uuid.UUID `json:"patient_id"`
	PatientName   string    `json:"patient_name,omitempty"`
	DoctorID      uuid.UUID `json:"doctor_id"`
	DoctorName    string    `json:"doctor_name,omitempty"`
	FrequencyDays int       `json:"frequency_days"`
	StartDate     string    `json:"start_date"`
	EndDate       string    `json:"end_date,omitempty"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Reason        string    `json:"reason,omitempty"`
	IsActive      bool      `json:"is_active"`
	UpcomingDates []string  `json:"upcoming_dates"`
	CreatedAt     time.Time `json:"created_at"`
}
