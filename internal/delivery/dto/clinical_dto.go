package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreatePatientAlertRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	AlertType string    `json:"alert_type" validate:"required,max=100"`
	Severity  string    `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Message   string    `json:"message" validate:"required"`
}

type UpdatePatientAlertRequest struct {
	Severity *string `json:"severity" validate:"omitempty,oneof=low medium high critical"`
	Message  *string `json:"message" validate:"omitempty,min=1"`
	IsActive *bool   `json:"is_active"`
}

// RecordVitalsRequest carries one set of readings. Staff name the patient;
// on the portal the patient is the caller and PatientID is ignored.
type RecordVitalsRequest struct {
	PatientID              uuid.UUID           `json:"patient_id"`
	BloodPressureSystolic  *int                `json:"blood_pressure_systolic" validate:"omitempty,min=40,max=300"`
	BloodPressureDiastolic *int                `json:"blood_pressure_diastolic" validate:"omitempty,min=20,max=200"`
	HeartRate              *int                `json:"heart_rate" validate:"omitempty,min=20,max=250"`
	Temperature            decimal.NullDecimal `json:"temperature"`
	BloodSugar             decimal.NullDecimal `json:"blood_sugar"`
	Weight                 decimal.NullDecimal `json:"weight"`
	Height                 decimal.NullDecimal `json:"height"`
	OxygenSaturation       *int                `json:"oxygen_saturation" validate:"omitempty,min=0,max=100"`
	Notes                  string              `json:"notes"`
}

type RecordVaccinationRequest struct {
	PatientID        uuid.UUID  `json:"patient_id" validate:"required"`
	VaccineName      string     `json:"vaccine_name" validate:"required,max=200"`
	AdministeredDate string     `json:"administered_date" validate:"required,datetime=2006-01-02"`
	AdministeredBy   *uuid.UUID `json:"administered_by"`
	BatchNumber      string     `json:"batch_number" validate:"omitempty,max=50"`
	NextDoseDate     string     `json:"next_dose_date" validate:"omitempty,datetime=2006-01-02"`
	Notes            string     `json:"notes"`
}

// Response DTOs

type PatientAlertResponse struct {
	ID        uuid.UUID `json:"id"`
	PatientID uuid.UUID `json:"patient_id"`
	AlertType string    `json:"alert_type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type HealthVitalResponse struct {
	ID                     uuid.UUID           `json:"id"`
	PatientID              uuid.UUID           `json:"patient_id"`
	RecordedDate           time.Time           `json:"recorded_date"`
	BloodPressureSystolic  *int                `json:"blood_pressure_systolic"`
	BloodPressureDiastolic *int                `json:"blood_pressure_diastolic"`
	HeartRate              *int                `json:"heart_rate"`
	Temperature            decimal.NullDecimal `json:"temperature"`
	BloodSugar             decimal.NullDecimal `json:"blood_sugar"`
	Weight                 decimal.NullDecimal `json:"weight"`
	Height                 decimal.NullDecimal `json:"height"`
	OxygenSaturation       *int                `json:"oxygen_saturation"`
	Notes                  string              `json:"notes,omitempty"`
}

type VaccinationResponse struct {
	ID                 uuid.UUID  `json:"id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	VaccineName        string     `json:"vaccine_name"`
	AdministeredDate   string     `json:"administered_date"`
	AdministeredBy     *uuid.UUID `json:"administered_by,omitempty"`
	AdministeredByName string     `json:"administered_by_name,omitempty"`
	BatchNumber        string     `json:"batch_number,omitempty"`
	NextDoseDate       string     `json:"next_dose_date,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}
