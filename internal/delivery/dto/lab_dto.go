package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateLabTestRequest struct {
	TestName                string          `json:"test_name" validate:"required,max=200"`
	TestCode                string          `json:"test_code" validate:"required,max=50"`
	Category                string          `json:"category" validate:"required,max=100"`
	Description             string          `json:"description"`
	Price                   decimal.Decimal `json:"price"`
	NormalRange             string          `json:"normal_range"`
	PreparationInstructions string          `json:"preparation_instructions"`
}

type CreateTestOrderRequest struct {
	PatientID uuid.UUID `json:"patient_id" validate:"required"`
	DoctorID  uuid.UUID `json:"doctor_id" validate:"required"`
	LabTestID uuid.UUID `json:"lab_test_id" validate:"required"`
	Notes     string    `json:"notes"`
}

type UpdateTestOrderRequest struct {
	Status  *string `json:"status" validate:"omitempty,oneof=ordered collected reported"`
	Results *string `json:"results"`
	Notes   *string `json:"notes"`
}

// Response DTOs

type LabTestResponse struct {
	ID                      uuid.UUID       `json:"id"`
	TestName                string          `json:"test_name"`
	TestCode                string          `json:"test_code"`
	Category                string          `json:"category"`
	Description             string          `json:"description,omitempty"`
	Price                   decimal.Decimal `json:"price"`
	NormalRange             string          `json:"normal_range,omitempty"`
	PreparationInstructions string          `json:"preparation_instructions,omitempty"`
}

type TestOrderResponse struct {
	ID            uuid.UUID  `json:"id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	PatientName   string     `json:"patient_name,omitempty"`
	DoctorID      uuid.UUID  `json:"doctor_id"`
	DoctorName    string     `json:"doctor_name,omitempty"`
	LabTestID     uuid.UUID  `json:"lab_test_id"`
	TestName      string     `json:"test_name,omitempty"`
	NormalRange   string     `json:"normal_range,omitempty"`
	OrderDate     time.Time  `json:"order_date"`
	Status        string     `json:"status"`
	CollectedDate *time.Time `json:"collected_date,omitempty"`
	ReportedDate  *time.Time `json:"reported_date,omitempty"`
	Results       string     `json:"results,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}
