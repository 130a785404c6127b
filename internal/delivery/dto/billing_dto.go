package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateBillRequest struct {
	PatientID   uuid.UUID       `json:"patient_id" validate:"required"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	DueDate     string          `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Description string          `json:"description"`
}

type CreatePaymentRequest struct {
	BillID        uuid.UUID       `json:"bill_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=50"`
	TransactionID string          `json:"transaction_id" validate:"omitempty,max=100"`
	Notes         string          `json:"notes"`
}

// Response DTOs

// BillResponse reports the derived paid amount and status; neither is stored.
type BillResponse struct {
	ID          uuid.UUID       `json:"id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	PatientName string          `json:"patient_name,omitempty"`
	BillDate    time.Time       `json:"bill_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Balance     decimal.Decimal `json:"balance"`
	Status      string          `json:"status"`
	DueDate     string          `json:"due_date,omitempty"`
	Description string          `json:"description,omitempty"`
}

type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	BillID        uuid.UUID       `json:"bill_id"`
	PaymentDate   time.Time       `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}
