package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicationRequest struct {
	Name          string          `json:"name" validate:"required,max=200"`
	GenericName   string          `json:"generic_name" validate:"omitempty,max=200"`
	DosageForm    string          `json:"dosage_form" validate:"required,max=50"`
	Strength      string          `json:"strength" validate:"required,max=50"`
	Description   string          `json:"description"`
	Manufacturer  string          `json:"manufacturer" validate:"omitempty,max=200"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity" validate:"gte=0"`
	ReorderLevel  *int            `json:"reorder_level" validate:"omitempty,gte=0"`
	ExpiryDate    string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

// Response DTOs

type MedicationResponse struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	GenericName   string          `json:"generic_name,omitempty"`
	DosageForm    string          `json:"dosage_form"`
	Strength      string          `json:"strength"`
	Description   string          `json:"description,omitempty"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	StockQuantity int             `json:"stock_quantity"`
	ReorderLevel  *int            `json:"reorder_level,omitempty"`
	ExpiryDate    string          `json:"expiry_date,omitempty"`
	LowStock      bool            `json:"low_stock"`
}
