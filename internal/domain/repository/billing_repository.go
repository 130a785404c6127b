package repository

import (
	"time"

	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BillRepository interface {
	Create(db *gorm.DB, bill *entity.Bill) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Bill, error)
	// FindByIDForUpdate loads the bill holding a row lock until the
	// surrounding transaction ends.
	FindByIDForUpdate(db *gorm.DB, id uuid.UUID) (*entity.Bill, error)
	// FindAll lists bills with their paid sums, optionally for one patient.
	FindAll(db *gorm.DB, patientID *uuid.UUID) ([]entity.BillSummary, error)
	UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.BillStatus) error
}

type PaymentRepository interface {
	Create(db *gorm.DB, payment *entity.Payment) error
	FindByBillID(db *gorm.DB, billID uuid.UUID) ([]entity.Payment, error)
	SumByBillID(db *gorm.DB, billID uuid.UUID) (decimal.Decimal, error)
	SumAll(db *gorm.DB) (decimal.Decimal, error)
	// MonthlyTotals groups payments made on or after since by calendar month.
	MonthlyTotals(db *gorm.DB, since time.Time) ([]entity.MonthlyRevenue, error)
}
