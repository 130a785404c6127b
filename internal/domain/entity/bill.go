package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BillStatus is either stored (pending, cancelled) or derived from payments
// and the due date (paid, overdue).
type BillStatus string

const (
	BillStatusPending   BillStatus = "pending"
	BillStatusPaid      BillStatus = "paid"
	BillStatusOverdue   BillStatus = "overdue"
	BillStatusCancelled BillStatus = "cancelled"
)

// Bill is a charge against a patient. The amount paid is never stored; it is
// the sum of the bill's payments.
type Bill struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	BillDate    time.Time       `gorm:"not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status      BillStatus      `gorm:"type:varchar(20);not null;default:'pending'"`
	DueDate     *time.Time      `gorm:"type:date"`
	Description string          `gorm:"type:text"`
}

func (Bill) TableName() string {
	return "bills"
}

// IsCancelled checks if the bill was voided
func (b *Bill) IsCancelled() bool {
	return b.Status == BillStatusCancelled
}

// Cancel marks the bill as voided
func (b *Bill) Cancel() {
	b.Status = BillStatusCancelled
}

// Balance returns what remains to be paid given the current paid sum.
func (b *Bill) Balance(paid decimal.Decimal) decimal.Decimal {
	remaining := b.TotalAmount.Sub(paid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// Accepts reports whether a payment of amount keeps the sum of payments
// within the bill total.
func (b *Bill) Accepts(paid, amount decimal.Decimal) bool {
	return paid.Add(amount).LessThanOrEqual(b.TotalAmount)
}

// EffectiveStatus derives the status a client sees from the stored status,
// the paid sum, and the due date. Due dates are compared by calendar day.
func (b *Bill) EffectiveStatus(paid decimal.Decimal, now time.Time) BillStatus {
	switch {
	case b.IsCancelled():
		return BillStatusCancelled
	case paid.GreaterThanOrEqual(b.TotalAmount):
		return BillStatusPaid
	case b.DueDate != nil && dateOnly(*b.DueDate).Before(dateOnly(now)):
		return BillStatusOverdue
	default:
		return BillStatusPending
	}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// BillSummary is a bill with its aggregated paid amount and patient name.
type BillSummary struct {
	Bill
	PaidAmount  decimal.Decimal
	PatientName string
}

// Payment is an immutable record of money received against a bill.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BillID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	PaymentDate   time.Time       `gorm:"not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaymentMethod string          `gorm:"type:varchar(50);not null"`
	TransactionID string          `gorm:"type:varchar(100)"`
	Notes         string          `gorm:"type:text"`
}

func (Payment) TableName() string {
	return "payments"
}
