package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type LabTest struct {
	ID                      uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TestName                string          `gorm:"type:varchar(200);uniqueIndex;not null"`
	TestCode                string          `gorm:"type:varchar(50);uniqueIndex;not null"`
	Category                string          `gorm:"type:varchar(100);not null"`
	Description             string          `gorm:"type:text"`
	Price                   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	NormalRange             string          `gorm:"type:text"`
	PreparationInstructions string          `gorm:"type:text"`
}

func (LabTest) TableName() string {
	return "lab_tests"
}

// TestOrderStatus represents where a lab order is in its workflow
type TestOrderStatus string

const (
	TestOrderStatusOrdered   TestOrderStatus = "ordered"
	TestOrderStatusCollected TestOrderStatus = "collected"
	TestOrderStatusReported  TestOrderStatus = "reported"
)

// ParseTestOrderStatus maps a client string to a known status.
func ParseTestOrderStatus(s string) (TestOrderStatus, bool) {
	switch st := TestOrderStatus(s); st {
	case TestOrderStatusOrdered, TestOrderStatusCollected, TestOrderStatusReported:
		return st, true
	}
	return "", false
}

type TestOrder struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	DoctorID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LabTestID     uuid.UUID       `gorm:"type:uuid;not null"`
	OrderDate     time.Time       `gorm:"not null"`
	Status        TestOrderStatus `gorm:"type:varchar(20);not null;default:'ordered'"`
	CollectedDate *time.Time
	ReportedDate  *time.Time
	Results       string `gorm:"type:text"`
	Notes         string `gorm:"type:text"`
}

func (TestOrder) TableName() string {
	return "test_orders"
}

// TestOrderDetail is a test order enriched with display names at read time.
type TestOrderDetail struct {
	TestOrder
	PatientName string
	DoctorName  string
	TestName    string
	NormalRange string
}
