package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultReorderLevel applies to medications created without a threshold.
const DefaultReorderLevel = 50

// LowStockFallbackLevel is used when a stored reorder level is null.
const LowStockFallbackLevel = 10

type Medication struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string          `gorm:"type:varchar(200);uniqueIndex;not null"`
	GenericName   string          `gorm:"type:varchar(200)"`
	DosageForm    string          `gorm:"type:varchar(50);not null"`
	Strength      string          `gorm:"type:varchar(50);not null"`
	Description   string          `gorm:"type:text"`
	Manufacturer  string          `gorm:"type:varchar(200)"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	StockQuantity int             `gorm:"not null;default:0"`
	ReorderLevel  *int
	ExpiryDate    *time.Time `gorm:"type:date"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (Medication) TableName() string {
	return "medications"
}

// IsLowStock reports whether stock has reached the reorder level.
func (m *Medication) IsLowStock() bool {
	level := LowStockFallbackLevel
	if m.ReorderLevel != nil {
		level = *m.ReorderLevel
	}
	return m.StockQuantity <= level
}
