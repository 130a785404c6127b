package repository

import (
	"time"

	"hms-backend/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicationRepository interface {
	Create(db *gorm.DB, medication *entity.Medication) error
	FindAll(db *gorm.DB) ([]entity.Medication, error)
	FindExpiringBetween(db *gorm.DB, from, to time.Time) ([]entity.Medication, error)
	FindLowStock(db *gorm.DB) ([]entity.Medication, error)
}
