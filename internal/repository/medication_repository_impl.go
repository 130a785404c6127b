package repository

import (
	"time"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type medicationRepository struct{}

func NewMedicationRepository() domainRepo.MedicationRepository {
	return &medicationRepository{}
}

func (r *medicationRepository) Create(db *gorm.DB, medication *entity.Medication) error {
	return db.Create(medication).Error
}

func (r *medicationRepository) FindAll(db *gorm.DB) ([]entity.Medication, error) {
	var medications []entity.Medication
	if err := db.Order("name ASC").Find(&medications).Error; err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) FindExpiringBetween(db *gorm.DB, from, to time.Time) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := db.
		Where("expiry_date IS NOT NULL AND expiry_date >= ? AND expiry_date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("expiry_date ASC").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}

func (r *medicationRepository) FindLowStock(db *gorm.DB) ([]entity.Medication, error) {
	var medications []entity.Medication
	err := db.
		Where("stock_quantity <= COALESCE(reorder_level, ?)", entity.LowStockFallbackLevel).
		Order("stock_quantity ASC").
		Find(&medications).Error
	if err != nil {
		return nil, err
	}
	return medications, nil
}
