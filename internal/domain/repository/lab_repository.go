package repository

import (
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LabTestRepository interface {
	Create(db *gorm.DB, test *entity.LabTest) error
	FindAll(db *gorm.DB) ([]entity.LabTest, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.LabTest, error)
}

type TestOrderRepository interface {
	Create(db *gorm.DB, order *entity.TestOrder) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TestOrder, error)
	// FindAll lists orders, optionally restricted to one patient.
	FindAll(db *gorm.DB, patientID *uuid.UUID) ([]entity.TestOrderDetail, error)
	Update(db *gorm.DB, order *entity.TestOrder) error
}
