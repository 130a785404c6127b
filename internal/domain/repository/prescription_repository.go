package repository

import (
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	CreateMedication(db *gorm.DB, line *entity.PrescriptionMedication) error
	// FindAll lists prescriptions, optionally restricted to one patient.
	FindAll(db *gorm.DB, patientID *uuid.UUID) ([]entity.PrescriptionDetail, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescriptionDetail, error)
}
