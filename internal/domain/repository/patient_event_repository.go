package repository

import (
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientEventRepository interface {
	Create(db *gorm.DB, event *entity.PatientEvent) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PatientEventDetail, error)
}
