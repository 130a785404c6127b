package repository

import (
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatientAlertRepository interface {
	Create(db *gorm.DB, alert *entity.PatientAlert) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientAlert, error)
	// FindByPatientID lists a patient's alerts, most severe first. With
	// activeOnly set, deactivated alerts are left out.
	FindByPatientID(db *gorm.DB, patientID uuid.UUID, activeOnly bool) ([]entity.PatientAlert, error)
	Update(db *gorm.DB, alert *entity.PatientAlert) error
}

type HealthVitalRepository interface {
	Create(db *gorm.DB, vital *entity.HealthVital) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.HealthVital, error)
}

type VaccinationRepository interface {
	Create(db *gorm.DB, vaccination *entity.Vaccination) error
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.VaccinationDetail, error)
}
