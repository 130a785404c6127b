package repository

import (
	"errors"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const alertSeverityOrder = "CASE severity WHEN 'critical' THEN 0 WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END"

type patientAlertRepository struct{}

func NewPatientAlertRepository() domainRepo.PatientAlertRepository {
	return &patientAlertRepository{}
}

func (r *patientAlertRepository) Create(db *gorm.DB, alert *entity.PatientAlert) error {
	return db.Create(alert).Error
}

func (r *patientAlertRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientAlert, error) {
	var alert entity.PatientAlert
	err := db.Where("id = ?", id).First(&alert).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &alert, nil
}

func (r *patientAlertRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID, activeOnly bool) ([]entity.PatientAlert, error) {
	var alerts []entity.PatientAlert
	query := db.Where("patient_id = ?", patientID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	err := query.Order(alertSeverityOrder).Order("created_at DESC").Find(&alerts).Error
	if err != nil {
		return nil, err
	}
	return alerts, nil
}

func (r *patientAlertRepository) Update(db *gorm.DB, alert *entity.PatientAlert) error {
	return db.Save(alert).Error
}

type healthVitalRepository struct{}

func NewHealthVitalRepository() domainRepo.HealthVitalRepository {
	return &healthVitalRepository{}
}

func (r *healthVitalRepository) Create(db *gorm.DB, vital *entity.HealthVital) error {
	return db.Create(vital).Error
}

func (r *healthVitalRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.HealthVital, error) {
	var vitals []entity.HealthVital
	err := db.Where("patient_id = ?", patientID).Order("recorded_date DESC").Find(&vitals).Error
	if err != nil {
		return nil, err
	}
	return vitals, nil
}

type vaccinationRepository struct{}

func NewVaccinationRepository() domainRepo.VaccinationRepository {
	return &vaccinationRepository{}
}

func (r *vaccinationRepository) Create(db *gorm.DB, vaccination *entity.Vaccination) error {
	return db.Create(vaccination).Error
}

func (r *vaccinationRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.VaccinationDetail, error) {
	var vaccinations []entity.VaccinationDetail
	err := db.Table("vaccinations").
		Select("vaccinations.*, COALESCE(doctor_users.name, '') AS administered_by_name").
		Joins("LEFT JOIN doctors ON doctors.id = vaccinations.administered_by").
		Joins("LEFT JOIN users AS doctor_users ON doctor_users.id = doctors.user_id").
		Where("vaccinations.patient_id = ?", patientID).
		Order("vaccinations.administered_date DESC").
		Scan(&vaccinations).Error
	if err != nil {
		return nil, err
	}
	return vaccinations, nil
}
