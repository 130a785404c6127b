package repository

import (
	"errors"
	"fmt"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Omit("Medications").Create(prescription).Error
}

func (r *prescriptionRepository) CreateMedication(db *gorm.DB, line *entity.PrescriptionMedication) error {
	return db.Omit("Medication").Create(line).Error
}

func (r *prescriptionRepository) detailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("prescriptions").
		Select(fmt.Sprintf("prescriptions.*, %s AS patient_name, %s AS doctor_name", patientNameSQL, doctorNameSQL)).
		Joins("JOIN patients ON patients.id = prescriptions.patient_id").
		Joins(fmt.Sprintf(joinDoctorUser, "prescriptions"))
}

func (r *prescriptionRepository) FindAll(db *gorm.DB, patientID *uuid.UUID) ([]entity.PrescriptionDetail, error) {
	var prescriptions []entity.PrescriptionDetail
	query := r.detailQuery(db)
	if patientID != nil {
		query = query.Where("prescriptions.patient_id = ?", *patientID)
	}
	err := query.Order("prescriptions.prescription_date DESC").Scan(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

// FindByID returns the prescription with its medication lines.
func (r *prescriptionRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescriptionDetail, error) {
	var prescriptions []entity.PrescriptionDetail
	err := r.detailQuery(db).Where("prescriptions.id = ?", id).Limit(1).Scan(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	if len(prescriptions) == 0 {
		return nil, nil
	}

	prescription := &prescriptions[0]
	err = db.Preload("Medication").
		Where("prescription_id = ?", id).
		Find(&prescription.Medications).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return prescription, nil
}
