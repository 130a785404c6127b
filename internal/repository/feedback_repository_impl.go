package repository

import (
	"errors"
	"fmt"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorFeedbackRepository struct{}

func NewDoctorFeedbackRepository() domainRepo.DoctorFeedbackRepository {
	return &doctorFeedbackRepository{}
}

func (r *doctorFeedbackRepository) Create(db *gorm.DB, feedback *entity.DoctorFeedback) error {
	return db.Create(feedback).Error
}

func (r *doctorFeedbackRepository) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorFeedbackDetail, error) {
	var feedback []entity.DoctorFeedbackDetail
	err := db.Table("doctor_feedback").
		Select(fmt.Sprintf("doctor_feedback.*, %s AS patient_name", patientNameSQL)).
		Joins("JOIN patients ON patients.id = doctor_feedback.patient_id").
		Where("doctor_feedback.doctor_id = ?", doctorID).
		Order("doctor_feedback.created_at DESC").
		Scan(&feedback).Error
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

type prescriptionTemplateRepository struct{}

func NewPrescriptionTemplateRepository() domainRepo.PrescriptionTemplateRepository {
	return &prescriptionTemplateRepository{}
}

func (r *prescriptionTemplateRepository) Create(db *gorm.DB, template *entity.PrescriptionTemplate) error {
	return db.Omit("Medications").Create(template).Error
}

func (r *prescriptionTemplateRepository) CreateMedication(db *gorm.DB, line *entity.PrescriptionTemplateMedication) error {
	return db.Omit("Medication").Create(line).Error
}

func (r *prescriptionTemplateRepository) FindVisibleTo(db *gorm.DB, doctorID uuid.UUID) ([]entity.PrescriptionTemplate, error) {
	var templates []entity.PrescriptionTemplate
	err := db.Preload("Medications.Medication").
		Where("doctor_id = ? OR is_public = ?", doctorID, true).
		Order("template_name ASC").
		Find(&templates).Error
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *prescriptionTemplateRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescriptionTemplate, error) {
	var template entity.PrescriptionTemplate
	err := db.Where("id = ?", id).First(&template).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &template, nil
}

func (r *prescriptionTemplateRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	result := db.Where("id = ?", id).Delete(&entity.PrescriptionTemplate{})
	return result.RowsAffected, result.Error
}

type recurringAppointmentRepository struct{}

func NewRecurringAppointmentRepository() domainRepo.RecurringAppointmentRepository {
	return &recurringAppointmentRepository{}
}

func (r *recurringAppointmentRepository) Create(db *gorm.DB, series *entity.RecurringAppointment) error {
	return db.Create(series).Error
}

func (r *recurringAppointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.RecurringAppointment, error) {
	var series entity.RecurringAppointment
	err := db.Where("id = ?", id).First(&series).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &series, nil
}

func (r *recurringAppointmentRepository) FindAll(db *gorm.DB, patientID, doctorID *uuid.UUID) ([]entity.RecurringAppointmentDetail, error) {
	var series []entity.RecurringAppointmentDetail
	query := db.Table("recurring_appointments").
		Select(fmt.Sprintf("recurring_appointments.*, %s AS patient_name, %s AS doctor_name", patientNameSQL, doctorNameSQL)).
		Joins("JOIN patients ON patients.id = recurring_appointments.patient_id").
		Joins(fmt.Sprintf(joinDoctorUser, "recurring_appointments"))
	if patientID != nil {
		query = query.Where("recurring_appointments.patient_id = ?", *patientID)
	}
	if doctorID != nil {
		query = query.Where("recurring_appointments.doctor_id = ?", *doctorID)
	}
	err := query.Order("recurring_appointments.start_date ASC").Scan(&series).Error
	if err != nil {
		return nil, err
	}
	return series, nil
}

func (r *recurringAppointmentRepository) Update(db *gorm.DB, series *entity.RecurringAppointment) error {
	return db.Save(series).Error
}
