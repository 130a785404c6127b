package repository

import (
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorFeedbackRepository interface {
	Create(db *gorm.DB, feedback *entity.DoctorFeedback) error
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorFeedbackDetail, error)
}

type PrescriptionTemplateRepository interface {
	Create(db *gorm.DB, template *entity.PrescriptionTemplate) error
	CreateMedication(db *gorm.DB, line *entity.PrescriptionTemplateMedication) error
	// FindVisibleTo lists the doctor's own templates and every public one.
	FindVisibleTo(db *gorm.DB, doctorID uuid.UUID) ([]entity.PrescriptionTemplate, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescriptionTemplate, error)
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}

type RecurringAppointmentRepository interface {
	Create(db *gorm.DB, series *entity.RecurringAppointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.RecurringAppointment, error)
	FindAll(db *gorm.DB, patientID, doctorID *uuid.UUID) ([]entity.RecurringAppointmentDetail, error)
	Update(db *gorm.DB, series *entity.RecurringAppointment) error
}
