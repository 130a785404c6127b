package repository

import (
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReferralRepository interface {
	Create(db *gorm.DB, referral *entity.Referral) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Referral, error)
	// FindAll lists referrals sent by fromDoctorID or received by
	// toDoctorID. Exactly one of them is expected to be set.
	FindAll(db *gorm.DB, fromDoctorID, toDoctorID *uuid.UUID) ([]entity.ReferralDetail, error)
	Update(db *gorm.DB, referral *entity.Referral) error
}

type SoapNoteRepository interface {
	Create(db *gorm.DB, note *entity.SoapNote) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.SoapNote, error)
	FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.SoapNote, error)
	Update(db *gorm.DB, note *entity.SoapNote) error
}

type RefillRequestRepository interface {
	Create(db *gorm.DB, request *entity.RefillRequest) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.RefillRequest, error)
	// FindAll lists requests for one patient or one doctor.
	FindAll(db *gorm.DB, patientID, doctorID *uuid.UUID) ([]entity.RefillRequestDetail, error)
	// FindOpen returns the request for the prescription that is still
	// requested or approved, if any.
	FindOpen(db *gorm.DB, prescriptionID uuid.UUID) (*entity.RefillRequest, error)
	Update(db *gorm.DB, request *entity.RefillRequest) error
}
