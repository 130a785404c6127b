package repository

import (
	"errors"
	"fmt"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type referralRepository struct{}

func NewReferralRepository() domainRepo.ReferralRepository {
	return &referralRepository{}
}

func (r *referralRepository) Create(db *gorm.DB, referral *entity.Referral) error {
	return db.Create(referral).Error
}

func (r *referralRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Referral, error) {
	var referral entity.Referral
	err := db.Where("id = ?", id).First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &referral, nil
}

func (r *referralRepository) FindAll(db *gorm.DB, fromDoctorID, toDoctorID *uuid.UUID) ([]entity.ReferralDetail, error) {
	var referrals []entity.ReferralDetail
	query := db.Table("referrals").
		Select(fmt.Sprintf("referrals.*, %s AS patient_name, from_users.name AS from_doctor_name, to_users.name AS to_doctor_name", patientNameSQL)).
		Joins("JOIN patients ON patients.id = referrals.patient_id").
		Joins("JOIN doctors AS from_doctors ON from_doctors.id = referrals.from_doctor_id").
		Joins("JOIN users AS from_users ON from_users.id = from_doctors.user_id").
		Joins("JOIN doctors AS to_doctors ON to_doctors.id = referrals.to_doctor_id").
		Joins("JOIN users AS to_users ON to_users.id = to_doctors.user_id")
	if fromDoctorID != nil {
		query = query.Where("referrals.from_doctor_id = ?", *fromDoctorID)
	}
	if toDoctorID != nil {
		query = query.Where("referrals.to_doctor_id = ?", *toDoctorID)
	}
	err := query.Order("referrals.referral_date DESC").Scan(&referrals).Error
	if err != nil {
		return nil, err
	}
	return referrals, nil
}

func (r *referralRepository) Update(db *gorm.DB, referral *entity.Referral) error {
	return db.Save(referral).Error
}

type soapNoteRepository struct{}

func NewSoapNoteRepository() domainRepo.SoapNoteRepository {
	return &soapNoteRepository{}
}

func (r *soapNoteRepository) Create(db *gorm.DB, note *entity.SoapNote) error {
	return db.Create(note).Error
}

func (r *soapNoteRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.SoapNote, error) {
	return r.findOne(db.Where("id = ?", id))
}

func (r *soapNoteRepository) FindByAppointmentID(db *gorm.DB, appointmentID uuid.UUID) (*entity.SoapNote, error) {
	return r.findOne(db.Where("appointment_id = ?", appointmentID))
}

func (r *soapNoteRepository) findOne(query *gorm.DB) (*entity.SoapNote, error) {
	var note entity.SoapNote
	if err := query.First(&note).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &note, nil
}

func (r *soapNoteRepository) Update(db *gorm.DB, note *entity.SoapNote) error {
	return db.Save(note).Error
}

type refillRequestRepository struct{}

func NewRefillRequestRepository() domainRepo.RefillRequestRepository {
	return &refillRequestRepository{}
}

func (r *refillRequestRepository) Create(db *gorm.DB, request *entity.RefillRequest) error {
	return db.Create(request).Error
}

func (r *refillRequestRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.RefillRequest, error) {
	var request entity.RefillRequest
	err := db.Where("id = ?", id).First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *refillRequestRepository) FindAll(db *gorm.DB, patientID, doctorID *uuid.UUID) ([]entity.RefillRequestDetail, error) {
	var requests []entity.RefillRequestDetail
	query := db.Table("refill_requests").
		Select(fmt.Sprintf("refill_requests.*, %s AS patient_name, %s AS doctor_name, COALESCE(prescriptions.diagnosis, '') AS diagnosis", patientNameSQL, doctorNameSQL)).
		Joins("JOIN patients ON patients.id = refill_requests.patient_id").
		Joins(fmt.Sprintf(joinDoctorUser, "refill_requests")).
		Joins("JOIN prescriptions ON prescriptions.id = refill_requests.prescription_id")
	if patientID != nil {
		query = query.Where("refill_requests.patient_id = ?", *patientID)
	}
	if doctorID != nil {
		query = query.Where("refill_requests.doctor_id = ?", *doctorID)
	}
	err := query.Order("refill_requests.request_date DESC").Scan(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *refillRequestRepository) FindOpen(db *gorm.DB, prescriptionID uuid.UUID) (*entity.RefillRequest, error) {
	var request entity.RefillRequest
	err := db.Where("prescription_id = ? AND status IN ?", prescriptionID,
		[]entity.RefillStatus{entity.RefillStatusRequested, entity.RefillStatusApproved}).
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

func (r *refillRequestRepository) Update(db *gorm.DB, request *entity.RefillRequest) error {
	return db.Save(request).Error
}
