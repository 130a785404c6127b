package usecase

import (
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// doctorForUser resolves the doctor profile of a signed-in doctor.
func doctorForUser(db *gorm.DB, log *logrus.Logger, doctors repository.DoctorRepository, userID uuid.UUID) (*entity.Doctor, error) {
	doctor, err := doctors.FindByUserID(db, userID)
	if err != nil {
		log.Warnf("Failed to find doctor by user: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorProfileNotFound
	}
	return doctor, nil
}

// patientForUser resolves the patient record linked to a portal account.
func patientForUser(db *gorm.DB, log *logrus.Logger, patients repository.PatientRepository, userID uuid.UUID) (*entity.Patient, error) {
	patient, err := patients.FindByUserID(db, userID)
	if err != nil {
		log.Warnf("Failed to find patient by user: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientProfileNotFound
	}
	return patient, nil
}

func requirePatient(db *gorm.DB, log *logrus.Logger, patients repository.PatientRepository, id uuid.UUID) (*entity.Patient, error) {
	patient, err := patients.FindByID(db, id)
	if err != nil {
		log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

func requireDoctor(db *gorm.DB, log *logrus.Logger, doctors repository.DoctorRepository, id uuid.UUID) (*entity.Doctor, error) {
	doctor, err := doctors.FindByID(db, id)
	if err != nil {
		log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
