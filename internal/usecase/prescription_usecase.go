package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hms-backend/internal/converter"
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/infrastructure/database"
	"hms-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrMedicationNotFound   = errors.New("medication not found")
)

type PrescriptionUsecase interface {
	List(ctx context.Context) ([]dto.PrescriptionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error)
	Create(ctx context.Context, doctorUserID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
}

type prescriptionUsecase struct {
	tx               database.Transactor
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	doctorRepo       repository.DoctorRepository
	patientRepo      repository.PatientRepository
	events           service.EventRecorder
	now              func() time.Time
}

func NewPrescriptionUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	events service.EventRecorder,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		tx:               tx,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		events:           events,
		now:              time.Now,
	}
}

func (u *prescriptionUsecase) List(ctx context.Context) ([]dto.PrescriptionResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindAll(u.tx.Conn(ctx), nil)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions: %+v", err)
		return nil, err
	}
	return converter.PrescriptionDetailsToResponses(prescriptions), nil
}

func (u *prescriptionUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.tx.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return converter.PrescriptionDetailToResponse(prescription), nil
}

// Create issues a prescription from the calling doctor. The header and all
// medication lines are written in one transaction.
func (u *prescriptionUsecase) Create(ctx context.Context, doctorUserID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	prescription := &entity.Prescription{
		PatientID:        req.PatientID,
		AppointmentID:    req.AppointmentID,
		PrescriptionDate: u.now(),
		Diagnosis:        req.Diagnosis,
		Notes:            req.Notes,
	}

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByUserID(tx, doctorUserID)
		if err != nil {
			u.log.Warnf("Failed to find doctor by user: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorProfileNotFound
		}
		prescription.DoctorID = doctor.ID

		patient, err := u.patientRepo.FindByID(tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
			if isForeignKeyError(err, "appointment") {
				return ErrAppointmentNotFound
			}
			u.log.Warnf("Failed to create prescription: %+v", err)
			return err
		}

		for _, item := range req.Medications {
			line := entity.PrescriptionMedication{
				PrescriptionID: prescription.ID,
				MedicationID:   item.MedicationID,
				Dosage:         item.Dosage,
				Frequency:      item.Frequency,
				Duration:       item.Duration,
				Instructions:   item.Instructions,
			}
			if err := u.prescriptionRepo.CreateMedication(tx, &line); err != nil {
				if isForeignKeyError(err, "medication") {
					return ErrMedicationNotFound
				}
				u.log.Warnf("Failed to create prescription line: %+v", err)
				return err
			}
			prescription.Medications = append(prescription.Medications, line)
		}

		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventPrescriptionIssued,
			PatientID:   patient.ID,
			RelatedID:   &prescription.ID,
			ActorUserID: &doctorUserID,
			Title:       "Prescription issued",
			Description: prescription.Diagnosis,
			Metadata:    entity.JSON{"medications": len(prescription.Medications)},
		})
		if err != nil {
			return err
		}

		if patient.UserID == nil {
			return nil
		}
		_, err = u.events.Notify(ctx, tx, service.NotificationInput{
			UserID:    *patient.UserID,
			Type:      "prescription",
			Title:     "New prescription",
			Message:   fmt.Sprintf("Dr. %s issued a prescription with %d medication(s)", doctor.User.Name, len(prescription.Medications)),
			RelatedID: &prescription.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Prescription created: %s (%d lines)", prescription.ID, len(prescription.Medications))
	return converter.PrescriptionToResponse(prescription), nil
}
