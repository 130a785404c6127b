package usecase

import (
	"context"
	"errors"

	"hms-backend/internal/converter"
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/infrastructure/database"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrSoapNoteNotFound     = errors.New("SOAP note not found")
	ErrSoapNoteExists       = errors.New("appointment already has a SOAP note")
	ErrNotAppointmentDoctor = errors.New("only the appointment's doctor can write its notes")
)

// SoapNoteUsecase keeps one SOAP note per appointment. Any doctor may read
// a note; only the doctor who owns the appointment writes it.
type SoapNoteUsecase interface {
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.SoapNoteResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateSoapNoteRequest) (*dto.SoapNoteResponse, error)
	Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateSoapNoteRequest) (*dto.SoapNoteResponse, error)
}

type soapNoteUsecase struct {
	tx              database.Transactor
	log             *logrus.Logger
	soapNoteRepo    repository.SoapNoteRepository
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
}

func NewSoapNoteUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	soapNoteRepo repository.SoapNoteRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
) SoapNoteUsecase {
	return &soapNoteUsecase{
		tx:              tx,
		log:             log,
		soapNoteRepo:    soapNoteRepo,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
	}
}

func (u *soapNoteUsecase) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.SoapNoteResponse, error) {
	note, err := u.soapNoteRepo.FindByAppointmentID(u.tx.Conn(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find SOAP note: %+v", err)
		return nil, err
	}
	if note == nil {
		return nil, ErrSoapNoteNotFound
	}
	return converter.SoapNoteToResponse(note), nil
}

func (u *soapNoteUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateSoapNoteRequest) (*dto.SoapNoteResponse, error) {
	note := &entity.SoapNote{
		AppointmentID: req.AppointmentID,
		Subjective:    req.Subjective,
		Objective:     req.Objective,
		Assessment:    req.Assessment,
		Plan:          req.Plan,
	}

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.authorize(tx, userID, req.AppointmentID); err != nil {
			return err
		}

		existing, err := u.soapNoteRepo.FindByAppointmentID(tx, req.AppointmentID)
		if err != nil {
			u.log.Warnf("Failed to find SOAP note: %+v", err)
			return err
		}
		if existing != nil {
			return ErrSoapNoteExists
		}

		if err := u.soapNoteRepo.Create(tx, note); err != nil {
			if isDuplicateKeyError(err, "soap_notes") {
				return ErrSoapNoteExists
			}
			u.log.Warnf("Failed to create SOAP note: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("SOAP note created: %s (appointment=%s)", note.ID, note.AppointmentID)
	return converter.SoapNoteToResponse(note), nil
}

func (u *soapNoteUsecase) Update(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateSoapNoteRequest) (*dto.SoapNoteResponse, error) {
	var note *entity.SoapNote

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		note, err = u.soapNoteRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find SOAP note: %+v", err)
			return err
		}
		if note == nil {
			return ErrSoapNoteNotFound
		}
		if err := u.authorize(tx, userID, note.AppointmentID); err != nil {
			return err
		}

		if req.Subjective != nil {
			note.Subjective = *req.Subjective
		}
		if req.Objective != nil {
			note.Objective = *req.Objective
		}
		if req.Assessment != nil {
			note.Assessment = *req.Assessment
		}
		if req.Plan != nil {
			note.Plan = *req.Plan
		}

		if err := u.soapNoteRepo.Update(tx, note); err != nil {
			u.log.Warnf("Failed to update SOAP note: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("SOAP note updated: %s", note.ID)
	return converter.SoapNoteToResponse(note), nil
}

// authorize checks that the caller is the doctor of the appointment.
func (u *soapNoteUsecase) authorize(tx *gorm.DB, userID, appointmentID uuid.UUID) error {
	doctor, err := doctorForUser(tx, u.log, u.doctorRepo, userID)
	if err != nil {
		return err
	}

	appointment, err := u.appointmentRepo.FindByID(tx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctor.ID {
		return ErrNotAppointmentDoctor
	}
	return nil
}
