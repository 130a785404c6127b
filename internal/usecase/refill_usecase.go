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
	ErrRefillNotFound          = errors.New("refill request not found")
	ErrRefillPending           = errors.New("prescription already has an open refill request")
	ErrRefillClosed            = errors.New("refill request is already denied or completed")
	ErrNotRefillDoctor         = errors.New("only the prescribing doctor can decide a refill request")
	ErrNewPrescriptionMismatch = errors.New("new prescription must belong to the same patient")
)

// RefillUsecase lets patients ask for a prescription renewal and the
// prescribing doctor decide on it.
type RefillUsecase interface {
	ListForPatient(ctx context.Context, userID uuid.UUID) ([]dto.RefillRequestResponse, error)
	ListForDoctor(ctx context.Context, userID uuid.UUID) ([]dto.RefillRequestResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateRefillRequest) (*dto.RefillRequestResponse, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateRefillStatusRequest) (*dto.RefillRequestResponse, error)
}

type refillUsecase struct {
	tx               database.Transactor
	log              *logrus.Logger
	refillRepo       repository.RefillRequestRepository
	prescriptionRepo repository.PrescriptionRepository
	patientRepo      repository.PatientRepository
	doctorRepo       repository.DoctorRepository
	events           service.EventRecorder
	now              func() time.Time
}

func NewRefillUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	refillRepo repository.RefillRequestRepository,
	prescriptionRepo repository.PrescriptionRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	events service.EventRecorder,
) RefillUsecase {
	return &refillUsecase{
		tx:               tx,
		log:              log,
		refillRepo:       refillRepo,
		prescriptionRepo: prescriptionRepo,
		patientRepo:      patientRepo,
		doctorRepo:       doctorRepo,
		events:           events,
		now:              time.Now,
	}
}

func (u *refillUsecase) ListForPatient(ctx context.Context, userID uuid.UUID) ([]dto.RefillRequestResponse, error) {
	db := u.tx.Conn(ctx)
	patient, err := patientForUser(db, u.log, u.patientRepo, userID)
	if err != nil {
		return nil, err
	}

	requests, err := u.refillRepo.FindAll(db, &patient.ID, nil)
	if err != nil {
		u.log.Warnf("Failed to list patient refill requests: %+v", err)
		return nil, err
	}
	return converter.RefillRequestDetailsToResponses(requests), nil
}

func (u *refillUsecase) ListForDoctor(ctx context.Context, userID uuid.UUID) ([]dto.RefillRequestResponse, error) {
	db := u.tx.Conn(ctx)
	doctor, err := doctorForUser(db, u.log, u.doctorRepo, userID)
	if err != nil {
		return nil, err
	}

	requests, err := u.refillRepo.FindAll(db, nil, &doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to list doctor refill requests: %+v", err)
		return nil, err
	}
	return converter.RefillRequestDetailsToResponses(requests), nil
}

// Create files a refill for one of the caller's own prescriptions. The
// request goes to the doctor who wrote the prescription.
func (u *refillUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateRefillRequest) (*dto.RefillRequestResponse, error) {
	var request *entity.RefillRequest

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := patientForUser(tx, u.log, u.patientRepo, userID)
		if err != nil {
			return err
		}

		prescription, err := u.prescriptionRepo.FindByID(tx, req.PrescriptionID)
		if err != nil {
			u.log.Warnf("Failed to find prescription: %+v", err)
			return err
		}
		// Another patient's prescription is reported as missing
		if prescription == nil || prescription.PatientID != patient.ID {
			return ErrPrescriptionNotFound
		}

		open, err := u.refillRepo.FindOpen(tx, prescription.ID)
		if err != nil {
			u.log.Warnf("Failed to find open refill request: %+v", err)
			return err
		}
		if open != nil {
			return ErrRefillPending
		}

		doctor, err := requireDoctor(tx, u.log, u.doctorRepo, prescription.DoctorID)
		if err != nil {
			return err
		}

		request = &entity.RefillRequest{
			PatientID:      patient.ID,
			PrescriptionID: prescription.ID,
			DoctorID:       doctor.ID,
			RequestDate:    u.now(),
			Status:         entity.RefillStatusRequested,
			Notes:          req.Notes,
		}
		if err := u.refillRepo.Create(tx, request); err != nil {
			if isDuplicateKeyError(err, "refill_requests_open") {
				return ErrRefillPending
			}
			u.log.Warnf("Failed to create refill request: %+v", err)
			return err
		}

		_, err = u.events.Notify(ctx, tx, service.NotificationInput{
			UserID:    doctor.UserID,
			Type:      "refill",
			Title:     "Refill requested",
			Message:   fmt.Sprintf("%s asked for a prescription refill", patient.FullName()),
			RelatedID: &request.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Refill request created: %s (prescription=%s)", request.ID, request.PrescriptionID)
	return converter.RefillRequestToResponse(request), nil
}

// UpdateStatus records the doctor's decision. Approval stamps the approval
// date and may link the renewed prescription; the patient is notified.
func (u *refillUsecase) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateRefillStatusRequest) (*dto.RefillRequestResponse, error) {
	status, ok := entity.ParseRefillStatus(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	var request *entity.RefillRequest

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := doctorForUser(tx, u.log, u.doctorRepo, userID)
		if err != nil {
			return err
		}

		request, err = u.refillRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find refill request: %+v", err)
			return err
		}
		if request == nil {
			return ErrRefillNotFound
		}
		if request.DoctorID != doctor.ID {
			return ErrNotRefillDoctor
		}
		if !request.IsOpen() {
			return ErrRefillClosed
		}
		if !request.CanMoveTo(status) {
			return ErrInvalidTransition
		}

		if req.NewPrescriptionID != nil {
			renewed, err := u.prescriptionRepo.FindByID(tx, *req.NewPrescriptionID)
			if err != nil {
				u.log.Warnf("Failed to find prescription: %+v", err)
				return err
			}
			if renewed == nil || renewed.PatientID != request.PatientID {
				return ErrNewPrescriptionMismatch
			}
			request.NewPrescriptionID = req.NewPrescriptionID
		}
		if req.Notes != nil {
			request.Notes = *req.Notes
		}

		request.Status = status
		if status == entity.RefillStatusApproved {
			now := u.now()
			request.ApprovedDate = &now
		}

		if err := u.refillRepo.Update(tx, request); err != nil {
			u.log.Warnf("Failed to update refill request: %+v", err)
			return err
		}

		patient, err := requirePatient(tx, u.log, u.patientRepo, request.PatientID)
		if err != nil {
			return err
		}
		if patient.UserID == nil {
			return nil
		}
		_, err = u.events.Notify(ctx, tx, service.NotificationInput{
			UserID:    *patient.UserID,
			Type:      "refill",
			Title:     fmt.Sprintf("Refill request %s", status),
			Message:   fmt.Sprintf("Dr. %s marked your refill request as %s", doctor.User.Name, status),
			RelatedID: &request.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Refill request updated: %s (status=%s)", request.ID, request.Status)
	return converter.RefillRequestToResponse(request), nil
}
