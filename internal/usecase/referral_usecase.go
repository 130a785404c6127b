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
	ErrReferralNotFound     = errors.New("referral not found")
	ErrSelfReferral         = errors.New("a doctor cannot refer a patient to themselves")
	ErrNotReferralParty     = errors.New("only the referring or receiving doctor can update a referral")
	ErrReferralReceiverOnly = errors.New("only the receiving doctor can accept or complete a referral")
	ErrReferralClosed       = errors.New("referral is already completed or cancelled")
	ErrInvalidTransition    = errors.New("status change not allowed")
)

// ReferralUsecase hands patients between doctors. The calling doctor is
// always resolved from the session.
type ReferralUsecase interface {
	Sent(ctx context.Context, userID uuid.UUID) ([]dto.ReferralResponse, error)
	Received(ctx context.Context, userID uuid.UUID) ([]dto.ReferralResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateReferralRequest) (*dto.ReferralResponse, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateReferralStatusRequest) (*dto.ReferralResponse, error)
}

type referralUsecase struct {
	tx           database.Transactor
	log          *logrus.Logger
	referralRepo repository.ReferralRepository
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	events       service.EventRecorder
	now          func() time.Time
}

func NewReferralUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	referralRepo repository.ReferralRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	events service.EventRecorder,
) ReferralUsecase {
	return &referralUsecase{
		tx:           tx,
		log:          log,
		referralRepo: referralRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		events:       events,
		now:          time.Now,
	}
}

func (u *referralUsecase) Sent(ctx context.Context, userID uuid.UUID) ([]dto.ReferralResponse, error) {
	db := u.tx.Conn(ctx)
	doctor, err := doctorForUser(db, u.log, u.doctorRepo, userID)
	if err != nil {
		return nil, err
	}

	referrals, err := u.referralRepo.FindAll(db, &doctor.ID, nil)
	if err != nil {
		u.log.Warnf("Failed to list sent referrals: %+v", err)
		return nil, err
	}
	return converter.ReferralDetailsToResponses(referrals), nil
}

func (u *referralUsecase) Received(ctx context.Context, userID uuid.UUID) ([]dto.ReferralResponse, error) {
	db := u.tx.Conn(ctx)
	doctor, err := doctorForUser(db, u.log, u.doctorRepo, userID)
	if err != nil {
		return nil, err
	}

	referrals, err := u.referralRepo.FindAll(db, nil, &doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to list received referrals: %+v", err)
		return nil, err
	}
	return converter.ReferralDetailsToResponses(referrals), nil
}

// Create refers a patient to another doctor, records referral_created on
// the timeline, and notifies the receiving doctor.
func (u *referralUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateReferralRequest) (*dto.ReferralResponse, error) {
	var referral *entity.Referral

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		from, err := doctorForUser(tx, u.log, u.doctorRepo, userID)
		if err != nil {
			return err
		}
		if from.ID == req.ToDoctorID {
			return ErrSelfReferral
		}

		patient, err := requirePatient(tx, u.log, u.patientRepo, req.PatientID)
		if err != nil {
			return err
		}
		to, err := requireDoctor(tx, u.log, u.doctorRepo, req.ToDoctorID)
		if err != nil {
			return err
		}

		referral = &entity.Referral{
			PatientID:    patient.ID,
			FromDoctorID: from.ID,
			ToDoctorID:   to.ID,
			Reason:       req.Reason,
			Notes:        req.Notes,
			Status:       entity.ReferralStatusPending,
			ReferralDate: u.now(),
		}
		if err := u.referralRepo.Create(tx, referral); err != nil {
			u.log.Warnf("Failed to create referral: %+v", err)
			return err
		}

		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventReferralCreated,
			PatientID:   patient.ID,
			RelatedID:   &referral.ID,
			ActorUserID: &userID,
			Title:       "Referral created",
			Description: fmt.Sprintf("Referred to Dr. %s for %s", to.User.Name, req.Reason),
			Metadata: entity.JSON{
				"from_doctor_id": from.ID.String(),
				"to_doctor_id":   to.ID.String(),
			},
		})
		if err != nil {
			return err
		}

		_, err = u.events.Notify(ctx, tx, service.NotificationInput{
			UserID:    to.UserID,
			Type:      "referral",
			Title:     "New referral",
			Message:   fmt.Sprintf("Dr. %s referred %s to you: %s", from.User.Name, patient.FullName(), req.Reason),
			RelatedID: &referral.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Referral created: %s (%s -> %s)", referral.ID, referral.FromDoctorID, referral.ToDoctorID)
	return converter.ReferralToResponse(referral), nil
}

// UpdateStatus moves a referral along pending, accepted, completed. Either
// party may cancel; only the receiving doctor accepts or completes.
func (u *referralUsecase) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateReferralStatusRequest) (*dto.ReferralResponse, error) {
	status, ok := entity.ParseReferralStatus(req.Status)
	if !ok {
		return nil, ErrInvalidStatus
	}

	var referral *entity.Referral

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := doctorForUser(tx, u.log, u.doctorRepo, userID)
		if err != nil {
			return err
		}

		referral, err = u.referralRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find referral: %+v", err)
			return err
		}
		if referral == nil {
			return ErrReferralNotFound
		}
		if doctor.ID != referral.FromDoctorID && doctor.ID != referral.ToDoctorID {
			return ErrNotReferralParty
		}
		if referral.IsFinal() {
			return ErrReferralClosed
		}
		if !referral.CanMoveTo(status) {
			return ErrInvalidTransition
		}
		if status != entity.ReferralStatusCancelled && doctor.ID != referral.ToDoctorID {
			return ErrReferralReceiverOnly
		}

		referral.Status = status
		if status == entity.ReferralStatusCompleted {
			now := u.now()
			referral.CompletedDate = &now
		}

		if err := u.referralRepo.Update(tx, referral); err != nil {
			u.log.Warnf("Failed to update referral: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Referral updated: %s (status=%s)", referral.ID, referral.Status)
	return converter.ReferralToResponse(referral), nil
}
