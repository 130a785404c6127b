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
	ErrFeedbackExists           = errors.New("feedback already submitted for this appointment")
	ErrFeedbackAppointmentOwner = errors.New("appointment does not belong to this patient and doctor")
	ErrAppointmentNotCompleted  = errors.New("only completed appointments can be rated")
)

type FeedbackUsecase interface {
	ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorFeedbackResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error)
}

type feedbackUsecase struct {
	tx              database.Transactor
	log             *logrus.Logger
	feedbackRepo    repository.DoctorFeedbackRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
}

func NewFeedbackUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	feedbackRepo repository.DoctorFeedbackRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
) FeedbackUsecase {
	return &feedbackUsecase{
		tx:              tx,
		log:             log,
		feedbackRepo:    feedbackRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
	}
}

func (u *feedbackUsecase) ListForDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorFeedbackResponse, error) {
	db := u.tx.Conn(ctx)
	if _, err := requireDoctor(db, u.log, u.doctorRepo, doctorID); err != nil {
		return nil, err
	}

	feedback, err := u.feedbackRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list doctor feedback: %+v", err)
		return nil, err
	}
	return converter.DoctorFeedbackToResponse(doctorID, feedback), nil
}

// Create stores the caller's rating. A rating tied to an appointment must
// be for the caller's own completed visit with that doctor, once.
func (u *feedbackUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateFeedbackRequest) (*dto.FeedbackResponse, error) {
	var feedback *entity.DoctorFeedback

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := patientForUser(tx, u.log, u.patientRepo, userID)
		if err != nil {
			return err
		}
		doctor, err := requireDoctor(tx, u.log, u.doctorRepo, req.DoctorID)
		if err != nil {
			return err
		}

		if req.AppointmentID != nil {
			appointment, err := u.appointmentRepo.FindByID(tx, *req.AppointmentID)
			if err != nil {
				u.log.Warnf("Failed to find appointment: %+v", err)
				return err
			}
			if appointment == nil {
				return ErrAppointmentNotFound
			}
			if appointment.PatientID != patient.ID || appointment.DoctorID != doctor.ID {
				return ErrFeedbackAppointmentOwner
			}
			if appointment.Status != entity.AppointmentStatusCompleted {
				return ErrAppointmentNotCompleted
			}
		}

		feedback = &entity.DoctorFeedback{
			DoctorID:      doctor.ID,
			PatientID:     patient.ID,
			AppointmentID: req.AppointmentID,
			Rating:        req.Rating,
			Comment:       req.Comment,
		}
		if err := u.feedbackRepo.Create(tx, feedback); err != nil {
			if isDuplicateKeyError(err, "doctor_feedback") {
				return ErrFeedbackExists
			}
			u.log.Warnf("Failed to create feedback: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Feedback submitted: %s (doctor=%s, rating=%d)", feedback.ID, feedback.DoctorID, feedback.Rating)
	return converter.FeedbackToResponse(feedback), nil
}
