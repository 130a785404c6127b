package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrRecurringAppointmentNotFound = errors.New("recurring appointment not found")
	ErrInvalidDateRange             = errors.New("end date must not be before start date")
)

// RecurringAppointmentUsecase keeps standing appointment series. Each
// response lists the next few occurrence dates.
type RecurringAppointmentUsecase interface {
	List(ctx context.Context, query *dto.RecurringAppointmentListQuery) ([]dto.RecurringAppointmentResponse, error)
	Create(ctx context.Context, req *dto.CreateRecurringAppointmentRequest) (*dto.RecurringAppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateRecurringAppointmentRequest) (*dto.RecurringAppointmentResponse, error)
}

type recurringAppointmentUsecase struct {
	tx            database.Transactor
	log           *logrus.Logger
	recurringRepo repository.RecurringAppointmentRepository
	patientRepo   repository.PatientRepository
	doctorRepo    repository.DoctorRepository
	now           func() time.Time
}

func NewRecurringAppointmentUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	recurringRepo repository.RecurringAppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
) RecurringAppointmentUsecase {
	return &recurringAppointmentUsecase{
		tx:            tx,
		log:           log,
		recurringRepo: recurringRepo,
		patientRepo:   patientRepo,
		doctorRepo:    doctorRepo,
		now:           time.Now,
	}
}

func (u *recurringAppointmentUsecase) List(ctx context.Context, query *dto.RecurringAppointmentListQuery) ([]dto.RecurringAppointmentResponse, error) {
	var patientID, doctorID *uuid.UUID
	if query.PatientID != "" {
		id, err := uuid.Parse(query.PatientID)
		if err != nil {
			return nil, ErrInvalidFilter
		}
		patientID = &id
	}
	if query.DoctorID != "" {
		id, err := uuid.Parse(query.DoctorID)
		if err != nil {
			return nil, ErrInvalidFilter
		}
		doctorID = &id
	}

	series, err := u.recurringRepo.FindAll(u.tx.Conn(ctx), patientID, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list recurring appointments: %+v", err)
		return nil, err
	}
	return converter.RecurringAppointmentDetailsToResponses(series, u.now()), nil
}

func (u *recurringAppointmentUsecase) Create(ctx context.Context, req *dto.CreateRecurringAppointmentRequest) (*dto.RecurringAppointmentResponse, error) {
	start, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}

	series := &entity.RecurringAppointment{
		PatientID:     req.PatientID,
		DoctorID:      req.DoctorID,
		FrequencyDays: req.FrequencyDays,
		StartDate:     start,
		EndDate:       end,
		StartTime:     req.StartTime,
		EndTime:       req.EndTime,
		Reason:        req.Reason,
		IsActive:      true,
	}
	if err := validateSeries(series); err != nil {
		return nil, err
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if _, err := requirePatient(tx, u.log, u.patientRepo, req.PatientID); err != nil {
			return err
		}
		if _, err := requireDoctor(tx, u.log, u.doctorRepo, req.DoctorID); err != nil {
			return err
		}

		if err := u.recurringRepo.Create(tx, series); err != nil {
			u.log.Warnf("Failed to create recurring appointment: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Recurring appointment created: %s (every %d days)", series.ID, series.FrequencyDays)
	return converter.RecurringAppointmentToResponse(series, u.now()), nil
}

// Update changes a series in place. An empty end_date makes it open-ended;
// is_active pauses or resumes it.
func (u *recurringAppointmentUsecase) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateRecurringAppointmentRequest) (*dto.RecurringAppointmentResponse, error) {
	var series *entity.RecurringAppointment

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		series, err = u.recurringRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find recurring appointment: %+v", err)
			return err
		}
		if series == nil {
			return ErrRecurringAppointmentNotFound
		}

		if req.FrequencyDays != nil {
			series.FrequencyDays = *req.FrequencyDays
		}
		if req.EndDate != nil {
			end, err := parseOptionalDate(*req.EndDate)
			if err != nil {
				return err
			}
			series.EndDate = end
		}
		if req.StartTime != nil {
			series.StartTime = *req.StartTime
		}
		if req.EndTime != nil {
			series.EndTime = *req.EndTime
		}
		if req.Reason != nil {
			series.Reason = *req.Reason
		}
		if req.IsActive != nil {
			series.IsActive = *req.IsActive
		}
		if err := validateSeries(series); err != nil {
			return err
		}

		if err := u.recurringRepo.Update(tx, series); err != nil {
			u.log.Warnf("Failed to update recurring appointment: %+v", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Recurring appointment updated: %s (active=%t)", series.ID, series.IsActive)
	return converter.RecurringAppointmentToResponse(series, u.now()), nil
}

func validateSeries(s *entity.RecurringAppointment) error {
	// HH:MM strings compare in time order
	if s.EndTime <= s.StartTime {
		return ErrInvalidTimeRange
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return ErrInvalidDateRange
	}
	return nil
}
