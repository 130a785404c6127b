package usecase

import (
	"context"
	"errors"
	"fmt"

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
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrAppointmentNotScheduled = errors.New("only scheduled appointments can change status")
	ErrInvalidTimeRange        = errors.New("end time must be after start time")
	ErrInvalidStatus           = errors.New("invalid status")
	ErrInvalidFilter           = errors.New("invalid filter")
)

type AppointmentUsecase interface {
	List(ctx context.Context, query *dto.AppointmentListQuery) ([]dto.AppointmentResponse, error)
	Create(ctx context.Context, actorUserID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, actorUserID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	tx              database.Transactor
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	events          service.EventRecorder
	metricsCache    MetricsCache
}

func NewAppointmentUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	events service.EventRecorder,
	metricsCache MetricsCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		tx:              tx,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		events:          events,
		metricsCache:    metricsCache,
	}
}

func (u *appointmentUsecase) List(ctx context.Context, query *dto.AppointmentListQuery) ([]dto.AppointmentResponse, error) {
	filter, err := toAppointmentFilter(query)
	if err != nil {
		return nil, err
	}

	appointments, err := u.appointmentRepo.FindAll(u.tx.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentDetailsToResponses(appointments), nil
}

func (u *appointmentUsecase) Create(ctx context.Context, actorUserID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := parseDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	// HH:MM strings compare in time order
	if req.EndTime <= req.StartTime {
		return nil, ErrInvalidTimeRange
	}

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		Status:          entity.AppointmentStatusScheduled,
		Reason:          req.Reason,
		Notes:           req.Notes,
		IsEmergency:     req.IsEmergency,
	}

	err = u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(tx, req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		doctor, err := u.doctorRepo.FindByID(tx, req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		if err := u.appointmentRepo.Create(tx, appointment); err != nil {
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		when := fmt.Sprintf("%s %s", req.AppointmentDate, req.StartTime)
		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   entity.EventAppointmentScheduled,
			PatientID:   patient.ID,
			RelatedID:   &appointment.ID,
			ActorUserID: &actorUserID,
			Title:       "Appointment scheduled",
			Description: fmt.Sprintf("Appointment with Dr. %s on %s", doctor.User.Name, when),
			Metadata: entity.JSON{
				"doctor_id":    doctor.ID.String(),
				"date":         req.AppointmentDate,
				"start_time":   req.StartTime,
				"is_emergency": req.IsEmergency,
			},
		})
		if err != nil {
			return err
		}

		// Patients without a portal account have nobody to notify
		if patient.UserID == nil {
			return nil
		}
		_, err = u.events.Notify(ctx, tx, service.NotificationInput{
			UserID:    *patient.UserID,
			Type:      "appointment",
			Title:     "Appointment scheduled",
			Message:   fmt.Sprintf("Your appointment with Dr. %s is on %s", doctor.User.Name, when),
			RelatedID: &appointment.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.metricsCache.Invalidate(ctx)

	u.log.Infof("Appointment created: %s", appointment.ID)
	return converter.AppointmentToResponse(appointment), nil
}

// UpdateStatus moves a scheduled appointment to a final status. A completed
// or cancelled visit is recorded on the patient's timeline.
func (u *appointmentUsecase) UpdateStatus(ctx context.Context, actorUserID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	status, ok := entity.ParseAppointmentStatus(req.Status)
	if !ok || status == entity.AppointmentStatusScheduled {
		return nil, ErrInvalidStatus
	}

	var appointment *entity.Appointment

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		var err error
		appointment, err = u.appointmentRepo.FindByID(tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment: %+v", err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		if appointment.IsFinal() {
			return ErrAppointmentNotScheduled
		}

		affected, err := u.appointmentRepo.UpdateStatus(tx, id, status)
		if err != nil {
			u.log.Warnf("Failed to update appointment status: %+v", err)
			return err
		}
		// Lost a race with another status change
		if affected == 0 {
			return ErrAppointmentNotScheduled
		}
		appointment.Status = status

		var eventType entity.EventType
		var title string
		switch status {
		case entity.AppointmentStatusCompleted:
			eventType, title = entity.EventAppointmentCompleted, "Appointment completed"
		case entity.AppointmentStatusCancelled:
			eventType, title = entity.EventAppointmentCancelled, "Appointment cancelled"
		default:
			return nil
		}

		_, err = u.events.Record(ctx, tx, service.PatientEventInput{
			EventType:   eventType,
			PatientID:   appointment.PatientID,
			RelatedID:   &appointment.ID,
			ActorUserID: &actorUserID,
			Title:       title,
			Description: req.Notes,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.metricsCache.Invalidate(ctx)

	u.log.Infof("Appointment %s status changed to %s", id, status)
	return converter.AppointmentToResponse(appointment), nil
}

func toAppointmentFilter(query *dto.AppointmentListQuery) (*entity.AppointmentFilter, error) {
	filter := &entity.AppointmentFilter{}
	if query == nil {
		return filter, nil
	}

	if query.PatientID != "" {
		id, err := uuid.Parse(query.PatientID)
		if err != nil {
			return nil, ErrInvalidFilter
		}
		filter.PatientID = &id
	}
	if query.DoctorID != "" {
		id, err := uuid.Parse(query.DoctorID)
		if err != nil {
			return nil, ErrInvalidFilter
		}
		filter.DoctorID = &id
	}
	if query.Date != "" {
		day, err := parseDate(query.Date)
		if err != nil {
			return nil, err
		}
		filter.Date = &day
	}
	if query.Status != "" {
		status, ok := entity.ParseAppointmentStatus(query.Status)
		if !ok {
			return nil, ErrInvalidStatus
		}
		filter.Status = status
	}

	return filter, nil
}
