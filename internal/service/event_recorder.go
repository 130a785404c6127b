package service

import (
	"context"
	"time"

	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PatientEventInput describes one timeline entry to append.
type PatientEventInput struct {
	EventType   entity.EventType
	PatientID   uuid.UUID
	RelatedID   *uuid.UUID
	ActorUserID *uuid.UUID
	Title       string
	Description string
	Metadata    entity.JSON
}

// NotificationInput describes one in-app notification to append.
type NotificationInput struct {
	UserID    uuid.UUID
	Type      string
	Title     string
	Message   string
	RelatedID *uuid.UUID
}

// EventRecorder appends timeline events and notifications. Every call writes
// a new row; there is no deduplication. Callers pass their transaction so the
// entry commits or rolls back with the business write.
type EventRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, input PatientEventInput) (*entity.PatientEvent, error)
	Notify(ctx context.Context, tx *gorm.DB, input NotificationInput) (*entity.Notification, error)
}

type eventRecorder struct {
	log              *logrus.Logger
	eventRepo        repository.PatientEventRepository
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

func NewEventRecorder(log *logrus.Logger, eventRepo repository.PatientEventRepository, notificationRepo repository.NotificationRepository) EventRecorder {
	return &eventRecorder{
		log:              log,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// Record appends a patient event
func (s *eventRecorder) Record(ctx context.Context, tx *gorm.DB, input PatientEventInput) (*entity.PatientEvent, error) {
	event := &entity.PatientEvent{
		PatientID:   input.PatientID,
		EventType:   input.EventType,
		EventDate:   s.now(),
		Title:       input.Title,
		Description: input.Description,
		RelatedID:   input.RelatedID,
		ActorUserID: input.ActorUserID,
		Metadata:    input.Metadata,
	}

	if err := s.eventRepo.Create(tx, event); err != nil {
		s.log.Warnf("Failed to create patient event %s: %+v", input.EventType, err)
		return nil, err
	}

	return event, nil
}

// Notify appends an unread notification for a user
func (s *eventRecorder) Notify(ctx context.Context, tx *gorm.DB, input NotificationInput) (*entity.Notification, error) {
	notification := &entity.Notification{
		UserID:    input.UserID,
		Type:      input.Type,
		Title:     input.Title,
		Message:   input.Message,
		RelatedID: input.RelatedID,
	}

	if err := s.notificationRepo.Create(tx, notification); err != nil {
		s.log.Warnf("Failed to create notification: %+v", err)
		return nil, err
	}

	return notification, nil
}
