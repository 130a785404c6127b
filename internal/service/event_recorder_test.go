package service

import (
	"context"
	"io"
	"testing"

	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubEventRepo struct {
	events []entity.PatientEvent
}

func (r *stubEventRepo) Create(_ *gorm.DB, event *entity.PatientEvent) error {
	event.ID = uuid.New()
	r.events = append(r.events, *event)
	return nil
}

func (r *stubEventRepo) FindByPatientID(_ *gorm.DB, patientID uuid.UUID) ([]entity.PatientEventDetail, error) {
	var out []entity.PatientEventDetail
	for _, e := range r.events {
		if e.PatientID == patientID {
			out = append(out, entity.PatientEventDetail{PatientEvent: e})
		}
	}
	return out, nil
}

type stubNotificationRepo struct {
	notifications []entity.Notification
}

func (r *stubNotificationRepo) Create(_ *gorm.DB, n *entity.Notification) error {
	n.ID = uuid.New()
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *stubNotificationRepo) FindByUserID(_ *gorm.DB, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	return nil, nil
}

func (r *stubNotificationRepo) MarkRead(_ *gorm.DB, id, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *stubNotificationRepo) MarkAllRead(_ *gorm.DB, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestEventRecorder_RecordIsNotIdempotent(t *testing.T) {
	events := &stubEventRepo{}
	recorder := NewEventRecorder(quietLogger(), events, &stubNotificationRepo{})

	patientID := uuid.New()
	billID := uuid.New()
	input := PatientEventInput{
		EventType: entity.EventPaymentReceived,
		PatientID: patientID,
		RelatedID: &billID,
		Title:     "Payment received",
	}

	first, err := recorder.Record(context.Background(), nil, input)
	require.NoError(t, err)
	second, err := recorder.Record(context.Background(), nil, input)
	require.NoError(t, err)

	assert.Len(t, events.events, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.EventDate.IsZero())
}

func TestEventRecorder_Notify(t *testing.T) {
	notifications := &stubNotificationRepo{}
	recorder := NewEventRecorder(quietLogger(), &stubEventRepo{}, notifications)

	userID := uuid.New()
	n, err := recorder.Notify(context.Background(), nil, NotificationInput{
		UserID: userID, Type: "appointment", Title: "Appointment scheduled", Message: "See you soon",
	})
	require.NoError(t, err)

	assert.Equal(t, userID, n.UserID)
	assert.False(t, n.IsRead)
	assert.Len(t, notifications.notifications, 1)
}

func TestMetricsCache_NilClientIsMiss(t *testing.T) {
	cache := NewMetricsCache(nil, quietLogger(), 0)

	var dest map[string]int
	assert.False(t, cache.Load(context.Background(), &dest))
	cache.Store(context.Background(), map[string]int{"a": 1})
	cache.Invalidate(context.Background())

	var nilCache *MetricsCache
	assert.False(t, nilCache.Load(context.Background(), &dest))
}
