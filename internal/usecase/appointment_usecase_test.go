package usecase

import (
	"context"
	"testing"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubDoctorRepo struct {
	doctors map[uuid.UUID]*entity.Doctor
}

func newStubDoctorRepo(doctors ...*entity.Doctor) *stubDoctorRepo {
	r := &stubDoctorRepo{doctors: map[uuid.UUID]*entity.Doctor{}}
	for _, d := range doctors {
		r.doctors[d.ID] = d
	}
	return r
}

func (r *stubDoctorRepo) Create(db *gorm.DB, doctor *entity.Doctor) error {
	doctor.ID = uuid.New()
	r.doctors[doctor.ID] = doctor
	return nil
}

func (r *stubDoctorRepo) FindAll(db *gorm.DB) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range r.doctors {
		out = append(out, *d)
	}
	return out, nil
}

func (r *stubDoctorRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	return r.doctors[id], nil
}

func (r *stubDoctorRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	for _, d := range r.doctors {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

type appointmentFixture struct {
	usecase      AppointmentUsecase
	appointments *stubAppointmentRepo
	recorder     *stubRecorder
	cache        *stubCache
	patient      *entity.Patient
	doctor       *entity.Doctor
}

func newAppointmentFixture() *appointmentFixture {
	portalUser := uuid.New()
	f := &appointmentFixture{
		appointments: newStubAppointmentRepo(),
		recorder:     &stubRecorder{},
		cache:        &stubCache{},
		patient:      &entity.Patient{ID: uuid.New(), UserID: &portalUser, FirstName: "Jane", LastName: "Doe"},
		doctor:       &entity.Doctor{ID: uuid.New(), UserID: uuid.New(), User: entity.User{Name: "Gregory House"}},
	}
	f.usecase = NewAppointmentUsecase(
		&stubTransactor{},
		testLogger(),
		f.appointments,
		newStubPatientRepo(f.patient),
		newStubDoctorRepo(f.doctor),
		f.recorder,
		f.cache,
	)
	return f
}

func (f *appointmentFixture) request() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		PatientID:       f.patient.ID,
		DoctorID:        f.doctor.ID,
		AppointmentDate: "2026-11-02",
		StartTime:       "09:00",
		EndTime:         "09:30",
		Reason:          "Checkup",
	}
}

func TestCreateAppointment_RecordsEventAndNotifies(t *testing.T) {
	f := newAppointmentFixture()

	resp, err := f.usecase.Create(context.Background(), uuid.New(), f.request())
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusScheduled), resp.Status)
	assert.Equal(t, "2026-11-02", resp.AppointmentDate)

	assert.Equal(t, []entity.EventType{entity.EventAppointmentScheduled}, f.recorder.eventTypes())
	require.Len(t, f.recorder.notifications, 1)
	assert.Equal(t, *f.patient.UserID, f.recorder.notifications[0].UserID)
	assert.Contains(t, f.recorder.notifications[0].Message, "Gregory House")
	assert.Equal(t, 1, f.cache.invalidated)
}

func TestCreateAppointment_PatientWithoutAccount(t *testing.T) {
	f := newAppointmentFixture()
	f.patient.UserID = nil

	_, err := f.usecase.Create(context.Background(), uuid.New(), f.request())
	require.NoError(t, err)
	assert.Len(t, f.recorder.events, 1)
	assert.Empty(t, f.recorder.notifications)
}

func TestCreateAppointment_Validation(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	req := f.request()
	req.EndTime = "08:00"
	_, err := f.usecase.Create(ctx, uuid.New(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	req = f.request()
	req.PatientID = uuid.New()
	_, err = f.usecase.Create(ctx, uuid.New(), req)
	assert.ErrorIs(t, err, ErrPatientNotFound)

	req = f.request()
	req.DoctorID = uuid.New()
	_, err = f.usecase.Create(ctx, uuid.New(), req)
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	assert.Empty(t, f.appointments.appointments)
	assert.Empty(t, f.recorder.events)
}

func TestUpdateAppointmentStatus(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	created, err := f.usecase.Create(ctx, uuid.New(), f.request())
	require.NoError(t, err)

	_, err = f.usecase.UpdateStatus(ctx, uuid.New(), created.ID, &dto.UpdateAppointmentStatusRequest{Status: "scheduled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	resp, err := f.usecase.UpdateStatus(ctx, uuid.New(), created.ID, &dto.UpdateAppointmentStatusRequest{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", resp.Status)

	_, err = f.usecase.UpdateStatus(ctx, uuid.New(), created.ID, &dto.UpdateAppointmentStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrAppointmentNotScheduled)

	_, err = f.usecase.UpdateStatus(ctx, uuid.New(), uuid.New(), &dto.UpdateAppointmentStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	assert.Equal(t, []entity.EventType{entity.EventAppointmentScheduled, entity.EventAppointmentCompleted}, f.recorder.eventTypes())
}

func TestUpdateAppointmentStatus_NoShowHasNoTimelineEntry(t *testing.T) {
	f := newAppointmentFixture()
	ctx := context.Background()

	created, err := f.usecase.Create(ctx, uuid.New(), f.request())
	require.NoError(t, err)

	_, err = f.usecase.UpdateStatus(ctx, uuid.New(), created.ID, &dto.UpdateAppointmentStatusRequest{Status: "no_show"})
	require.NoError(t, err)
	assert.Len(t, f.recorder.events, 1)
}

func TestListAppointments_InvalidFilter(t *testing.T) {
	f := newAppointmentFixture()

	_, err := f.usecase.List(context.Background(), &dto.AppointmentListQuery{PatientID: "nope"})
	assert.ErrorIs(t, err, ErrInvalidFilter)

	_, err = f.usecase.List(context.Background(), &dto.AppointmentListQuery{Date: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}
