package usecase

import (
	"context"
	"testing"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Feedback

type stubFeedbackRepo struct {
	feedback []entity.DoctorFeedback
}

func (r *stubFeedbackRepo) Create(db *gorm.DB, feedback *entity.DoctorFeedback) error {
	if feedback.AppointmentID != nil {
		for _, f := range r.feedback {
			if f.AppointmentID != nil && *f.AppointmentID == *feedback.AppointmentID {
				return &pgconn.PgError{Code: "23505", ConstraintName: "uq_doctor_feedback_appointment"}
			}
		}
	}
	feedback.ID = uuid.New()
	r.feedback = append(r.feedback, *feedback)
	return nil
}

func (r *stubFeedbackRepo) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.DoctorFeedbackDetail, error) {
	var out []entity.DoctorFeedbackDetail
	for _, f := range r.feedback {
		if f.DoctorID == doctorID {
			out = append(out, entity.DoctorFeedbackDetail{DoctorFeedback: f})
		}
	}
	return out, nil
}

type feedbackFixture struct {
	usecase   FeedbackUsecase
	patient   *entity.Patient
	doctor    *entity.Doctor
	completed *entity.Appointment
	scheduled *entity.Appointment
	foreign   *entity.Appointment
}

func newFeedbackFixture() *feedbackFixture {
	userID := uuid.New()
	f := &feedbackFixture{
		patient: &entity.Patient{ID: uuid.New(), UserID: &userID},
		doctor:  &entity.Doctor{ID: uuid.New(), UserID: uuid.New()},
	}
	f.completed = &entity.Appointment{ID: uuid.New(), PatientID: f.patient.ID, DoctorID: f.doctor.ID, Status: entity.AppointmentStatusCompleted}
	f.scheduled = &entity.Appointment{ID: uuid.New(), PatientID: f.patient.ID, DoctorID: f.doctor.ID, Status: entity.AppointmentStatusScheduled}
	f.foreign = &entity.Appointment{ID: uuid.New(), PatientID: uuid.New(), DoctorID: f.doctor.ID, Status: entity.AppointmentStatusCompleted}

	f.usecase = NewFeedbackUsecase(&stubTransactor{}, testLogger(), &stubFeedbackRepo{},
		newStubPatientRepo(f.patient), newStubDoctorRepo(f.doctor),
		newStubAppointmentRepo(f.completed, f.scheduled, f.foreign))
	return f
}

func TestCreateFeedback_AppointmentChecks(t *testing.T) {
	f := newFeedbackFixture()
	ctx := context.Background()
	userID := *f.patient.UserID
	missing := uuid.New()

	tests := []struct {
		name        string
		appointment *uuid.UUID
		want        error
	}{
		{name: "unknown appointment", appointment: &missing, want: ErrAppointmentNotFound},
		{name: "someone else's visit", appointment: &f.foreign.ID, want: ErrFeedbackAppointmentOwner},
		{name: "visit not yet completed", appointment: &f.scheduled.ID, want: ErrAppointmentNotCompleted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.Create(ctx, userID, &dto.CreateFeedbackRequest{DoctorID: f.doctor.ID, AppointmentID: tt.appointment, Rating: 4})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := f.usecase.Create(ctx, userID, &dto.CreateFeedbackRequest{DoctorID: f.doctor.ID, AppointmentID: &f.completed.ID, Rating: 5})
	require.NoError(t, err)

	_, err = f.usecase.Create(ctx, userID, &dto.CreateFeedbackRequest{DoctorID: f.doctor.ID, AppointmentID: &f.completed.ID, Rating: 1})
	assert.ErrorIs(t, err, ErrFeedbackExists)

	_, err = f.usecase.Create(ctx, uuid.New(), &dto.CreateFeedbackRequest{DoctorID: f.doctor.ID, Rating: 3})
	assert.ErrorIs(t, err, ErrPatientProfileNotFound)
}

func TestListDoctorFeedback_AveragesRatings(t *testing.T) {
	f := newFeedbackFixture()
	ctx := context.Background()
	userID := *f.patient.UserID

	empty, err := f.usecase.ListForDoctor(ctx, f.doctor.ID)
	require.NoError(t, err)
	assert.Zero(t, empty.AverageRating)
	assert.Empty(t, empty.Feedback)

	for _, rating := range []int{5, 4, 4} {
		_, err := f.usecase.Create(ctx, userID, &dto.CreateFeedbackRequest{DoctorID: f.doctor.ID, Rating: rating})
		require.NoError(t, err)
	}

	resp, err := f.usecase.ListForDoctor(ctx, f.doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Count)
	assert.Equal(t, 4.3, resp.AverageRating)

	_, err = f.usecase.ListForDoctor(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

// Prescription templates

type stubTemplateRepo struct {
	templates      map[uuid.UUID]*entity.PrescriptionTemplate
	badMedications map[uuid.UUID]bool
}

func (r *stubTemplateRepo) Create(db *gorm.DB, template *entity.PrescriptionTemplate) error {
	template.ID = uuid.New()
	r.templates[template.ID] = template
	return nil
}

func (r *stubTemplateRepo) CreateMedication(db *gorm.DB, line *entity.PrescriptionTemplateMedication) error {
	if r.badMedications[line.MedicationID] {
		return &pgconn.PgError{Code: "23503", ConstraintName: "prescription_template_medications_medication_id_fkey"}
	}
	line.ID = uuid.New()
	return nil
}

func (r *stubTemplateRepo) FindVisibleTo(db *gorm.DB, doctorID uuid.UUID) ([]entity.PrescriptionTemplate, error) {
	var out []entity.PrescriptionTemplate
	for _, t := range r.templates {
		if t.DoctorID == doctorID || t.IsPublic {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *stubTemplateRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescriptionTemplate, error) {
	return r.templates[id], nil
}

func (r *stubTemplateRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	if _, ok := r.templates[id]; !ok {
		return 0, nil
	}
	delete(r.templates, id)
	return 1, nil
}

func templateRequest(name string, public bool, medicationID uuid.UUID) *dto.CreatePrescriptionTemplateRequest {
	return &dto.CreatePrescriptionTemplateRequest{
		TemplateName: name,
		IsPublic:     public,
		Medications: []dto.PrescriptionMedicationRequest{
			{MedicationID: medicationID, Dosage: "500mg", Frequency: "3x daily", Duration: "5 days"},
		},
	}
}

func TestPrescriptionTemplates_VisibilityAndOwnership(t *testing.T) {
	owner := &entity.Doctor{ID: uuid.New(), UserID: uuid.New()}
	other := &entity.Doctor{ID: uuid.New(), UserID: uuid.New()}
	badMedication := uuid.New()
	repo := &stubTemplateRepo{
		templates:      map[uuid.UUID]*entity.PrescriptionTemplate{},
		badMedications: map[uuid.UUID]bool{badMedication: true},
	}
	uc := NewPrescriptionTemplateUsecase(&stubTransactor{}, testLogger(), repo, newStubDoctorRepo(owner, other))
	ctx := context.Background()

	private, err := uc.Create(ctx, owner.UserID, templateRequest("Strep throat", false, uuid.New()))
	require.NoError(t, err)
	assert.Len(t, private.Medications, 1)
	assert.Equal(t, owner.ID, private.DoctorID)

	_, err = uc.Create(ctx, owner.UserID, templateRequest("Common cold", true, uuid.New()))
	require.NoError(t, err)

	_, err = uc.Create(ctx, owner.UserID, templateRequest("Bad line", false, badMedication))
	assert.ErrorIs(t, err, ErrMedicationNotFound)

	visible, err := uc.List(ctx, other.UserID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Common cold", visible[0].TemplateName)

	assert.ErrorIs(t, uc.Delete(ctx, other.UserID, private.ID), ErrTemplateNotFound)
	assert.NoError(t, uc.Delete(ctx, owner.UserID, private.ID))
	assert.ErrorIs(t, uc.Delete(ctx, owner.UserID, private.ID), ErrTemplateNotFound)
}

// Recurring appointments

type stubRecurringRepo struct {
	series map[uuid.UUID]*entity.RecurringAppointment
}

func (r *stubRecurringRepo) Create(db *gorm.DB, series *entity.RecurringAppointment) error {
	series.ID = uuid.New()
	copied := *series
	r.series[series.ID] = &copied
	return nil
}

func (r *stubRecurringRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.RecurringAppointment, error) {
	s, ok := r.series[id]
	if !ok {
		return nil, nil
	}
	copied := *s
	return &copied, nil
}

func (r *stubRecurringRepo) FindAll(db *gorm.DB, patientID, doctorID *uuid.UUID) ([]entity.RecurringAppointmentDetail, error) {
	var out []entity.RecurringAppointmentDetail
	for _, s := range r.series {
		if patientID != nil && s.PatientID != *patientID {
			continue
		}
		if doctorID != nil && s.DoctorID != *doctorID {
			continue
		}
		out = append(out, entity.RecurringAppointmentDetail{RecurringAppointment: *s})
	}
	return out, nil
}

func (r *stubRecurringRepo) Update(db *gorm.DB, series *entity.RecurringAppointment) error {
	copied := *series
	r.series[series.ID] = &copied
	return nil
}

func newRecurringFixture() (RecurringAppointmentUsecase, *entity.Patient, *entity.Doctor) {
	patient := &entity.Patient{ID: uuid.New()}
	doctor := &entity.Doctor{ID: uuid.New(), UserID: uuid.New()}
	uc := NewRecurringAppointmentUsecase(&stubTransactor{}, testLogger(),
		&stubRecurringRepo{series: map[uuid.UUID]*entity.RecurringAppointment{}},
		newStubPatientRepo(patient), newStubDoctorRepo(doctor)).(*recurringAppointmentUsecase)
	uc.now = func() time.Time { return time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC) }
	return uc, patient, doctor
}

func TestCreateRecurringAppointment_ListsUpcomingDates(t *testing.T) {
	uc, patient, doctor := newRecurringFixture()

	resp, err := uc.Create(context.Background(), &dto.CreateRecurringAppointmentRequest{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		FrequencyDays: 7,
		StartDate:     "2026-03-02",
		EndDate:       "2026-03-25",
		StartTime:     "09:00",
		EndTime:       "09:30",
	})
	require.NoError(t, err)
	assert.True(t, resp.IsActive)
	assert.Equal(t, []string{"2026-03-16", "2026-03-23"}, resp.UpcomingDates)
}

func TestCreateRecurringAppointment_Validation(t *testing.T) {
	uc, patient, doctor := newRecurringFixture()
	ctx := context.Background()

	base := dto.CreateRecurringAppointmentRequest{
		PatientID:     patient.ID,
		DoctorID:      doctor.ID,
		FrequencyDays: 14,
		StartDate:     "2026-03-02",
		StartTime:     "10:00",
		EndTime:       "10:30",
	}

	tests := []struct {
		name   string
		mutate func(r *dto.CreateRecurringAppointmentRequest)
		want   error
	}{
		{name: "end time before start", mutate: func(r *dto.CreateRecurringAppointmentRequest) { r.EndTime = "09:00" }, want: ErrInvalidTimeRange},
		{name: "end date before start", mutate: func(r *dto.CreateRecurringAppointmentRequest) { r.EndDate = "2026-03-01" }, want: ErrInvalidDateRange},
		{name: "malformed start date", mutate: func(r *dto.CreateRecurringAppointmentRequest) { r.StartDate = "02/03/2026" }, want: ErrInvalidDateFormat},
		{name: "unknown doctor", mutate: func(r *dto.CreateRecurringAppointmentRequest) { r.DoctorID = uuid.New() }, want: ErrDoctorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := uc.Create(ctx, &req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUpdateRecurringAppointment_PauseAndFilter(t *testing.T) {
	uc, patient, doctor := newRecurringFixture()
	ctx := context.Background()

	created, err := uc.Create(ctx, &dto.CreateRecurringAppointmentRequest{
		PatientID: patient.ID, DoctorID: doctor.ID, FrequencyDays: 30,
		StartDate: "2026-01-05", StartTime: "08:00", EndTime: "08:15",
	})
	require.NoError(t, err)
	assert.Len(t, created.UpcomingDates, 3)

	paused := false
	updated, err := uc.Update(ctx, created.ID, &dto.UpdateRecurringAppointmentRequest{IsActive: &paused})
	require.NoError(t, err)
	assert.False(t, updated.IsActive)
	assert.Empty(t, updated.UpcomingDates)

	earlier := "07:00"
	_, err = uc.Update(ctx, created.ID, &dto.UpdateRecurringAppointmentRequest{EndTime: &earlier})
	assert.ErrorIs(t, err, ErrInvalidTimeRange)

	_, err = uc.Update(ctx, uuid.New(), &dto.UpdateRecurringAppointmentRequest{})
	assert.ErrorIs(t, err, ErrRecurringAppointmentNotFound)

	list, err := uc.List(ctx, &dto.RecurringAppointmentListQuery{PatientID: patient.ID.String()})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.List(ctx, &dto.RecurringAppointmentListQuery{DoctorID: "not-a-uuid"})
	assert.ErrorIs(t, err, ErrInvalidFilter)
}
