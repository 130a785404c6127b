package usecase

import (
	"context"
	"testing"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubAlertRepo struct {
	alerts map[uuid.UUID]*entity.PatientAlert
}

func (r *stubAlertRepo) Create(db *gorm.DB, alert *entity.PatientAlert) error {
	alert.ID = uuid.New()
	r.alerts[alert.ID] = alert
	return nil
}

func (r *stubAlertRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientAlert, error) {
	a, ok := r.alerts[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *stubAlertRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID, activeOnly bool) ([]entity.PatientAlert, error) {
	var out []entity.PatientAlert
	for _, a := range r.alerts {
		if a.PatientID != patientID || (activeOnly && !a.IsActive) {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (r *stubAlertRepo) Update(db *gorm.DB, alert *entity.PatientAlert) error {
	r.alerts[alert.ID] = alert
	return nil
}

type stubVitalRepo struct {
	vitals []entity.HealthVital
}

func (r *stubVitalRepo) Create(db *gorm.DB, vital *entity.HealthVital) error {
	vital.ID = uuid.New()
	r.vitals = append(r.vitals, *vital)
	return nil
}

func (r *stubVitalRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.HealthVital, error) {
	var out []entity.HealthVital
	for _, v := range r.vitals {
		if v.PatientID == patientID {
			out = append(out, v)
		}
	}
	return out, nil
}

type stubVaccinationRepo struct {
	vaccinations []entity.Vaccination
}

func (r *stubVaccinationRepo) Create(db *gorm.DB, vaccination *entity.Vaccination) error {
	vaccination.ID = uuid.New()
	r.vaccinations = append(r.vaccinations, *vaccination)
	return nil
}

func (r *stubVaccinationRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.VaccinationDetail, error) {
	var out []entity.VaccinationDetail
	for _, v := range r.vaccinations {
		if v.PatientID == patientID {
			out = append(out, entity.VaccinationDetail{Vaccination: v})
		}
	}
	return out, nil
}

type clinicalFixture struct {
	usecase      ClinicalUsecase
	alerts       *stubAlertRepo
	vitals       *stubVitalRepo
	vaccinations *stubVaccinationRepo
	recorder     *stubRecorder
	patient      *entity.Patient
	doctor       *entity.Doctor
	portalUserID uuid.UUID
}

func newClinicalFixture() *clinicalFixture {
	portalUserID := uuid.New()
	f := &clinicalFixture{
		alerts:       &stubAlertRepo{alerts: map[uuid.UUID]*entity.PatientAlert{}},
		vitals:       &stubVitalRepo{},
		vaccinations: &stubVaccinationRepo{},
		recorder:     &stubRecorder{},
		patient:      &entity.Patient{ID: uuid.New(), UserID: &portalUserID, FirstName: "Rina", LastName: "Putri"},
		doctor:       &entity.Doctor{ID: uuid.New(), UserID: uuid.New(), User: entity.User{Name: "Hadi"}},
		portalUserID: portalUserID,
	}
	f.usecase = NewClinicalUsecase(&stubTransactor{}, testLogger(),
		newStubPatientRepo(f.patient), newStubDoctorRepo(f.doctor),
		f.alerts, f.vitals, f.vaccinations, f.recorder)
	return f
}

func TestCreateAlert_DefaultsSeverityAndRecordsEvent(t *testing.T) {
	f := newClinicalFixture()

	resp, err := f.usecase.CreateAlert(context.Background(), uuid.New(), &dto.CreatePatientAlertRequest{
		PatientID: f.patient.ID,
		AlertType: "Allergy",
		Message:   "Penicillin",
	})
	require.NoError(t, err)
	assert.Equal(t, "medium", resp.Severity)
	assert.True(t, resp.IsActive)

	assert.Equal(t, []entity.EventType{entity.EventAlertCreated}, f.recorder.eventTypes())
	assert.Equal(t, "Allergy Alert", f.recorder.events[0].Title)
	assert.Equal(t, "medium", f.recorder.events[0].Metadata["severity"])
}

func TestCreateAlert_UnknownPatient(t *testing.T) {
	f := newClinicalFixture()

	_, err := f.usecase.CreateAlert(context.Background(), uuid.New(), &dto.CreatePatientAlertRequest{
		PatientID: uuid.New(),
		AlertType: "Fall risk",
		Message:   "Needs assistance",
	})
	assert.ErrorIs(t, err, ErrPatientNotFound)
	assert.Empty(t, f.alerts.alerts)
	assert.Empty(t, f.recorder.events)
}

func TestMyAlerts_HidesResolvedAlerts(t *testing.T) {
	f := newClinicalFixture()
	ctx := context.Background()

	active, err := f.usecase.CreateAlert(ctx, uuid.New(), &dto.CreatePatientAlertRequest{PatientID: f.patient.ID, AlertType: "Allergy", Severity: "high", Message: "Latex"})
	require.NoError(t, err)
	resolved, err := f.usecase.CreateAlert(ctx, uuid.New(), &dto.CreatePatientAlertRequest{PatientID: f.patient.ID, AlertType: "Isolation", Message: "Flu"})
	require.NoError(t, err)

	inactive := false
	_, err = f.usecase.UpdateAlert(ctx, resolved.ID, &dto.UpdatePatientAlertRequest{IsActive: &inactive})
	require.NoError(t, err)

	mine, err := f.usecase.MyAlerts(ctx, f.portalUserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, active.ID, mine[0].ID)

	all, err := f.usecase.ListAlerts(ctx, f.patient.ID)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdateAlert_Errors(t *testing.T) {
	f := newClinicalFixture()
	ctx := context.Background()

	_, err := f.usecase.UpdateAlert(ctx, uuid.New(), &dto.UpdatePatientAlertRequest{})
	assert.ErrorIs(t, err, ErrAlertNotFound)

	alert, err := f.usecase.CreateAlert(ctx, uuid.New(), &dto.CreatePatientAlertRequest{PatientID: f.patient.ID, AlertType: "Allergy", Message: "Nuts"})
	require.NoError(t, err)

	bad := "extreme"
	_, err = f.usecase.UpdateAlert(ctx, alert.ID, &dto.UpdatePatientAlertRequest{Severity: &bad})
	assert.ErrorIs(t, err, ErrInvalidSeverity)
}

func TestRecordVitals_Validation(t *testing.T) {
	f := newClinicalFixture()
	ctx := context.Background()

	_, err := f.usecase.RecordVitals(ctx, uuid.New(), &dto.RecordVitalsRequest{PatientID: f.patient.ID, Notes: "nothing measured"})
	assert.ErrorIs(t, err, ErrEmptyVitals)

	_, err = f.usecase.RecordVitals(ctx, uuid.New(), &dto.RecordVitalsRequest{
		PatientID: f.patient.ID,
		Weight:    decimal.NewNullDecimal(decimal.RequireFromString("-70")),
	})
	assert.ErrorIs(t, err, ErrNegativeReading)
	assert.Empty(t, f.vitals.vitals)

	heartRate := 72
	resp, err := f.usecase.RecordVitals(ctx, f.doctor.UserID, &dto.RecordVitalsRequest{PatientID: f.patient.ID, HeartRate: &heartRate})
	require.NoError(t, err)
	assert.Equal(t, 72, *resp.HeartRate)
	require.Len(t, f.vitals.vitals, 1)
	assert.Equal(t, f.doctor.UserID, *f.vitals.vitals[0].RecordedBy)
}

func TestRecordMyVitals_UsesSessionPatient(t *testing.T) {
	f := newClinicalFixture()
	ctx := context.Background()
	oxygen := 98

	resp, err := f.usecase.RecordMyVitals(ctx, f.portalUserID, &dto.RecordVitalsRequest{PatientID: uuid.New(), OxygenSaturation: &oxygen})
	require.NoError(t, err)
	assert.Equal(t, f.patient.ID, resp.PatientID)

	mine, err := f.usecase.MyVitals(ctx, f.portalUserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.usecase.MyVitals(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrPatientProfileNotFound)
}

func TestRecordVaccination_RecordsEventAndNotifiesPatient(t *testing.T) {
	f := newClinicalFixture()

	resp, err := f.usecase.RecordVaccination(context.Background(), f.doctor.UserID, &dto.RecordVaccinationRequest{
		PatientID:        f.patient.ID,
		VaccineName:      "Hepatitis B",
		AdministeredDate: "2026-03-02",
		AdministeredBy:   &f.doctor.ID,
		BatchNumber:      "HB-221",
		NextDoseDate:     "2026-04-02",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.AdministeredDate)
	assert.Equal(t, "2026-04-02", resp.NextDoseDate)

	assert.Equal(t, []entity.EventType{entity.EventVaccinationGiven}, f.recorder.eventTypes())
	event := f.recorder.events[0]
	assert.Equal(t, "Administered Hepatitis B vaccine", event.Description)
	assert.Equal(t, "HB-221", event.Metadata["batch_number"])

	require.Len(t, f.recorder.notifications, 1)
	note := f.recorder.notifications[0]
	assert.Equal(t, f.portalUserID, note.UserID)
	assert.Equal(t, "vaccination", note.Type)
	assert.Contains(t, note.Message, "Next dose due on 2026-04-02")
}

func TestRecordVaccination_Errors(t *testing.T) {
	f := newClinicalFixture()
	ctx := context.Background()
	stranger := uuid.New()

	tests := []struct {
		name string
		req  dto.RecordVaccinationRequest
		want error
	}{
		{
			name: "next dose on the same day",
			req:  dto.RecordVaccinationRequest{PatientID: f.patient.ID, VaccineName: "MMR", AdministeredDate: "2026-03-02", NextDoseDate: "2026-03-02"},
			want: ErrInvalidNextDose,
		},
		{
			name: "unknown administering doctor",
			req:  dto.RecordVaccinationRequest{PatientID: f.patient.ID, VaccineName: "MMR", AdministeredDate: "2026-03-02", AdministeredBy: &stranger},
			want: ErrDoctorNotFound,
		},
		{
			name: "unknown patient",
			req:  dto.RecordVaccinationRequest{PatientID: uuid.New(), VaccineName: "MMR", AdministeredDate: "2026-03-02"},
			want: ErrPatientNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.usecase.RecordVaccination(ctx, uuid.New(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
	assert.Empty(t, f.recorder.events)
}

func TestRecordVaccination_WalkInPatientIsNotNotified(t *testing.T) {
	f := newClinicalFixture()
	f.patient.UserID = nil

	_, err := f.usecase.RecordVaccination(context.Background(), uuid.New(), &dto.RecordVaccinationRequest{
		PatientID:        f.patient.ID,
		VaccineName:      "Tetanus",
		AdministeredDate: time.Now().Format("2006-01-02"),
	})
	require.NoError(t, err)
	assert.Len(t, f.recorder.events, 1)
	assert.Empty(t, f.recorder.notifications)
}
