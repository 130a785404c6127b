package usecase

import (
	"context"
	"testing"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubPrescriptionRepo only answers lookups; refills never write prescriptions.
type stubPrescriptionRepo struct {
	repository.PrescriptionRepository
	prescriptions map[uuid.UUID]*entity.PrescriptionDetail
}

func (r *stubPrescriptionRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PrescriptionDetail, error) {
	return r.prescriptions[id], nil
}

type stubRefillRepo struct {
	requests map[uuid.UUID]*entity.RefillRequest
}

func (r *stubRefillRepo) Create(db *gorm.DB, request *entity.RefillRequest) error {
	request.ID = uuid.New()
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

func (r *stubRefillRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.RefillRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *req
	return &copied, nil
}

func (r *stubRefillRepo) FindAll(db *gorm.DB, patientID, doctorID *uuid.UUID) ([]entity.RefillRequestDetail, error) {
	var out []entity.RefillRequestDetail
	for _, req := range r.requests {
		if patientID != nil && req.PatientID != *patientID {
			continue
		}
		if doctorID != nil && req.DoctorID != *doctorID {
			continue
		}
		out = append(out, entity.RefillRequestDetail{RefillRequest: *req})
	}
	return out, nil
}

func (r *stubRefillRepo) FindOpen(db *gorm.DB, prescriptionID uuid.UUID) (*entity.RefillRequest, error) {
	for _, req := range r.requests {
		if req.PrescriptionID == prescriptionID && req.IsOpen() {
			copied := *req
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *stubRefillRepo) Update(db *gorm.DB, request *entity.RefillRequest) error {
	copied := *request
	r.requests[request.ID] = &copied
	return nil
}

type refillFixture struct {
	usecase      RefillUsecase
	requests     *stubRefillRepo
	recorder     *stubRecorder
	patient      *entity.Patient
	other        *entity.Patient
	doctor       *entity.Doctor
	colleague    *entity.Doctor
	prescription *entity.PrescriptionDetail
	foreign      *entity.PrescriptionDetail
	approvedAt   time.Time
}

func newRefillFixture() *refillFixture {
	patientUser, otherUser := uuid.New(), uuid.New()
	f := &refillFixture{
		requests:   &stubRefillRepo{requests: map[uuid.UUID]*entity.RefillRequest{}},
		recorder:   &stubRecorder{},
		patient:    &entity.Patient{ID: uuid.New(), UserID: &patientUser, FirstName: "Dewi", LastName: "Lestari"},
		other:      &entity.Patient{ID: uuid.New(), UserID: &otherUser, FirstName: "Agus", LastName: "Salim"},
		doctor:     &entity.Doctor{ID: uuid.New(), UserID: uuid.New(), User: entity.User{Name: "Rahma"}},
		colleague:  &entity.Doctor{ID: uuid.New(), UserID: uuid.New(), User: entity.User{Name: "Yusuf"}},
		approvedAt: time.Date(2026, 6, 10, 8, 30, 0, 0, time.UTC),
	}
	f.prescription = &entity.PrescriptionDetail{Prescription: entity.Prescription{ID: uuid.New(), PatientID: f.patient.ID, DoctorID: f.doctor.ID, Diagnosis: "Hypertension"}}
	f.foreign = &entity.PrescriptionDetail{Prescription: entity.Prescription{ID: uuid.New(), PatientID: f.other.ID, DoctorID: f.doctor.ID}}

	prescriptions := &stubPrescriptionRepo{prescriptions: map[uuid.UUID]*entity.PrescriptionDetail{
		f.prescription.ID: f.prescription,
		f.foreign.ID:      f.foreign,
	}}
	uc := NewRefillUsecase(&stubTransactor{}, testLogger(), f.requests, prescriptions,
		newStubPatientRepo(f.patient, f.other), newStubDoctorRepo(f.doctor, f.colleague), f.recorder).(*refillUsecase)
	uc.now = func() time.Time { return f.approvedAt }
	f.usecase = uc
	return f
}

func (f *refillFixture) request(t *testing.T) *dto.RefillRequestResponse {
	t.Helper()
	resp, err := f.usecase.Create(context.Background(), *f.patient.UserID, &dto.CreateRefillRequest{PrescriptionID: f.prescription.ID, Notes: "running low"})
	require.NoError(t, err)
	return resp
}

func TestCreateRefill_GoesToPrescribingDoctor(t *testing.T) {
	f := newRefillFixture()

	resp := f.request(t)
	assert.Equal(t, "requested", resp.Status)
	assert.Equal(t, f.doctor.ID, resp.DoctorID)
	assert.Equal(t, f.patient.ID, resp.PatientID)

	require.Len(t, f.recorder.notifications, 1)
	assert.Equal(t, f.doctor.UserID, f.recorder.notifications[0].UserID)
	assert.Equal(t, "refill", f.recorder.notifications[0].Type)

	list, err := f.usecase.ListForDoctor(context.Background(), f.doctor.UserID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestCreateRefill_Errors(t *testing.T) {
	f := newRefillFixture()
	ctx := context.Background()

	_, err := f.usecase.Create(ctx, *f.patient.UserID, &dto.CreateRefillRequest{PrescriptionID: f.foreign.ID})
	assert.ErrorIs(t, err, ErrPrescriptionNotFound, "another patient's prescription looks missing")

	_, err = f.usecase.Create(ctx, uuid.New(), &dto.CreateRefillRequest{PrescriptionID: f.prescription.ID})
	assert.ErrorIs(t, err, ErrPatientProfileNotFound)

	f.request(t)
	_, err = f.usecase.Create(ctx, *f.patient.UserID, &dto.CreateRefillRequest{PrescriptionID: f.prescription.ID})
	assert.ErrorIs(t, err, ErrRefillPending)
	assert.Len(t, f.requests.requests, 1)
}

func TestUpdateRefillStatus_ApproveStampsDateAndNotifiesPatient(t *testing.T) {
	f := newRefillFixture()
	ctx := context.Background()
	req := f.request(t)

	_, err := f.usecase.UpdateStatus(ctx, f.colleague.UserID, req.ID, &dto.UpdateRefillStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrNotRefillDoctor)

	_, err = f.usecase.UpdateStatus(ctx, f.doctor.UserID, req.ID, &dto.UpdateRefillStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.usecase.UpdateStatus(ctx, f.doctor.UserID, req.ID, &dto.UpdateRefillStatusRequest{Status: "approved", NewPrescriptionID: &f.foreign.ID})
	assert.ErrorIs(t, err, ErrNewPrescriptionMismatch)

	resp, err := f.usecase.UpdateStatus(ctx, f.doctor.UserID, req.ID, &dto.UpdateRefillStatusRequest{Status: "approved", NewPrescriptionID: &f.prescription.ID})
	require.NoError(t, err)
	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ApprovedDate)
	assert.True(t, f.approvedAt.Equal(*resp.ApprovedDate))
	assert.Equal(t, f.prescription.ID, *resp.NewPrescriptionID)

	last := f.recorder.notifications[len(f.recorder.notifications)-1]
	assert.Equal(t, *f.patient.UserID, last.UserID)
	assert.Equal(t, "Refill request approved", last.Title)

	// Still open until fulfilled, so a second request is refused
	_, err = f.usecase.Create(ctx, *f.patient.UserID, &dto.CreateRefillRequest{PrescriptionID: f.prescription.ID})
	assert.ErrorIs(t, err, ErrRefillPending)
}

func TestUpdateRefillStatus_DeniedRequestIsClosed(t *testing.T) {
	f := newRefillFixture()
	ctx := context.Background()
	req := f.request(t)

	resp, err := f.usecase.UpdateStatus(ctx, f.doctor.UserID, req.ID, &dto.UpdateRefillStatusRequest{Status: "denied"})
	require.NoError(t, err)
	assert.Nil(t, resp.ApprovedDate)

	_, err = f.usecase.UpdateStatus(ctx, f.doctor.UserID, req.ID, &dto.UpdateRefillStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrRefillClosed)

	_, err = f.usecase.UpdateStatus(ctx, f.doctor.UserID, uuid.New(), &dto.UpdateRefillStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrRefillNotFound)

	again := f.request(t)
	assert.NotEqual(t, req.ID, again.ID)
}
