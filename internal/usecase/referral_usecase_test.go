package usecase

import (
	"context"
	"testing"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubReferralRepo struct {
	referrals map[uuid.UUID]*entity.Referral
}

func (r *stubReferralRepo) Create(db *gorm.DB, referral *entity.Referral) error {
	referral.ID = uuid.New()
	copied := *referral
	r.referrals[referral.ID] = &copied
	return nil
}

func (r *stubReferralRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Referral, error) {
	ref, ok := r.referrals[id]
	if !ok {
		return nil, nil
	}
	copied := *ref
	return &copied, nil
}

func (r *stubReferralRepo) FindAll(db *gorm.DB, fromDoctorID, toDoctorID *uuid.UUID) ([]entity.ReferralDetail, error) {
	var out []entity.ReferralDetail
	for _, ref := range r.referrals {
		if fromDoctorID != nil && ref.FromDoctorID != *fromDoctorID {
			continue
		}
		if toDoctorID != nil && ref.ToDoctorID != *toDoctorID {
			continue
		}
		out = append(out, entity.ReferralDetail{Referral: *ref})
	}
	return out, nil
}

func (r *stubReferralRepo) Update(db *gorm.DB, referral *entity.Referral) error {
	copied := *referral
	r.referrals[referral.ID] = &copied
	return nil
}

type referralFixture struct {
	usecase   ReferralUsecase
	referrals *stubReferralRepo
	recorder  *stubRecorder
	patient   *entity.Patient
	from      *entity.Doctor
	to        *entity.Doctor
	outsider  *entity.Doctor
}

func newReferralFixture() *referralFixture {
	f := &referralFixture{
		referrals: &stubReferralRepo{referrals: map[uuid.UUID]*entity.Referral{}},
		recorder:  &stubRecorder{},
		patient:   &entity.Patient{ID: uuid.New(), FirstName: "Budi", LastName: "Santoso"},
		from:      &entity.Doctor{ID: uuid.New(), UserID: uuid.New(), User: entity.User{Name: "Ayu"}},
		to:        &entity.Doctor{ID: uuid.New(), UserID: uuid.New(), User: entity.User{Name: "Wira"}},
		outsider:  &entity.Doctor{ID: uuid.New(), UserID: uuid.New(), User: entity.User{Name: "Sari"}},
	}
	uc := NewReferralUsecase(&stubTransactor{}, testLogger(), f.referrals,
		newStubPatientRepo(f.patient), newStubDoctorRepo(f.from, f.to, f.outsider), f.recorder).(*referralUsecase)
	uc.now = func() time.Time { return time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC) }
	f.usecase = uc
	return f
}

func (f *referralFixture) create(t *testing.T) *dto.ReferralResponse {
	t.Helper()
	resp, err := f.usecase.Create(context.Background(), f.from.UserID, &dto.CreateReferralRequest{
		PatientID:  f.patient.ID,
		ToDoctorID: f.to.ID,
		Reason:     "cardiology review",
	})
	require.NoError(t, err)
	return resp
}

func TestCreateReferral_RecordsEventAndNotifiesReceiver(t *testing.T) {
	f := newReferralFixture()

	resp := f.create(t)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, f.from.ID, resp.FromDoctorID)

	assert.Equal(t, []entity.EventType{entity.EventReferralCreated}, f.recorder.eventTypes())
	assert.Equal(t, "Referred to Dr. Wira for cardiology review", f.recorder.events[0].Description)

	require.Len(t, f.recorder.notifications, 1)
	assert.Equal(t, f.to.UserID, f.recorder.notifications[0].UserID)
	assert.Equal(t, "referral", f.recorder.notifications[0].Type)

	sent, err := f.usecase.Sent(context.Background(), f.from.UserID)
	require.NoError(t, err)
	assert.Len(t, sent, 1)
	received, err := f.usecase.Received(context.Background(), f.from.UserID)
	require.NoError(t, err)
	assert.Empty(t, received)
}

func TestCreateReferral_Errors(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()

	_, err := f.usecase.Create(ctx, f.from.UserID, &dto.CreateReferralRequest{PatientID: f.patient.ID, ToDoctorID: f.from.ID, Reason: "x"})
	assert.ErrorIs(t, err, ErrSelfReferral)

	_, err = f.usecase.Create(ctx, f.from.UserID, &dto.CreateReferralRequest{PatientID: f.patient.ID, ToDoctorID: uuid.New(), Reason: "x"})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = f.usecase.Create(ctx, uuid.New(), &dto.CreateReferralRequest{PatientID: f.patient.ID, ToDoctorID: f.to.ID, Reason: "x"})
	assert.ErrorIs(t, err, ErrDoctorProfileNotFound)

	assert.Empty(t, f.referrals.referrals)
	assert.Empty(t, f.recorder.events)
}

func TestUpdateReferralStatus_Lifecycle(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()
	ref := f.create(t)

	_, err := f.usecase.UpdateStatus(ctx, f.outsider.UserID, ref.ID, &dto.UpdateReferralStatusRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrNotReferralParty)

	_, err = f.usecase.UpdateStatus(ctx, f.from.UserID, ref.ID, &dto.UpdateReferralStatusRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrReferralReceiverOnly)

	_, err = f.usecase.UpdateStatus(ctx, f.to.UserID, ref.ID, &dto.UpdateReferralStatusRequest{Status: "completed"})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	resp, err := f.usecase.UpdateStatus(ctx, f.to.UserID, ref.ID, &dto.UpdateReferralStatusRequest{Status: "accepted"})
	require.NoError(t, err)
	assert.Equal(t, "accepted", resp.Status)
	assert.Nil(t, resp.CompletedDate)

	resp, err = f.usecase.UpdateStatus(ctx, f.to.UserID, ref.ID, &dto.UpdateReferralStatusRequest{Status: "completed"})
	require.NoError(t, err)
	require.NotNil(t, resp.CompletedDate)
	assert.Equal(t, 2026, resp.CompletedDate.Year())

	_, err = f.usecase.UpdateStatus(ctx, f.to.UserID, ref.ID, &dto.UpdateReferralStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrReferralClosed)
}

func TestUpdateReferralStatus_SenderMayCancel(t *testing.T) {
	f := newReferralFixture()
	ctx := context.Background()
	ref := f.create(t)

	resp, err := f.usecase.UpdateStatus(ctx, f.from.UserID, ref.ID, &dto.UpdateReferralStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", resp.Status)

	_, err = f.usecase.UpdateStatus(ctx, f.to.UserID, uuid.New(), &dto.UpdateReferralStatusRequest{Status: "accepted"})
	assert.ErrorIs(t, err, ErrReferralNotFound)

	_, err = f.usecase.UpdateStatus(ctx, f.to.UserID, ref.ID, &dto.UpdateReferralStatusRequest{Status: "pending-ish"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
