package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/delivery/http/middleware"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

type stubReferralUsecase struct {
	usecase.ReferralUsecase
	updateStatusFn func(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateReferralStatusRequest) (*dto.ReferralResponse, error)
}

func (s *stubReferralUsecase) UpdateStatus(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateReferralStatusRequest) (*dto.ReferralResponse, error) {
	return s.updateStatusFn(ctx, userID, id, req)
}

func TestReferralHandler_UpdateStatus(t *testing.T) {
	referralID := uuid.New()
	doctorUserID := uuid.New()

	tests := []struct {
		name    string
		body    string
		err     error
		status  int
		message string
	}{
		{"accepted", `{"status":"accepted"}`, nil, http.StatusOK, "Referral updated successfully"},
		{"not a party", `{"status":"accepted"}`, usecase.ErrNotReferralParty, http.StatusForbidden, "Not a party to this referral"},
		{"sender accepting", `{"status":"accepted"}`, usecase.ErrReferralReceiverOnly, http.StatusForbidden, "Only the receiving doctor can accept or complete a referral"},
		{"already closed", `{"status":"cancelled"}`, usecase.ErrReferralClosed, http.StatusConflict, "Referral is already completed or cancelled"},
		{"skipping acceptance", `{"status":"completed"}`, usecase.ErrInvalidTransition, http.StatusBadRequest, "Invalid status change"},
		{"unknown referral", `{"status":"accepted"}`, usecase.ErrReferralNotFound, http.StatusNotFound, "Referral not found"},
		{"back to pending", `{"status":"pending"}`, nil, http.StatusBadRequest, "Validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubReferralUsecase{
				updateStatusFn: func(ctx context.Context, userID, id uuid.UUID, req *dto.UpdateReferralStatusRequest) (*dto.ReferralResponse, error) {
					assert.Equal(t, doctorUserID, userID)
					assert.Equal(t, referralID, id)
					if tt.err != nil {
						return nil, tt.err
					}
					return &dto.ReferralResponse{ID: id, Status: req.Status}, nil
				},
			}
			h := NewReferralHandler(stub, validator.NewValidator())

			req := httptest.NewRequest(http.MethodPatch, "/api/referrals/"+referralID.String()+"/status", strings.NewReader(tt.body))
			req = mux.SetURLVars(req, map[string]string{"id": referralID.String()})
			req = req.WithContext(middleware.WithIdentity(req.Context(), middleware.Identity{UserID: doctorUserID, Role: entity.RoleDoctor}))
			rec := httptest.NewRecorder()
			h.UpdateStatus(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.message, decode(t, rec).Message)
		})
	}
}
