package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type ReferralHandler struct {
	referralUsecase usecase.ReferralUsecase
	validator       *validator.CustomValidator
}

func NewReferralHandler(referralUsecase usecase.ReferralUsecase, validator *validator.CustomValidator) *ReferralHandler {
	return &ReferralHandler{
		referralUsecase: referralUsecase,
		validator:       validator,
	}
}

func (h *ReferralHandler) Sent(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	referrals, err := h.referralUsecase.Sent(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get referrals")
		return
	}

	response.List(w, "Sent referrals retrieved successfully", referrals)
}

func (h *ReferralHandler) Received(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	referrals, err := h.referralUsecase.Received(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get referrals")
		return
	}

	response.List(w, "Received referrals retrieved successfully", referrals)
}

func (h *ReferralHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateReferralRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	referral, err := h.referralUsecase.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		h.fail(w, err, "Failed to create referral")
		return
	}

	response.Success(w, http.StatusCreated, "Referral created successfully", referral)
}

func (h *ReferralHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	referralID, ok := pathID(w, r, "id", "referral")
	if !ok {
		return
	}

	var req dto.UpdateReferralStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	referral, err := h.referralUsecase.UpdateStatus(r.Context(), identity.UserID, referralID, &req)
	if err != nil {
		h.fail(w, err, "Failed to update referral")
		return
	}

	response.Success(w, http.StatusOK, "Referral updated successfully", referral)
}

func (h *ReferralHandler) fail(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrDoctorProfileNotFound:
		response.NotFound(w, "Doctor profile not found")
	case usecase.ErrReferralNotFound:
		response.NotFound(w, "Referral not found")
	case usecase.ErrPatientNotFound:
		response.Error(w, http.StatusBadRequest, "Patient not found", nil)
	case usecase.ErrDoctorNotFound:
		response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
	case usecase.ErrSelfReferral:
		response.Error(w, http.StatusBadRequest, "Cannot refer a patient to yourself", nil)
	case usecase.ErrInvalidStatus, usecase.ErrInvalidTransition:
		response.Error(w, http.StatusBadRequest, "Invalid status change", nil)
	case usecase.ErrNotReferralParty:
		response.Forbidden(w, "Not a party to this referral")
	case usecase.ErrReferralReceiverOnly:
		response.Forbidden(w, "Only the receiving doctor can accept or complete a referral")
	case usecase.ErrReferralClosed:
		response.Conflict(w, "Referral is already completed or cancelled")
	default:
		response.InternalServerError(w, message)
	}
}
