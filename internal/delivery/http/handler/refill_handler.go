package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type RefillHandler struct {
	refillUsecase usecase.RefillUsecase
	validator     *validator.CustomValidator
}

func NewRefillHandler(refillUsecase usecase.RefillUsecase, validator *validator.CustomValidator) *RefillHandler {
	return &RefillHandler{
		refillUsecase: refillUsecase,
		validator:     validator,
	}
}

func (h *RefillHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	requests, err := h.refillUsecase.ListForPatient(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get refill requests")
		return
	}

	response.List(w, "Refill requests retrieved successfully", requests)
}

func (h *RefillHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	requests, err := h.refillUsecase.ListForDoctor(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get refill requests")
		return
	}

	response.List(w, "Refill requests retrieved successfully", requests)
}

func (h *RefillHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateRefillRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	request, err := h.refillUsecase.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		h.fail(w, err, "Failed to create refill request")
		return
	}

	response.Success(w, http.StatusCreated, "Refill request created successfully", request)
}

func (h *RefillHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	requestID, ok := pathID(w, r, "id", "refill request")
	if !ok {
		return
	}

	var req dto.UpdateRefillStatusRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	request, err := h.refillUsecase.UpdateStatus(r.Context(), identity.UserID, requestID, &req)
	if err != nil {
		h.fail(w, err, "Failed to update refill request")
		return
	}

	response.Success(w, http.StatusOK, "Refill request updated successfully", request)
}

func (h *RefillHandler) fail(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrPatientProfileNotFound:
		response.NotFound(w, "Patient profile not found")
	case usecase.ErrDoctorProfileNotFound:
		response.NotFound(w, "Doctor profile not found")
	case usecase.ErrRefillNotFound:
		response.NotFound(w, "Refill request not found")
	case usecase.ErrPrescriptionNotFound:
		response.Error(w, http.StatusBadRequest, "Prescription not found", nil)
	case usecase.ErrNewPrescriptionMismatch:
		response.Error(w, http.StatusBadRequest, "New prescription must belong to the same patient", nil)
	case usecase.ErrInvalidStatus, usecase.ErrInvalidTransition:
		response.Error(w, http.StatusBadRequest, "Invalid status change", nil)
	case usecase.ErrNotRefillDoctor:
		response.Forbidden(w, "Only the prescribing doctor can decide this request")
	case usecase.ErrRefillPending:
		response.Conflict(w, "Prescription already has an open refill request")
	case usecase.ErrRefillClosed:
		response.Conflict(w, "Refill request is already denied or completed")
	default:
		response.InternalServerError(w, message)
	}
}
