package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type FeedbackHandler struct {
	feedbackUsecase usecase.FeedbackUsecase
	validator       *validator.CustomValidator
}

func NewFeedbackHandler(feedbackUsecase usecase.FeedbackUsecase, validator *validator.CustomValidator) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackUsecase: feedbackUsecase,
		validator:       validator,
	}
}

func (h *FeedbackHandler) ListForDoctor(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "doctorId", "doctor")
	if !ok {
		return
	}

	feedback, err := h.feedbackUsecase.ListForDoctor(r.Context(), doctorID)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedback)
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateFeedbackRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	feedback, err := h.feedbackUsecase.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientProfileNotFound:
			response.NotFound(w, "Patient profile not found")
		case usecase.ErrDoctorNotFound:
			response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
		case usecase.ErrAppointmentNotFound:
			response.Error(w, http.StatusBadRequest, "Appointment not found", nil)
		case usecase.ErrFeedbackAppointmentOwner:
			response.Error(w, http.StatusBadRequest, "Appointment does not belong to this patient and doctor", nil)
		case usecase.ErrAppointmentNotCompleted:
			response.Error(w, http.StatusBadRequest, "Only completed appointments can be rated", nil)
		case usecase.ErrFeedbackExists:
			response.Conflict(w, "Feedback already submitted for this appointment")
		default:
			response.InternalServerError(w, "Failed to submit feedback")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Feedback submitted successfully", feedback)
}
