package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type RecurringAppointmentHandler struct {
	recurringUsecase usecase.RecurringAppointmentUsecase
	validator        *validator.CustomValidator
}

func NewRecurringAppointmentHandler(recurringUsecase usecase.RecurringAppointmentUsecase, validator *validator.CustomValidator) *RecurringAppointmentHandler {
	return &RecurringAppointmentHandler{
		recurringUsecase: recurringUsecase,
		validator:        validator,
	}
}

func (h *RecurringAppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := dto.RecurringAppointmentListQuery{
		PatientID: q.Get("patient_id"),
		DoctorID:  q.Get("doctor_id"),
	}

	if err := h.validator.Validate(&query); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	series, err := h.recurringUsecase.List(r.Context(), &query)
	if err != nil {
		h.fail(w, err, "Failed to get recurring appointments")
		return
	}

	response.List(w, "Recurring appointments retrieved successfully", series)
}

func (h *RecurringAppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecurringAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	series, err := h.recurringUsecase.Create(r.Context(), &req)
	if err != nil {
		h.fail(w, err, "Failed to create recurring appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Recurring appointment created successfully", series)
}

func (h *RecurringAppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	seriesID, ok := pathID(w, r, "id", "recurring appointment")
	if !ok {
		return
	}

	var req dto.UpdateRecurringAppointmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	series, err := h.recurringUsecase.Update(r.Context(), seriesID, &req)
	if err != nil {
		h.fail(w, err, "Failed to update recurring appointment")
		return
	}

	response.Success(w, http.StatusOK, "Recurring appointment updated successfully", series)
}

func (h *RecurringAppointmentHandler) fail(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrRecurringAppointmentNotFound:
		response.NotFound(w, "Recurring appointment not found")
	case usecase.ErrPatientNotFound:
		response.Error(w, http.StatusBadRequest, "Patient not found", nil)
	case usecase.ErrDoctorNotFound:
		response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
	case usecase.ErrInvalidTimeRange:
		response.Error(w, http.StatusBadRequest, "End time must be after start time", nil)
	case usecase.ErrInvalidDateRange:
		response.Error(w, http.StatusBadRequest, "End date must not be before start date", nil)
	case usecase.ErrInvalidFilter:
		response.Error(w, http.StatusBadRequest, "Invalid filter", nil)
	case usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	default:
		response.InternalServerError(w, message)
	}
}
