package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

// ClinicalHandler serves patient alerts, vitals, and vaccinations to staff,
// and the caller's own copies on the portal.
type ClinicalHandler struct {
	clinicalUsecase usecase.ClinicalUsecase
	validator       *validator.CustomValidator
}

func NewClinicalHandler(clinicalUsecase usecase.ClinicalUsecase, validator *validator.CustomValidator) *ClinicalHandler {
	return &ClinicalHandler{
		clinicalUsecase: clinicalUsecase,
		validator:       validator,
	}
}

func (h *ClinicalHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	alerts, err := h.clinicalUsecase.ListAlerts(r.Context(), patientID)
	if err != nil {
		h.fail(w, err, "Failed to get patient alerts")
		return
	}

	response.List(w, "Patient alerts retrieved successfully", alerts)
}

func (h *ClinicalHandler) CreateAlert(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreatePatientAlertRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	alert, err := h.clinicalUsecase.CreateAlert(r.Context(), identity.UserID, &req)
	if err != nil {
		h.failWrite(w, err, "Failed to create patient alert")
		return
	}

	response.Success(w, http.StatusCreated, "Patient alert created successfully", alert)
}

func (h *ClinicalHandler) UpdateAlert(w http.ResponseWriter, r *http.Request) {
	alertID, ok := pathID(w, r, "id", "alert")
	if !ok {
		return
	}

	var req dto.UpdatePatientAlertRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	alert, err := h.clinicalUsecase.UpdateAlert(r.Context(), alertID, &req)
	if err != nil {
		h.fail(w, err, "Failed to update patient alert")
		return
	}

	response.Success(w, http.StatusOK, "Patient alert updated successfully", alert)
}

func (h *ClinicalHandler) ListVitals(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	vitals, err := h.clinicalUsecase.ListVitals(r.Context(), patientID)
	if err != nil {
		h.fail(w, err, "Failed to get health vitals")
		return
	}

	response.List(w, "Health vitals retrieved successfully", vitals)
}

func (h *ClinicalHandler) RecordVitals(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.RecordVitalsRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	vital, err := h.clinicalUsecase.RecordVitals(r.Context(), identity.UserID, &req)
	if err != nil {
		h.failWrite(w, err, "Failed to record health vitals")
		return
	}

	response.Success(w, http.StatusCreated, "Health vitals recorded successfully", vital)
}

func (h *ClinicalHandler) ListVaccinations(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	vaccinations, err := h.clinicalUsecase.ListVaccinations(r.Context(), patientID)
	if err != nil {
		h.fail(w, err, "Failed to get vaccinations")
		return
	}

	response.List(w, "Vaccinations retrieved successfully", vaccinations)
}

func (h *ClinicalHandler) RecordVaccination(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.RecordVaccinationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	vaccination, err := h.clinicalUsecase.RecordVaccination(r.Context(), identity.UserID, &req)
	if err != nil {
		h.failWrite(w, err, "Failed to record vaccination")
		return
	}

	response.Success(w, http.StatusCreated, "Vaccination recorded successfully", vaccination)
}

func (h *ClinicalHandler) MyAlerts(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	alerts, err := h.clinicalUsecase.MyAlerts(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get alerts")
		return
	}

	response.List(w, "Alerts retrieved successfully", alerts)
}

func (h *ClinicalHandler) MyVitals(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	vitals, err := h.clinicalUsecase.MyVitals(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get health vitals")
		return
	}

	response.List(w, "Health vitals retrieved successfully", vitals)
}

func (h *ClinicalHandler) RecordMyVitals(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.RecordVitalsRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	vital, err := h.clinicalUsecase.RecordMyVitals(r.Context(), identity.UserID, &req)
	if err != nil {
		h.failWrite(w, err, "Failed to record health vitals")
		return
	}

	response.Success(w, http.StatusCreated, "Health vitals recorded successfully", vital)
}

func (h *ClinicalHandler) MyVaccinations(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	vaccinations, err := h.clinicalUsecase.MyVaccinations(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get vaccinations")
		return
	}

	response.List(w, "Vaccinations retrieved successfully", vaccinations)
}

// fail maps lookup errors on path-addressed records.
func (h *ClinicalHandler) fail(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrPatientProfileNotFound:
		response.NotFound(w, "Patient profile not found")
	case usecase.ErrAlertNotFound:
		response.NotFound(w, "Alert not found")
	case usecase.ErrInvalidSeverity:
		response.Error(w, http.StatusBadRequest, "Invalid severity", nil)
	default:
		response.InternalServerError(w, message)
	}
}

// failWrite maps errors of body-addressed writes, where a missing referenced
// record is a bad request rather than a missing resource.
func (h *ClinicalHandler) failWrite(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.Error(w, http.StatusBadRequest, "Patient not found", nil)
	case usecase.ErrDoctorNotFound:
		response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
	case usecase.ErrPatientProfileNotFound:
		response.NotFound(w, "Patient profile not found")
	case usecase.ErrInvalidSeverity:
		response.Error(w, http.StatusBadRequest, "Invalid severity", nil)
	case usecase.ErrEmptyVitals:
		response.Error(w, http.StatusBadRequest, "At least one vital reading is required", nil)
	case usecase.ErrNegativeReading:
		response.Error(w, http.StatusBadRequest, "Vital readings must not be negative", nil)
	case usecase.ErrInvalidNextDose:
		response.Error(w, http.StatusBadRequest, "Next dose date must be after the administered date", nil)
	case usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
	default:
		response.InternalServerError(w, message)
	}
}
