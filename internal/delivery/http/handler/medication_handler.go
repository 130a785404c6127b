package handler

import (
	"net/http"
	"strconv"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type MedicationHandler struct {
	medicationUsecase usecase.MedicationUsecase
	validator         *validator.CustomValidator
}

func NewMedicationHandler(medicationUsecase usecase.MedicationUsecase, validator *validator.CustomValidator) *MedicationHandler {
	return &MedicationHandler{
		medicationUsecase: medicationUsecase,
		validator:         validator,
	}
}

func (h *MedicationHandler) List(w http.ResponseWriter, r *http.Request) {
	medications, err := h.medicationUsecase.List(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get medications")
		return
	}

	response.List(w, "Medications retrieved successfully", medications)
}

func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	medication, err := h.medicationUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicationExists:
			response.Conflict(w, "Medication already exists")
		case usecase.ErrInvalidUnitPrice:
			response.Error(w, http.StatusBadRequest, "Unit price must not be negative", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create medication")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medication created successfully", medication)
}

// Expiring godoc
// Query param: days (default 30)
func (h *MedicationHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			response.Error(w, http.StatusBadRequest, "Days must be a positive number", nil)
			return
		}
		days = parsed
	}

	medications, err := h.medicationUsecase.Expiring(r.Context(), days)
	if err != nil {
		if err == usecase.ErrInvalidExpiryDays {
			response.Error(w, http.StatusBadRequest, "Days must be a positive number", nil)
			return
		}
		response.InternalServerError(w, "Failed to get expiring medications")
		return
	}

	response.List(w, "Expiring medications retrieved successfully", medications)
}

func (h *MedicationHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	medications, err := h.medicationUsecase.LowStock(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get low stock medications")
		return
	}

	response.List(w, "Low stock medications retrieved successfully", medications)
}
