package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type PrescriptionTemplateHandler struct {
	templateUsecase usecase.PrescriptionTemplateUsecase
	validator       *validator.CustomValidator
}

func NewPrescriptionTemplateHandler(templateUsecase usecase.PrescriptionTemplateUsecase, validator *validator.CustomValidator) *PrescriptionTemplateHandler {
	return &PrescriptionTemplateHandler{
		templateUsecase: templateUsecase,
		validator:       validator,
	}
}

func (h *PrescriptionTemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	templates, err := h.templateUsecase.List(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get prescription templates")
		return
	}

	response.List(w, "Prescription templates retrieved successfully", templates)
}

func (h *PrescriptionTemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreatePrescriptionTemplateRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	template, err := h.templateUsecase.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		h.fail(w, err, "Failed to create prescription template")
		return
	}

	response.Success(w, http.StatusCreated, "Prescription template created successfully", template)
}

func (h *PrescriptionTemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	templateID, ok := pathID(w, r, "id", "template")
	if !ok {
		return
	}

	if err := h.templateUsecase.Delete(r.Context(), identity.UserID, templateID); err != nil {
		h.fail(w, err, "Failed to delete prescription template")
		return
	}

	response.Success(w, http.StatusOK, "Prescription template deleted successfully", nil)
}

func (h *PrescriptionTemplateHandler) fail(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrDoctorProfileNotFound:
		response.NotFound(w, "Doctor profile not found")
	case usecase.ErrTemplateNotFound:
		response.NotFound(w, "Prescription template not found")
	case usecase.ErrMedicationNotFound:
		response.Error(w, http.StatusBadRequest, "Medication not found", nil)
	default:
		response.InternalServerError(w, message)
	}
}
