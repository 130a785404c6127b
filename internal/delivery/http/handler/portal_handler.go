package handler

import (
	"context"
	"net/http"

	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"

	"github.com/google/uuid"
)

// PortalHandler serves the patient self-service views. Every view is scoped
// to the caller's own patient record.
type PortalHandler struct {
	portalUsecase usecase.PortalUsecase
}

func NewPortalHandler(portalUsecase usecase.PortalUsecase) *PortalHandler {
	return &PortalHandler{
		portalUsecase: portalUsecase,
	}
}

func (h *PortalHandler) Profile(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	patient, err := h.portalUsecase.Profile(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, "Failed to get patient profile")
		return
	}

	response.Success(w, http.StatusOK, "Patient profile retrieved successfully", patient)
}

func (h *PortalHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h, h.portalUsecase.Appointments, "Appointments retrieved successfully", "Failed to get appointments")
}

func (h *PortalHandler) Prescriptions(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h, h.portalUsecase.Prescriptions, "Prescriptions retrieved successfully", "Failed to get prescriptions")
}

func (h *PortalHandler) LabResults(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h, h.portalUsecase.LabResults, "Lab results retrieved successfully", "Failed to get lab results")
}

func (h *PortalHandler) Bills(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h, h.portalUsecase.Bills, "Bills retrieved successfully", "Failed to get bills")
}

func (h *PortalHandler) Timeline(w http.ResponseWriter, r *http.Request) {
	serveList(w, r, h, h.portalUsecase.Timeline, "Timeline retrieved successfully", "Failed to get timeline")
}

func (h *PortalHandler) fail(w http.ResponseWriter, err error, message string) {
	if err == usecase.ErrPatientProfileNotFound {
		response.NotFound(w, "Patient profile not found")
		return
	}
	response.InternalServerError(w, message)
}

func serveList[T any](
	w http.ResponseWriter,
	r *http.Request,
	h *PortalHandler,
	load func(ctx context.Context, userID uuid.UUID) ([]T, error),
	okMessage, failMessage string,
) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	items, err := load(r.Context(), identity.UserID)
	if err != nil {
		h.fail(w, err, failMessage)
		return
	}

	response.List(w, okMessage, items)
}
