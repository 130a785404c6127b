package handler

import (
	"net/http"

	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
)

type DashboardHandler struct {
	dashboardUsecase usecase.DashboardUsecase
}

func NewDashboardHandler(dashboardUsecase usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{
		dashboardUsecase: dashboardUsecase,
	}
}

func (h *DashboardHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	metrics, err := h.dashboardUsecase.GetMetrics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get dashboard metrics")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard metrics retrieved successfully", metrics)
}
