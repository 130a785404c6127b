package handler

import (
	"net/http"

	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
)

type TimelineHandler struct {
	timelineUsecase usecase.TimelineUsecase
}

func NewTimelineHandler(timelineUsecase usecase.TimelineUsecase) *TimelineHandler {
	return &TimelineHandler{
		timelineUsecase: timelineUsecase,
	}
}

func (h *TimelineHandler) GetTimeline(w http.ResponseWriter, r *http.Request) {
	patientID, ok := pathID(w, r, "patientId", "patient")
	if !ok {
		return
	}

	events, err := h.timelineUsecase.GetTimeline(r.Context(), patientID)
	if err != nil {
		if err == usecase.ErrPatientNotFound {
			response.NotFound(w, "Patient not found")
			return
		}
		response.InternalServerError(w, "Failed to get patient timeline")
		return
	}

	response.List(w, "Patient timeline retrieved successfully", events)
}
