package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type FacilityHandler struct {
	facilityUsecase usecase.FacilityUsecase
	validator       *validator.CustomValidator
}

func NewFacilityHandler(facilityUsecase usecase.FacilityUsecase, validator *validator.CustomValidator) *FacilityHandler {
	return &FacilityHandler{
		facilityUsecase: facilityUsecase,
		validator:       validator,
	}
}

// Departments

func (h *FacilityHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.facilityUsecase.ListDepartments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get departments")
		return
	}

	response.List(w, "Departments retrieved successfully", departments)
}

func (h *FacilityHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDepartmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	department, err := h.facilityUsecase.CreateDepartment(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrDepartmentExists {
			response.Conflict(w, "Department already exists")
			return
		}
		response.InternalServerError(w, "Failed to create department")
		return
	}

	response.Success(w, http.StatusCreated, "Department created successfully", department)
}

// Rooms

func (h *FacilityHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.facilityUsecase.ListRooms(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get rooms")
		return
	}

	response.List(w, "Rooms retrieved successfully", rooms)
}

func (h *FacilityHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRoomRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	room, err := h.facilityUsecase.CreateRoom(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrRoomExists:
			response.Conflict(w, "Room number already exists")
		case usecase.ErrDepartmentNotFound:
			response.Error(w, http.StatusBadRequest, "Department not found", nil)
		default:
			response.InternalServerError(w, "Failed to create room")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Room created successfully", room)
}

// Beds

func (h *FacilityHandler) ListBeds(w http.ResponseWriter, r *http.Request) {
	beds, err := h.facilityUsecase.ListBeds(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get beds")
		return
	}

	response.List(w, "Beds retrieved successfully", beds)
}

func (h *FacilityHandler) CreateBed(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBedRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	bed, err := h.facilityUsecase.CreateBed(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrBedExists:
			response.Conflict(w, "Bed number already exists in this room")
		case usecase.ErrRoomNotFound:
			response.Error(w, http.StatusBadRequest, "Room not found", nil)
		default:
			response.InternalServerError(w, "Failed to create bed")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Bed created successfully", bed)
}

func (h *FacilityHandler) UpdateBed(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	bedID, ok := pathID(w, r, "id", "bed")
	if !ok {
		return
	}

	var req dto.UpdateBedRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	bed, err := h.facilityUsecase.UpdateBed(r.Context(), identity.UserID, bedID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBedNotFound:
			response.NotFound(w, "Bed not found")
		case usecase.ErrPatientNotFound:
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		default:
			response.InternalServerError(w, "Failed to update bed")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bed updated successfully", bed)
}
