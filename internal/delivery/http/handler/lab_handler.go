package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type LabHandler struct {
	labUsecase usecase.LabUsecase
	validator  *validator.CustomValidator
}

func NewLabHandler(labUsecase usecase.LabUsecase, validator *validator.CustomValidator) *LabHandler {
	return &LabHandler{
		labUsecase: labUsecase,
		validator:  validator,
	}
}

func (h *LabHandler) ListTests(w http.ResponseWriter, r *http.Request) {
	tests, err := h.labUsecase.ListTests(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get lab tests")
		return
	}

	response.List(w, "Lab tests retrieved successfully", tests)
}

func (h *LabHandler) CreateTest(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateLabTestRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	test, err := h.labUsecase.CreateTest(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrLabTestExists:
			response.Conflict(w, "Lab test name or code already exists")
		case usecase.ErrInvalidLabTestCost:
			response.Error(w, http.StatusBadRequest, "Price must not be negative", nil)
		default:
			response.InternalServerError(w, "Failed to create lab test")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Lab test created successfully", test)
}

func (h *LabHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.labUsecase.ListOrders(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get test orders")
		return
	}

	response.List(w, "Test orders retrieved successfully", orders)
}

func (h *LabHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateTestOrderRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	order, err := h.labUsecase.CreateOrder(r.Context(), identity.UserID, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		case usecase.ErrDoctorNotFound:
			response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
		case usecase.ErrLabTestNotFound:
			response.Error(w, http.StatusBadRequest, "Lab test not found", nil)
		default:
			response.InternalServerError(w, "Failed to create test order")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Test order created successfully", order)
}

func (h *LabHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	orderID, ok := pathID(w, r, "id", "test order")
	if !ok {
		return
	}

	var req dto.UpdateTestOrderRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	order, err := h.labUsecase.UpdateOrder(r.Context(), identity.UserID, orderID, &req)
	if err != nil {
		switch err {
		case usecase.ErrTestOrderNotFound:
			response.NotFound(w, "Test order not found")
		case usecase.ErrInvalidStatus:
			response.Error(w, http.StatusBadRequest, "Invalid status", nil)
		default:
			response.InternalServerError(w, "Failed to update test order")
		}
		return
	}

	response.Success(w, http.StatusOK, "Test order updated successfully", order)
}
