package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type BillingHandler struct {
	billingUsecase usecase.BillingUsecase
	validator      *validator.CustomValidator
}

func NewBillingHandler(billingUsecase usecase.BillingUsecase, validator *validator.CustomValidator) *BillingHandler {
	return &BillingHandler{
		billingUsecase: billingUsecase,
		validator:      validator,
	}
}

func (h *BillingHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.billingUsecase.ListBills(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get bills")
		return
	}

	response.List(w, "Bills retrieved successfully", bills)
}

func (h *BillingHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathID(w, r, "id", "bill")
	if !ok {
		return
	}

	bill, err := h.billingUsecase.GetBill(r.Context(), billID)
	if err != nil {
		if err == usecase.ErrBillNotFound {
			response.NotFound(w, "Bill not found")
			return
		}
		response.InternalServerError(w, "Failed to get bill")
		return
	}

	response.Success(w, http.StatusOK, "Bill retrieved successfully", bill)
}

func (h *BillingHandler) CreateBill(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateBillRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	bill, err := h.billingUsecase.CreateBill(r.Context(), identity.UserID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidBillAmount:
			response.Error(w, http.StatusBadRequest, "Total amount must be greater than zero", nil)
		case usecase.ErrPatientNotFound:
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD", nil)
		default:
			response.InternalServerError(w, "Failed to create bill")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Bill created successfully", bill)
}

func (h *BillingHandler) CancelBill(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathID(w, r, "id", "bill")
	if !ok {
		return
	}

	bill, err := h.billingUsecase.CancelBill(r.Context(), billID)
	if err != nil {
		switch err {
		case usecase.ErrBillNotFound:
			response.NotFound(w, "Bill not found")
		case usecase.ErrBillCancelled:
			response.Conflict(w, "Bill is already cancelled")
		default:
			response.InternalServerError(w, "Failed to cancel bill")
		}
		return
	}

	response.Success(w, http.StatusOK, "Bill cancelled successfully", bill)
}

func (h *BillingHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	billID, ok := pathID(w, r, "id", "bill")
	if !ok {
		return
	}

	payments, err := h.billingUsecase.ListPayments(r.Context(), billID)
	if err != nil {
		if err == usecase.ErrBillNotFound {
			response.NotFound(w, "Bill not found")
			return
		}
		response.InternalServerError(w, "Failed to get payments")
		return
	}

	response.List(w, "Payments retrieved successfully", payments)
}

// CreatePayment records a payment. The sum of a bill's payments can never
// exceed its total.
func (h *BillingHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	payment, err := h.billingUsecase.CreatePayment(r.Context(), identity.UserID, &req)
	if err != nil {
		switch err {
		case usecase.ErrBillNotFound:
			response.NotFound(w, "Bill not found")
		case usecase.ErrInvalidPaymentAmount:
			response.Error(w, http.StatusBadRequest, "Payment amount must be greater than zero", nil)
		case usecase.ErrBillCancelled:
			response.Error(w, http.StatusBadRequest, "Bill is cancelled", nil)
		case usecase.ErrPaymentExceedsBalance:
			response.Error(w, http.StatusBadRequest, "Payment amount exceeds bill total", nil)
		default:
			response.InternalServerError(w, "Failed to record payment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Payment recorded successfully", payment)
}
