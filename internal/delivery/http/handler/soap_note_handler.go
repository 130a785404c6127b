package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type SoapNoteHandler struct {
	soapNoteUsecase usecase.SoapNoteUsecase
	validator       *validator.CustomValidator
}

func NewSoapNoteHandler(soapNoteUsecase usecase.SoapNoteUsecase, validator *validator.CustomValidator) *SoapNoteHandler {
	return &SoapNoteHandler{
		soapNoteUsecase: soapNoteUsecase,
		validator:       validator,
	}
}

func (h *SoapNoteHandler) GetByAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, ok := pathID(w, r, "appointmentId", "appointment")
	if !ok {
		return
	}

	note, err := h.soapNoteUsecase.GetByAppointment(r.Context(), appointmentID)
	if err != nil {
		h.fail(w, err, "Failed to get SOAP note")
		return
	}

	response.Success(w, http.StatusOK, "SOAP note retrieved successfully", note)
}

func (h *SoapNoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateSoapNoteRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	note, err := h.soapNoteUsecase.Create(r.Context(), identity.UserID, &req)
	if err != nil {
		h.fail(w, err, "Failed to create SOAP note")
		return
	}

	response.Success(w, http.StatusCreated, "SOAP note created successfully", note)
}

func (h *SoapNoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	noteID, ok := pathID(w, r, "id", "SOAP note")
	if !ok {
		return
	}

	var req dto.UpdateSoapNoteRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	note, err := h.soapNoteUsecase.Update(r.Context(), identity.UserID, noteID, &req)
	if err != nil {
		h.fail(w, err, "Failed to update SOAP note")
		return
	}

	response.Success(w, http.StatusOK, "SOAP note updated successfully", note)
}

func (h *SoapNoteHandler) fail(w http.ResponseWriter, err error, message string) {
	switch err {
	case usecase.ErrSoapNoteNotFound:
		response.NotFound(w, "SOAP note not found")
	case usecase.ErrDoctorProfileNotFound:
		response.NotFound(w, "Doctor profile not found")
	case usecase.ErrAppointmentNotFound:
		response.Error(w, http.StatusBadRequest, "Appointment not found", nil)
	case usecase.ErrNotAppointmentDoctor:
		response.Forbidden(w, "Only the appointment's doctor can write its notes")
	case usecase.ErrSoapNoteExists:
		response.Conflict(w, "Appointment already has a SOAP note")
	default:
		response.InternalServerError(w, message)
	}
}
