package handler

import (
	"net/http"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/usecase"
	"hms-backend/pkg/response"
	"hms-backend/pkg/validator"
)

type NotificationHandler struct {
	notificationUsecase usecase.NotificationUsecase
	messageUsecase      usecase.MessageUsecase
	validator           *validator.CustomValidator
}

func NewNotificationHandler(
	notificationUsecase usecase.NotificationUsecase,
	messageUsecase usecase.MessageUsecase,
	validator *validator.CustomValidator,
) *NotificationHandler {
	return &NotificationHandler{
		notificationUsecase: notificationUsecase,
		messageUsecase:      messageUsecase,
		validator:           validator,
	}
}

// Notifications

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *NotificationHandler) ListUnread(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *NotificationHandler) list(w http.ResponseWriter, r *http.Request, unreadOnly bool) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	notifications, err := h.notificationUsecase.List(r.Context(), identity.UserID, unreadOnly)
	if err != nil {
		response.InternalServerError(w, "Failed to get notifications")
		return
	}

	response.List(w, "Notifications retrieved successfully", notifications)
}

func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNotificationRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	notification, err := h.notificationUsecase.Create(r.Context(), &req)
	if err != nil {
		if err == usecase.ErrUserNotFound {
			response.Error(w, http.StatusBadRequest, "User not found", nil)
			return
		}
		response.InternalServerError(w, "Failed to create notification")
		return
	}

	response.Success(w, http.StatusCreated, "Notification created successfully", notification)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	notificationID, ok := pathID(w, r, "id", "notification")
	if !ok {
		return
	}

	if err := h.notificationUsecase.MarkRead(r.Context(), identity.UserID, notificationID); err != nil {
		if err == usecase.ErrNotificationNotFound {
			response.NotFound(w, "Notification not found")
			return
		}
		response.InternalServerError(w, "Failed to mark notification as read")
		return
	}

	response.Success(w, http.StatusOK, "Notification marked as read", nil)
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	result, err := h.notificationUsecase.MarkAllRead(r.Context(), identity.UserID)
	if err != nil {
		response.InternalServerError(w, "Failed to mark notifications as read")
		return
	}

	response.Success(w, http.StatusOK, "All notifications marked as read", result)
}

// Messages

func (h *NotificationHandler) ListMessages(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	messages, err := h.messageUsecase.List(r.Context(), identity.UserID)
	if err != nil {
		response.InternalServerError(w, "Failed to get messages")
		return
	}

	response.List(w, "Messages retrieved successfully", messages)
}

func (h *NotificationHandler) Conversation(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	otherUserID, ok := pathID(w, r, "otherUserId", "user")
	if !ok {
		return
	}

	messages, err := h.messageUsecase.Conversation(r.Context(), identity.UserID, otherUserID)
	if err != nil {
		response.InternalServerError(w, "Failed to get conversation")
		return
	}

	response.List(w, "Conversation retrieved successfully", messages)
}

func (h *NotificationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	message, err := h.messageUsecase.Send(r.Context(), identity.UserID, &req)
	if err != nil {
		switch err {
		case usecase.ErrReceiverNotFound:
			response.Error(w, http.StatusBadRequest, "Receiver not found", nil)
		case usecase.ErrPatientNotFound:
			response.Error(w, http.StatusBadRequest, "Patient not found", nil)
		default:
			response.InternalServerError(w, "Failed to send message")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Message sent successfully", message)
}

func (h *NotificationHandler) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := caller(w, r)
	if !ok {
		return
	}

	messageID, ok := pathID(w, r, "id", "message")
	if !ok {
		return
	}

	if err := h.messageUsecase.MarkRead(r.Context(), identity.UserID, messageID); err != nil {
		switch err {
		case usecase.ErrMessageNotFound:
			response.NotFound(w, "Message not found")
		case usecase.ErrNotMessageReceiver:
			response.Forbidden(w, "Only the receiver can mark a message as read")
		default:
			response.InternalServerError(w, "Failed to mark message as read")
		}
		return
	}

	response.Success(w, http.StatusOK, "Message marked as read", nil)
}
