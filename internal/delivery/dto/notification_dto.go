package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateNotificationRequest struct {
	UserID    uuid.UUID  `json:"user_id" validate:"required"`
	Type      string     `json:"type" validate:"required,max=50"`
	Title     string     `json:"title" validate:"required,max=255"`
	Message   string     `json:"message" validate:"required"`
	RelatedID *uuid.UUID `json:"related_id"`
}

type SendMessageRequest struct {
	ReceiverID uuid.UUID  `json:"receiver_id" validate:"required"`
	Subject    string     `json:"subject" validate:"omitempty,max=255"`
	Content    string     `json:"content" validate:"required"`
	PatientID  *uuid.UUID `json:"patient_id"`
}

// Response DTOs

type NotificationResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	RelatedID *uuid.UUID `json:"related_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	CreatedAt time.Time  `json:"created_at"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

type MessageResponse struct {
	ID           uuid.UUID  `json:"id"`
	SenderID     uuid.UUID  `json:"sender_id"`
	SenderName   string     `json:"sender_name,omitempty"`
	ReceiverID   uuid.UUID  `json:"receiver_id"`
	ReceiverName string     `json:"receiver_name,omitempty"`
	Subject      string     `json:"subject,omitempty"`
	Content      string     `json:"content"`
	Status       string     `json:"status"`
	PatientID    *uuid.UUID `json:"patient_id,omitempty"`
	SentAt       time.Time  `json:"sent_at"`
	ReadAt       *time.Time `json:"read_at,omitempty"`
}
