package dto

import (
	"time"

	"github.com/google/uuid"
)

type PatientEventResponse struct {
	ID          uuid.UUID              `json:"id"`
	PatientID   uuid.UUID              `json:"patient_id"`
	PatientName string                 `json:"patient_name"`
	EventType   string                 `json:"event_type"`
	EventDate   time.Time              `json:"event_date"`
	Title       string                 `json:"title"`
	Description string                 `json:"description,omitempty"`
	RelatedID   *uuid.UUID             `json:"related_id,omitempty"`
	ActorName   string                 `json:"actor_name,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}
