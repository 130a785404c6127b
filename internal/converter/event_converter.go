package converter

import (
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
)

// PatientEventsToResponses converts timeline rows to DTOs
func PatientEventsToResponses(events []entity.PatientEventDetail) []dto.PatientEventResponse {
	responses := make([]dto.PatientEventResponse, len(events))
	for i, e := range events {
		responses[i] = dto.PatientEventResponse{
			ID:          e.ID,
			PatientID:   e.PatientID,
			PatientName: e.PatientName,
			EventType:   string(e.EventType),
			EventDate:   e.EventDate,
			Title:       e.Title,
			Description: e.Description,
			RelatedID:   e.RelatedID,
			ActorName:   e.ActorName,
			Metadata:    e.Metadata,
		}
	}
	return responses
}
