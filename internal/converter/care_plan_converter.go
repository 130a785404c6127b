package converter

import (
	"math"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
)

// Occurrences listed with each recurring appointment
const upcomingOccurrences = 3

func FeedbackToResponse(f *entity.DoctorFeedback) *dto.FeedbackResponse {
	return &dto.FeedbackResponse{
		ID:            f.ID,
		DoctorID:      f.DoctorID,
		PatientID:     f.PatientID,
		AppointmentID: f.AppointmentID,
		Rating:        f.Rating,
		Comment:       f.Comment,
		CreatedAt:     f.CreatedAt,
	}
}

func DoctorFeedbackToResponse(doctorID uuid.UUID, details []entity.DoctorFeedbackDetail) *dto.DoctorFeedbackResponse {
	response := &dto.DoctorFeedbackResponse{
		DoctorID: doctorID,
		Count:    len(details),
		Feedback: make([]dto.FeedbackResponse, len(details)),
	}

	sum := 0
	for i := range details {
		item := FeedbackToResponse(&details[i].DoctorFeedback)
		item.PatientName = details[i].PatientName
		response.Feedback[i] = *item
		sum += details[i].Rating
	}
	if len(details) > 0 {
		response.AverageRating = math.Round(float64(sum)*10/float64(len(details))) / 10
	}
	return response
}

func PrescriptionTemplateToResponse(t *entity.PrescriptionTemplate) *dto.PrescriptionTemplateResponse {
	response := &dto.PrescriptionTemplateResponse{
		ID:           t.ID,
		DoctorID:     t.DoctorID,
		TemplateName: t.TemplateName,
		Condition:    t.Condition,
		Diagnosis:    t.Diagnosis,
		Notes:        t.Notes,
		IsPublic:     t.IsPublic,
		Medications:  make([]dto.PrescriptionMedicationResponse, 0, len(t.Medications)),
		CreatedAt:    t.CreatedAt,
	}
	for _, line := range t.Medications {
		item := dto.PrescriptionMedicationResponse{
			ID:           line.ID,
			MedicationID: line.MedicationID,
			Dosage:       line.Dosage,
			Frequency:    line.Frequency,
			Duration:     line.Duration,
			Instructions: line.Instructions,
		}
		if line.Medication != nil {
			item.MedicationName = line.Medication.Name
			item.Strength = line.Medication.Strength
		}
		response.Medications = append(response.Medications, item)
	}
	return response
}

func PrescriptionTemplatesToResponses(templates []entity.PrescriptionTemplate) []dto.PrescriptionTemplateResponse {
	responses := make([]dto.PrescriptionTemplateResponse, len(templates))
	for i := range templates {
		responses[i] = *PrescriptionTemplateToResponse(&templates[i])
	}
	return responses
}

// RecurringAppointmentToResponse lists the next occurrences counted from now.
func RecurringAppointmentToResponse(r *entity.RecurringAppointment, now time.Time) *dto.RecurringAppointmentResponse {
	upcoming := r.Upcoming(now, upcomingOccurrences)
	dates := make([]string, len(upcoming))
	for i, d := range upcoming {
		dates[i] = formatDate(d)
	}

	return &dto.RecurringAppointmentResponse{
		ID:            r.ID,
		PatientID:     r.PatientID,
		DoctorID:      r.DoctorID,
		FrequencyDays: r.FrequencyDays,
		StartDate:     formatDate(r.StartDate),
		EndDate:       formatOptionalDate(r.EndDate),
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Reason:        r.Reason,
		IsActive:      r.IsActive,
		UpcomingDates: dates,
		CreatedAt:     r.CreatedAt,
	}
}

func RecurringAppointmentDetailsToResponses(details []entity.RecurringAppointmentDetail, now time.Time) []dto.RecurringAppointmentResponse {
	responses := make([]dto.RecurringAppointmentResponse, len(details))
	for i := range details {
		response := RecurringAppointmentToResponse(&details[i].RecurringAppointment, now)
		response.PatientName = details[i].PatientName
		response.DoctorName = details[i].DoctorName
		responses[i] = *response
	}
	return responses
}
