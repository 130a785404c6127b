package entity

import (
	"time"

	"github.com/google/uuid"
)

// DoctorFeedback is a patient's rating of a doctor, optionally tied to the
// appointment it rates.
type DoctorFeedback struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	AppointmentID *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Rating        int        `gorm:"not null"`
	Comment       string     `gorm:"type:text"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (DoctorFeedback) TableName() string {
	return "doctor_feedback"
}

type DoctorFeedbackDetail struct {
	DoctorFeedback
	PatientName string
}
