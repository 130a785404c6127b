package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "no_show"
)

// ParseAppointmentStatus maps a client string to a known status.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch st := AppointmentStatus(s); st {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return st, true
	}
	return "", false
}

type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index"`
	StartTime       string            `gorm:"type:varchar(5);not null"`
	EndTime         string            `gorm:"type:varchar(5);not null"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index"`
	Reason          string            `gorm:"type:text"`
	Notes           string            `gorm:"type:text"`
	IsEmergency     bool              `gorm:"not null;default:false"`
	CreatedAt       time.Time         `gorm:"autoCreateTime"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsFinal reports whether the appointment can no longer change status.
func (a *Appointment) IsFinal() bool {
	return a.Status != AppointmentStatusScheduled
}

// AppointmentDetail is an appointment enriched with display names at read time.
type AppointmentDetail struct {
	Appointment
	PatientName    string
	DoctorName     string
	DepartmentName string
}
