package entity

import (
	"time"

	"github.com/google/uuid"
)

// RecurringAppointment describes a standing slot that repeats every
// FrequencyDays from StartDate until EndDate, if any.
type RecurringAppointment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	DoctorID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	FrequencyDays int        `gorm:"not null"`
	StartDate     time.Time  `gorm:"type:date;not null"`
	EndDate       *time.Time `gorm:"type:date"`
	StartTime     string     `gorm:"type:varchar(5);not null"`
	EndTime       string     `gorm:"type:varchar(5);not null"`
	Reason        string     `gorm:"type:text"`
	IsActive      bool       `gorm:"not null;default:true"`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
}

func (RecurringAppointment) TableName() string {
	return "recurring_appointments"
}

// Upcoming returns up to n occurrence dates on or after the calendar day of
// from. Inactive series have none.
func (r *RecurringAppointment) Upcoming(from time.Time, n int) []time.Time {
	if !r.IsActive || r.FrequencyDays < 1 || n < 1 {
		return nil
	}

	start := dateOnly(r.StartDate)
	day := dateOnly(from)

	next := start
	if day.After(start) {
		elapsed := int(day.Sub(start).Hours() / 24)
		steps := (elapsed + r.FrequencyDays - 1) / r.FrequencyDays
		next = start.AddDate(0, 0, steps*r.FrequencyDays)
	}

	var dates []time.Time
	for len(dates) < n {
		if r.EndDate != nil && next.After(dateOnly(*r.EndDate)) {
			break
		}
		dates = append(dates, next)
		next = next.AddDate(0, 0, r.FrequencyDays)
	}
	return dates
}

type RecurringAppointmentDetail struct {
	RecurringAppointment
	PatientName string
	DoctorName  string
}
