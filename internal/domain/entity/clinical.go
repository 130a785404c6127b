package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AlertSeverity ranks how urgently staff should act on an alert
type AlertSeverity string

const (
	AlertSeverityLow      AlertSeverity = "low"
	AlertSeverityMedium   AlertSeverity = "medium"
	AlertSeverityHigh     AlertSeverity = "high"
	AlertSeverityCritical AlertSeverity = "critical"
)

// ParseAlertSeverity maps a client string to a known severity. An empty
// string means medium.
func ParseAlertSeverity(s string) (AlertSeverity, bool) {
	if s == "" {
		return AlertSeverityMedium, true
	}
	switch sev := AlertSeverity(s); sev {
	case AlertSeverityLow, AlertSeverityMedium, AlertSeverityHigh, AlertSeverityCritical:
		return sev, true
	}
	return "", false
}

// PatientAlert flags something staff must know before treating a patient,
// such as an allergy or a fall risk.
type PatientAlert struct {
	ID        uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID uuid.UUID     `gorm:"type:uuid;not null;index"`
	AlertType string        `gorm:"type:varchar(100);not null"`
	Severity  AlertSeverity `gorm:"type:varchar(20);not null;default:'medium'"`
	Message   string        `gorm:"type:text;not null"`
	IsActive  bool          `gorm:"not null;default:true"`
	CreatedAt time.Time     `gorm:"autoCreateTime"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime"`
}

func (PatientAlert) TableName() string {
	return "patient_alerts"
}

// HealthVital is one set of measurements. Every reading is optional but a
// stored row carries at least one.
type HealthVital struct {
	ID                     uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID              uuid.UUID           `gorm:"type:uuid;not null;index"`
	RecordedDate           time.Time           `gorm:"not null"`
	BloodPressureSystolic  *int
	BloodPressureDiastolic *int
	HeartRate              *int
	Temperature            decimal.NullDecimal `gorm:"type:decimal(4,1)"`
	BloodSugar             decimal.NullDecimal `gorm:"type:decimal(5,1)"`
	Weight                 decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	Height                 decimal.NullDecimal `gorm:"type:decimal(5,2)"`
	OxygenSaturation       *int
	Notes                  string     `gorm:"type:text"`
	RecordedBy             *uuid.UUID `gorm:"type:uuid"`
}

func (HealthVital) TableName() string {
	return "health_vitals"
}

// HasReading reports whether at least one measurement is present.
func (v *HealthVital) HasReading() bool {
	return v.BloodPressureSystolic != nil ||
		v.BloodPressureDiastolic != nil ||
		v.HeartRate != nil ||
		v.Temperature.Valid ||
		v.BloodSugar.Valid ||
		v.Weight.Valid ||
		v.Height.Valid ||
		v.OxygenSaturation != nil
}

type Vaccination struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	VaccineName      string     `gorm:"type:varchar(200);not null"`
	AdministeredDate time.Time  `gorm:"type:date;not null"`
	AdministeredBy   *uuid.UUID `gorm:"type:uuid"`
	BatchNumber      string     `gorm:"type:varchar(50)"`
	NextDoseDate     *time.Time `gorm:"type:date"`
	Notes            string     `gorm:"type:text"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`
}

func (Vaccination) TableName() string {
	return "vaccinations"
}

// VaccinationDetail adds the administering doctor's name when known.
type VaccinationDetail struct {
	Vaccination
	AdministeredByName string
}
