package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventType identifies what happened in a patient's care timeline
type EventType string

const (
	EventAppointmentScheduled EventType = "appointment_scheduled"
	EventAppointmentCompleted EventType = "appointment_completed"
	EventAppointmentCancelled EventType = "appointment_cancelled"
	EventPrescriptionIssued   EventType = "prescription_issued"
	EventLabTestOrdered       EventType = "lab_test_ordered"
	EventLabResultsReported   EventType = "lab_results_reported"
	EventBedAssigned          EventType = "bed_assigned"
	EventBillGenerated        EventType = "bill_generated"
	EventPaymentReceived      EventType = "payment_received"
	EventAlertCreated         EventType = "alert_created"
	EventVaccinationGiven     EventType = "vaccination_administered"
	EventReferralCreated      EventType = "referral_created"
)

// PatientEvent is an append-only timeline entry. Rows never carry display
// names; readers resolve them through PatientEventDetail.
type PatientEvent struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	EventType   EventType  `gorm:"type:varchar(50);not null;index"`
	EventDate   time.Time  `gorm:"not null;index"`
	Title       string     `gorm:"type:varchar(255);not null"`
	Description string     `gorm:"type:text"`
	RelatedID   *uuid.UUID `gorm:"type:uuid"`
	ActorUserID *uuid.UUID `gorm:"type:uuid"`
	Metadata    JSON       `gorm:"type:jsonb"`
	CreatedAt   time.Time  `gorm:"autoCreateTime"`
}

func (PatientEvent) TableName() string {
	return "patient_events"
}

// PatientEventDetail joins the names of the patient and the acting user.
type PatientEventDetail struct {
	PatientEvent
	PatientName string
	ActorName   string
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}
