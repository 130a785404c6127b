package entity

import (
	"time"

	"github.com/google/uuid"
)

type Prescription struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PatientID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	DoctorID         uuid.UUID  `gorm:"type:uuid;not null;index"`
	AppointmentID    *uuid.UUID `gorm:"type:uuid"`
	PrescriptionDate time.Time  `gorm:"not null"`
	Diagnosis        string     `gorm:"type:text"`
	Notes            string     `gorm:"type:text"`
	CreatedAt        time.Time  `gorm:"autoCreateTime"`

	// Relationships
	Medications []PrescriptionMedication `gorm:"foreignKey:PrescriptionID"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// PrescriptionMedication is one medication line of a prescription.
type PrescriptionMedication struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PrescriptionID uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicationID   uuid.UUID `gorm:"type:uuid;not null"`
	Dosage         string    `gorm:"type:varchar(100);not null"`
	Frequency      string    `gorm:"type:varchar(100);not null"`
	Duration       string    `gorm:"type:varchar(100);not null"`
	Instructions   string    `gorm:"type:text"`

	// Relationships
	Medication *Medication `gorm:"foreignKey:MedicationID"`
}

func (PrescriptionMedication) TableName() string {
	return "prescription_medications"
}

// PrescriptionDetail is a prescription enriched with display names at read time.
type PrescriptionDetail struct {
	Prescription
	PatientName string
	DoctorName  string
}
