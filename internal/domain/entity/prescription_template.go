package entity

import (
	"time"

	"github.com/google/uuid"
)

// PrescriptionTemplate is a reusable set of medication lines a doctor keeps
// for a recurring condition. Public templates are visible to every doctor.
type PrescriptionTemplate struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DoctorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	TemplateName string    `gorm:"type:varchar(200);not null"`
	Condition    string    `gorm:"type:varchar(200)"`
	Diagnosis    string    `gorm:"type:text"`
	Notes        string    `gorm:"type:text"`
	IsPublic     bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`

	// Relationships
	Medications []PrescriptionTemplateMedication `gorm:"foreignKey:TemplateID"`
}

func (PrescriptionTemplate) TableName() string {
	return "prescription_templates"
}

type PrescriptionTemplateMedication struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TemplateID   uuid.UUID `gorm:"type:uuid;not null;index"`
	MedicationID uuid.UUID `gorm:"type:uuid;not null"`
	Dosage       string    `gorm:"type:varchar(100);not null"`
	Frequency    string    `gorm:"type:varchar(100);not null"`
	Duration     string    `gorm:"type:varchar(100);not null"`
	Instructions string    `gorm:"type:text"`

	// Relationships
	Medication *Medication `gorm:"foreignKey:MedicationID"`
}

func (PrescriptionTemplateMedication) TableName() string {
	return "prescription_template_medications"
}
