package entity

import (
	"time"

	"github.com/google/uuid"
)

// Gender constants
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

// Patient is a person receiving care. UserID is set only when the patient
// has a portal account.
type Patient struct {
	ID                    uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID                *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	FirstName             string     `gorm:"type:varchar(100);not null"`
	LastName              string     `gorm:"type:varchar(100);not null"`
	DateOfBirth           time.Time  `gorm:"type:date;not null"`
	Gender                string     `gorm:"type:varchar(10);not null"`
	Phone                 string     `gorm:"type:varchar(30)"`
	Email                 string     `gorm:"type:varchar(255)"`
	Address               string     `gorm:"type:text"`
	BloodGroup            string     `gorm:"type:varchar(5)"`
	EmergencyContactName  string     `gorm:"type:varchar(150)"`
	EmergencyContactPhone string     `gorm:"type:varchar(30)"`
	MedicalHistory        string     `gorm:"type:text"`
	Allergies             string     `gorm:"type:text"`
	CreatedAt             time.Time  `gorm:"autoCreateTime"`
}

func (Patient) TableName() string {
	return "patients"
}

// FullName returns "First Last".
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
