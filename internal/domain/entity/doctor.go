package entity

import "github.com/google/uuid"

// Doctor holds the clinical profile of a user with the doctor role.
type Doctor struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID            uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	DepartmentID      *uuid.UUID `gorm:"type:uuid;index"`
	Specialization    string     `gorm:"type:varchar(150);not null"`
	LicenseNumber     string     `gorm:"type:varchar(100);uniqueIndex;not null"`
	YearsOfExperience *int

	// Relationships
	User       User        `gorm:"foreignKey:UserID"`
	Department *Department `gorm:"foreignKey:DepartmentID"`
}

func (Doctor) TableName() string {
	return "doctors"
}
