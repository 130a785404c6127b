package entity

import (
	"time"

	"github.com/google/uuid"
)

type Room struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomNumber   string     `gorm:"type:varchar(20);uniqueIndex;not null"`
	DepartmentID *uuid.UUID `gorm:"type:uuid;index"`
	RoomType     string     `gorm:"type:varchar(50);not null"`
	Floor        int        `gorm:"not null"`
	Capacity     int        `gorm:"not null;default:1"`
}

func (Room) TableName() string {
	return "rooms"
}

// BedStatus represents the occupancy state of a bed
type BedStatus string

const (
	BedStatusAvailable   BedStatus = "available"
	BedStatusOccupied    BedStatus = "occupied"
	BedStatusMaintenance BedStatus = "maintenance"
)

type Bed struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	BedNumber    string     `gorm:"type:varchar(20);not null"`
	Status       BedStatus  `gorm:"type:varchar(20);not null;default:'available'"`
	PatientID    *uuid.UUID `gorm:"type:uuid;index"`
	AssignedDate *time.Time

	// Relationships
	Room Room `gorm:"foreignKey:RoomID"`
}

func (Bed) TableName() string {
	return "beds"
}
