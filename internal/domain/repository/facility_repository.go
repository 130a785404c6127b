package repository

import (
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(db *gorm.DB, department *entity.Department) error
	FindAll(db *gorm.DB) ([]entity.Department, error)
}

type RoomRepository interface {
	Create(db *gorm.DB, room *entity.Room) error
	FindAll(db *gorm.DB) ([]entity.Room, error)
}

type BedRepository interface {
	Create(db *gorm.DB, bed *entity.Bed) error
	FindAll(db *gorm.DB) ([]entity.Bed, error)
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Bed, error)
	Update(db *gorm.DB, bed *entity.Bed) error
	Occupancy(db *gorm.DB) (*entity.BedOccupancy, error)
}
