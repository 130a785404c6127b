package repository

import (
	"errors"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type departmentRepository struct{}

func NewDepartmentRepository() domainRepo.DepartmentRepository {
	return &departmentRepository{}
}

func (r *departmentRepository) Create(db *gorm.DB, department *entity.Department) error {
	return db.Create(department).Error
}

func (r *departmentRepository) FindAll(db *gorm.DB) ([]entity.Department, error) {
	var departments []entity.Department
	if err := db.Order("name ASC").Find(&departments).Error; err != nil {
		return nil, err
	}
	return departments, nil
}

type roomRepository struct{}

func NewRoomRepository() domainRepo.RoomRepository {
	return &roomRepository{}
}

func (r *roomRepository) Create(db *gorm.DB, room *entity.Room) error {
	return db.Create(room).Error
}

func (r *roomRepository) FindAll(db *gorm.DB) ([]entity.Room, error) {
	var rooms []entity.Room
	if err := db.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

type bedRepository struct{}

func NewBedRepository() domainRepo.BedRepository {
	return &bedRepository{}
}

func (r *bedRepository) Create(db *gorm.DB, bed *entity.Bed) error {
	return db.Omit("Room").Create(bed).Error
}

func (r *bedRepository) FindAll(db *gorm.DB) ([]entity.Bed, error) {
	var beds []entity.Bed
	err := db.Preload("Room").
		Joins("JOIN rooms ON rooms.id = beds.room_id").
		Order("rooms.room_number ASC, beds.bed_number ASC").
		Find(&beds).Error
	if err != nil {
		return nil, err
	}
	return beds, nil
}

func (r *bedRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Bed, error) {
	var bed entity.Bed
	err := db.Preload("Room").Where("id = ?", id).First(&bed).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &bed, nil
}

func (r *bedRepository) Update(db *gorm.DB, bed *entity.Bed) error {
	return db.Omit("Room").Save(bed).Error
}

func (r *bedRepository) Occupancy(db *gorm.DB) (*entity.BedOccupancy, error) {
	var occupancy entity.BedOccupancy
	err := db.Model(&entity.Bed{}).
		Select("COUNT(*) AS total, COUNT(*) FILTER (WHERE status = ?) AS occupied", entity.BedStatusOccupied).
		Scan(&occupancy).Error
	if err != nil {
		return nil, err
	}
	return &occupancy, nil
}
