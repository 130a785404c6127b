package entity

import "github.com/google/uuid"

type Department struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	Floor       *int
}

func (Department) TableName() string {
	return "departments"
}
