package entity

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type      string     `gorm:"type:varchar(50);not null"`
	Title     string     `gorm:"type:varchar(255);not null"`
	Message   string     `gorm:"type:text;not null"`
	RelatedID *uuid.UUID `gorm:"type:uuid"`
	IsRead    bool       `gorm:"not null;default:false"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

// MessageStatus represents delivery state of a direct message
type MessageStatus string

const (
	MessageStatusSent      MessageStatus = "sent"
	MessageStatusDelivered MessageStatus = "delivered"
	MessageStatusRead      MessageStatus = "read"
)

type Message struct {
	ID         uuid.UUID     `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SenderID   uuid.UUID     `gorm:"type:uuid;not null;index"`
	ReceiverID uuid.UUID     `gorm:"type:uuid;not null;index"`
	Subject    string        `gorm:"type:varchar(255)"`
	Content    string        `gorm:"type:text;not null"`
	Status     MessageStatus `gorm:"type:varchar(20);not null;default:'sent'"`
	PatientID  *uuid.UUID    `gorm:"type:uuid"`
	SentAt     time.Time     `gorm:"not null"`
	ReadAt     *time.Time
}

func (Message) TableName() string {
	return "messages"
}

// MessageDetail carries sender and receiver names resolved at read time.
type MessageDetail struct {
	Message
	SenderName   string
	ReceiverName string
}
