package repository

import (
	"time"

	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(db *gorm.DB, notification *entity.Notification) error
	FindByUserID(db *gorm.DB, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error)
	MarkRead(db *gorm.DB, id, userID uuid.UUID) (int64, error)
	MarkAllRead(db *gorm.DB, userID uuid.UUID) (int64, error)
}

type MessageRepository interface {
	Create(db *gorm.DB, message *entity.Message) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Message, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.MessageDetail, error)
	FindConversation(db *gorm.DB, userID, otherUserID uuid.UUID) ([]entity.MessageDetail, error)
	MarkRead(db *gorm.DB, id, receiverID uuid.UUID, at time.Time) (int64, error)
}
