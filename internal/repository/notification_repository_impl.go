package repository

import (
	"errors"
	"time"

	"hms-backend/internal/domain/entity"
	domainRepo "hms-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type notificationRepository struct{}

func NewNotificationRepository() domainRepo.NotificationRepository {
	return &notificationRepository{}
}

func (r *notificationRepository) Create(db *gorm.DB, notification *entity.Notification) error {
	return db.Create(notification).Error
}

func (r *notificationRepository) FindByUserID(db *gorm.DB, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	var notifications []entity.Notification
	query := db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}
	if err := query.Order("created_at DESC").Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkRead only touches notifications owned by userID.
func (r *notificationRepository) MarkRead(db *gorm.DB, id, userID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

func (r *notificationRepository) MarkAllRead(db *gorm.DB, userID uuid.UUID) (int64, error) {
	result := db.Model(&entity.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}

type messageRepository struct{}

func NewMessageRepository() domainRepo.MessageRepository {
	return &messageRepository{}
}

func (r *messageRepository) Create(db *gorm.DB, message *entity.Message) error {
	return db.Create(message).Error
}

func (r *messageRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Message, error) {
	var message entity.Message
	err := db.Where("id = ?", id).First(&message).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &message, nil
}

func (r *messageRepository) detailQuery(db *gorm.DB) *gorm.DB {
	return db.Table("messages").
		Select("messages.*, senders.name AS sender_name, receivers.name AS receiver_name").
		Joins("JOIN users AS senders ON senders.id = messages.sender_id").
		Joins("JOIN users AS receivers ON receivers.id = messages.receiver_id")
}

func (r *messageRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.MessageDetail, error) {
	var messages []entity.MessageDetail
	err := r.detailQuery(db).
		Where("messages.sender_id = ? OR messages.receiver_id = ?", userID, userID).
		Order("messages.sent_at DESC").
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) FindConversation(db *gorm.DB, userID, otherUserID uuid.UUID) ([]entity.MessageDetail, error) {
	var messages []entity.MessageDetail
	err := r.detailQuery(db).
		Where("(messages.sender_id = ? AND messages.receiver_id = ?) OR (messages.sender_id = ? AND messages.receiver_id = ?)",
			userID, otherUserID, otherUserID, userID).
		Order("messages.sent_at ASC").
		Scan(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead only succeeds for the receiver of the message.
func (r *messageRepository) MarkRead(db *gorm.DB, id, receiverID uuid.UUID, at time.Time) (int64, error) {
	result := db.Model(&entity.Message{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Updates(map[string]interface{}{"status": entity.MessageStatusRead, "read_at": at})
	return result.RowsAffected, result.Error
}
