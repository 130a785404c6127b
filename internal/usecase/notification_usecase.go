package usecase

import (
	"context"
	"errors"
	"time"

	"hms-backend/internal/converter"
	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"
	"hms-backend/internal/domain/repository"
	"hms-backend/internal/infrastructure/database"
	"hms-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrNotMessageReceiver   = errors.New("only the receiver can mark a message as read")
	ErrReceiverNotFound     = errors.New("receiver not found")
)

type NotificationUsecase interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]dto.NotificationResponse, error)
	Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (*dto.MarkAllReadResponse, error)
}

type notificationUsecase struct {
	tx               database.Transactor
	log              *logrus.Logger
	notificationRepo repository.NotificationRepository
	userRepo         repository.UserRepository
	events           service.EventRecorder
}

func NewNotificationUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	notificationRepo repository.NotificationRepository,
	userRepo repository.UserRepository,
	events service.EventRecorder,
) NotificationUsecase {
	return &notificationUsecase{
		tx:               tx,
		log:              log,
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		events:           events,
	}
}

func (u *notificationUsecase) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]dto.NotificationResponse, error) {
	notifications, err := u.notificationRepo.FindByUserID(u.tx.Conn(ctx), userID, unreadOnly)
	if err != nil {
		u.log.Warnf("Failed to list notifications: %+v", err)
		return nil, err
	}
	return converter.NotificationsToResponses(notifications), nil
}

func (u *notificationUsecase) Create(ctx context.Context, req *dto.CreateNotificationRequest) (*dto.NotificationResponse, error) {
	db := u.tx.Conn(ctx)

	user, err := u.userRepo.FindByID(db, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	notification, err := u.events.Notify(ctx, db, service.NotificationInput{
		UserID:    req.UserID,
		Type:      req.Type,
		Title:     req.Title,
		Message:   req.Message,
		RelatedID: req.RelatedID,
	})
	if err != nil {
		return nil, err
	}

	return converter.NotificationToResponse(notification), nil
}

// MarkRead only touches notifications owned by userID; anything else looks
// like a missing notification.
func (u *notificationUsecase) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	affected, err := u.notificationRepo.MarkRead(u.tx.Conn(ctx), id, userID)
	if err != nil {
		u.log.Warnf("Failed to mark notification read: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (u *notificationUsecase) MarkAllRead(ctx context.Context, userID uuid.UUID) (*dto.MarkAllReadResponse, error) {
	affected, err := u.notificationRepo.MarkAllRead(u.tx.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to mark notifications read: %+v", err)
		return nil, err
	}
	return &dto.MarkAllReadResponse{Updated: affected}, nil
}

type MessageUsecase interface {
	List(ctx context.Context, userID uuid.UUID) ([]dto.MessageResponse, error)
	Conversation(ctx context.Context, userID, otherUserID uuid.UUID) ([]dto.MessageResponse, error)
	Send(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
}

type messageUsecase struct {
	tx          database.Transactor
	log         *logrus.Logger
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	events      service.EventRecorder
	now         func() time.Time
}

func NewMessageUsecase(
	tx database.Transactor,
	log *logrus.Logger,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	events service.EventRecorder,
) MessageUsecase {
	return &messageUsecase{
		tx:          tx,
		log:         log,
		messageRepo: messageRepo,
		userRepo:    userRepo,
		events:      events,
		now:         time.Now,
	}
}

func (u *messageUsecase) List(ctx context.Context, userID uuid.UUID) ([]dto.MessageResponse, error) {
	messages, err := u.messageRepo.FindByUserID(u.tx.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list messages: %+v", err)
		return nil, err
	}
	return converter.MessageDetailsToResponses(messages), nil
}

func (u *messageUsecase) Conversation(ctx context.Context, userID, otherUserID uuid.UUID) ([]dto.MessageResponse, error) {
	messages, err := u.messageRepo.FindConversation(u.tx.Conn(ctx), userID, otherUserID)
	if err != nil {
		u.log.Warnf("Failed to load conversation: %+v", err)
		return nil, err
	}
	return converter.MessageDetailsToResponses(messages), nil
}

// Send delivers a direct message from the caller and drops a notification
// in the receiver's inbox.
func (u *messageUsecase) Send(ctx context.Context, senderID uuid.UUID, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	message := &entity.Message{
		SenderID:   senderID,
		ReceiverID: req.ReceiverID,
		Subject:    req.Subject,
		Content:    req.Content,
		Status:     entity.MessageStatusSent,
		PatientID:  req.PatientID,
		SentAt:     u.now(),
	}

	err := u.tx.WithinTransaction(ctx, func(tx *gorm.DB) error {
		receiver, err := u.userRepo.FindByID(tx, req.ReceiverID)
		if err != nil {
			u.log.Warnf("Failed to find receiver: %+v", err)
			return err
		}
		if receiver == nil {
			return ErrReceiverNotFound
		}

		if err := u.messageRepo.Create(tx, message); err != nil {
			if isForeignKeyError(err, "patient") {
				return ErrPatientNotFound
			}
			u.log.Warnf("Failed to create message: %+v", err)
			return err
		}

		title := "New message"
		if message.Subject != "" {
			title = message.Subject
		}
		_, err = u.events.Notify(ctx, tx, service.NotificationInput{
			UserID:    receiver.ID,
			Type:      "message",
			Title:     title,
			Message:   message.Content,
			RelatedID: &message.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Infof("Message sent: %s (from=%s, to=%s)", message.ID, senderID, req.ReceiverID)
	return converter.MessageToResponse(message), nil
}

func (u *messageUsecase) MarkRead(ctx context.Context, userID, id uuid.UUID) error {
	db := u.tx.Conn(ctx)

	message, err := u.messageRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find message: %+v", err)
		return err
	}
	if message == nil {
		return ErrMessageNotFound
	}
	if message.ReceiverID != userID {
		return ErrNotMessageReceiver
	}

	if _, err := u.messageRepo.MarkRead(db, id, userID, u.now()); err != nil {
		u.log.Warnf("Failed to mark message read: %+v", err)
		return err
	}
	return nil
}
