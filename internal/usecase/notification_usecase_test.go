package usecase

import (
	"context"
	"testing"
	"time"

	"hms-backend/internal/delivery/dto"
	"hms-backend/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubMessageRepo struct {
	messages map[uuid.UUID]*entity.Message
}

func (r *stubMessageRepo) Create(db *gorm.DB, message *entity.Message) error {
	message.ID = uuid.New()
	r.messages[message.ID] = message
	return nil
}

func (r *stubMessageRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Message, error) {
	return r.messages[id], nil
}

func (r *stubMessageRepo) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.MessageDetail, error) {
	var out []entity.MessageDetail
	for _, m := range r.messages {
		if m.SenderID == userID || m.ReceiverID == userID {
			out = append(out, entity.MessageDetail{Message: *m})
		}
	}
	return out, nil
}

func (r *stubMessageRepo) FindConversation(db *gorm.DB, userID, otherUserID uuid.UUID) ([]entity.MessageDetail, error) {
	return nil, nil
}

func (r *stubMessageRepo) MarkRead(db *gorm.DB, id, receiverID uuid.UUID, at time.Time) (int64, error) {
	m, ok := r.messages[id]
	if !ok || m.ReceiverID != receiverID {
		return 0, nil
	}
	m.Status = entity.MessageStatusRead
	m.ReadAt = &at
	return 1, nil
}

type stubNotificationRepo struct {
	notifications []*entity.Notification
}

func (r *stubNotificationRepo) Create(db *gorm.DB, notification *entity.Notification) error {
	notification.ID = uuid.New()
	r.notifications = append(r.notifications, notification)
	return nil
}

func (r *stubNotificationRepo) FindByUserID(db *gorm.DB, userID uuid.UUID, unreadOnly bool) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && (!unreadOnly || !n.IsRead) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *stubNotificationRepo) MarkRead(db *gorm.DB, id, userID uuid.UUID) (int64, error) {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.IsRead = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *stubNotificationRepo) MarkAllRead(db *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range r.notifications {
		if item.UserID == userID && !item.IsRead {
			item.IsRead = true
			n++
		}
	}
	return n, nil
}

func TestSendMessage_OnlyReceiverMarksRead(t *testing.T) {
	sender := &entity.User{ID: uuid.New(), Username: "dr.grey"}
	receiver := &entity.User{ID: uuid.New(), Username: "jane"}
	messages := &stubMessageRepo{messages: map[uuid.UUID]*entity.Message{}}
	recorder := &stubRecorder{}
	uc := NewMessageUsecase(&stubTransactor{}, testLogger(), messages, newStubUserRepo(sender, receiver), recorder)
	ctx := context.Background()

	sent, err := uc.Send(ctx, sender.ID, &dto.SendMessageRequest{ReceiverID: receiver.ID, Content: "Your results are in"})
	require.NoError(t, err)
	assert.Equal(t, sender.ID, sent.SenderID)
	assert.Equal(t, string(entity.MessageStatusSent), sent.Status)

	require.Len(t, recorder.notifications, 1)
	assert.Equal(t, receiver.ID, recorder.notifications[0].UserID)

	err = uc.MarkRead(ctx, sender.ID, sent.ID)
	assert.ErrorIs(t, err, ErrNotMessageReceiver)

	require.NoError(t, uc.MarkRead(ctx, receiver.ID, sent.ID))
	assert.Equal(t, entity.MessageStatusRead, messages.messages[sent.ID].Status)
	assert.NotNil(t, messages.messages[sent.ID].ReadAt)

	assert.ErrorIs(t, uc.MarkRead(ctx, receiver.ID, uuid.New()), ErrMessageNotFound)
}

func TestSendMessage_UnknownReceiver(t *testing.T) {
	messages := &stubMessageRepo{messages: map[uuid.UUID]*entity.Message{}}
	uc := NewMessageUsecase(&stubTransactor{}, testLogger(), messages, newStubUserRepo(), &stubRecorder{})

	_, err := uc.Send(context.Background(), uuid.New(), &dto.SendMessageRequest{ReceiverID: uuid.New(), Content: "hi"})
	assert.ErrorIs(t, err, ErrReceiverNotFound)
	assert.Empty(t, messages.messages)
}

func TestNotifications_ScopedToOwner(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()
	repo := &stubNotificationRepo{}
	_ = repo.Create(nil, &entity.Notification{UserID: owner, Title: "a"})
	_ = repo.Create(nil, &entity.Notification{UserID: owner, Title: "b"})
	_ = repo.Create(nil, &entity.Notification{UserID: other, Title: "c"})

	uc := NewNotificationUsecase(&stubTransactor{}, testLogger(), repo, newStubUserRepo(), &stubRecorder{})
	ctx := context.Background()

	err := uc.MarkRead(ctx, other, repo.notifications[0].ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	require.NoError(t, uc.MarkRead(ctx, owner, repo.notifications[0].ID))

	unread, err := uc.List(ctx, owner, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	result, err := uc.MarkAllRead(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Updated)

	unread, err = uc.List(ctx, other, true)
	require.NoError(t, err)
	assert.Len(t, unread, 1, "other users' notifications are untouched")
}
