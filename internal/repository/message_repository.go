package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"messagely/internal/model"
)

// MessageRepository defines message persistence operations.
type MessageRepository interface {
	Create(ctx context.Context, message *model.Message) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error
	ListFrom(ctx context.Context, username string) ([]model.Message, error)
	ListTo(ctx context.Context, username string) ([]model.Message, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// FindByID loads a message with both endpoint profiles preloaded.
func (r *messageRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	var message model.Message
	if err := r.db.WithContext(ctx).
		Preload("FromUser").
		Preload("ToUser").
		Where("id = ?", id).
		First(&message).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

// MarkRead stamps read_at as a single UPDATE. Repeated calls advance the
// timestamp (last write wins); read_at is never cleared.
func (r *messageRepository) MarkRead(ctx context.Context, id uuid.UUID, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Message{}).
		Where("id = ?", id).
		Update("read_at", at)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListFrom returns messages sent by username, recipient profile preloaded.
func (r *messageRepository) ListFrom(ctx context.Context, username string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Preload("ToUser").
		Where("from_username = ?", username).
		Order("sent_at asc, id asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// ListTo returns messages received by username, sender profile preloaded.
func (r *messageRepository) ListTo(ctx context.Context, username string) ([]model.Message, error) {
	var messages []model.Message
	if err := r.db.WithContext(ctx).
		Preload("FromUser").
		Where("to_username = ?", username).
		Order("sent_at asc, id asc").
		Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}
