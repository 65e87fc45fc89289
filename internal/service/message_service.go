package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "messagely/internal/errors"
	"messagely/internal/model"
	"messagely/internal/repository"
)

// MessageService handles the message lifecycle: create, fetch, list,
// and the single Created -> Read transition.
type MessageService interface {
	Send(ctx context.Context, from, to, body string) (*model.Message, error)
	Get(ctx context.Context, id uuid.UUID) (*model.Message, error)
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error)
	ListSentBy(ctx context.Context, username string) ([]model.Message, error)
	ListReceivedBy(ctx context.Context, username string) ([]model.Message, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
}

// NewMessageService creates a new message service.
func NewMessageService(messages repository.MessageRepository, users repository.UserRepository) MessageService {
	return &messageService{messages: messages, users: users}
}

// Send creates a message from one user to another. Both endpoints must be
// registered users; sending to yourself is allowed.
func (s *messageService) Send(ctx context.Context, from, to, body string) (*model.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, apperrors.ErrEmptyBody
	}

	for _, username := range []string{from, to} {
		if _, err := s.users.FindByUsername(ctx, username); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, fmt.Errorf("resolve user %q: %w", username, err)
		}
	}

	message := &model.Message{
		FromUsername: from,
		ToUsername:   to,
		Body:         body,
		SentAt:       time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}

	return message, nil
}

// Get returns a message with both endpoint profiles joined in.
func (s *messageService) Get(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	message, err := s.messages.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, err
	}
	return message, nil
}

// MarkRead stamps read_at = now and returns the id with the new timestamp.
// Marking is last-write-wins: re-marking an already read message advances
// the timestamp rather than failing. read_at is never cleared.
func (s *messageService) MarkRead(ctx context.Context, id uuid.UUID) (*model.Message, error) {
	now := time.Now().UTC()
	if err := s.messages.MarkRead(ctx, id, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrMessageNotFound
		}
		return nil, err
	}
	return &model.Message{ID: id, ReadAt: &now}, nil
}

// ListSentBy returns the messages sent by a user, recipient profile included.
func (s *messageService) ListSentBy(ctx context.Context, username string) ([]model.Message, error) {
	return s.messages.ListFrom(ctx, username)
}

// ListReceivedBy returns the messages received by a user, sender profile included.
func (s *messageService) ListReceivedBy(ctx context.Context, username string) ([]model.Message, error) {
	return s.messages.ListTo(ctx, username)
}
