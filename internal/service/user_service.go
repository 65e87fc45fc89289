package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"messagely/internal/cache"
	apperrors "messagely/internal/errors"
	"messagely/internal/model"
	"messagely/internal/repository"
)

const userCacheTTL = 5 * time.Minute

func userCacheKey(username string) string {
	return "user:" + username
}

// UserService exposes directory reads over registered users.
type UserService interface {
	All(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, username string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// All returns every user, ordered by username.
func (s *userService) All(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// Get returns a single profile, serving from cache when possible.
func (s *userService) Get(ctx context.Context, username string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(username)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(username), payload, userCacheTTL)
	}
	return user, nil
}
