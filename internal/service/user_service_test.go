package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "messagely/internal/errors"
	"messagely/internal/model"
)

func TestUserService_Get(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&model.User{Username: "alice", FirstName: "Alice"}, nil)

	service := NewUserService(mockRepo, nil)
	user, err := service.Get(context.Background(), "alice")

	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	mockRepo.AssertExpectations(t)
}

func TestUserService_Get_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	service := NewUserService(mockRepo, nil)
	_, err := service.Get(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_All(t *testing.T) {
	users := []model.User{
		{Username: "alice"},
		{Username: "bob"},
	}
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything).Return(users, nil)

	service := NewUserService(mockRepo, nil)
	got, err := service.All(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, users, got)
}
