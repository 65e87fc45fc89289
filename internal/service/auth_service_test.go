package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"messagely/internal/auth"
	apperrors "messagely/internal/errors"
	"messagely/internal/model"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) (*model.User, error) {
	args := m.Called(ctx, username, at)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		username      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful registration",
			username: "alice",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
			expectedError: nil,
		},
		{
			name:     "username already taken",
			username: "alice",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(&model.User{Username: "alice"}, nil)
			},
			expectedError: apperrors.ErrUserExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), nil, bcrypt.MinCost)
			token, user, err := service.Register(context.Background(), tt.username, "password1", "Alice", "Anderson", "+14155550101")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.username, user.Username)
				assert.NotEmpty(t, user.Password)
				assert.NotEqual(t, "password1", user.Password)
				assert.False(t, user.JoinAt.IsZero())
				assert.Equal(t, user.JoinAt, user.LastLoginAt)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), nil, bcrypt.MinCost)

	_, _, err := service.Register(context.Background(), "alice", "password1", "", "Anderson", "+14155550101")
	assert.ErrorIs(t, err, apperrors.ErrMissingFields)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Authenticate(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)
	assert.NoError(t, err)

	joined := time.Now().UTC().Add(-24 * time.Hour)
	stored := &model.User{
		Username:    "alice",
		Password:    string(hashed),
		FirstName:   "Alice",
		LastName:    "Anderson",
		Phone:       "+14155550101",
		JoinAt:      joined,
		LastLoginAt: joined,
	}

	tests := []struct {
		name          string
		username      string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login stamps last_login_at",
			username: "alice",
			password: "password1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
				m.On("UpdateLastLogin", mock.Anything, "alice", mock.AnythingOfType("time.Time")).
					Return(&model.User{Username: "alice", LastLoginAt: time.Now().UTC()}, nil)
			},
			expectedError: nil,
		},
		{
			name:     "unknown username",
			username: "mallory",
			password: "password1",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "mallory").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "nope",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "alice").Return(stored, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), nil, bcrypt.MinCost)
			token, user, err := service.Authenticate(context.Background(), tt.username, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
				// a failed login must not touch last_login_at
				mockRepo.AssertNotCalled(t, "UpdateLastLogin", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.Equal(t, tt.username, user.Username)
				assert.True(t, user.LastLoginAt.After(joined))
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate_UnifiedError(t *testing.T) {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password1"), bcrypt.MinCost)

	unknownRepo := new(MockUserRepository)
	unknownRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	wrongPassRepo := new(MockUserRepository)
	wrongPassRepo.On("FindByUsername", mock.Anything, "alice").
		Return(&model.User{Username: "alice", Password: string(hashed)}, nil)

	signer := auth.NewJWTService("test-secret")
	_, _, errUnknown := NewAuthService(unknownRepo, signer, nil, bcrypt.MinCost).
		Authenticate(context.Background(), "ghost", "password1")
	_, _, errWrongPass := NewAuthService(wrongPassRepo, signer, nil, bcrypt.MinCost).
		Authenticate(context.Background(), "alice", "nope")

	// unknown username and wrong password are indistinguishable to callers
	assert.Equal(t, errUnknown, errWrongPass)
}
