package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"messagely/internal/auth"
	"messagely/internal/cache"
	apperrors "messagely/internal/errors"
	"messagely/internal/model"
	"messagely/internal/repository"
)

// AuthService handles registration and authentication.
type AuthService interface {
	Register(ctx context.Context, username, password, firstName, lastName, phone string) (token string, user *model.User, err error)
	Authenticate(ctx context.Context, username, password string) (token string, user *model.User, err error)
}

type authService struct {
	users      repository.UserRepository
	signer     auth.TokenSigner
	cache      *cache.Client
	bcryptCost int
}

// NewAuthService creates a new authentication service. bcryptCost is the
// configured work factor; out-of-range values fall back to bcrypt's default.
func NewAuthService(users repository.UserRepository, signer auth.TokenSigner, cache *cache.Client, bcryptCost int) AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &authService{
		users:      users,
		signer:     signer,
		cache:      cache,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new user with a hashed password and returns a signed
// token plus the created profile. join_at and last_login_at are both set
// to the registration time.
func (s *authService) Register(ctx context.Context, username, password, firstName, lastName, phone string) (string, *model.User, error) {
	if username == "" || password == "" || firstName == "" || lastName == "" || phone == "" {
		return "", nil, apperrors.ErrMissingFields
	}

	existing, err := s.users.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return "", nil, apperrors.ErrUserExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check username availability: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		Username:    username,
		Password:    string(hashed),
		FirstName:   firstName,
		LastName:    lastName,
		Phone:       phone,
		JoinAt:      now,
		LastLoginAt: now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return "", nil, fmt.Errorf("create user: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(username))

	token, err := s.signer.GenerateToken(username)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}

// Authenticate verifies the password and, on success, stamps last_login_at
// and returns a fresh token with the updated profile. Unknown usernames and
// wrong passwords produce the same error.
func (s *authService) Authenticate(ctx context.Context, username, password string) (string, *model.User, error) {
	if username == "" || password == "" {
		return "", nil, apperrors.ErrMissingFields
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	// bcrypt's comparison is constant-time
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	user, err = s.users.UpdateLastLogin(ctx, username, time.Now().UTC())
	if err != nil {
		return "", nil, fmt.Errorf("update last login: %w", err)
	}
	_ = s.cache.Delete(ctx, userCacheKey(username))

	token, err := s.signer.GenerateToken(username)
	if err != nil {
		return "", nil, fmt.Errorf("sign token: %w", err)
	}

	return token, user, nil
}
