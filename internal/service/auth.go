package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"datasync/internal/logger"
	"datasync/internal/model"

	"golang.org/x/crypto/bcrypt"
)

type Credentials interface {
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	TouchLogin(ctx context.Context, id int, at time.Time) error
}

type AuthService struct{ users Credentials }

func NewAuthService(users Credentials) *AuthService { return &AuthService{users: users} }

// Login checks the password against the stored bcrypt hash. Unknown users,
// disabled users and wrong passwords all yield ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if u.Status == 0 {
		return nil, fmt.Errorf("user disabled: %w", ErrUnauthorized)
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrUnauthorized
	}
	if err := s.users.TouchLogin(ctx, u.ID, time.Now()); err != nil {
		logger.Warn("login.touch.failed", "uid", u.ID, "err", err)
	}
	return u, nil
}
