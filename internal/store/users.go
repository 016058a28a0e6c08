package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"datasync/internal/model"

	"gorm.io/gorm"
)

type UserStore struct{ db *gorm.DB }

func NewUserStore(db *gorm.DB) *UserStore { return &UserStore{db: db} }

func (s *UserStore) Get(ctx context.Context, id int) (*model.User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.first(ctx, "username = ?", username)
}

func (s *UserStore) first(ctx context.Context, query string, arg any) (*model.User, error) {
	var u model.User
	err := s.db.WithContext(ctx).Where(query, arg).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}
	return &u, nil
}

func (s *UserStore) Save(ctx context.Context, u *model.User) error {
	if err := s.db.WithContext(ctx).Save(u).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *UserStore) TouchLogin(ctx context.Context, id int, at time.Time) error {
	err := s.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).
		Update("last_login_time", at).Error
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	return nil
}
