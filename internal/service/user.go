package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"datasync/internal/model"
)

type UserRepo interface {
	Get(ctx context.Context, id int) (*model.User, error)
	Save(ctx context.Context, u *model.User) error
}

type UserService struct{ repo UserRepo }

func NewUserService(repo UserRepo) *UserService { return &UserService{repo: repo} }

func (s *UserService) Me(ctx context.Context, userID int) (*model.User, error) {
	return s.repo.Get(ctx, userID)
}

func (s *UserService) UpdateMe(ctx context.Context, userID int, patch model.UserPatch) (*model.User, error) {
	u, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := applyUserPatch(u, patch); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func applyUserPatch(u *model.User, p model.UserPatch) error {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&u.Nickname, p.Nickname)
	set(&u.AvatarURL, p.AvatarURL)
	set(&u.GithubUsername, p.GithubUsername)
	set(&u.TogglEmail, p.TogglEmail)
	set(&u.GithubToken, p.GithubToken)
	set(&u.TogglAPIToken, p.TogglAPIToken)
	if p.Timezone != nil {
		tz := strings.TrimSpace(*p.Timezone)
		if _, err := time.LoadLocation(tz); err != nil || tz == "" {
			return fmt.Errorf("timezone %q: %w", tz, ErrInvalidInput)
		}
		u.Timezone = tz
	}
	return nil
}
