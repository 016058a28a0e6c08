// Package store holds the gorm-backed repositories the services read from
// and write to.
package store

import (
	"context"
	"errors"
	"fmt"

	"datasync/internal/model"
	"datasync/internal/stats"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a row scoped to the user does not exist.
var ErrNotFound = errors.New("not found")

type PlanStore struct{ db *gorm.DB }

func NewPlanStore(db *gorm.DB) *PlanStore { return &PlanStore{db: db} }

// ListActivePlans returns the user's in-progress plans as engine definitions.
func (s *PlanStore) ListActivePlans(ctx context.Context, userID int) ([]stats.Plan, error) {
	var rows []model.PersonalPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND plan_status = ?", userID, stats.PlanActive).
		Order("id").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query active plans: %w", err)
	}
	return definitions(rows), nil
}

// ListPlans returns every plan of the user as engine definitions.
func (s *PlanStore) ListPlans(ctx context.Context, userID int) ([]stats.Plan, error) {
	rows, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	return definitions(rows), nil
}

func (s *PlanStore) List(ctx context.Context, userID int) ([]model.PersonalPlan, error) {
	var rows []model.PersonalPlan
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}
	return rows, nil
}

func (s *PlanStore) Get(ctx context.Context, userID, id int) (*model.PersonalPlan, error) {
	var p model.PersonalPlan
	err := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("plan %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query plan: %w", err)
	}
	return &p, nil
}

// NameTaken reports whether another plan of the user already uses name.
func (s *PlanStore) NameTaken(ctx context.Context, userID int, name string, exceptID int) (bool, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.PersonalPlan{}).
		Where("user_id = ? AND plan_name = ? AND id <> ?", userID, name, exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("count plans: %w", err)
	}
	return n > 0, nil
}

func (s *PlanStore) Create(ctx context.Context, p *model.PersonalPlan) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

func (s *PlanStore) Save(ctx context.Context, p *model.PersonalPlan) error {
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update plan: %w", err)
	}
	return nil
}

func (s *PlanStore) Delete(ctx context.Context, userID, id int) error {
	res := s.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.PersonalPlan{})
	if res.Error != nil {
		return fmt.Errorf("delete plan: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("plan %d: %w", id, ErrNotFound)
	}
	return nil
}

func definitions(rows []model.PersonalPlan) []stats.Plan {
	out := make([]stats.Plan, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Definition())
	}
	return out
}
