package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"datasync/internal/logger"
	"datasync/internal/model"
	"datasync/internal/stats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const maxPlanName = 30

type PlanRepo interface {
	List(ctx context.Context, userID int) ([]model.PersonalPlan, error)
	Get(ctx context.Context, userID, id int) (*model.PersonalPlan, error)
	NameTaken(ctx context.Context, userID int, name string, exceptID int) (bool, error)
	Create(ctx context.Context, p *model.PersonalPlan) error
	Save(ctx context.Context, p *model.PersonalPlan) error
	Delete(ctx context.Context, userID, id int) error
}

type PlanService struct {
	repo      PlanRepo
	users     UserGetter
	defaultTZ string
	now       func() time.Time
}

func NewPlanService(repo PlanRepo, users UserGetter, defaultTZ string) *PlanService {
	return &PlanService{repo: repo, users: users, defaultTZ: defaultTZ, now: time.Now}
}

func (s *PlanService) List(ctx context.Context, userID int) ([]model.PersonalPlan, error) {
	return s.repo.List(ctx, userID)
}

func (s *PlanService) Get(ctx context.Context, userID, id int) (*model.PersonalPlan, error) {
	return s.repo.Get(ctx, userID, id)
}

// Create stores a new in-progress plan. Its validity window runs from today
// until the deadline.
func (s *PlanService) Create(ctx context.Context, userID int, req model.PlanCreateRequest) (*model.PersonalPlan, error) {
	deadline, err := stats.ParseDate(req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("deadline %q: %w", req.Deadline, ErrInvalidInput)
	}
	loc, err := userLocation(ctx, s.users, s.defaultTZ, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	p := &model.PersonalPlan{
		PlanUID:           uuid.NewString(),
		UserID:            userID,
		PlanName:          strings.TrimSpace(req.PlanName),
		TogglProjectID:    req.TogglProjectID,
		RepoID:            req.RepoID,
		DailyPlanDuration: req.DailyPlanDuration,
		TagList:           jsonList(req.TagList),
		ProjectList:       jsonList(req.ProjectList),
		CreateTime:        now,
		UpdateTime:        now,
		Deadline:          deadline,
		PlanStatus:        stats.PlanActive,
		PlanType:          req.PlanType,
	}
	if err := validatePlan(p, loc); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, p); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	logger.Info("plan.created", "uid", userID, "plan_id", p.ID, "name", p.PlanName)
	return p, nil
}

func (s *PlanService) Update(ctx context.Context, userID, id int, patch model.PlanPatch) (*model.PersonalPlan, error) {
	cur, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	next, err := applyPlanPatch(*cur, patch)
	if err != nil {
		return nil, err
	}
	loc, err := userLocation(ctx, s.users, s.defaultTZ, userID)
	if err != nil {
		return nil, err
	}
	if err := validatePlan(&next, loc); err != nil {
		return nil, err
	}
	if next.PlanName != cur.PlanName {
		if err := s.ensureUniqueName(ctx, &next); err != nil {
			return nil, err
		}
	}
	next.UpdateTime = s.now()
	if err := s.repo.Save(ctx, &next); err != nil {
		return nil, err
	}
	logger.Info("plan.updated", "uid", userID, "plan_id", id)
	return &next, nil
}

func (s *PlanService) Delete(ctx context.Context, userID, id int) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	logger.Info("plan.deleted", "uid", userID, "plan_id", id)
	return nil
}

func (s *PlanService) ensureUniqueName(ctx context.Context, p *model.PersonalPlan) error {
	taken, err := s.repo.NameTaken(ctx, p.UserID, p.PlanName, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("plan name %q already used: %w", p.PlanName, ErrConflict)
	}
	return nil
}

// applyPlanPatch merges the set fields of patch into p.
func applyPlanPatch(p model.PersonalPlan, patch model.PlanPatch) (model.PersonalPlan, error) {
	if patch.PlanName != nil {
		p.PlanName = strings.TrimSpace(*patch.PlanName)
	}
	if patch.TogglProjectID != nil {
		p.TogglProjectID = *patch.TogglProjectID
	}
	if patch.RepoID != nil {
		p.RepoID = *patch.RepoID
	}
	if patch.DailyPlanDuration != nil {
		p.DailyPlanDuration = *patch.DailyPlanDuration
	}
	if patch.TagList != nil {
		p.TagList = jsonList(patch.TagList)
	}
	if patch.ProjectList != nil {
		p.ProjectList = jsonList(patch.ProjectList)
	}
	if patch.Deadline != nil {
		d, err := stats.ParseDate(*patch.Deadline)
		if err != nil {
			return p, fmt.Errorf("deadline %q: %w", *patch.Deadline, ErrInvalidInput)
		}
		p.Deadline = d
	}
	if patch.PlanStatus != nil {
		p.PlanStatus = *patch.PlanStatus
	}
	if patch.PlanType != nil {
		p.PlanType = *patch.PlanType
	}
	return p, nil
}

// validatePlan checks p's fields. The deadline is compared with the creation
// day as seen in loc.
func validatePlan(p *model.PersonalPlan, loc *time.Location) error {
	switch {
	case p.PlanName == "":
		return fmt.Errorf("plan name required: %w", ErrInvalidInput)
	case utf8.RuneCountInString(p.PlanName) > maxPlanName:
		return fmt.Errorf("plan name longer than %d: %w", maxPlanName, ErrInvalidInput)
	case !p.DailyPlanDuration.IsPositive():
		return fmt.Errorf("daily plan duration must be positive: %w", ErrInvalidInput)
	case p.PlanStatus != stats.PlanDelayed && p.PlanStatus != stats.PlanCompleted && p.PlanStatus != stats.PlanActive:
		return fmt.Errorf("plan status %d: %w", p.PlanStatus, ErrInvalidInput)
	case p.Deadline.UTC().Format(stats.DateLayout) < stats.DateOf(p.CreateTime.In(loc)):
		return fmt.Errorf("deadline before creation date: %w", ErrInvalidInput)
	}
	return nil
}

// jsonList keeps valid JSON as given and turns anything else into [].
func jsonList(raw json.RawMessage) datatypes.JSON {
	if len(raw) == 0 || !json.Valid(raw) || string(raw) == "null" {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(raw)
}
