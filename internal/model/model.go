package model

import (
	"encoding/json"
	"time"

	"datasync/internal/stats"

	"github.com/shopspring/decimal"
)

type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// UserPatch lists the profile fields a user may change. Nil means unchanged.
type UserPatch struct {
	Nickname       *string `json:"nickname"`
	AvatarURL      *string `json:"avatar_url"`
	GithubUsername *string `json:"github_username"`
	TogglEmail     *string `json:"toggl_email"`
	GithubToken    *string `json:"github_token"`
	TogglAPIToken  *string `json:"toggl_api_token"`
	Timezone       *string `json:"timezone"`
}

type PlanCreateRequest struct {
	PlanName          string          `json:"plan_name" binding:"required"`
	TogglProjectID    int64           `json:"toggl_project_id"`
	RepoID            int64           `json:"repo_id"`
	DailyPlanDuration decimal.Decimal `json:"daily_plan_duration"`
	TagList           json.RawMessage `json:"tag_list"`
	ProjectList       json.RawMessage `json:"project_list"`
	Deadline          string          `json:"deadline" binding:"required"`
	PlanType          int             `json:"plan_type"`
}

// PlanPatch lists the plan fields that can be updated. Nil means unchanged.
type PlanPatch struct {
	PlanName          *string          `json:"plan_name"`
	TogglProjectID    *int64           `json:"toggl_project_id"`
	RepoID            *int64           `json:"repo_id"`
	DailyPlanDuration *decimal.Decimal `json:"daily_plan_duration"`
	TagList           json.RawMessage  `json:"tag_list"`
	ProjectList       json.RawMessage  `json:"project_list"`
	Deadline          *string          `json:"deadline"`
	PlanStatus        *int             `json:"plan_status"`
	PlanType          *int             `json:"plan_type"`
}

// DailyStatusView is one day of the heatmap range response.
type DailyStatusView struct {
	RecordDate string                      `json:"record_date"`
	PlanStatus map[string]stats.PlanStatus `json:"plan_status"`
	HeatLevel  int                         `json:"heat_level"`
}
