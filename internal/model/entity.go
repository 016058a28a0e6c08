package model

import (
	"time"

	"datasync/internal/stats"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type User struct {
	ID               int        `gorm:"primaryKey" json:"id"`
	Username         string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password         string     `gorm:"size:255;not null" json:"-"`
	Email            string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Nickname         string     `gorm:"size:50" json:"nickname"`
	AvatarURL        string     `gorm:"size:255" json:"avatar_url"`
	GithubUsername   string     `gorm:"size:50" json:"github_username"`
	GithubToken      string     `gorm:"size:255" json:"-"`
	TogglEmail       string     `gorm:"size:100" json:"toggl_email"`
	TogglAPIToken    string     `gorm:"column:toggl_api_token;size:255" json:"-"`
	TogglWorkspaceID *int       `json:"toggl_workspace_id,omitempty"`
	Status           int        `gorm:"not null;default:1" json:"status"`
	IsAdmin          bool       `gorm:"not null;default:false" json:"is_admin"`
	LastLoginTime    *time.Time `json:"last_login_time,omitempty"`
	Timezone         string     `gorm:"size:50;default:Asia/Shanghai" json:"timezone"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type PersonalPlan struct {
	ID                int             `gorm:"primaryKey" json:"id"`
	PlanUID           string          `gorm:"column:plan_uid;size:36;not null" json:"plan_uid"`
	UserID            int             `gorm:"not null;uniqueIndex:uk_user_plan_name,priority:1" json:"user_id"`
	PlanName          string          `gorm:"size:30;not null;uniqueIndex:uk_user_plan_name,priority:2" json:"plan_name"`
	TogglProjectID    int64           `gorm:"not null" json:"toggl_project_id"`
	RepoID            int64           `gorm:"not null" json:"repo_id"`
	DailyPlanDuration decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"daily_plan_duration"`
	TagList           datatypes.JSON  `json:"tag_list"`
	ProjectList       datatypes.JSON  `json:"project_list"`
	CreateTime        time.Time       `gorm:"autoCreateTime" json:"create_time"`
	UpdateTime        time.Time       `gorm:"autoUpdateTime" json:"update_time"`
	Deadline          time.Time       `gorm:"type:date;not null" json:"deadline"`
	PlanStatus        int             `gorm:"not null" json:"plan_status"`
	PlanType          int             `gorm:"not null" json:"plan_type"`
}

// Definition converts the row into the engine's plan view.
func (p PersonalPlan) Definition() stats.Plan {
	return stats.Plan{
		ID:                 p.ID,
		UserID:             p.UserID,
		Name:               p.PlanName,
		ProjectID:          p.TogglProjectID,
		DailyTargetMinutes: p.DailyPlanDuration,
		Category:           p.PlanType,
		ValidFrom:          p.CreateTime,
		ValidUntil:         p.Deadline,
		Status:             p.PlanStatus,
	}
}

type DailyStatus struct {
	RecordID        int             `gorm:"primaryKey;autoIncrement"`
	UserID          int             `gorm:"not null;uniqueIndex:uk_user_record_date,priority:1"`
	RecordDate      time.Time       `gorm:"type:date;not null;uniqueIndex:uk_user_record_date,priority:2"`
	PlanStatus      datatypes.JSON  `gorm:"not null"`
	HeatLevel       int             `gorm:"not null"`
	TotalDuration   decimal.Decimal `gorm:"type:decimal(10,2)"`
	IsCoreCompleted bool            `gorm:"not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TogglData is one bulk snapshot of a user's time-tracker account.
type TogglData struct {
	ID              int            `gorm:"primaryKey"`
	UserID          int            `gorm:"not null;index"`
	TogglAccountsID *int64         `gorm:"column:toggl_accounts_id"`
	TimeEntries     datatypes.JSON `gorm:"column:time_entries"`
	CreateTime      time.Time      `gorm:"autoCreateTime"`
	UpdateTime      time.Time      `gorm:"autoUpdateTime;index"`
}

type GitHubEvent struct {
	ID        int       `gorm:"primaryKey"`
	UserID    int       `gorm:"not null;index:idx_user_event_time,priority:1"`
	EventID   string    `gorm:"size:32"`
	EventType string    `gorm:"size:50;not null"`
	RepoName  string    `gorm:"size:255"`
	EventTime time.Time `gorm:"not null;index:idx_user_event_time,priority:2"`
}

func (User) TableName() string         { return "users" }
func (PersonalPlan) TableName() string { return "personal_plans" }
func (DailyStatus) TableName() string  { return "daily_status" }
func (TogglData) TableName() string    { return "toggl_datas" }
func (GitHubEvent) TableName() string  { return "github_events" }

// Entities lists every table for AutoMigrate.
func Entities() []any {
	return []any{&User{}, &PersonalPlan{}, &DailyStatus{}, &TogglData{}, &GitHubEvent{}}
}
