// Package stats derives per-day plan completion records, heat levels and the
// weekly dashboard from plans, time-tracker snapshots and activity events.
// Everything here is a pure function over explicit inputs; loading and
// persisting belongs to the service layer.
package stats

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// plan_status blobs and API payloads carry minutes/hours as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

const DateLayout = "2006-01-02"

const CategoryCore = 1

const (
	PlanDelayed   = 0
	PlanCompleted = 1
	PlanActive    = 2
)

var ErrMalformedRecord = errors.New("malformed record")

// TimeEntry is one time-tracker entry. A nil ProjectID never matches a plan.
type TimeEntry struct {
	ProjectID       *int64
	Start           time.Time
	DurationSeconds int64
}

// Plan is the engine's view of a personal plan. ValidFrom is the creation
// instant, dated in its own location, and ValidUntil the inclusive deadline.
type Plan struct {
	ID                 int
	UserID             int
	Name               string
	ProjectID          int64
	DailyTargetMinutes decimal.Decimal
	Category           int
	ValidFrom          time.Time
	ValidUntil         time.Time
	Status             int
}

// ActiveOn reports whether date (YYYY-MM-DD) falls inside the plan window.
func (p Plan) ActiveOn(date string) bool {
	return DateOf(p.ValidFrom) <= date && date <= DateOf(p.ValidUntil)
}

type PlanStatus struct {
	Completed bool            `json:"completed"`
	Category  int             `json:"category"`
	Minutes   decimal.Decimal `json:"minutes"`
}

// DailyStatus is the per-(user, date) completion record. PlanStatus is keyed
// by plan name.
type DailyStatus struct {
	UserID          int
	Date            string
	PlanStatus      map[string]PlanStatus
	HeatLevel       int
	TotalMinutes    decimal.Decimal
	IsCoreCompleted bool
}

// Event is a code-hosting activity event, e.g. PushEvent.
type Event struct {
	Type string
	At   time.Time
}

// DateOf returns the calendar date of t in t's own location.
func DateOf(t time.Time) string { return t.Format(DateLayout) }

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	if d, err := time.Parse(DateLayout, s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func addDays(date string, n int) string {
	d, _ := time.Parse(DateLayout, date)
	return d.AddDate(0, 0, n).Format(DateLayout)
}
