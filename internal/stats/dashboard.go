package stats

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// WorkDaysPerWeek turns the summed daily targets into a weekly target.
const WorkDaysPerWeek = 5

var planColors = []string{
	"#409EFF", // blue
	"#67C23A", // green
	"#E6A23C", // orange
	"#F56C6C", // red
	"#909399", // grey
	"#9B59B6", // purple
	"#3498DB", // light blue
	"#1ABC9C", // teal
	"#F1C40F", // yellow
	"#E74C3C", // dark red
}

// PlanColor cycles through the fixed palette.
func PlanColor(index int) string { return planColors[index%len(planColors)] }

// Activity event types counted individually.
const (
	EventPush        = "PushEvent"
	EventPullRequest = "PullRequestEvent"
	EventIssues      = "IssuesEvent"
)

type WeekInput struct {
	WeekStart time.Time
	Entries   []TimeEntry
	Events    []Event
	Plans     []Plan
}

type Dashboard struct {
	TimeTracking TimeTracking `json:"time_tracking"`
	Activity     Activity     `json:"activity"`
	Plans        PlanSummary  `json:"plans"`
}

type TimeTracking struct {
	ActualHours    decimal.Decimal `json:"actual_hours"`
	TargetHours    decimal.Decimal `json:"target_hours"`
	CompletionRate decimal.Decimal `json:"completion_rate"`
	Period         string          `json:"period"`
}

type Activity struct {
	TotalEvents  int            `json:"total_events"`
	CountsByType map[string]int `json:"counts_by_type"`
	DailyEvents  []DayCount     `json:"daily_events"`
}

type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type PlanSummary struct {
	Total        int         `json:"total"`
	Completed    int         `json:"completed"`
	InProgress   int         `json:"in_progress"`
	Delayed      int         `json:"delayed"`
	Distribution []PlanShare `json:"distribution"`
}

type PlanShare struct {
	PlanName   string          `json:"plan_name"`
	Duration   decimal.Decimal `json:"duration"`
	Percentage decimal.Decimal `json:"percentage"`
	Category   int             `json:"category"`
	Color      string          `json:"color"`
}

var (
	hundred     = decimal.NewFromInt(100)
	secsPerHour = decimal.NewFromInt(3600)
)

// WeeklySummary rolls the week starting at WeekStart up into the dashboard
// payload. Nothing is persisted.
func WeeklySummary(in WeekInput) Dashboard {
	total := decimal.Zero
	byProject := map[int64]decimal.Decimal{}
	for _, e := range in.Entries {
		if e.DurationSeconds <= 0 || e.Start.Before(in.WeekStart) {
			continue
		}
		hours := decimal.NewFromInt(e.DurationSeconds).Div(secsPerHour)
		total = total.Add(hours)
		if e.ProjectID != nil {
			byProject[*e.ProjectID] = byProject[*e.ProjectID].Add(hours)
		}
	}

	ps := PlanSummary{Total: len(in.Plans), Distribution: []PlanShare{}}
	target := decimal.Zero
	for i, p := range in.Plans {
		switch p.Status {
		case PlanCompleted:
			ps.Completed++
		case PlanActive:
			ps.InProgress++
		case PlanDelayed:
			ps.Delayed++
		}
		planHours := byProject[p.ProjectID]
		pct := decimal.Zero
		if total.IsPositive() {
			pct = planHours.Div(total).Mul(hundred)
		}
		target = target.Add(p.DailyTargetMinutes)
		ps.Distribution = append(ps.Distribution, PlanShare{
			PlanName:   p.Name,
			Duration:   planHours.Round(2),
			Percentage: pct.Round(2),
			Category:   p.Category,
			Color:      PlanColor(i),
		})
	}
	weekTarget := target.Mul(decimal.NewFromInt(WorkDaysPerWeek))

	rate := decimal.Zero
	if weekTarget.IsPositive() {
		rate = total.Div(weekTarget).Mul(hundred).Round(2)
	}

	return Dashboard{
		TimeTracking: TimeTracking{
			ActualHours:    total.Round(1),
			TargetHours:    weekTarget,
			CompletionRate: rate,
			Period:         DateOf(in.WeekStart) + "/" + DateOf(in.WeekStart.AddDate(0, 0, 6)),
		},
		Activity: summarizeEvents(in.Events, in.WeekStart),
		Plans:    ps,
	}
}

func summarizeEvents(events []Event, since time.Time) Activity {
	a := Activity{
		CountsByType: map[string]int{"commits": 0, "pulls": 0, "issues": 0},
		DailyEvents:  []DayCount{},
	}
	daily := map[string]int{}
	for _, e := range events {
		if e.At.Before(since) {
			continue
		}
		a.TotalEvents++
		switch e.Type {
		case EventPush:
			a.CountsByType["commits"]++
		case EventPullRequest:
			a.CountsByType["pulls"]++
		case EventIssues:
			a.CountsByType["issues"]++
		}
		daily[DateOf(e.At.In(since.Location()))]++
	}
	for d, n := range daily {
		a.DailyEvents = append(a.DailyEvents, DayCount{Date: d, Count: n})
	}
	sort.Slice(a.DailyEvents, func(i, j int) bool { return a.DailyEvents[i].Date < a.DailyEvents[j].Date })
	return a
}
