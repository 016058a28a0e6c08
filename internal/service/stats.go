package service

import (
	"context"
	"fmt"
	"time"

	"datasync/internal/logger"
	"datasync/internal/model"
	"datasync/internal/stats"
)

type PlanSource interface {
	ListActivePlans(ctx context.Context, userID int) ([]stats.Plan, error)
	ListPlans(ctx context.Context, userID int) ([]stats.Plan, error)
}

type EntrySource interface {
	LatestEntries(ctx context.Context, userID int) ([]stats.TimeEntry, error)
}

type DailyStatusRepo interface {
	GetRange(ctx context.Context, userID int, start, end string) (map[string]stats.DailyStatus, error)
	Upsert(ctx context.Context, records []stats.DailyStatus) error
}

type EventSource interface {
	EventsSince(ctx context.Context, userID int, since time.Time) ([]stats.Event, error)
}

type UserGetter interface {
	Get(ctx context.Context, id int) (*model.User, error)
}

// StatusExporter receives newly synthesized records. Failures are its own
// business; the range request never fails because of it.
type StatusExporter interface {
	SyncDailyStatus(ctx context.Context, records []stats.DailyStatus)
}

// DefaultRangeDays is the heatmap window when no dates are given.
const DefaultRangeDays = 365

// MaxRangeDays bounds an explicit start_date/end_date window.
const MaxRangeDays = 366

type RangeQuery struct {
	StartDate string
	EndDate   string
	Category  *int
}

type StatsService struct {
	plans     PlanSource
	entries   EntrySource
	daily     DailyStatusRepo
	events    EventSource
	users     UserGetter
	exporter  StatusExporter
	defaultTZ string
	now       func() time.Time
}

func NewStatsService(plans PlanSource, entries EntrySource, daily DailyStatusRepo, events EventSource, users UserGetter, defaultTZ string) *StatsService {
	return &StatsService{
		plans: plans, entries: entries, daily: daily, events: events, users: users,
		defaultTZ: defaultTZ, now: time.Now,
	}
}

func (s *StatsService) SetExporter(e StatusExporter) { s.exporter = e }

// DailyStatusRange returns one record per date in the range up to today,
// synthesizing and storing the days that have no record yet.
func (s *StatsService) DailyStatusRange(ctx context.Context, userID int, q RangeQuery) ([]model.DailyStatusView, error) {
	loc, err := s.location(ctx, userID)
	if err != nil {
		return nil, err
	}
	today := stats.DateOf(s.now().In(loc))
	start, end, err := resolveRange(q, today)
	if err != nil {
		return nil, err
	}

	plans, err := s.plans.ListActivePlans(ctx, userID)
	if err != nil {
		return nil, err
	}
	localizePlans(plans, loc)
	entries, err := s.entries.LatestEntries(ctx, userID)
	if err != nil {
		return nil, err
	}
	existing, err := s.daily.GetRange(ctx, userID, start, end)
	if err != nil {
		return nil, err
	}

	res := stats.SynthesizeRange(stats.RangeInput{
		UserID:     userID,
		Start:      start,
		End:        end,
		Today:      today,
		Category:   q.Category,
		Existing:   existing,
		Plans:      plans,
		EntriesFor: func(int64) []stats.TimeEntry { return entries },
	})
	if err := s.daily.Upsert(ctx, res.Created); err != nil {
		return nil, err
	}
	if s.exporter != nil && len(res.Created) > 0 {
		s.exporter.SyncDailyStatus(ctx, res.Created)
	}
	logger.Info("stats.range", "uid", userID, "start", start, "end", end,
		"days", len(res.Records), "created", len(res.Created))

	views := make([]model.DailyStatusView, 0, len(res.Records))
	for _, r := range res.Records {
		views = append(views, model.DailyStatusView{RecordDate: r.Date, PlanStatus: r.PlanStatus, HeatLevel: r.HeatLevel})
	}
	return views, nil
}

// Dashboard rolls up the current week, Monday 00:00 in the user's timezone.
func (s *StatsService) Dashboard(ctx context.Context, userID int) (stats.Dashboard, error) {
	loc, err := s.location(ctx, userID)
	if err != nil {
		return stats.Dashboard{}, err
	}
	weekStart := WeekStart(s.now().In(loc))

	entries, err := s.entries.LatestEntries(ctx, userID)
	if err != nil {
		return stats.Dashboard{}, err
	}
	plans, err := s.plans.ListPlans(ctx, userID)
	if err != nil {
		return stats.Dashboard{}, err
	}
	events, err := s.events.EventsSince(ctx, userID, weekStart)
	if err != nil {
		return stats.Dashboard{}, err
	}
	return stats.WeeklySummary(stats.WeekInput{
		WeekStart: weekStart,
		Entries:   entries,
		Events:    events,
		Plans:     plans,
	}), nil
}

// WeekStart returns Monday 00:00 of t's week in t's location.
func WeekStart(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
}

func resolveRange(q RangeQuery, today string) (string, string, error) {
	end := today
	if q.EndDate != "" {
		d, err := stats.ParseDate(q.EndDate)
		if err != nil {
			return "", "", fmt.Errorf("end_date: %w", ErrInvalidInput)
		}
		end = stats.DateOf(d)
	}
	t, _ := time.Parse(stats.DateLayout, end)
	start := stats.DateOf(t.AddDate(0, 0, -(DefaultRangeDays - 1)))
	if q.StartDate != "" {
		d, err := stats.ParseDate(q.StartDate)
		if err != nil {
			return "", "", fmt.Errorf("start_date: %w", ErrInvalidInput)
		}
		start = stats.DateOf(d)
	}
	if start > end {
		return "", "", fmt.Errorf("start_date after end_date: %w", ErrInvalidInput)
	}
	from, _ := stats.ParseDate(start)
	to, _ := stats.ParseDate(end)
	if int(to.Sub(from).Hours()/24)+1 > MaxRangeDays {
		return "", "", fmt.Errorf("range longer than %d days: %w", MaxRangeDays, ErrInvalidInput)
	}
	return start, end, nil
}

// localizePlans moves each plan's creation instant into loc so that its
// first active day is the user's calendar day, not the database's.
func localizePlans(plans []stats.Plan, loc *time.Location) {
	for i := range plans {
		plans[i].ValidFrom = plans[i].ValidFrom.In(loc)
	}
}

func (s *StatsService) location(ctx context.Context, userID int) (*time.Location, error) {
	return userLocation(ctx, s.users, s.defaultTZ, userID)
}

// userLocation resolves the user's timezone, then the configured default,
// then UTC.
func userLocation(ctx context.Context, users UserGetter, defaultTZ string, userID int) (*time.Location, error) {
	u, err := users.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, name := range []string{u.Timezone, defaultTZ} {
		if name == "" {
			continue
		}
		if loc, err := time.LoadLocation(name); err == nil {
			return loc, nil
		}
		logger.Warn("stats.timezone.invalid", "uid", userID, "tz", name)
	}
	return time.UTC, nil
}
