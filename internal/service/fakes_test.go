package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"datasync/internal/model"
	"datasync/internal/stats"
)

type fakePlans struct{ all []stats.Plan }

func (f *fakePlans) ListActivePlans(_ context.Context, userID int) ([]stats.Plan, error) {
	var out []stats.Plan
	for _, p := range f.all {
		if p.UserID == userID && p.Status == stats.PlanActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlans) ListPlans(_ context.Context, userID int) ([]stats.Plan, error) {
	var out []stats.Plan
	for _, p := range f.all {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeEntries struct{ entries []stats.TimeEntry }

func (f *fakeEntries) LatestEntries(context.Context, int) ([]stats.TimeEntry, error) {
	return f.entries, nil
}

type fakeDaily struct {
	rows     map[string]stats.DailyStatus
	upserted []stats.DailyStatus
	fail     error
}

func (f *fakeDaily) GetRange(_ context.Context, userID int, start, end string) (map[string]stats.DailyStatus, error) {
	out := map[string]stats.DailyStatus{}
	for d, r := range f.rows {
		if r.UserID == userID && d >= start && d <= end {
			out[d] = r
		}
	}
	return out, nil
}

func (f *fakeDaily) Upsert(_ context.Context, records []stats.DailyStatus) error {
	if f.fail != nil {
		return f.fail
	}
	if f.rows == nil {
		f.rows = map[string]stats.DailyStatus{}
	}
	for _, r := range records {
		if _, ok := f.rows[r.Date]; !ok {
			f.rows[r.Date] = r
		}
	}
	f.upserted = append(f.upserted, records...)
	return nil
}

type fakeEvents struct {
	events []stats.Event
	since  time.Time
}

func (f *fakeEvents) EventsSince(_ context.Context, _ int, since time.Time) ([]stats.Event, error) {
	f.since = since
	var out []stats.Event
	for _, e := range f.events {
		if !e.At.Before(since) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeUsers struct {
	byID  map[int]*model.User
	saved int
	touch map[int]time.Time
}

func newFakeUsers(users ...*model.User) *fakeUsers {
	f := &fakeUsers{byID: map[int]*model.User{}, touch: map[int]time.Time{}}
	for _, u := range users {
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Get(_ context.Context, id int) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByUsername(_ context.Context, name string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Username == name {
			cp := *u
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("user: %w", ErrNotFound)
}

func (f *fakeUsers) Save(_ context.Context, u *model.User) error {
	cp := *u
	f.byID[u.ID] = &cp
	f.saved++
	return nil
}

func (f *fakeUsers) TouchLogin(_ context.Context, id int, at time.Time) error {
	f.touch[id] = at
	return nil
}

type fakePlanRepo struct {
	rows   map[int]*model.PersonalPlan
	nextID int
}

func newFakePlanRepo() *fakePlanRepo { return &fakePlanRepo{rows: map[int]*model.PersonalPlan{}} }

func (f *fakePlanRepo) List(_ context.Context, userID int) ([]model.PersonalPlan, error) {
	var out []model.PersonalPlan
	for _, p := range f.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePlanRepo) Get(_ context.Context, userID, id int) (*model.PersonalPlan, error) {
	p, ok := f.rows[id]
	if !ok || p.UserID != userID {
		return nil, fmt.Errorf("plan %d: %w", id, ErrNotFound)
	}
	cp := *p
	return &cp, nil
}

func (f *fakePlanRepo) NameTaken(_ context.Context, userID int, name string, exceptID int) (bool, error) {
	for _, p := range f.rows {
		if p.UserID == userID && p.PlanName == name && p.ID != exceptID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePlanRepo) Create(_ context.Context, p *model.PersonalPlan) error {
	f.nextID++
	p.ID = f.nextID
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePlanRepo) Save(_ context.Context, p *model.PersonalPlan) error {
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePlanRepo) Delete(_ context.Context, userID, id int) error {
	p, ok := f.rows[id]
	if !ok || p.UserID != userID {
		return fmt.Errorf("plan %d: %w", id, ErrNotFound)
	}
	delete(f.rows, id)
	return nil
}

type recordingExporter struct{ got []stats.DailyStatus }

func (r *recordingExporter) SyncDailyStatus(_ context.Context, records []stats.DailyStatus) {
	r.got = append(r.got, records...)
}
