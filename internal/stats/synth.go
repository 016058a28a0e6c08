package stats

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

type RangeInput struct {
	UserID   int
	Start    string
	End      string
	Today    string
	Category *int
	// Existing holds persisted records keyed by date; they are returned as is.
	Existing map[string]DailyStatus
	Plans    []Plan
	// EntriesFor returns the time entries to search for a project.
	EntriesFor func(projectID int64) []TimeEntry
}

type RangeResult struct {
	Records []DailyStatus
	// Created lists the records synthesized by this call, for persisting.
	Created []DailyStatus
}

// SynthesizeRange walks Start..End inclusive, skipping dates after Today.
// Dates with an existing record reuse it; the rest are computed from the
// plans active on that date.
func SynthesizeRange(in RangeInput) RangeResult {
	var res RangeResult
	if in.Start > in.End {
		return res
	}
	plans := ActivePlans(in.Plans, in.UserID, in.Category)
	for d := in.Start; d <= in.End && d <= in.Today; d = addDays(d, 1) {
		if rec, ok := in.Existing[d]; ok {
			res.Records = append(res.Records, rec)
			continue
		}
		rec := synthesizeDay(in.UserID, d, plans, in.EntriesFor)
		res.Records = append(res.Records, rec)
		res.Created = append(res.Created, rec)
	}
	return res
}

func synthesizeDay(userID int, date string, plans []Plan, entriesFor func(int64) []TimeEntry) DailyStatus {
	rec := DailyStatus{
		UserID:       userID,
		Date:         date,
		PlanStatus:   map[string]PlanStatus{},
		TotalMinutes: decimal.Zero,
	}
	var totalCore, completedCore int
	for _, p := range plans {
		if !p.ActiveOn(date) {
			continue
		}
		var entries []TimeEntry
		if entriesFor != nil {
			entries = entriesFor(p.ProjectID)
		}
		minutes := MinutesOnDate(entries, p.ProjectID, date)
		completed := minutes.GreaterThanOrEqual(p.DailyTargetMinutes)
		rec.PlanStatus[p.Name] = PlanStatus{Completed: completed, Category: p.Category, Minutes: minutes}
		rec.TotalMinutes = rec.TotalMinutes.Add(minutes)
		if p.Category == CategoryCore {
			totalCore++
			if completed {
				completedCore++
			}
		}
	}
	rec.HeatLevel = Level(completedCore, totalCore)
	// true with zero core plans while the heat level stays 0
	rec.IsCoreCompleted = completedCore == totalCore
	return rec
}

// EncodePlanStatus renders a plan_status map for storage.
func EncodePlanStatus(ps map[string]PlanStatus) ([]byte, error) {
	if ps == nil {
		ps = map[string]PlanStatus{}
	}
	return json.Marshal(ps)
}

// DecodePlanStatus parses a stored plan_status blob.
func DecodePlanStatus(raw []byte) (map[string]PlanStatus, error) {
	ps := map[string]PlanStatus{}
	if len(raw) == 0 {
		return ps, nil
	}
	if err := json.Unmarshal(raw, &ps); err != nil {
		return nil, fmt.Errorf("%w: plan_status: %v", ErrMalformedRecord, err)
	}
	if ps == nil {
		// a stored JSON null
		ps = map[string]PlanStatus{}
	}
	return ps, nil
}
