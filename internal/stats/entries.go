package stats

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// MinutesOnDate sums the positive durations of entries for projectID whose
// start falls on date, in minutes.
func MinutesOnDate(entries []TimeEntry, projectID int64, date string) decimal.Decimal {
	var seconds int64
	for _, e := range entries {
		if e.DurationSeconds <= 0 || e.ProjectID == nil || *e.ProjectID != projectID {
			continue
		}
		if DateOf(e.Start) != date {
			continue
		}
		seconds += e.DurationSeconds
	}
	if seconds == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(seconds).Div(sixty)
}

type rawEntry struct {
	ProjectID *int64 `json:"project_id"`
	Start     string `json:"start"`
	Duration  *int64 `json:"duration"`
}

// Toggl v9 emits RFC 3339; older exports use a colon-less offset.
var entryLayouts = []string{time.RFC3339, "2006-01-02T15:04:05-0700"}

// DecodeTimeEntries decodes a snapshot's time_entries array element by
// element. Elements that fail to decode are reported in errs and skipped.
func DecodeTimeEntries(raw []byte) (entries []TimeEntry, errs []error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, []error{fmt.Errorf("%w: time entries: %v", ErrMalformedRecord, err)}
	}
	entries = make([]TimeEntry, 0, len(items))
	for i, item := range items {
		e, err := decodeEntry(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("%w: time entry %d: %v", ErrMalformedRecord, i, err))
			continue
		}
		entries = append(entries, e)
	}
	return entries, errs
}

func decodeEntry(item json.RawMessage) (TimeEntry, error) {
	var r rawEntry
	if err := json.Unmarshal(item, &r); err != nil {
		return TimeEntry{}, err
	}
	if r.Duration == nil {
		return TimeEntry{}, fmt.Errorf("missing duration")
	}
	for _, layout := range entryLayouts {
		if start, err := time.Parse(layout, r.Start); err == nil {
			return TimeEntry{ProjectID: r.ProjectID, Start: start, DurationSeconds: *r.Duration}, nil
		}
	}
	return TimeEntry{}, fmt.Errorf("bad start %q", r.Start)
}
