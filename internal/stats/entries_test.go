package stats

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func pid(n int64) *int64 { return &n }

func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return ts
}

func TestMinutesOnDate(t *testing.T) {
	entries := []TimeEntry{
		{ProjectID: pid(10), Start: at(t, "2024-01-10T08:00:00Z"), DurationSeconds: 3000},
		{ProjectID: pid(10), Start: at(t, "2024-01-10T20:00:00Z"), DurationSeconds: 90},
		{ProjectID: pid(10), Start: at(t, "2024-01-11T08:00:00Z"), DurationSeconds: 600},
		{ProjectID: pid(20), Start: at(t, "2024-01-10T09:00:00Z"), DurationSeconds: 600},
		{ProjectID: nil, Start: at(t, "2024-01-10T09:00:00Z"), DurationSeconds: 600},
	}
	got := MinutesOnDate(entries, 10, "2024-01-10")
	if want := decimal.RequireFromString("51.5"); !got.Equal(want) {
		t.Fatalf("minutes = %s, want %s", got, want)
	}
	if got := MinutesOnDate(entries, 30, "2024-01-10"); !got.IsZero() {
		t.Fatalf("unknown project minutes = %s, want 0", got)
	}
	if got := MinutesOnDate(nil, 10, "2024-01-10"); !got.IsZero() {
		t.Fatalf("no entries minutes = %s, want 0", got)
	}
}

func TestMinutesOnDateUsesEntryTimezone(t *testing.T) {
	// 23:30 at +08:00 is still the 10th locally, the 10th 15:30 in UTC
	e := []TimeEntry{{ProjectID: pid(1), Start: at(t, "2024-01-10T23:30:00+08:00"), DurationSeconds: 600}}
	if got := MinutesOnDate(e, 1, "2024-01-10"); !got.Equal(decimal.NewFromInt(10)) {
		t.Fatalf("minutes = %s, want 10", got)
	}
	if got := MinutesOnDate(e, 1, "2024-01-11"); !got.IsZero() {
		t.Fatalf("minutes on 11th = %s, want 0", got)
	}
}

func TestMinutesOnDateIgnoresNonPositive(t *testing.T) {
	base := []TimeEntry{{ProjectID: pid(1), Start: at(t, "2024-01-10T08:00:00Z"), DurationSeconds: 1200}}
	want := MinutesOnDate(base, 1, "2024-01-10")
	for _, d := range []int64{0, -1, -1704873600} {
		withBad := append([]TimeEntry{{ProjectID: pid(1), Start: at(t, "2024-01-10T09:00:00Z"), DurationSeconds: d}}, base...)
		if got := MinutesOnDate(withBad, 1, "2024-01-10"); !got.Equal(want) {
			t.Errorf("duration %d changed minutes to %s, want %s", d, got, want)
		}
	}
}

func TestMinutesOnDateOrderIndependent(t *testing.T) {
	entries := []TimeEntry{
		{ProjectID: pid(1), Start: at(t, "2024-01-10T08:00:00Z"), DurationSeconds: 61},
		{ProjectID: pid(1), Start: at(t, "2024-01-10T09:00:00Z"), DurationSeconds: 7},
		{ProjectID: pid(1), Start: at(t, "2024-01-10T10:00:00Z"), DurationSeconds: -5},
		{ProjectID: pid(1), Start: at(t, "2024-01-10T11:00:00Z"), DurationSeconds: 1000},
	}
	want := MinutesOnDate(entries, 1, "2024-01-10")
	perm := make([]TimeEntry, len(entries))
	for shift := 1; shift < len(entries); shift++ {
		for i := range entries {
			perm[i] = entries[(i+shift)%len(entries)]
		}
		if got := MinutesOnDate(perm, 1, "2024-01-10"); !got.Equal(want) {
			t.Fatalf("rotation %d: %s, want %s", shift, got, want)
		}
	}
	for i, j := 0, len(perm)-1; i < j; i, j = i+1, j-1 {
		perm[i], perm[j] = perm[j], perm[i]
	}
	if got := MinutesOnDate(perm, 1, "2024-01-10"); !got.Equal(want) {
		t.Fatalf("reversed: %s, want %s", got, want)
	}
}

func TestDecodeTimeEntries(t *testing.T) {
	raw := []byte(`[
		{"id": 1, "project_id": 10, "start": "2024-01-10T08:00:00+00:00", "duration": 3000},
		{"id": 2, "project_id": null, "start": "2024-01-10T09:00:00Z", "duration": 60},
		{"id": 3, "project_id": 10, "start": "2024-01-10T10:00:00+0800", "duration": -1704873600},
		{"id": 4, "project_id": 10, "start": "yesterday", "duration": 60},
		{"id": 5, "project_id": 10, "start": "2024-01-10T10:00:00Z"},
		"garbage"
	]`)
	entries, errs := DecodeTimeEntries(raw)
	if len(entries) != 3 {
		t.Fatalf("decoded %d entries, want 3", len(entries))
	}
	if len(errs) != 3 {
		t.Fatalf("got %d errors, want 3: %v", len(errs), errs)
	}
	for _, err := range errs {
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("error %v is not ErrMalformedRecord", err)
		}
	}
	if entries[1].ProjectID != nil {
		t.Errorf("null project decoded as %d", *entries[1].ProjectID)
	}
	if entries[2].DurationSeconds >= 0 {
		t.Errorf("running timer duration = %d", entries[2].DurationSeconds)
	}
}

func TestDecodeTimeEntriesNotAnArray(t *testing.T) {
	entries, errs := DecodeTimeEntries([]byte(`{"time_entries": []}`))
	if entries != nil || len(errs) != 1 || !errors.Is(errs[0], ErrMalformedRecord) {
		t.Fatalf("got %v, %v", entries, errs)
	}
	entries, errs = DecodeTimeEntries(nil)
	if entries != nil || errs != nil {
		t.Fatalf("empty snapshot: got %v, %v", entries, errs)
	}
}
