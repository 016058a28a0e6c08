package main

import (
	"errors"
	"testing"

	"datasync/internal/service"
)

func TestDailyStatusColumnsFollowExportOrder(t *testing.T) {
	cols, err := dailyStatusColumns()
	if err != nil {
		t.Fatal(err)
	}
	if len(cols) != len(service.DailyStatusColumns) {
		t.Fatalf("got %d columns, want %d", len(cols), len(service.DailyStatusColumns))
	}
	for i, c := range cols {
		if c.Name != service.DailyStatusColumns[i] {
			t.Errorf("column %d = %s, want %s", i, c.Name, service.DailyStatusColumns[i])
		}
	}
}

func TestIsDuplicate(t *testing.T) {
	for msg, want := range map[string]bool{
		"Duplicate entry 'x'":       true,
		"table already exists":      true,
		"409 Conflict":              true,
		"connection refused":        false,
		"permission denied for key": false,
	} {
		if got := isDuplicate(errors.New(msg)); got != want {
			t.Errorf("isDuplicate(%q) = %v", msg, got)
		}
	}
}
