package main

import (
	"bytes"
	"strings"
	"testing"

	"datasync/internal/model"
)

func TestRenderHeatmapGrid(t *testing.T) {
	// Wednesday 2024-03-06 through Tuesday 2024-03-12 spans two weeks
	dates := []string{"2024-03-06", "2024-03-07", "2024-03-08", "2024-03-09", "2024-03-10", "2024-03-11", "2024-03-12"}
	var views []model.DailyStatusView
	for i, d := range dates {
		views = append(views, model.DailyStatusView{RecordDate: d, HeatLevel: i % 5})
	}

	var buf bytes.Buffer
	if err := renderHeatmap(&buf, views); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 9 {
		t.Fatalf("got %d lines, want 7 weekday rows + legend + summary:\n%s", len(lines), buf.String())
	}
	grid := strings.Join(lines[:7], "\n")
	if n := strings.Count(grid, heatCell); n != len(dates) {
		t.Errorf("grid has %d cells, want %d:\n%s", n, len(dates), grid)
	}
	// Monday row: blank first week, 2024-03-11 in the second
	if n := strings.Count(lines[0], heatCell); n != 1 {
		t.Errorf("monday row has %d cells: %q", n, lines[0])
	}
	// Wednesday row: 2024-03-06 only
	if n := strings.Count(lines[2], heatCell); n != 1 {
		t.Errorf("wednesday row has %d cells: %q", n, lines[2])
	}
	if !strings.Contains(lines[8], "2024-03-06 .. 2024-03-12  7 days, 1 fully complete") {
		t.Errorf("summary = %q", lines[8])
	}
}

func TestRenderHeatmapEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := renderHeatmap(&buf, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "no records\n" {
		t.Errorf("got %q", buf.String())
	}
}
