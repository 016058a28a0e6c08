package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"datasync/internal/model"
	"datasync/internal/service"
	"datasync/internal/stats"

	"github.com/charmbracelet/lipgloss"
)

type HeatmapCmd struct {
	User     int    `required:"" help:"User id."`
	From     string `help:"First date (YYYY-MM-DD), default 364 days before --to."`
	To       string `help:"Last date (YYYY-MM-DD), default today."`
	Category int    `help:"Only plans of this category, -1 for all." default:"-1"`
}

func (c *HeatmapCmd) Run(ctx *Context) error {
	q := service.RangeQuery{StartDate: c.From, EndDate: c.To}
	if c.Category >= 0 {
		q.Category = &c.Category
	}
	views, err := ctx.Stats.DailyStatusRange(context.Background(), c.User, q)
	if err != nil {
		return err
	}
	return renderHeatmap(ctx.Out, views)
}

var (
	heatColors    = []lipgloss.Color{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}
	weekdayLabels = []string{"Mon", "", "Wed", "", "Fri", "", "Sun"}
)

const heatCell = "■"

// renderHeatmap draws one column per week, Monday on top. Days outside the
// records are left blank.
func renderHeatmap(w io.Writer, views []model.DailyStatusView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "no records")
		return err
	}
	r := lipgloss.NewRenderer(w)
	cells := make([]lipgloss.Style, len(heatColors))
	for i, c := range heatColors {
		cells[i] = r.NewStyle().Foreground(c)
	}
	label := r.NewStyle().Faint(true)

	levels := make(map[string]int, len(views))
	core := 0
	for _, v := range views {
		levels[v.RecordDate] = v.HeatLevel
		if v.HeatLevel == len(heatColors)-1 {
			core++
		}
	}
	first, err := time.Parse(stats.DateLayout, views[0].RecordDate)
	if err != nil {
		return err
	}
	last, err := time.Parse(stats.DateLayout, views[len(views)-1].RecordDate)
	if err != nil {
		return err
	}
	start := service.WeekStart(first)
	weeks := int(last.Sub(start).Hours()/24)/7 + 1

	var b strings.Builder
	for row := 0; row < 7; row++ {
		b.WriteString(label.Render(fmt.Sprintf("%-4s", weekdayLabels[row])))
		for col := 0; col < weeks; col++ {
			lvl, ok := levels[stats.DateOf(start.AddDate(0, 0, col*7+row))]
			if !ok {
				b.WriteString("  ")
				continue
			}
			lvl = min(max(lvl, 0), len(cells)-1)
			b.WriteString(cells[lvl].Render(heatCell))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}

	b.WriteString(label.Render("less "))
	for _, s := range cells {
		b.WriteString(s.Render(heatCell))
	}
	b.WriteString(label.Render(" more"))
	fmt.Fprintf(&b, "\n%s .. %s  %d days, %d fully complete\n",
		views[0].RecordDate, views[len(views)-1].RecordDate, len(views), core)

	_, err = io.WriteString(w, b.String())
	return err
}
