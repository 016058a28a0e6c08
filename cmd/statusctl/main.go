// Command statusctl backfills and prints a user's daily status heatmap and
// weekly dashboard straight from the database.
package main

import (
	"fmt"
	"io"
	"os"
	_ "time/tzdata"

	"datasync/internal/config"
	"datasync/internal/logger"
	"datasync/internal/service"
	"datasync/internal/store"

	"github.com/alecthomas/kong"
)

type Context struct {
	Stats *service.StatsService
	Out   io.Writer
}

var CLI struct {
	Config  string `help:"Config file path." type:"path" default:"etc/config-dev.yaml"`
	Verbose bool   `help:"Log to stdout as well." short:"v"`

	Heatmap   HeatmapCmd   `cmd:"" help:"Synthesize missing days and print the heat grid."`
	Dashboard DashboardCmd `cmd:"" help:"Print the current week's dashboard as JSON."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("statusctl"),
		kong.Description("Daily status heatmap admin tool"),
		kong.UsageOnError(),
	)

	cfg := config.Load(CLI.Config)
	cfg.Log.Console = CLI.Verbose
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB(logger.Gorm(cfg.Log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	users := store.NewUserStore(db)
	statsSvc := service.NewStatsService(store.NewPlanStore(db), store.NewSnapshotStore(db),
		store.NewDailyStatusStore(db), store.NewEventStore(db), users, cfg.Stats.Timezone)

	if err := ctx.Run(&Context{Stats: statsSvc, Out: os.Stdout}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
