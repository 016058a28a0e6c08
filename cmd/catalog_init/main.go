// Command catalog_init creates the MatrixOne catalog database and the
// daily_status table that the server exports new records into.
package main

import (
	"context"
	"flag"
	"log"

	"datasync/internal/config"
	"datasync/internal/logger"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

func main() {
	configFile := flag.String("config", "etc/config-dev.yaml", "config file")
	flag.Parse()

	logger.Init(config.LogConfig{Level: "info", Console: true})

	cfg := config.Load(*configFile)
	client, err := cfg.NewRawClient()
	if err != nil {
		log.Fatal(err)
	}
	ctx := context.Background()
	catalogID := sdk.CatalogID(cfg.MOI.CatalogID)
	if catalogID == 0 {
		catalogID = 1
	}

	dbID, tableID, err := initCatalog(ctx, client, catalogID, cfg.Database.Name)
	if err != nil {
		log.Fatal("catalog init failed:", err)
	}

	logger.Info("catalog ready, set moi.database_id and moi.daily_status_table_id",
		"database_id", dbID, "daily_status_table_id", tableID)
}
