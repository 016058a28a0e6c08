package main

import (
	"context"
	"fmt"
	"strings"

	"datasync/internal/logger"
	"datasync/internal/service"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

var dailyStatusColumnDefs = map[string]sdk.Column{
	"user_id":           {Name: "user_id", Type: "INT", IsPk: true, Comment: "users.id"},
	"record_date":       {Name: "record_date", Type: "DATE", IsPk: true, Comment: "calendar day in the user's timezone"},
	"heat_level":        {Name: "heat_level", Type: "TINYINT", Comment: "0-4 share of core plans completed"},
	"total_duration":    {Name: "total_duration", Type: "DECIMAL(10,2)", Comment: "tracked minutes across active plans"},
	"is_core_completed": {Name: "is_core_completed", Type: "BOOL", Comment: "every core plan met its target"},
	"plan_status":       {Name: "plan_status", Type: "TEXT", Comment: "JSON plan name -> completed/category/minutes"},
}

// dailyStatusColumns returns the table columns in export order.
func dailyStatusColumns() ([]sdk.Column, error) {
	cols := make([]sdk.Column, 0, len(service.DailyStatusColumns))
	for _, name := range service.DailyStatusColumns {
		c, ok := dailyStatusColumnDefs[name]
		if !ok {
			return nil, fmt.Errorf("no definition for column %s", name)
		}
		cols = append(cols, c)
	}
	return cols, nil
}

func initCatalog(ctx context.Context, client *sdk.RawClient, catalogID sdk.CatalogID, dbName string) (sdk.DatabaseID, sdk.TableID, error) {
	dbID, err := ensureDatabase(ctx, client, catalogID, dbName)
	if err != nil {
		return 0, 0, err
	}

	cols, err := dailyStatusColumns()
	if err != nil {
		return 0, 0, err
	}
	resp, err := client.CreateTable(ctx, &sdk.TableCreateRequest{
		DatabaseID: dbID,
		Name:       "daily_status",
		Columns:    cols,
		Comment:    "daily plan completion and heat level per user",
	})
	if err != nil {
		if isDuplicate(err) {
			logger.Info("catalog: table already exists, skipping", "name", "daily_status")
			return dbID, 0, nil
		}
		return 0, 0, fmt.Errorf("create table daily_status: %w", err)
	}
	logger.Info("catalog: table created", "name", "daily_status", "id", resp.TableID)
	return dbID, resp.TableID, nil
}

func ensureDatabase(ctx context.Context, client *sdk.RawClient, catalogID sdk.CatalogID, dbName string) (sdk.DatabaseID, error) {
	dbResp, err := client.CreateDatabase(ctx, &sdk.DatabaseCreateRequest{
		CatalogID:    catalogID,
		DatabaseName: dbName,
		Comment:      "daily status heatmap",
	})
	if err != nil {
		if isDuplicate(err) {
			logger.Info("catalog: database already exists, discovering ID", "name", dbName)
			return discoverDatabaseID(ctx, client, catalogID, dbName)
		}
		return 0, fmt.Errorf("create database: %w", err)
	}
	logger.Info("catalog: database created", "id", dbResp.DatabaseID)
	return dbResp.DatabaseID, nil
}

func discoverDatabaseID(ctx context.Context, client *sdk.RawClient, catalogID sdk.CatalogID, dbName string) (sdk.DatabaseID, error) {
	resp, err := client.ListDatabases(ctx, &sdk.DatabaseListRequest{CatalogID: catalogID})
	if err != nil {
		return 0, fmt.Errorf("list databases: %w", err)
	}
	for _, db := range resp.List {
		if db.DatabaseName == dbName {
			logger.Info("catalog: database discovered", "id", db.DatabaseID)
			return db.DatabaseID, nil
		}
	}
	return 0, fmt.Errorf("database %s not found in catalog %d", dbName, catalogID)
}

func isDuplicate(err error) bool {
	s := strings.ToLower(err.Error())
	return strings.Contains(s, "duplicate") || strings.Contains(s, "already exist") || strings.Contains(s, "exists") || strings.Contains(s, "conflict")
}
