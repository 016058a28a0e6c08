package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"datasync/internal/config"
	"datasync/internal/logger"
	"datasync/internal/stats"

	sdk "github.com/matrixorigin/moi-go-sdk"
)

// DailyStatusColumns is the column order of the exported CSV and of the
// catalog table created by catalog_init.
var DailyStatusColumns = []string{
	"user_id", "record_date", "heat_level", "total_duration", "is_core_completed", "plan_status",
}

// CatalogSync appends freshly synthesized daily status rows to a MatrixOne
// catalog table.
type CatalogSync struct {
	raw        *sdk.RawClient
	sdk        *sdk.SDKClient
	databaseID sdk.DatabaseID
	tableID    sdk.TableID
}

func NewCatalogSync(cfg *config.Config) (*CatalogSync, error) {
	if cfg.MOI.APIKey == "" || cfg.MOI.BaseURL == "" {
		return nil, fmt.Errorf("moi: %w", ErrMissingCredential)
	}
	if cfg.MOI.DatabaseID == 0 || cfg.MOI.DailyStatusTableID == 0 {
		return nil, fmt.Errorf("moi database/table id: %w", ErrInvalidInput)
	}
	raw, err := cfg.NewRawClient()
	if err != nil {
		return nil, fmt.Errorf("moi client: %w", err)
	}
	return &CatalogSync{
		raw:        raw,
		sdk:        sdk.NewSDKClient(raw),
		databaseID: sdk.DatabaseID(cfg.MOI.DatabaseID),
		tableID:    sdk.TableID(cfg.MOI.DailyStatusTableID),
	}, nil
}

func (s *CatalogSync) SyncDailyStatus(ctx context.Context, records []stats.DailyStatus) {
	if len(records) == 0 {
		return
	}
	csv, err := dailyStatusCSV(records)
	if err != nil {
		logger.Warn("catalog.sync.encode", "err", err)
		return
	}
	first := records[0]
	fileName := fmt.Sprintf("daily_status_%d_%s_%d.csv", first.UserID, first.Date, len(records))
	if err := s.importCSV(ctx, csv, fileName, dailyStatusMapping()); err != nil {
		logger.Warn("catalog.sync.failed", "file", fileName, "err", err)
		return
	}
	logger.Info("catalog.sync.ok", "table", s.tableID, "file", fileName, "rows", len(records))
}

func (s *CatalogSync) importCSV(ctx context.Context, csv, fileName string, mapping []sdk.FileAndTableColumnMapping) error {
	resp, err := s.raw.UploadLocalFile(ctx, bytes.NewReader([]byte(csv)), fileName, []sdk.FileMeta{{Filename: fileName, Path: "/"}})
	if err != nil {
		return fmt.Errorf("upload: %v: %w", err, ErrUpstreamUnavailable)
	}
	if len(resp.ConnFileIds) == 0 {
		return fmt.Errorf("upload returned no conn_file_ids: %w", ErrUpstreamUnavailable)
	}
	_, err = s.sdk.ImportLocalFileToTable(ctx, &sdk.TableConfig{
		ConnFileIDs:      resp.ConnFileIds,
		NewTable:         false,
		DatabaseID:       s.databaseID,
		TableID:          s.tableID,
		IsColumnName:     false,
		RowStart:         1,
		Conflict:         1,
		ExistedTable:     mapping,
		ExistedTableOpts: sdk.ExistedTableOptions{Method: sdk.ExistedTableOptionAppend},
	})
	if err != nil {
		return fmt.Errorf("import: %v: %w", err, ErrUpstreamUnavailable)
	}
	return nil
}

// dailyStatusMapping maps each CSV column to the table column of the same
// name. File columns are 1-based.
func dailyStatusMapping() []sdk.FileAndTableColumnMapping {
	mapping := make([]sdk.FileAndTableColumnMapping, 0, len(DailyStatusColumns))
	for i, col := range DailyStatusColumns {
		mapping = append(mapping, sdk.FileAndTableColumnMapping{TableColumn: col, Column: col, ColNumInFile: int32(i + 1)})
	}
	return mapping
}

func dailyStatusCSV(records []stats.DailyStatus) (string, error) {
	var buf bytes.Buffer
	for _, r := range records {
		blob, err := stats.EncodePlanStatus(r.PlanStatus)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&buf, "%d,%s,%d,%s,%t,%s\n",
			r.UserID, r.Date, r.HeatLevel, r.TotalMinutes.StringFixed(2), r.IsCoreCompleted, esc(string(blob)))
	}
	return buf.String(), nil
}

func esc(s string) string {
	if strings.ContainsAny(s, ",\"\n\r") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
