package store

import (
	"context"
	"fmt"
	"time"

	"datasync/internal/logger"
	"datasync/internal/model"
	"datasync/internal/stats"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DailyStatusStore struct{ db *gorm.DB }

func NewDailyStatusStore(db *gorm.DB) *DailyStatusStore { return &DailyStatusStore{db: db} }

// GetRange loads the user's records between start and end inclusive, keyed
// by date. Rows whose plan_status cannot be decoded are logged and left out.
func (s *DailyStatusStore) GetRange(ctx context.Context, userID int, start, end string) (map[string]stats.DailyStatus, error) {
	from, err := time.Parse(stats.DateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("range start: %w", err)
	}
	to, err := time.Parse(stats.DateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("range end: %w", err)
	}

	var rows []model.DailyStatus
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND record_date >= ? AND record_date <= ?", userID, from, to).
		Order("record_date").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query daily status: %w", err)
	}

	out := make(map[string]stats.DailyStatus, len(rows))
	for _, r := range rows {
		ps, err := stats.DecodePlanStatus(r.PlanStatus)
		if err != nil {
			logger.Warn("daily_status.skipped", "uid", userID, "record_id", r.RecordID, "err", err)
			continue
		}
		date := r.RecordDate.UTC().Format(stats.DateLayout)
		out[date] = stats.DailyStatus{
			UserID:          r.UserID,
			Date:            date,
			PlanStatus:      ps,
			HeatLevel:       r.HeatLevel,
			TotalMinutes:    r.TotalDuration,
			IsCoreCompleted: r.IsCoreCompleted,
		}
	}
	return out, nil
}

// Upsert inserts the records. A row already present for (user, date) is
// kept as is, so concurrent synthesis of the same day stores one record.
func (s *DailyStatusStore) Upsert(ctx context.Context, records []stats.DailyStatus) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]model.DailyStatus, 0, len(records))
	for _, r := range records {
		date, err := time.Parse(stats.DateLayout, r.Date)
		if err != nil {
			return fmt.Errorf("record date: %w", err)
		}
		blob, err := stats.EncodePlanStatus(r.PlanStatus)
		if err != nil {
			return fmt.Errorf("encode plan status: %w", err)
		}
		rows = append(rows, model.DailyStatus{
			UserID:          r.UserID,
			RecordDate:      date,
			PlanStatus:      datatypes.JSON(blob),
			HeatLevel:       r.HeatLevel,
			TotalDuration:   r.TotalMinutes,
			IsCoreCompleted: r.IsCoreCompleted,
		})
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "record_date"}},
			DoNothing: true,
		}).
		CreateInBatches(&rows, 200).Error
	if err != nil {
		return fmt.Errorf("insert daily status: %w", err)
	}
	return nil
}
