package store

import (
	"context"
	"errors"
	"fmt"

	"datasync/internal/logger"
	"datasync/internal/model"
	"datasync/internal/stats"

	"gorm.io/gorm"
)

// SnapshotStore reads the bulk time-tracker snapshots loaded by the fetcher.
type SnapshotStore struct{ db *gorm.DB }

func NewSnapshotStore(db *gorm.DB) *SnapshotStore { return &SnapshotStore{db: db} }

// LatestEntries decodes the most recently updated snapshot of the user.
// A user without any snapshot has no entries. Undecodable entries are
// logged and skipped.
func (s *SnapshotStore) LatestEntries(ctx context.Context, userID int) ([]stats.TimeEntry, error) {
	var snap model.TogglData
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("update_time DESC").Order("id DESC").
		First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot: %w", err)
	}

	entries, errs := stats.DecodeTimeEntries(snap.TimeEntries)
	for _, e := range errs {
		logger.Warn("snapshot.entry.skipped", "uid", userID, "snapshot", snap.ID, "err", e)
	}
	return entries, nil
}
