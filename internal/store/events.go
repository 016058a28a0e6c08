package store

import (
	"context"
	"fmt"
	"time"

	"datasync/internal/model"
	"datasync/internal/stats"

	"gorm.io/gorm"
)

type EventStore struct{ db *gorm.DB }

func NewEventStore(db *gorm.DB) *EventStore { return &EventStore{db: db} }

func (s *EventStore) EventsSince(ctx context.Context, userID int, since time.Time) ([]stats.Event, error) {
	var rows []model.GitHubEvent
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND event_time >= ?", userID, since).
		Order("event_time").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	out := make([]stats.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, stats.Event{Type: r.EventType, At: r.EventTime})
	}
	return out, nil
}
