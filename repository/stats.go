package repository

import (
	"context"
	"time"

	"github.com/dayflow/backend/domain"
)

// StatsRepository persists daily statistics snapshots keyed by date.
type StatsRepository interface {
	Put(ctx context.Context, stats *domain.DailyStats) error
	// Get returns domain.ErrStatsNotFound when no snapshot exists.
	Get(ctx context.Context, date time.Time) (*domain.DailyStats, error)
}
