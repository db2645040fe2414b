package repository

import (
	"context"
	"time"

	"github.com/dayflow/backend/domain"
)

// ScheduleRepository persists one schedule per calendar day.
type ScheduleRepository interface {
	// Put overwrites the schedule stored under its date key. Atomic:
	// readers never observe a partial write.
	Put(ctx context.Context, schedule *domain.Schedule) error
	// Get returns the schedule for the date, or domain.ErrScheduleNotFound
	// when none was ever saved.
	Get(ctx context.Context, date time.Time) (*domain.Schedule, error)
	// GetToday returns today's schedule per the injected clock. A stored
	// record carrying a stale date is treated as not found.
	GetToday(ctx context.Context) (*domain.Schedule, error)
}
