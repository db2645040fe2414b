package repository

import (
	"context"

	"github.com/dayflow/backend/domain"
)

// StreakRepository persists the single streak record.
type StreakRepository interface {
	Put(ctx context.Context, streak *domain.StreakInfo) error
	// Get never reports not-found: a missing record yields a fresh zero
	// streak.
	Get(ctx context.Context) (*domain.StreakInfo, error)
}
