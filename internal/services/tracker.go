package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/repository"
	"github.com/dayflow/backend/usecase/insights"
)

// StorageHealth abstracts the connection monitor functionality.
type StorageHealth interface {
	IsOnline() bool
}

// TrackerConfig controls how frequently the day is re-evaluated.
type TrackerConfig struct {
	Interval time.Duration
}

// Tracker is the recurring evaluation loop: it reloads today's schedule,
// warns on overdue work and persists refreshed daily statistics. It never
// mutates tasks.
type Tracker struct {
	schedules repository.ScheduleRepository
	insights  *insights.UseCase
	monitor   StorageHealth
	clock     domain.Clock
	logger    *zap.Logger
	cron      *cron.Cron
	cfg       TrackerConfig
}

func NewTracker(
	schedules repository.ScheduleRepository,
	insightsUC *insights.UseCase,
	monitor StorageHealth,
	clock domain.Clock,
	logger *zap.Logger,
	cfg TrackerConfig,
) *Tracker {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if clock == nil {
		clock = domain.SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tracker{
		schedules: schedules,
		insights:  insightsUC,
		monitor:   monitor,
		clock:     clock,
		logger:    logger,
		cfg:       cfg,
		cron:      cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = t.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if err := t.Evaluate(ctx); err != nil {
			t.logger.Error("tracker evaluation failed", zap.Error(err))
		}
	})

	return t
}

// Start launches the cron scheduler.
func (t *Tracker) Start() {
	if t == nil || t.cron == nil {
		return
	}
	t.cron.Start()
	t.logger.Info("tracker started", zap.Duration("interval", t.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (t *Tracker) Stop(ctx context.Context) {
	if t == nil || t.cron == nil {
		return
	}
	stopCtx := t.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	t.logger.Info("tracker stopped")
}

// Evaluate runs one tracker tick. A missing schedule is not an error: the
// day simply has no plan yet.
func (t *Tracker) Evaluate(ctx context.Context) error {
	if t.monitor != nil && !t.monitor.IsOnline() {
		t.logger.Warn("storage offline, skipping evaluation")
		return nil
	}

	schedule, err := t.schedules.GetToday(ctx)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil
		}
		return err
	}

	now := t.clock.Now()
	if current, err := schedule.CurrentTask(); err == nil {
		if elapsed, ok := current.ElapsedMinutes(now); ok {
			t.logger.Debug("current task",
				zap.String("title", current.Title),
				zap.Int64("elapsed_minutes", elapsed))
		}
		if current.IsOverdue(now) {
			t.logger.Warn("task overdue",
				zap.String("title", current.Title),
				zap.Int64("estimated_minutes", current.EstimatedMinutes))
		}
	}

	_, err = t.insights.RefreshStats(ctx, schedule.Date)
	return err
}
