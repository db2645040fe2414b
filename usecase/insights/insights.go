package insights

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/repository"
)

// Report is a day's accountability sheet.
type Report struct {
	Date            time.Time `json:"date"`
	TotalPlanned    int64     `json:"total_planned"`
	TotalEarned     int64     `json:"total_earned"`
	TotalWasted     int64     `json:"total_wasted"`
	TotalBonus      int64     `json:"total_bonus"`
	TotalPenalty    int64     `json:"total_penalty"`
	NetEarned       int64     `json:"net_earned"`
	EfficiencyScore float64   `json:"efficiency_score"`
	Grade           string    `json:"grade"`
}

// StreakResult reports a streak evaluation. Applied is false when the
// streak was already updated for the current calendar day.
type StreakResult struct {
	Streak  *domain.StreakInfo `json:"streak"`
	Applied bool               `json:"applied"`
}

// UseCase computes daily statistics, accountability reports and streaks.
type UseCase struct {
	schedules repository.ScheduleRepository
	stats     repository.StatsRepository
	streaks   repository.StreakRepository
	clock     domain.Clock
	logger    *zap.Logger
}

func New(
	schedules repository.ScheduleRepository,
	stats repository.StatsRepository,
	streaks repository.StreakRepository,
	clock domain.Clock,
	logger *zap.Logger,
) *UseCase {
	if clock == nil {
		clock = domain.SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		schedules: schedules,
		stats:     stats,
		streaks:   streaks,
		clock:     clock,
		logger:    logger,
	}
}

// Report builds the accountability sheet for a day from its schedule.
func (uc *UseCase) Report(ctx context.Context, date time.Time) (*Report, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	day := domain.AccountDay(schedule.Date, schedule.Tasks)
	return &Report{
		Date:            day.Date,
		TotalPlanned:    day.TotalPlanned,
		TotalEarned:     day.TotalEarned,
		TotalWasted:     day.TotalWasted,
		TotalBonus:      day.TotalBonus,
		TotalPenalty:    day.TotalPenalty,
		NetEarned:       day.NetEarned(),
		EfficiencyScore: day.EfficiencyScore(),
		Grade:           day.Grade(),
	}, nil
}

// StatsFor returns the stored snapshot for a day, computing and persisting
// one from the live schedule when none exists yet.
func (uc *UseCase) StatsFor(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	stats, err := uc.stats.Get(ctx, date)
	if err == nil {
		return stats, nil
	}
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, err
	}
	return uc.RefreshStats(ctx, date)
}

// RefreshStats recomputes the day's snapshot from its schedule and persists
// it. Break minutes already accumulated are preserved.
func (uc *UseCase) RefreshStats(ctx context.Context, date time.Time) (*domain.DailyStats, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	stats, err := uc.stats.Get(ctx, date)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		stats = domain.NewDailyStats(schedule.Date)
	}
	stats.CollectFrom(schedule)
	if err := uc.stats.Put(ctx, stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// AddBreakMinutes credits break time onto today's snapshot.
func (uc *UseCase) AddBreakMinutes(ctx context.Context, minutes int64) error {
	now := uc.clock.Now()
	stats, err := uc.stats.Get(ctx, now)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return err
		}
		stats = domain.NewDailyStats(now)
	}
	stats.BreakMinutes += minutes
	return uc.stats.Put(ctx, stats)
}

// Streak returns the persisted streak record.
func (uc *UseCase) Streak(ctx context.Context) (*domain.StreakInfo, error) {
	return uc.streaks.Get(ctx)
}

// EvaluateStreak applies today's completion rate to the streak. The update
// is idempotent per calendar day: re-evaluating the same day changes
// nothing and reports Applied=false.
func (uc *UseCase) EvaluateStreak(ctx context.Context) (*StreakResult, error) {
	schedule, err := uc.schedules.GetToday(ctx)
	if err != nil {
		return nil, err
	}
	streak, err := uc.streaks.Get(ctx)
	if err != nil {
		return nil, err
	}

	rate := schedule.CompletionRate()
	applied := streak.Update(rate, uc.clock.Now())
	if applied {
		if err := uc.streaks.Put(ctx, streak); err != nil {
			return nil, err
		}
		uc.logger.Info("streak evaluated",
			zap.Float64("completion_rate", rate),
			zap.Int("current_streak", streak.CurrentStreak))
	}
	return &StreakResult{Streak: streak, Applied: applied}, nil
}
