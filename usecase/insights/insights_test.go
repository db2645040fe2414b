package insights

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dayflow/backend/domain"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type memoryScheduleRepo struct {
	clock     domain.Clock
	schedules map[string]*domain.Schedule
}

func (r *memoryScheduleRepo) Put(_ context.Context, s *domain.Schedule) error {
	r.schedules[s.DateKey()] = s
	return nil
}

func (r *memoryScheduleRepo) Get(_ context.Context, date time.Time) (*domain.Schedule, error) {
	s, ok := r.schedules[domain.DateKey(date)]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}
	return s, nil
}

func (r *memoryScheduleRepo) GetToday(ctx context.Context) (*domain.Schedule, error) {
	return r.Get(ctx, r.clock.Now())
}

type memoryStatsRepo struct {
	stats map[string]*domain.DailyStats
}

func (r *memoryStatsRepo) Put(_ context.Context, s *domain.DailyStats) error {
	r.stats[domain.DateKey(s.Date)] = s
	return nil
}

func (r *memoryStatsRepo) Get(_ context.Context, date time.Time) (*domain.DailyStats, error) {
	s, ok := r.stats[domain.DateKey(date)]
	if !ok {
		return nil, domain.ErrStatsNotFound
	}
	return s, nil
}

type memoryStreakRepo struct {
	streak *domain.StreakInfo
}

func (r *memoryStreakRepo) Put(_ context.Context, s *domain.StreakInfo) error {
	r.streak = s
	return nil
}

func (r *memoryStreakRepo) Get(_ context.Context) (*domain.StreakInfo, error) {
	if r.streak == nil {
		return domain.NewStreakInfo(), nil
	}
	return r.streak, nil
}

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 9, hour, min, 0, 0, time.UTC)
}

type fixture struct {
	uc        *UseCase
	schedules *memoryScheduleRepo
	stats     *memoryStatsRepo
	streaks   *memoryStreakRepo
	clock     *fakeClock
}

func newFixture(now time.Time) *fixture {
	clock := &fakeClock{now: now}
	schedules := &memoryScheduleRepo{clock: clock, schedules: map[string]*domain.Schedule{}}
	stats := &memoryStatsRepo{stats: map[string]*domain.DailyStats{}}
	streaks := &memoryStreakRepo{}
	return &fixture{
		uc:        New(schedules, stats, streaks, clock, nil),
		schedules: schedules,
		stats:     stats,
		streaks:   streaks,
		clock:     clock,
	}
}

func addCompleted(t *testing.T, s *domain.Schedule, title string, start, end time.Time, actualMinutes int64) {
	t.Helper()
	task, err := domain.NewTask(title, start, end)
	require.NoError(t, err)
	require.NoError(t, task.Start(start))
	require.NoError(t, task.Complete(start.Add(time.Duration(actualMinutes)*time.Minute)))
	require.NoError(t, s.AddTask(task, start))
}

func addSkipped(t *testing.T, s *domain.Schedule, title string, start, end time.Time) {
	t.Helper()
	task, err := domain.NewTask(title, start, end)
	require.NoError(t, err)
	task.Skip()
	require.NoError(t, s.AddTask(task, start))
}

func TestReport(t *testing.T) {
	f := newFixture(at(21, 0))
	ctx := context.Background()

	schedule := domain.NewSchedule(at(0, 0))
	addCompleted(t, schedule, "Early", at(9, 0), at(10, 0), 45)  // bonus 15
	addCompleted(t, schedule, "Late", at(10, 0), at(11, 0), 75)  // penalty 15, earned 45
	addSkipped(t, schedule, "Skipped", at(11, 0), at(12, 0))     // wasted 60
	require.NoError(t, f.schedules.Put(ctx, schedule))

	report, err := f.uc.Report(ctx, at(0, 0))
	require.NoError(t, err)

	assert.Equal(t, int64(180), report.TotalPlanned)
	assert.Equal(t, int64(105), report.TotalEarned)
	assert.Equal(t, int64(60), report.TotalWasted)
	assert.Equal(t, int64(15), report.TotalBonus)
	assert.Equal(t, int64(15), report.TotalPenalty)
	assert.Equal(t, int64(105), report.NetEarned)
	assert.InDelta(t, 58.333, report.EfficiencyScore, 0.001)
	assert.Equal(t, "F", report.Grade)
}

func TestReport_MissingSchedule(t *testing.T) {
	f := newFixture(at(21, 0))
	_, err := f.uc.Report(context.Background(), at(0, 0))
	assert.ErrorIs(t, err, domain.ErrScheduleNotFound)
}

func TestStatsFor_ComputesAndPersistsWhenMissing(t *testing.T) {
	f := newFixture(at(21, 0))
	ctx := context.Background()

	schedule := domain.NewSchedule(at(0, 0))
	addCompleted(t, schedule, "Done", at(9, 0), at(10, 0), 60)
	require.NoError(t, f.schedules.Put(ctx, schedule))

	stats, err := f.uc.StatsFor(ctx, at(0, 0))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, stats.CompletionRate, 0.001)
	assert.Equal(t, int64(60), stats.FocusMinutes)

	// A second read serves the stored snapshot.
	stored, err := f.stats.Get(ctx, at(0, 0))
	require.NoError(t, err)
	assert.Equal(t, stats, stored)
}

func TestRefreshStats_PreservesBreakMinutes(t *testing.T) {
	f := newFixture(at(21, 0))
	ctx := context.Background()

	schedule := domain.NewSchedule(at(0, 0))
	addCompleted(t, schedule, "Done", at(9, 0), at(10, 0), 50)
	require.NoError(t, f.schedules.Put(ctx, schedule))

	require.NoError(t, f.uc.AddBreakMinutes(ctx, 10))
	require.NoError(t, f.uc.AddBreakMinutes(ctx, 5))

	stats, err := f.uc.RefreshStats(ctx, at(0, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(15), stats.BreakMinutes)
	assert.Equal(t, int64(50), stats.FocusMinutes)
}

func TestEvaluateStreak(t *testing.T) {
	f := newFixture(at(21, 0))
	ctx := context.Background()

	schedule := domain.NewSchedule(at(0, 0))
	addCompleted(t, schedule, "A", at(9, 0), at(10, 0), 60)
	addCompleted(t, schedule, "B", at(10, 0), at(11, 0), 60)
	addSkipped(t, schedule, "C", at(11, 0), at(12, 0))
	require.NoError(t, f.schedules.Put(ctx, schedule))

	// 2 of 3 completed is below the 70% bar.
	result, err := f.uc.EvaluateStreak(ctx)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Zero(t, result.Streak.CurrentStreak)
}

func TestEvaluateStreak_QualifyingDayExtends(t *testing.T) {
	f := newFixture(at(21, 0))
	ctx := context.Background()

	schedule := domain.NewSchedule(at(0, 0))
	addCompleted(t, schedule, "Only", at(9, 0), at(10, 0), 60)
	require.NoError(t, f.schedules.Put(ctx, schedule))

	result, err := f.uc.EvaluateStreak(ctx)
	require.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, 1, result.Streak.CurrentStreak)
	require.NotNil(t, f.streaks.streak, "an applied update is persisted")
}

func TestEvaluateStreak_IdempotentPerDay(t *testing.T) {
	f := newFixture(at(9, 0))
	ctx := context.Background()

	schedule := domain.NewSchedule(at(0, 0))
	addCompleted(t, schedule, "Only", at(9, 0), at(10, 0), 60)
	require.NoError(t, f.schedules.Put(ctx, schedule))

	first, err := f.uc.EvaluateStreak(ctx)
	require.NoError(t, err)
	require.True(t, first.Applied)

	f.clock.now = at(22, 0)
	second, err := f.uc.EvaluateStreak(ctx)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, 1, second.Streak.CurrentStreak)
}

func TestAddBreakMinutes_StartsFreshSnapshot(t *testing.T) {
	f := newFixture(at(9, 0))
	ctx := context.Background()

	require.NoError(t, f.uc.AddBreakMinutes(ctx, 5))
	stats, err := f.stats.Get(ctx, at(9, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats.BreakMinutes)
}
