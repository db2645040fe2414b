package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyStats_CollectFrom(t *testing.T) {
	s := NewSchedule(dayAt(0, 0))
	now := dayAt(8, 0)
	require.NoError(t, s.AddTask(completedTask(t, "Done", dayAt(9, 0), dayAt(10, 0), 50), now))
	require.NoError(t, s.AddTask(mustTask(t, "Open", dayAt(10, 0), dayAt(11, 0)), now))

	stats := NewDailyStats(s.Date)
	stats.BreakMinutes = 15
	stats.CollectFrom(s)

	assert.InDelta(t, 50.0, stats.CompletionRate, 0.001)
	assert.Equal(t, 2, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	assert.Equal(t, int64(50), stats.FocusMinutes)
	assert.Equal(t, int64(15), stats.BreakMinutes, "break minutes accumulate elsewhere")
	require.NotNil(t, stats.TimeAccuracy)
}

func TestDailyStats_CollectFrom_EmptySchedule(t *testing.T) {
	stats := NewDailyStats(dayAt(0, 0))
	stats.CollectFrom(NewSchedule(dayAt(0, 0)))

	assert.Zero(t, stats.CompletionRate)
	assert.Nil(t, stats.TimeAccuracy)
	assert.Zero(t, stats.FocusMinutes)
}

func TestStreakInfo_UpdateSequence(t *testing.T) {
	streak := NewStreakInfo()
	day := func(n int) time.Time {
		return time.Date(2026, time.March, n, 21, 0, 0, 0, time.UTC)
	}

	assert.True(t, streak.Update(80, day(1)))
	assert.Equal(t, 1, streak.CurrentStreak)

	assert.True(t, streak.Update(90, day(2)))
	assert.Equal(t, 2, streak.CurrentStreak)
	assert.Equal(t, 2, streak.BestStreak)

	assert.True(t, streak.Update(50, day(3)))
	assert.Zero(t, streak.CurrentStreak, "a low day resets the current streak")
	assert.Equal(t, 2, streak.BestStreak, "best survives the reset")
}

func TestStreakInfo_UpdateIdempotentPerDay(t *testing.T) {
	streak := NewStreakInfo()
	morning := time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2026, time.March, 1, 22, 0, 0, 0, time.UTC)

	require.True(t, streak.Update(100, morning))
	assert.False(t, streak.Update(100, evening), "same calendar day never counts twice")
	assert.Equal(t, 1, streak.CurrentStreak)
	assert.Equal(t, morning, streak.LastUpdate)
}

func TestStreakInfo_QualifyingBoundary(t *testing.T) {
	streak := NewStreakInfo()
	require.True(t, streak.Update(StreakQualifyingRate, dayAt(21, 0)))
	assert.Equal(t, 1, streak.CurrentStreak, "the boundary rate qualifies")

	streak = NewStreakInfo()
	require.True(t, streak.Update(69.9, dayAt(21, 0)))
	assert.Zero(t, streak.CurrentStreak)
}

func TestStreakInfo_Reset(t *testing.T) {
	streak := NewStreakInfo()
	require.True(t, streak.Update(100, dayAt(21, 0)))
	require.Equal(t, 1, streak.CurrentStreak)

	streak.Reset(dayAt(22, 0))
	assert.Zero(t, streak.CurrentStreak)
	assert.Equal(t, 1, streak.BestStreak)
}

func TestSameDayAndDateKey(t *testing.T) {
	assert.True(t, SameDay(dayAt(0, 1), dayAt(23, 59)))
	assert.False(t, SameDay(dayAt(23, 59), dayAt(23, 59).Add(time.Minute)))
	assert.Equal(t, "2026-03-09", DateKey(dayAt(12, 0)))
}
