package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountTask_EarlyFinishEarnsBonus(t *testing.T) {
	task := completedTask(t, "Early", dayAt(9, 0), dayAt(10, 0), 45)

	score := AccountTask(task)
	assert.Equal(t, int64(60), score.EarnedMinutes)
	assert.Equal(t, int64(15), score.BonusMinutes)
	assert.Zero(t, score.PenaltyMinutes)
	assert.Zero(t, score.WastedMinutes)
	assert.Equal(t, int64(75), score.NetEarned())
}

func TestAccountTask_OverrunForfeitsTwice(t *testing.T) {
	task := completedTask(t, "Late", dayAt(9, 0), dayAt(10, 0), 75)

	score := AccountTask(task)
	assert.Equal(t, int64(45), score.EarnedMinutes, "each overrun minute also reduces earned")
	assert.Equal(t, int64(15), score.PenaltyMinutes)
	assert.Zero(t, score.BonusMinutes)
	assert.Equal(t, int64(30), score.NetEarned())
}

func TestAccountTask_EarnedFloorsAtZero(t *testing.T) {
	// 60m estimated, 150m actual: the overrun exceeds the estimate.
	task := completedTask(t, "Runaway", dayAt(9, 0), dayAt(10, 0), 150)

	score := AccountTask(task)
	assert.Zero(t, score.EarnedMinutes)
	assert.Equal(t, int64(90), score.PenaltyMinutes)
}

func TestAccountTask_SkippedWastesEstimate(t *testing.T) {
	task := mustTask(t, "Skipped", dayAt(9, 0), dayAt(10, 30))
	task.Skip()

	score := AccountTask(task)
	assert.Equal(t, int64(90), score.WastedMinutes)
	assert.Zero(t, score.EarnedMinutes)
	assert.Zero(t, score.NetEarned())
}

func TestAccountTask_CompletedWithoutStartCountsOnTime(t *testing.T) {
	task := mustTask(t, "Checked off", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, task.Complete(dayAt(12, 0)))

	score := AccountTask(task)
	assert.Equal(t, int64(60), score.EarnedMinutes)
	assert.Zero(t, score.BonusMinutes)
	assert.Zero(t, score.PenaltyMinutes)
}

func TestAccountTask_ActionableStatesScoreZero(t *testing.T) {
	pending := mustTask(t, "Pending", dayAt(9, 0), dayAt(10, 0))
	assert.Equal(t, TimeAccountability{}, AccountTask(pending))

	running := mustTask(t, "Running", dayAt(10, 0), dayAt(11, 0))
	require.NoError(t, running.Start(dayAt(10, 0)))
	assert.Equal(t, TimeAccountability{}, AccountTask(running))

	paused := mustTask(t, "Paused", dayAt(11, 0), dayAt(12, 0))
	require.NoError(t, paused.Start(dayAt(11, 0)))
	require.NoError(t, paused.Pause())
	assert.Equal(t, TimeAccountability{}, AccountTask(paused))
}

func TestAccountDay(t *testing.T) {
	early := completedTask(t, "Early", dayAt(9, 0), dayAt(10, 0), 50)       // 60 est, bonus 10
	late := completedTask(t, "Late", dayAt(10, 0), dayAt(12, 0), 140)      // 120 est, penalty 20, earned 100
	skipped := mustTask(t, "Skipped", dayAt(13, 0), dayAt(14, 0))          // 60 est, wasted
	skipped.Skip()

	day := AccountDay(dayAt(0, 0), []*Task{early, late, skipped})

	assert.Equal(t, int64(240), day.TotalPlanned)
	assert.Equal(t, int64(160), day.TotalEarned)
	assert.Equal(t, int64(60), day.TotalWasted)
	assert.Equal(t, int64(10), day.TotalBonus)
	assert.Equal(t, int64(20), day.TotalPenalty)
	assert.Equal(t, int64(150), day.NetEarned())
	assert.InDelta(t, 62.5, day.EfficiencyScore(), 0.001)
	assert.Equal(t, "D", day.Grade())
}

func TestDailyAccountability_EfficiencyScoreUncapped(t *testing.T) {
	// A day of early finishes can score above 100.
	task := completedTask(t, "Flying", dayAt(9, 0), dayAt(11, 0), 30) // 120 est, bonus 90

	day := AccountDay(dayAt(0, 0), []*Task{task})
	assert.InDelta(t, 175.0, day.EfficiencyScore(), 0.001)
	assert.Equal(t, "A+", day.Grade())
}

func TestDailyAccountability_EmptyDay(t *testing.T) {
	day := AccountDay(dayAt(0, 0), nil)
	assert.Zero(t, day.EfficiencyScore())
	assert.Equal(t, "F", day.Grade())
}

func TestDailyAccountability_ScoreWithBonusAndPenalty(t *testing.T) {
	day := DailyAccountability{
		TotalPlanned: 240,
		TotalEarned:  200,
		TotalBonus:   30,
		TotalPenalty: 10,
	}
	assert.Equal(t, int64(220), day.NetEarned())
	assert.InDelta(t, 91.6667, day.EfficiencyScore(), 0.001)
	assert.Equal(t, "A", day.Grade())
}

func TestDailyAccountability_GradeBoundaries(t *testing.T) {
	grade := func(earned, planned int64) string {
		return DailyAccountability{TotalPlanned: planned, TotalEarned: earned}.Grade()
	}

	assert.Equal(t, "A+", grade(95, 100))
	assert.Equal(t, "A", grade(94, 100))
	assert.Equal(t, "A", grade(90, 100))
	assert.Equal(t, "B", grade(89, 100))
	assert.Equal(t, "B", grade(80, 100))
	assert.Equal(t, "C", grade(70, 100))
	assert.Equal(t, "D", grade(60, 100))
	assert.Equal(t, "F", grade(59, 100))
}
