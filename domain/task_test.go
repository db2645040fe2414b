package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dayAt(hour, min int) time.Time {
	return time.Date(2026, time.March, 9, hour, min, 0, 0, time.UTC)
}

func TestNewTask(t *testing.T) {
	task, err := NewTask("Write report", dayAt(9, 0), dayAt(10, 30))
	require.NoError(t, err)

	assert.NotEmpty(t, task.ID)
	assert.Equal(t, StatusPending, task.Status)
	assert.Equal(t, int64(90), task.EstimatedMinutes)
	assert.Nil(t, task.ActualStart)
	assert.Nil(t, task.Pomodoro)
}

func TestNewTask_RejectsEmptyAndInvertedIntervals(t *testing.T) {
	_, err := NewTask("x", dayAt(9, 0), dayAt(9, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTask("x", dayAt(10, 0), dayAt(9, 0))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestTask_StartRecordsActualStartOnce(t *testing.T) {
	task, err := NewTask("Deep work", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)

	first := dayAt(9, 5)
	require.NoError(t, task.Start(first))
	require.NotNil(t, task.ActualStart)
	assert.Equal(t, first, *task.ActualStart)
	require.NotNil(t, task.Pomodoro)
	assert.Equal(t, StatusInProgress, task.Status)

	require.NoError(t, task.Pause())
	require.NoError(t, task.Start(dayAt(9, 30)))
	assert.Equal(t, first, *task.ActualStart, "actual start is set on the first start only")
}

func TestTask_StartRejectedFromRunningAndTerminalStates(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)
	require.NoError(t, task.Start(dayAt(9, 0)))

	err = task.Start(dayAt(9, 1))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	require.NoError(t, task.Complete(dayAt(9, 30)))
	err = task.Start(dayAt(9, 31))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTask_PauseAndResume(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)

	assert.ErrorIs(t, task.Pause(), ErrInvalidTransition)
	assert.ErrorIs(t, task.Resume(dayAt(9, 0)), ErrInvalidTransition)

	require.NoError(t, task.Start(dayAt(9, 0)))
	require.NoError(t, task.Pause())
	assert.Equal(t, StatusPaused, task.Status)
	assert.Nil(t, task.Pomodoro.CurrentStart, "pausing drops the active slice")

	require.NoError(t, task.Resume(dayAt(9, 20)))
	assert.Equal(t, StatusInProgress, task.Status)
	require.NotNil(t, task.Pomodoro.CurrentStart)
	assert.Equal(t, dayAt(9, 20), *task.Pomodoro.CurrentStart)
}

func TestTask_CompleteMeasuresWallClockIncludingPauses(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)

	require.NoError(t, task.Start(dayAt(9, 0)))
	require.NoError(t, task.Pause())
	require.NoError(t, task.Resume(dayAt(9, 40)))
	require.NoError(t, task.Complete(dayAt(9, 45)))

	require.NotNil(t, task.ActualMinutes)
	assert.Equal(t, int64(45), *task.ActualMinutes)
	assert.Equal(t, dayAt(9, 45), *task.ActualEnd)
}

func TestTask_CompleteWithoutStartLeavesActualAbsent(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)

	require.NoError(t, task.Complete(dayAt(11, 0)))
	assert.Equal(t, StatusCompleted, task.Status)
	assert.Nil(t, task.ActualMinutes)
	assert.Nil(t, task.ActualStart)
	require.NotNil(t, task.ActualEnd)
}

func TestTask_CompleteRejectedFromTerminalStates(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)
	require.NoError(t, task.Complete(dayAt(9, 30)))

	assert.ErrorIs(t, task.Complete(dayAt(9, 31)), ErrInvalidTransition)

	skipped, err := NewTask("y", dayAt(10, 0), dayAt(11, 0))
	require.NoError(t, err)
	skipped.Skip()
	assert.ErrorIs(t, skipped.Complete(dayAt(10, 30)), ErrInvalidTransition)
}

func TestTask_ForceCompleteRevivesSkipped(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)
	task.Skip()

	task.ForceComplete(dayAt(9, 50))
	assert.Equal(t, StatusCompleted, task.Status)
	require.NotNil(t, task.ActualEnd)
	assert.Equal(t, dayAt(9, 50), *task.ActualEnd)
}

func TestTask_SkipIsUnconditionalAndKeepsTimes(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)
	require.NoError(t, task.Start(dayAt(9, 0)))

	task.Skip()
	assert.Equal(t, StatusSkipped, task.Status)
	assert.NotNil(t, task.ActualStart)
	assert.Nil(t, task.ActualEnd)
	assert.Nil(t, task.ActualMinutes)
}

func TestTask_ElapsedAndOverdue(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(9, 30))
	require.NoError(t, err)

	_, ok := task.ElapsedMinutes(dayAt(9, 10))
	assert.False(t, ok, "a never-started task has no elapsed time")
	assert.False(t, task.IsOverdue(dayAt(23, 0)))

	require.NoError(t, task.Start(dayAt(9, 0)))
	elapsed, ok := task.ElapsedMinutes(dayAt(9, 20))
	require.True(t, ok)
	assert.Equal(t, int64(20), elapsed)

	assert.False(t, task.IsOverdue(dayAt(9, 30)))
	assert.True(t, task.IsOverdue(dayAt(9, 31)))
}

func TestTask_EffectiveSliceMinutes(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)
	assert.Equal(t, DefaultSliceMinutes, task.EffectiveSliceMinutes())

	task.PomodoroMinutes = 50
	assert.Equal(t, 50, task.EffectiveSliceMinutes())
}

func TestTask_RecomputeEstimate(t *testing.T) {
	task, err := NewTask("x", dayAt(9, 0), dayAt(10, 0))
	require.NoError(t, err)
	require.Equal(t, int64(60), task.EstimatedMinutes)

	task.EndTime = dayAt(11, 30)
	assert.Equal(t, int64(60), task.EstimatedMinutes, "estimate is never recomputed implicitly")

	task.RecomputeEstimate()
	assert.Equal(t, int64(150), task.EstimatedMinutes)
}
