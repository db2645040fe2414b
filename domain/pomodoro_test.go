package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPomodoroTracker_SlicesRoundUp(t *testing.T) {
	assert.Equal(t, 2, NewPomodoroTracker(50, 25).TotalSlices)
	assert.Equal(t, 3, NewPomodoroTracker(51, 25).TotalSlices)
	assert.Equal(t, 1, NewPomodoroTracker(25, 25).TotalSlices)
}

func TestNewPomodoroTracker_AtLeastOneSlice(t *testing.T) {
	assert.Equal(t, 1, NewPomodoroTracker(1, 25).TotalSlices)
	assert.Equal(t, 1, NewPomodoroTracker(0, 25).TotalSlices)
}

func TestNewPomodoroTracker_DefaultsApply(t *testing.T) {
	p := NewPomodoroTracker(100, 0)
	assert.Equal(t, DefaultSliceMinutes, p.SliceMinutes)
	assert.Equal(t, DefaultShortBreakMinutes, p.ShortBreak)
	assert.Equal(t, DefaultLongBreakMinutes, p.LongBreak)
	assert.Equal(t, 4, p.TotalSlices)
}

func TestNewPomodoroTracker_CustomSlice(t *testing.T) {
	p := NewPomodoroTracker(100, 50)
	assert.Equal(t, 2, p.TotalSlices)
	assert.Equal(t, 50, p.SliceMinutes)
}

func TestPomodoroTracker_SliceLifecycle(t *testing.T) {
	p := NewPomodoroTracker(50, 25)

	_, ok := p.ElapsedMinutes(dayAt(9, 10))
	assert.False(t, ok, "no slice running yet")

	p.StartSlice(dayAt(9, 0))
	elapsed, ok := p.ElapsedMinutes(dayAt(9, 10))
	require.True(t, ok)
	assert.Equal(t, int64(10), elapsed)

	remaining, ok := p.RemainingMinutes(dayAt(9, 10))
	require.True(t, ok)
	assert.Equal(t, int64(15), remaining)

	remaining, ok = p.RemainingMinutes(dayAt(9, 40))
	require.True(t, ok)
	assert.Zero(t, remaining, "remaining floors at zero past the slice length")

	p.CompleteSlice()
	assert.Equal(t, 1, p.CompletedSlices)
	assert.Nil(t, p.CurrentStart)
	assert.False(t, p.IsComplete())

	p.StartSlice(dayAt(9, 30))
	p.CompleteSlice()
	assert.True(t, p.IsComplete())
}

func TestPomodoroTracker_ClearSliceDropsWithoutCredit(t *testing.T) {
	p := NewPomodoroTracker(50, 25)
	p.StartSlice(dayAt(9, 0))
	p.ClearSlice()

	assert.Nil(t, p.CurrentStart)
	assert.Zero(t, p.CompletedSlices)
}

func TestPomodoroTracker_BreakPattern(t *testing.T) {
	p := NewPomodoroTracker(125, 25) // 5 slices

	var breaks []int
	for i := 0; i < 5; i++ {
		breaks = append(breaks, p.NextBreakMinutes())
		p.CompleteSlice()
	}
	assert.Equal(t, []int{
		DefaultShortBreakMinutes,
		DefaultShortBreakMinutes,
		DefaultShortBreakMinutes,
		DefaultLongBreakMinutes,
		DefaultShortBreakMinutes,
	}, breaks, "every fourth slice earns the long break")
}

func TestPomodoroTracker_OvershootIsAllowed(t *testing.T) {
	p := NewPomodoroTracker(25, 25)
	p.CompleteSlice()
	p.CompleteSlice()

	assert.Equal(t, 2, p.CompletedSlices)
	assert.True(t, p.IsComplete())
}
