package domain

import (
	"math"
	"time"
)

// Pomodoro defaults in minutes.
const (
	DefaultSliceMinutes      = 25
	DefaultShortBreakMinutes = 5
	DefaultLongBreakMinutes  = 15
)

// PomodoroTracker counts focus slices for a single task. It is created
// lazily on the task's first start and owned exclusively by the task.
type PomodoroTracker struct {
	TotalSlices     int        `json:"total_slices"`
	CompletedSlices int        `json:"completed_slices"`
	CurrentStart    *time.Time `json:"current_start,omitempty"`
	SliceMinutes    int        `json:"slice_minutes"`
	ShortBreak      int        `json:"short_break"`
	LongBreak       int        `json:"long_break"`
}

// NewPomodoroTracker sizes a tracker for the estimated duration, one slice
// minimum. sliceMinutes falls back to the 25-minute default when not positive.
func NewPomodoroTracker(estimatedMinutes int64, sliceMinutes int) *PomodoroTracker {
	if sliceMinutes <= 0 {
		sliceMinutes = DefaultSliceMinutes
	}
	total := int(math.Ceil(float64(estimatedMinutes) / float64(sliceMinutes)))
	if total < 1 {
		total = 1
	}
	return &PomodoroTracker{
		TotalSlices:  total,
		SliceMinutes: sliceMinutes,
		ShortBreak:   DefaultShortBreakMinutes,
		LongBreak:    DefaultLongBreakMinutes,
	}
}

// StartSlice marks a slice as actively running.
func (p *PomodoroTracker) StartSlice(now time.Time) {
	p.CurrentStart = &now
}

// CompleteSlice records a finished slice and clears the active slice.
// Completing more slices than planned is not prevented.
func (p *PomodoroTracker) CompleteSlice() {
	p.CompletedSlices++
	p.CurrentStart = nil
}

// ClearSlice drops the active slice without crediting it. Used when the
// owning task pauses.
func (p *PomodoroTracker) ClearSlice() {
	p.CurrentStart = nil
}

// ElapsedMinutes returns minutes since the active slice started, or false
// when no slice is running.
func (p *PomodoroTracker) ElapsedMinutes(now time.Time) (int64, bool) {
	if p.CurrentStart == nil {
		return 0, false
	}
	return int64(now.Sub(*p.CurrentStart).Minutes()), true
}

// RemainingMinutes returns minutes left in the active slice, floored at 0.
func (p *PomodoroTracker) RemainingMinutes(now time.Time) (int64, bool) {
	elapsed, ok := p.ElapsedMinutes(now)
	if !ok {
		return 0, false
	}
	remaining := int64(p.SliceMinutes) - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining, true
}

// IsComplete reports whether every planned slice has been completed.
func (p *PomodoroTracker) IsComplete() bool {
	return p.CompletedSlices >= p.TotalSlices
}

// NextBreakMinutes returns the length of the break after the current slice:
// a long break every fourth completion, a short one otherwise.
func (p *PomodoroTracker) NextBreakMinutes() int {
	if (p.CompletedSlices+1)%4 == 0 {
		return p.LongBreak
	}
	return p.ShortBreak
}
