package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus models the task lifecycle.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusPaused     TaskStatus = "paused"
	StatusCompleted  TaskStatus = "completed"
	StatusSkipped    TaskStatus = "skipped"
)

// Terminal reports whether no further lifecycle transitions are expected.
func (s TaskStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusSkipped
}

// Task is a single time-boxed unit of work.
//
// EstimatedMinutes is derived from the planned interval at creation and
// never recomputed implicitly; an editor that changes the planned times
// must call RecomputeEstimate itself.
type Task struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	StartTime time.Time  `json:"start_time"`
	EndTime   time.Time  `json:"end_time"`
	Status    TaskStatus `json:"status"`

	EstimatedMinutes int64      `json:"estimated_duration_minutes"`
	ActualMinutes    *int64     `json:"actual_duration_minutes,omitempty"`
	ActualStart      *time.Time `json:"actual_start_time,omitempty"`
	ActualEnd        *time.Time `json:"actual_end_time,omitempty"`

	Tags            []string         `json:"tags,omitempty"`
	Notes           string           `json:"notes,omitempty"`
	PomodoroMinutes int              `json:"custom_pomodoro_minutes,omitempty"`
	Pomodoro        *PomodoroTracker `json:"pomodoro,omitempty"`
}

// NewTask creates a pending task for the planned interval.
func NewTask(title string, start, end time.Time) (*Task, error) {
	if !end.After(start) {
		return nil, ErrInvalidInterval
	}
	return &Task{
		ID:               uuid.NewString(),
		Title:            title,
		StartTime:        start,
		EndTime:          end,
		Status:           StatusPending,
		EstimatedMinutes: int64(end.Sub(start).Minutes()),
	}, nil
}

// RecomputeEstimate resets the estimate from the current planned interval.
func (t *Task) RecomputeEstimate() {
	t.EstimatedMinutes = int64(t.EndTime.Sub(t.StartTime).Minutes())
}

// EffectiveSliceMinutes is the task's pomodoro slice length.
func (t *Task) EffectiveSliceMinutes() int {
	if t.PomodoroMinutes > 0 {
		return t.PomodoroMinutes
	}
	return DefaultSliceMinutes
}

// Start moves the task into progress. Allowed from Pending and Paused.
// The first call records the actual start and creates the pomodoro tracker;
// later calls only restart the tracker's active slice.
func (t *Task) Start(now time.Time) error {
	if t.Status != StatusPending && t.Status != StatusPaused {
		return WrapError(ErrCodeInvalid, "cannot start task", ErrInvalidTransition)
	}
	t.Status = StatusInProgress
	if t.ActualStart == nil {
		t.ActualStart = &now
	}
	if t.Pomodoro == nil {
		t.Pomodoro = NewPomodoroTracker(t.EstimatedMinutes, t.EffectiveSliceMinutes())
	}
	t.Pomodoro.StartSlice(now)
	return nil
}

// Pause freezes an in-progress task. Completed slices stay credited; only
// the active slice's elapsed time is dropped.
func (t *Task) Pause() error {
	if t.Status != StatusInProgress {
		return WrapError(ErrCodeInvalid, "cannot pause task", ErrInvalidTransition)
	}
	t.Status = StatusPaused
	if t.Pomodoro != nil {
		t.Pomodoro.ClearSlice()
	}
	return nil
}

// Resume continues a paused task and restarts the active slice.
func (t *Task) Resume(now time.Time) error {
	if t.Status != StatusPaused {
		return WrapError(ErrCodeInvalid, "cannot resume task", ErrInvalidTransition)
	}
	t.Status = StatusInProgress
	if t.Pomodoro != nil {
		t.Pomodoro.StartSlice(now)
	}
	return nil
}

// Complete finishes the task. Allowed from Pending, InProgress and Paused;
// a terminal task cannot be completed again. The actual duration is
// wall-clock time between first start and completion, pauses included, and
// stays absent when the task was never started.
func (t *Task) Complete(now time.Time) error {
	if t.Status.Terminal() {
		return WrapError(ErrCodeInvalid, "cannot complete task", ErrInvalidTransition)
	}
	t.applyCompletion(now)
	return nil
}

// ForceComplete applies the completion from any state, including Skipped.
// It exists for callers that deliberately want the legacy unguarded
// behavior; everything else should use Complete.
func (t *Task) ForceComplete(now time.Time) {
	t.applyCompletion(now)
}

func (t *Task) applyCompletion(now time.Time) {
	t.Status = StatusCompleted
	t.ActualEnd = &now
	if t.ActualStart != nil {
		actual := int64(now.Sub(*t.ActualStart).Minutes())
		t.ActualMinutes = &actual
	}
}

// Skip abandons the task unconditionally; no time fields are touched.
func (t *Task) Skip() {
	t.Status = StatusSkipped
}

// ElapsedMinutes returns minutes since the first start, or false when the
// task never started.
func (t *Task) ElapsedMinutes(now time.Time) (int64, bool) {
	if t.ActualStart == nil {
		return 0, false
	}
	return int64(now.Sub(*t.ActualStart).Minutes()), true
}

// IsOverdue reports whether the running time has exceeded the estimate.
func (t *Task) IsOverdue(now time.Time) bool {
	elapsed, ok := t.ElapsedMinutes(now)
	return ok && elapsed > t.EstimatedMinutes
}

// IsCurrent reports whether the task is in progress.
func (t *Task) IsCurrent() bool {
	return t.Status == StatusInProgress
}
