package domain

import (
	"fmt"
	"sort"
	"time"
)

// ChangeKind classifies entries in a schedule's change log.
type ChangeKind string

const (
	ChangeTaskCreated     ChangeKind = "task_created"
	ChangeTaskUpdated     ChangeKind = "task_updated"
	ChangeTaskDeleted     ChangeKind = "task_deleted"
	ChangeTaskMoved       ChangeKind = "task_moved"
	ChangeScheduleShifted ChangeKind = "schedule_shifted"
)

// ScheduleChange is one append-only change-log entry. Entries are never
// mutated or removed once recorded.
type ScheduleChange struct {
	Timestamp     time.Time  `json:"timestamp"`
	Kind          ChangeKind `json:"kind"`
	TaskTitle     string     `json:"task_title,omitempty"`
	OldTime       string     `json:"old_time,omitempty"`
	NewTime       string     `json:"new_time,omitempty"`
	AffectedTasks int        `json:"affected_tasks,omitempty"`
	Description   string     `json:"description"`
}

func changeTaskCreated(now time.Time, title string) ScheduleChange {
	return ScheduleChange{
		Timestamp:   now,
		Kind:        ChangeTaskCreated,
		TaskTitle:   title,
		Description: fmt.Sprintf("added %q", title),
	}
}

func changeTaskDeleted(now time.Time, title string) ScheduleChange {
	return ScheduleChange{
		Timestamp:   now,
		Kind:        ChangeTaskDeleted,
		TaskTitle:   title,
		Description: fmt.Sprintf("removed %q", title),
	}
}

func changeTaskUpdated(now time.Time, title, oldTime, newTime string) ScheduleChange {
	return ScheduleChange{
		Timestamp:   now,
		Kind:        ChangeTaskUpdated,
		TaskTitle:   title,
		OldTime:     oldTime,
		NewTime:     newTime,
		Description: fmt.Sprintf("rescheduled %q from %s to %s", title, oldTime, newTime),
	}
}

// ChangeTaskMovedEntry records a drag-style move of one task.
func ChangeTaskMovedEntry(now time.Time, title, oldTime, newTime string) ScheduleChange {
	return ScheduleChange{
		Timestamp:   now,
		Kind:        ChangeTaskMoved,
		TaskTitle:   title,
		OldTime:     oldTime,
		NewTime:     newTime,
		Description: fmt.Sprintf("moved %q from %s to %s", title, oldTime, newTime),
	}
}

func changeScheduleShifted(now time.Time, anchor string, minutes int64, affected int) ScheduleChange {
	direction := "later"
	if minutes < 0 {
		direction = "earlier"
		minutes = -minutes
	}
	return ScheduleChange{
		Timestamp:     now,
		Kind:          ChangeScheduleShifted,
		TaskTitle:     anchor,
		AffectedTasks: affected,
		Description:   fmt.Sprintf("shifted %d tasks from %q %d minutes %s", affected, anchor, minutes, direction),
	}
}

// Schedule holds one calendar day's tasks. It exclusively owns its tasks
// and their change history. The date key is the schedule's own Date field,
// regardless of the wall-clock day any task's times have been edited onto.
type Schedule struct {
	Date    time.Time        `json:"date"`
	Tasks   []*Task          `json:"tasks"`
	Changes []ScheduleChange `json:"changes"`

	// Cached metrics, refreshed by CalculateStats. Wasted time is never
	// cached: it depends on "now" at read time.
	CompletionRateCached *float64 `json:"completion_rate,omitempty"`
	EfficiencyCached     *float64 `json:"efficiency_score,omitempty"`
	TotalEarnedCached    *int64   `json:"total_earned,omitempty"`
	TotalBonusCached     *int64   `json:"total_bonus,omitempty"`
	TotalPenaltyCached   *int64   `json:"total_penalty,omitempty"`
}

// NewSchedule creates an empty schedule for the given day.
func NewSchedule(date time.Time) *Schedule {
	return &Schedule{Date: date}
}

// DateKey returns the persistence key for this schedule.
func (s *Schedule) DateKey() string {
	return DateKey(s.Date)
}

// AddTask inserts a task after checking the planned interval against every
// existing task. Intervals are half-open: a task ending exactly when
// another starts does not conflict. The first colliding task in list order
// names the rejection. The invariant is checked on insert only.
func (s *Schedule) AddTask(task *Task, now time.Time) error {
	for _, existing := range s.Tasks {
		if overlaps(task, existing) {
			return WrapError(ErrCodeConflict,
				fmt.Sprintf("time conflict with task %q", existing.Title), nil)
		}
	}
	s.Tasks = append(s.Tasks, task)
	s.Changes = append(s.Changes, changeTaskCreated(now, task.Title))
	return nil
}

// overlaps implements the half-open interval rule: [s1,e1) and [s2,e2)
// conflict iff s1 < e2 && s2 < e1.
func overlaps(a, b *Task) bool {
	return a.StartTime.Before(b.EndTime) && b.StartTime.Before(a.EndTime)
}

// RemoveTask deletes the task with the given id.
func (s *Schedule) RemoveTask(id string, now time.Time) (*Task, error) {
	for i, t := range s.Tasks {
		if t.ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			s.Changes = append(s.Changes, changeTaskDeleted(now, t.Title))
			return t, nil
		}
	}
	return nil, ErrTaskNotFound
}

// FindTask returns the task with the given id.
func (s *Schedule) FindTask(id string) (*Task, error) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, ErrTaskNotFound
}

// UpdateTaskTimes reschedules a task's planned interval, recomputes its
// estimate and logs the change. No conflict re-validation happens here.
func (s *Schedule) UpdateTaskTimes(id string, start, end time.Time, now time.Time) error {
	if !end.After(start) {
		return ErrInvalidInterval
	}
	task, err := s.FindTask(id)
	if err != nil {
		return err
	}
	oldTime := task.StartTime.Format("15:04")
	task.StartTime = start
	task.EndTime = end
	task.RecomputeEstimate()
	s.Changes = append(s.Changes, changeTaskUpdated(now, task.Title, oldTime, start.Format("15:04")))
	return nil
}

// CurrentTask returns the first in-progress task in list order. The model
// tolerates more than one; callers must not assume uniqueness.
func (s *Schedule) CurrentTask() (*Task, error) {
	for _, t := range s.Tasks {
		if t.IsCurrent() {
			return t, nil
		}
	}
	return nil, ErrNoCurrentTask
}

// NextTask returns the pending task with the earliest planned start, the
// first one encountered winning ties.
func (s *Schedule) NextTask() (*Task, error) {
	var next *Task
	for _, t := range s.Tasks {
		if t.Status != StatusPending {
			continue
		}
		if next == nil || t.StartTime.Before(next.StartTime) {
			next = t
		}
	}
	if next == nil {
		return nil, ErrNoNextTask
	}
	return next, nil
}

// SortByTime orders tasks by planned start. It is never applied
// automatically; callers that need temporal order invoke it explicitly.
func (s *Schedule) SortByTime() {
	sort.SliceStable(s.Tasks, func(i, j int) bool {
		return s.Tasks[i].StartTime.Before(s.Tasks[j].StartTime)
	})
}

// ShiftFrom moves every task from index onward by minutes and logs one
// shift entry. Overlap against tasks before the anchor is not re-validated;
// callers own that consistency.
func (s *Schedule) ShiftFrom(index int, minutes int64, now time.Time) error {
	if index < 0 || index >= len(s.Tasks) {
		return ErrIndexOutOfBounds
	}
	delta := time.Duration(minutes) * time.Minute
	for _, t := range s.Tasks[index:] {
		t.StartTime = t.StartTime.Add(delta)
		t.EndTime = t.EndTime.Add(delta)
	}
	affected := len(s.Tasks) - index
	s.Changes = append(s.Changes, changeScheduleShifted(now, s.Tasks[index].Title, minutes, affected))
	return nil
}

// CompletionRate is the percentage of tasks completed, 0 for an empty day.
func (s *Schedule) CompletionRate() float64 {
	if len(s.Tasks) == 0 {
		return 0
	}
	completed := 0
	for _, t := range s.Tasks {
		if t.Status == StatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(s.Tasks)) * 100
}

// CompletedTasks counts completed tasks.
func (s *Schedule) CompletedTasks() int {
	n := 0
	for _, t := range s.Tasks {
		if t.Status == StatusCompleted {
			n++
		}
	}
	return n
}

// TimeAccuracy averages per-task estimate accuracy over completed tasks
// that carry an actual duration. False when there are none.
func (s *Schedule) TimeAccuracy() (float64, bool) {
	var sum float64
	var n int
	for _, t := range s.Tasks {
		if t.Status != StatusCompleted || t.ActualMinutes == nil {
			continue
		}
		estimated := float64(t.EstimatedMinutes)
		diff := estimated - float64(*t.ActualMinutes)
		if diff < 0 {
			diff = -diff
		}
		accuracy := (estimated - diff) / estimated * 100
		if accuracy < 0 {
			accuracy = 0
		}
		sum += accuracy
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// TotalEarned sums earned minutes over completed tasks.
func (s *Schedule) TotalEarned() int64 {
	var total int64
	for _, t := range s.Tasks {
		if t.Status == StatusCompleted {
			total += AccountTask(t).EarnedMinutes
		}
	}
	return total
}

// TotalBonus sums bonus minutes for early completions.
func (s *Schedule) TotalBonus() int64 {
	var total int64
	for _, t := range s.Tasks {
		total += AccountTask(t).BonusMinutes
	}
	return total
}

// TotalPenalty sums penalty minutes for late completions.
func (s *Schedule) TotalPenalty() int64 {
	var total int64
	for _, t := range s.Tasks {
		total += AccountTask(t).PenaltyMinutes
	}
	return total
}

// TotalWasted sums the estimates of every non-completed task whose planned
// window already elapsed, skipped and never-started tasks alike. It is a
// function of "now" and must be recomputed on every read.
func (s *Schedule) TotalWasted(now time.Time) int64 {
	var total int64
	for _, t := range s.Tasks {
		if t.Status != StatusCompleted && t.EndTime.Before(now) {
			total += t.EstimatedMinutes
		}
	}
	return total
}

// TotalPlanned sums estimated minutes across all tasks.
func (s *Schedule) TotalPlanned() int64 {
	var total int64
	for _, t := range s.Tasks {
		total += t.EstimatedMinutes
	}
	return total
}

// EfficiencyScore is the schedule-level metric: earned over planned, capped
// at 100. The day-level accountability score is a different formula; see
// DailyAccountability.EfficiencyScore.
func (s *Schedule) EfficiencyScore() float64 {
	planned := s.TotalPlanned()
	if planned == 0 {
		return 0
	}
	score := float64(s.TotalEarned()) / float64(planned) * 100
	if score > 100 {
		score = 100
	}
	return score
}

// CalculateStats refreshes the cached metric fields. Wasted time is
// deliberately left out.
func (s *Schedule) CalculateStats() {
	rate := s.CompletionRate()
	eff := s.EfficiencyScore()
	earned := s.TotalEarned()
	bonus := s.TotalBonus()
	penalty := s.TotalPenalty()
	s.CompletionRateCached = &rate
	s.EfficiencyCached = &eff
	s.TotalEarnedCached = &earned
	s.TotalBonusCached = &bonus
	s.TotalPenaltyCached = &penalty
}
