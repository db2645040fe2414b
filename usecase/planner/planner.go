package planner

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dayflow/backend/domain"
	"github.com/dayflow/backend/repository"
)

// TaskInput carries the fields needed to plan a task. Start and End are
// times of day (HH:MM) on the schedule's date.
type TaskInput struct {
	Title           string
	Start           string
	End             string
	Tags            []string
	Notes           string
	PomodoroMinutes int
}

// Summary bundles the schedule-level metrics for one day. WastedMinutes is
// computed against the clock at call time and must not be cached.
type Summary struct {
	Date            time.Time `json:"date"`
	TotalTasks      int       `json:"total_tasks"`
	CompletedTasks  int       `json:"completed_tasks"`
	CompletionRate  float64   `json:"completion_rate"`
	TimeAccuracy    *float64  `json:"time_accuracy,omitempty"`
	EfficiencyScore float64   `json:"efficiency_score"`
	TotalPlanned    int64     `json:"total_planned_minutes"`
	EarnedMinutes   int64     `json:"earned_minutes"`
	WastedMinutes   int64     `json:"wasted_minutes"`
	BonusMinutes    int64     `json:"bonus_minutes"`
	PenaltyMinutes  int64     `json:"penalty_minutes"`
}

// SliceStatus describes the current pomodoro slice of the running task.
type SliceStatus struct {
	TaskID           string `json:"task_id"`
	TaskTitle        string `json:"task_title"`
	TotalSlices      int    `json:"total_slices"`
	CompletedSlices  int    `json:"completed_slices"`
	ElapsedMinutes   int64  `json:"elapsed_minutes"`
	RemainingMinutes int64  `json:"remaining_minutes"`
	NextBreakMinutes int    `json:"next_break_minutes"`
	Complete         bool   `json:"complete"`
}

// UseCase drives every schedule and task mutation.
type UseCase struct {
	schedules repository.ScheduleRepository
	clock     domain.Clock
	logger    *zap.Logger
}

func New(schedules repository.ScheduleRepository, clock domain.Clock, logger *zap.Logger) *UseCase {
	if clock == nil {
		clock = domain.SystemClock()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		schedules: schedules,
		clock:     clock,
		logger:    logger,
	}
}

// ScheduleFor loads the schedule stored for the given date.
func (uc *UseCase) ScheduleFor(ctx context.Context, date time.Time) (*domain.Schedule, error) {
	return uc.schedules.Get(ctx, date)
}

// Today loads today's schedule per the clock.
func (uc *UseCase) Today(ctx context.Context) (*domain.Schedule, error) {
	return uc.schedules.GetToday(ctx)
}

// CreateSchedule replaces the day's schedule with the given tasks.
func (uc *UseCase) CreateSchedule(ctx context.Context, date time.Time, inputs []TaskInput) (*domain.Schedule, error) {
	now := uc.clock.Now()
	schedule := domain.NewSchedule(date)
	for _, input := range inputs {
		task, err := uc.buildTask(date, input)
		if err != nil {
			return nil, err
		}
		if err := schedule.AddTask(task, now); err != nil {
			return nil, err
		}
	}
	if err := uc.schedules.Put(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// AddTask plans one task on the given day, creating the day's schedule when
// none exists yet.
func (uc *UseCase) AddTask(ctx context.Context, date time.Time, input TaskInput) (*domain.Task, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		schedule = domain.NewSchedule(date)
	}

	task, err := uc.buildTask(date, input)
	if err != nil {
		return nil, err
	}
	if err := schedule.AddTask(task, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.schedules.Put(ctx, schedule); err != nil {
		return nil, err
	}
	return task, nil
}

// StartTask starts (or resumes from pause) the task. At most one task may
// be in progress per schedule; starting a second one is a conflict.
func (uc *UseCase) StartTask(ctx context.Context, date time.Time, id string) (*domain.Task, error) {
	return uc.mutateTask(ctx, date, id, func(schedule *domain.Schedule, task *domain.Task) error {
		if current, err := schedule.CurrentTask(); err == nil && current.ID != task.ID {
			return domain.WrapError(domain.ErrCodeConflict,
				fmt.Sprintf("task %q is already in progress", current.Title), nil)
		}
		return task.Start(uc.clock.Now())
	})
}

// PauseTask pauses an in-progress task.
func (uc *UseCase) PauseTask(ctx context.Context, date time.Time, id string) (*domain.Task, error) {
	return uc.mutateTask(ctx, date, id, func(_ *domain.Schedule, task *domain.Task) error {
		return task.Pause()
	})
}

// ResumeTask resumes a paused task.
func (uc *UseCase) ResumeTask(ctx context.Context, date time.Time, id string) (*domain.Task, error) {
	return uc.mutateTask(ctx, date, id, func(schedule *domain.Schedule, task *domain.Task) error {
		if current, err := schedule.CurrentTask(); err == nil && current.ID != task.ID {
			return domain.WrapError(domain.ErrCodeConflict,
				fmt.Sprintf("task %q is already in progress", current.Title), nil)
		}
		return task.Resume(uc.clock.Now())
	})
}

// CompleteTask completes a task. With force set it applies the legacy
// any-state completion instead of the guarded transition.
func (uc *UseCase) CompleteTask(ctx context.Context, date time.Time, id string, force bool) (*domain.Task, error) {
	return uc.mutateTask(ctx, date, id, func(_ *domain.Schedule, task *domain.Task) error {
		now := uc.clock.Now()
		if force {
			uc.logger.Warn("force-completing task",
				zap.String("task_id", task.ID),
				zap.String("status", string(task.Status)))
			task.ForceComplete(now)
			return nil
		}
		return task.Complete(now)
	})
}

// SkipTask abandons a task.
func (uc *UseCase) SkipTask(ctx context.Context, date time.Time, id string) (*domain.Task, error) {
	return uc.mutateTask(ctx, date, id, func(_ *domain.Schedule, task *domain.Task) error {
		task.Skip()
		return nil
	})
}

// DeleteTask removes a task from the day.
func (uc *UseCase) DeleteTask(ctx context.Context, date time.Time, id string) error {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return err
	}
	if _, err := schedule.RemoveTask(id, uc.clock.Now()); err != nil {
		return err
	}
	return uc.schedules.Put(ctx, schedule)
}

// UpdateTaskTimes reschedules a task's planned window and recomputes its
// estimate.
func (uc *UseCase) UpdateTaskTimes(ctx context.Context, date time.Time, id, start, end string) (*domain.Task, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	startAt, err := parseTimeOn(date, start)
	if err != nil {
		return nil, err
	}
	endAt, err := parseTimeOn(date, end)
	if err != nil {
		return nil, err
	}
	if err := schedule.UpdateTaskTimes(id, startAt, endAt, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.schedules.Put(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule.FindTask(id)
}

// Shift delays (or advances) every task from the given index onward.
func (uc *UseCase) Shift(ctx context.Context, date time.Time, fromIndex int, minutes int64) (*domain.Schedule, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := schedule.ShiftFrom(fromIndex, minutes, uc.clock.Now()); err != nil {
		return nil, err
	}
	if err := uc.schedules.Put(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// CurrentTask returns the running task of the day.
func (uc *UseCase) CurrentTask(ctx context.Context, date time.Time) (*domain.Task, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	return schedule.CurrentTask()
}

// NextTask returns the upcoming pending task of the day.
func (uc *UseCase) NextTask(ctx context.Context, date time.Time) (*domain.Task, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	return schedule.NextTask()
}

// Summarize computes the schedule-level metrics for the day. Wasted time is
// evaluated against the clock at this instant.
func (uc *UseCase) Summarize(ctx context.Context, date time.Time) (*Summary, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	summary := &Summary{
		Date:            schedule.Date,
		TotalTasks:      len(schedule.Tasks),
		CompletedTasks:  schedule.CompletedTasks(),
		CompletionRate:  schedule.CompletionRate(),
		EfficiencyScore: schedule.EfficiencyScore(),
		TotalPlanned:    schedule.TotalPlanned(),
		EarnedMinutes:   schedule.TotalEarned(),
		WastedMinutes:   schedule.TotalWasted(uc.clock.Now()),
		BonusMinutes:    schedule.TotalBonus(),
		PenaltyMinutes:  schedule.TotalPenalty(),
	}
	if accuracy, ok := schedule.TimeAccuracy(); ok {
		summary.TimeAccuracy = &accuracy
	}
	return summary, nil
}

// SliceStatus reports the running task's pomodoro slice.
func (uc *UseCase) SliceStatus(ctx context.Context) (*SliceStatus, error) {
	schedule, err := uc.schedules.GetToday(ctx)
	if err != nil {
		return nil, err
	}
	current, err := schedule.CurrentTask()
	if err != nil {
		return nil, err
	}
	if current.Pomodoro == nil {
		return nil, domain.ErrNoActiveSlice
	}
	return uc.sliceStatus(current), nil
}

// CompleteSlice credits the running task's active slice and returns the
// refreshed status, including the break the user has earned.
func (uc *UseCase) CompleteSlice(ctx context.Context) (*SliceStatus, error) {
	schedule, err := uc.schedules.GetToday(ctx)
	if err != nil {
		return nil, err
	}
	current, err := schedule.CurrentTask()
	if err != nil {
		return nil, err
	}
	if current.Pomodoro == nil || current.Pomodoro.CurrentStart == nil {
		return nil, domain.ErrNoActiveSlice
	}
	current.Pomodoro.CompleteSlice()
	if err := uc.schedules.Put(ctx, schedule); err != nil {
		return nil, err
	}
	return uc.sliceStatus(current), nil
}

func (uc *UseCase) sliceStatus(task *domain.Task) *SliceStatus {
	now := uc.clock.Now()
	status := &SliceStatus{
		TaskID:           task.ID,
		TaskTitle:        task.Title,
		TotalSlices:      task.Pomodoro.TotalSlices,
		CompletedSlices:  task.Pomodoro.CompletedSlices,
		NextBreakMinutes: task.Pomodoro.NextBreakMinutes(),
		Complete:         task.Pomodoro.IsComplete(),
	}
	if elapsed, ok := task.Pomodoro.ElapsedMinutes(now); ok {
		status.ElapsedMinutes = elapsed
		remaining, _ := task.Pomodoro.RemainingMinutes(now)
		status.RemainingMinutes = remaining
	}
	return status
}

func (uc *UseCase) mutateTask(
	ctx context.Context,
	date time.Time,
	id string,
	mutate func(*domain.Schedule, *domain.Task) error,
) (*domain.Task, error) {
	schedule, err := uc.schedules.Get(ctx, date)
	if err != nil {
		return nil, err
	}
	task, err := schedule.FindTask(id)
	if err != nil {
		return nil, err
	}
	if err := mutate(schedule, task); err != nil {
		return nil, err
	}
	if err := uc.schedules.Put(ctx, schedule); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) buildTask(date time.Time, input TaskInput) (*domain.Task, error) {
	start, err := parseTimeOn(date, input.Start)
	if err != nil {
		return nil, err
	}
	end, err := parseTimeOn(date, input.End)
	if err != nil {
		return nil, err
	}
	task, err := domain.NewTask(input.Title, start, end)
	if err != nil {
		return nil, err
	}
	task.Tags = input.Tags
	task.Notes = input.Notes
	task.PomodoroMinutes = input.PomodoroMinutes
	return task, nil
}

// parseTimeOn resolves an HH:MM time of day onto the given calendar date.
func parseTimeOn(date time.Time, value string) (time.Time, error) {
	parsed, err := time.Parse("15:04", value)
	if err != nil {
		return time.Time{}, domain.WrapError(domain.ErrCodeInvalid,
			fmt.Sprintf("invalid time %q, expected HH:MM", value), err)
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, date.Location()), nil
}
