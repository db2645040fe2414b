package advisor

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow/backend/domain"
)

// TaskInfo is the slimmed task view handed to the advisor.
type TaskInfo struct {
	Title            string `json:"title"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	Status           string `json:"status"`
	ElapsedMinutes   *int64 `json:"elapsed_minutes,omitempty"`
	EstimatedMinutes int64  `json:"estimated_minutes"`
}

// DaySummary condenses the schedule for prompt context.
type DaySummary struct {
	Date             string  `json:"date"`
	TotalTasks       int     `json:"total_tasks"`
	CompletedTasks   int     `json:"completed_tasks"`
	InProgressTasks  int     `json:"in_progress_tasks"`
	PendingTasks     int     `json:"pending_tasks"`
	CompletionRate   float64 `json:"completion_rate"`
	EstimatedMinutes int64   `json:"total_estimated_minutes"`
	ActualMinutes    int64   `json:"total_actual_minutes"`
}

// ScheduleContext is everything the advisor sees about the day.
type ScheduleContext struct {
	CurrentTime string     `json:"current_time"`
	CurrentTask *TaskInfo  `json:"current_task,omitempty"`
	NextTask    *TaskInfo  `json:"next_task,omitempty"`
	Today       DaySummary `json:"today_schedule"`
}

// CollectContext snapshots a schedule for prompt building.
func CollectContext(schedule *domain.Schedule, now time.Time) *ScheduleContext {
	ctx := &ScheduleContext{
		CurrentTime: now.Format("2006-01-02 15:04"),
		Today:       summarize(schedule),
	}
	if current, err := schedule.CurrentTask(); err == nil {
		ctx.CurrentTask = taskInfo(current, now)
	}
	if next, err := schedule.NextTask(); err == nil {
		ctx.NextTask = taskInfo(next, now)
	}
	return ctx
}

func taskInfo(t *domain.Task, now time.Time) *TaskInfo {
	info := &TaskInfo{
		Title:            t.Title,
		StartTime:        t.StartTime.Format("15:04"),
		EndTime:          t.EndTime.Format("15:04"),
		Status:           string(t.Status),
		EstimatedMinutes: t.EstimatedMinutes,
	}
	if elapsed, ok := t.ElapsedMinutes(now); ok {
		info.ElapsedMinutes = &elapsed
	}
	return info
}

func summarize(schedule *domain.Schedule) DaySummary {
	summary := DaySummary{
		Date:           schedule.DateKey(),
		TotalTasks:     len(schedule.Tasks),
		CompletionRate: schedule.CompletionRate(),
	}
	for _, t := range schedule.Tasks {
		summary.EstimatedMinutes += t.EstimatedMinutes
		if t.ActualMinutes != nil {
			summary.ActualMinutes += *t.ActualMinutes
		}
		switch t.Status {
		case domain.StatusCompleted:
			summary.CompletedTasks++
		case domain.StatusInProgress:
			summary.InProgressTasks++
		case domain.StatusPending:
			summary.PendingTasks++
		}
	}
	return summary
}

// JSON renders the context as indented JSON.
func (c *ScheduleContext) JSON() (string, error) {
	out, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Markdown renders the context as a compact markdown block.
func (c *ScheduleContext) Markdown() string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Schedule Context\n\n")
	fmt.Fprintf(&b, "Current time: %s\n\n", c.CurrentTime)
	if c.CurrentTask != nil {
		fmt.Fprintf(&b, "**Current task**: %s (%s-%s, %s",
			c.CurrentTask.Title, c.CurrentTask.StartTime, c.CurrentTask.EndTime, c.CurrentTask.Status)
		if c.CurrentTask.ElapsedMinutes != nil {
			fmt.Fprintf(&b, ", %dm elapsed of %dm", *c.CurrentTask.ElapsedMinutes, c.CurrentTask.EstimatedMinutes)
		}
		fmt.Fprintf(&b, ")\n")
	}
	if c.NextTask != nil {
		fmt.Fprintf(&b, "**Next task**: %s (%s-%s)\n", c.NextTask.Title, c.NextTask.StartTime, c.NextTask.EndTime)
	}
	fmt.Fprintf(&b, "\n**Today (%s)**: %d tasks, %d completed, %d in progress, %d pending, %.1f%% done, %dm planned, %dm spent\n",
		c.Today.Date, c.Today.TotalTasks, c.Today.CompletedTasks, c.Today.InProgressTasks,
		c.Today.PendingTasks, c.Today.CompletionRate, c.Today.EstimatedMinutes, c.Today.ActualMinutes)
	return b.String()
}
