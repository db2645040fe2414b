package domain

import "time"

// DailyStats is the per-day snapshot the tracker service persists.
type DailyStats struct {
	Date           time.Time `json:"date"`
	CompletionRate float64   `json:"completion_rate"`
	TimeAccuracy   *float64  `json:"time_accuracy,omitempty"`
	TotalTasks     int       `json:"total_tasks"`
	CompletedTasks int       `json:"completed_tasks"`
	FocusMinutes   int64     `json:"focus_time_minutes"`
	BreakMinutes   int64     `json:"break_time_minutes"`
}

// NewDailyStats returns an empty snapshot for the given day.
func NewDailyStats(date time.Time) *DailyStats {
	return &DailyStats{Date: date}
}

// CollectFrom refreshes the snapshot from a live schedule. Break minutes
// are accumulated elsewhere and left untouched.
func (d *DailyStats) CollectFrom(s *Schedule) {
	d.CompletionRate = s.CompletionRate()
	if accuracy, ok := s.TimeAccuracy(); ok {
		d.TimeAccuracy = &accuracy
	} else {
		d.TimeAccuracy = nil
	}
	d.TotalTasks = len(s.Tasks)
	d.CompletedTasks = s.CompletedTasks()

	var focus int64
	for _, t := range s.Tasks {
		if t.Status == StatusCompleted && t.ActualMinutes != nil {
			focus += *t.ActualMinutes
		}
	}
	d.FocusMinutes = focus
}

// StreakQualifyingRate is the completion rate a day needs to extend the streak.
const StreakQualifyingRate = 70.0

// StreakInfo tracks consecutive qualifying days. One record per profile.
type StreakInfo struct {
	CurrentStreak int       `json:"current_streak"`
	BestStreak    int       `json:"best_streak"`
	LastUpdate    time.Time `json:"last_update"`
}

// NewStreakInfo returns a zero streak.
func NewStreakInfo() *StreakInfo {
	return &StreakInfo{}
}

// Update applies one day's completion rate: a qualifying day extends the
// streak and may raise the best, anything else resets the current streak.
// A second call on the same calendar day is a no-op returning false, so a
// day can never be counted twice.
func (s *StreakInfo) Update(completionRate float64, now time.Time) bool {
	if !s.LastUpdate.IsZero() && SameDay(s.LastUpdate, now) {
		return false
	}
	if completionRate >= StreakQualifyingRate {
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}
	s.LastUpdate = now
	return true
}

// Reset breaks the streak. Best is kept.
func (s *StreakInfo) Reset(now time.Time) {
	s.CurrentStreak = 0
	s.LastUpdate = now
}
