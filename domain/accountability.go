package domain

import "time"

// TimeAccountability scores one task snapshot: minutes kept, forfeited,
// and the early/late adjustment.
type TimeAccountability struct {
	EarnedMinutes  int64 `json:"earned_minutes"`
	WastedMinutes  int64 `json:"wasted_minutes"`
	BonusMinutes   int64 `json:"bonus_minutes"`
	PenaltyMinutes int64 `json:"penalty_minutes"`
}

// AccountTask classifies a task. Pure function of the snapshot: tasks that
// are still actionable (pending, in progress, paused) score zero across the
// board.
func AccountTask(t *Task) TimeAccountability {
	estimated := t.EstimatedMinutes

	switch t.Status {
	case StatusCompleted:
		if t.ActualMinutes == nil {
			// Completed without ever starting counts as on time.
			return TimeAccountability{EarnedMinutes: estimated}
		}
		actual := *t.ActualMinutes
		if actual <= estimated {
			return TimeAccountability{
				EarnedMinutes: estimated,
				BonusMinutes:  estimated - actual,
			}
		}
		overrun := actual - estimated
		earned := estimated - overrun
		if earned < 0 {
			earned = 0
		}
		return TimeAccountability{
			EarnedMinutes:  earned,
			PenaltyMinutes: overrun,
		}
	case StatusSkipped:
		return TimeAccountability{WastedMinutes: estimated}
	default:
		return TimeAccountability{}
	}
}

// NetEarned is earned + bonus - penalty.
func (a TimeAccountability) NetEarned() int64 {
	return a.EarnedMinutes + a.BonusMinutes - a.PenaltyMinutes
}

// DailyAccountability aggregates task scores for one day.
type DailyAccountability struct {
	Date         time.Time `json:"date"`
	TotalPlanned int64     `json:"total_planned"`
	TotalEarned  int64     `json:"total_earned"`
	TotalWasted  int64     `json:"total_wasted"`
	TotalBonus   int64     `json:"total_bonus"`
	TotalPenalty int64     `json:"total_penalty"`
}

// AccountDay sums per-task scores across the day's tasks.
func AccountDay(date time.Time, tasks []*Task) DailyAccountability {
	day := DailyAccountability{Date: date}
	for _, t := range tasks {
		day.TotalPlanned += t.EstimatedMinutes
		score := AccountTask(t)
		day.TotalEarned += score.EarnedMinutes
		day.TotalWasted += score.WastedMinutes
		day.TotalBonus += score.BonusMinutes
		day.TotalPenalty += score.PenaltyMinutes
	}
	return day
}

// NetEarned is the day's earned + bonus - penalty.
func (d DailyAccountability) NetEarned() int64 {
	return d.TotalEarned + d.TotalBonus - d.TotalPenalty
}

// EfficiencyScore is the day-level metric: net earned over planned, as a
// percentage, uncapped. Distinct from Schedule.EfficiencyScore, which takes
// earned time only and caps at 100.
func (d DailyAccountability) EfficiencyScore() float64 {
	if d.TotalPlanned == 0 {
		return 0
	}
	return float64(d.NetEarned()) / float64(d.TotalPlanned) * 100
}

// Grade maps the efficiency score onto a letter grade.
func (d DailyAccountability) Grade() string {
	score := d.EfficiencyScore()
	switch {
	case score >= 95:
		return "A+"
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
