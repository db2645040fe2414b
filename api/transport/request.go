package transport

// TaskCreateRequest plans one task. Start and End are HH:MM on the
// schedule's date.
type TaskCreateRequest struct {
	Date            string   `json:"date"`
	Title           string   `json:"title"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	Tags            []string `json:"tags,omitempty"`
	Notes           string   `json:"notes,omitempty"`
	PomodoroMinutes int      `json:"pomodoro_minutes,omitempty"`
}

// ScheduleCreateRequest replaces a day's schedule wholesale.
type ScheduleCreateRequest struct {
	Date  string              `json:"date"`
	Tasks []TaskCreateRequest `json:"tasks"`
}

// TaskTimesRequest reschedules a task's planned window.
type TaskTimesRequest struct {
	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`
}

// ShiftRequest delays or advances every task from FromIndex onward.
type ShiftRequest struct {
	Date      string `json:"date"`
	FromIndex int    `json:"from_index"`
	Minutes   int64  `json:"minutes"`
}

// AskRequest carries a free-form advisor question.
type AskRequest struct {
	Question string `json:"question"`
}

// OptimizeRequest describes the situation the advisor should rescue.
type OptimizeRequest struct {
	Situation string `json:"situation"`
}

// PlanRequest carries the goals for a rest-of-day plan.
type PlanRequest struct {
	Goals string `json:"goals"`
}
