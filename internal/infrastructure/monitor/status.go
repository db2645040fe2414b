package monitor

import "time"

type Status struct {
	Storage   bool      `json:"storage"`
	Schedules int       `json:"schedules"`
	LastCheck time.Time `json:"last_check"`
}
