package models

import "time"

// TimerState is the single active timer session. At most one session exists
// across the whole application; an empty HabitID means no session.
//
// Date is the logical day the session counts toward. It is fixed when the
// timer starts and does not change if the real-world date rolls over while
// the timer runs.
type TimerState struct {
	HabitID        string     `json:"habit_id"`
	HabitName      string     `json:"habit_name"`
	TargetDuration int        `json:"target_duration"` // seconds
	ElapsedTime    int        `json:"elapsed_time"`    // seconds
	Running        bool       `json:"is_running"`
	Paused         bool       `json:"is_paused"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	Date           string     `json:"date,omitempty"` // YYYY-MM-DD
}

// Idle reports whether no timer session is active.
func (t TimerState) Idle() bool {
	return t.HabitID == ""
}

// Ticking reports whether the 1-second tick should currently be advancing
// elapsed time.
func (t TimerState) Ticking() bool {
	return !t.Idle() && t.Running && !t.Paused
}
