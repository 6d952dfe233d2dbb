package models

import "time"

// CompletionRecord is the fact that a habit was completed on a calendar day.
// At most one record exists per (habit, date) pair; presence means completed.
// Toggling a completion off removes the record entirely.
type CompletionRecord struct {
	HabitID     string    `json:"habit_id"`
	Date        string    `json:"date"` // YYYY-MM-DD, the logical day the completion counts toward
	CompletedAt time.Time `json:"completed_at"`
	Duration    int       `json:"duration,omitempty"` // seconds, set for timed habits
}

// TimedProgress is partial, not-yet-finalized time accumulated toward a timed
// habit's daily target. At most one entry exists per (habit, date); the entry
// is deleted when the day's work is finalized into a CompletionRecord.
type TimedProgress struct {
	HabitID            string `json:"habit_id"`
	Date               string `json:"date"` // YYYY-MM-DD
	AccumulatedSeconds int    `json:"accumulated_seconds"`
}
