package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// HabitType determines how a ritual is tracked. The type is fixed at
// creation; editing a habit never changes its type.
type HabitType string

const (
	HabitDaily  HabitType = "daily"
	HabitWeekly HabitType = "weekly"
	HabitTimed  HabitType = "timed"
)

// Valid reports whether t is one of the recognized habit types.
func (t HabitType) Valid() bool {
	switch t {
	case HabitDaily, HabitWeekly, HabitTimed:
		return true
	}
	return false
}

// Habit represents a recurring commitment to track.
//
// Exactly one of TargetPerWeek and TargetDuration is meaningful, selected by
// Type: weekly habits carry TargetPerWeek, timed habits carry TargetDuration
// (seconds). The other field is zero and ignored.
type Habit struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           HabitType `json:"type"`
	TargetPerWeek  int       `json:"target_per_week,omitempty"`
	TargetDuration int       `json:"target_duration,omitempty"` // seconds
	Why            string    `json:"why,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	Order          int       `json:"order"`
	Archived       FlexBool  `json:"archived,omitempty"`
}

// Countable reports whether the habit participates in day completion rates
// and streaks. Weekly habits are measured per week, not per day.
func (h Habit) Countable() bool {
	return h.Type == HabitDaily || h.Type == HabitTimed
}

// Active reports whether the habit should appear in lists and computations.
func (h Habit) Active() bool {
	return !bool(h.Archived)
}

// HabitUpdate carries the fields of a partial habit edit. Nil fields are
// left untouched.
type HabitUpdate struct {
	Name           *string
	TargetPerWeek  *int
	TargetDuration *int
	Why            *string
	Archived       *bool
	Order          *int
}

// FlexBool is a bool that also accepts the JSON strings "true" and "false"
// when decoding. An earlier schema version persisted archived flags as
// strings; stored data of that vintage must still load cleanly.
type FlexBool bool

func (b FlexBool) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(b))
}

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch string(data) {
	case "true", `"true"`:
		*b = true
	case "false", `"false"`, "null", `""`:
		*b = false
	default:
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			// Unrecognized value; treat as unset rather than failing the
			// whole collection load.
			*b = false
			return nil
		}
		*b = FlexBool(v)
	}
	return nil
}
