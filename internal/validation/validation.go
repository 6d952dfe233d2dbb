// Package validation holds the input checks the CLI and TUI run before
// handing values to the engine. The engine itself stays permissive; callers
// are expected to validate first.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/models"
)

// HabitName checks that a habit name is non-empty after trimming.
func HabitName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("habit name must not be empty")
	}
	return nil
}

// ReminderTime checks that a reminder time matches the HH:MM clock format.
func ReminderTime(value string) error {
	if _, err := time.Parse(constants.TimeFormat, value); err != nil {
		return fmt.Errorf("invalid time %q, expected HH:MM", value)
	}
	return nil
}

// Rating checks that a daily review rating falls in 1-5.
func Rating(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5, got %d", rating)
	}
	return nil
}

// Date checks that a date string matches YYYY-MM-DD.
func Date(value string) error {
	if _, err := time.Parse(constants.DateFormat, value); err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", value)
	}
	return nil
}

// FeedbackMode checks that a timer end feedback value is recognized.
func FeedbackMode(value string) error {
	switch models.TimerEndFeedback(value) {
	case models.FeedbackSound, models.FeedbackVibration, models.FeedbackNone:
		return nil
	}
	return fmt.Errorf("invalid feedback mode %q, expected sound, vibration, or none", value)
}
