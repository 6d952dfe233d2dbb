package cli

import (
	"fmt"

	"github.com/julianstephens/ritual/internal/engine"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/storage"
)

type Context struct {
	Engine  *engine.Engine
	Adapter storage.Adapter
	DataDir string
}

// resolveHabit finds a habit by ID first, then by exact name.
func resolveHabit(ctx *Context, ref string) (models.Habit, error) {
	if h, ok := ctx.Engine.HabitByID(ref); ok {
		return h, nil
	}
	if h, ok := ctx.Engine.HabitByName(ref); ok {
		return h, nil
	}
	return models.Habit{}, fmt.Errorf("no habit matches %q (use an ID or exact name)", ref)
}

func parseHabitType(s string) (models.HabitType, error) {
	typ := models.HabitType(s)
	if !typ.Valid() {
		return "", fmt.Errorf("invalid habit type: %s (daily|weekly|timed)", s)
	}
	return typ, nil
}

// formatDuration renders seconds as "25m" or "1h 05m" for habit listings.
func formatDuration(seconds int) string {
	if seconds < 3600 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%dh %02dm", seconds/3600, (seconds%3600)/60)
}

// formatClock renders elapsed seconds as "12:34" or "1:02:03" for timers.
func formatClock(seconds int) string {
	if seconds < 3600 {
		return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
	}
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}

func formatPercent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

func habitSummary(h models.Habit) string {
	switch h.Type {
	case models.HabitWeekly:
		return fmt.Sprintf("weekly, %dx/week", h.TargetPerWeek)
	case models.HabitTimed:
		return fmt.Sprintf("timed, %s", formatDuration(h.TargetDuration))
	default:
		return "daily"
	}
}
