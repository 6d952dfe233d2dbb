package cli

import (
	"fmt"

	"github.com/julianstephens/ritual/internal/validation"
)

type MarkCmd struct {
	Habit    string `arg:"" help:"Habit ID or name."`
	Date     string `short:"d" help:"Date to mark (YYYY-MM-DD, defaults to today)."`
	Duration int    `help:"Minutes spent, recorded on timed habit completions." default:"0"`
}

func (c *MarkCmd) Run(ctx *Context) error {
	if c.Date != "" {
		if err := validation.Date(c.Date); err != nil {
			return err
		}
	}
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	date := c.Date
	if date == "" {
		date = ctx.Engine.Today()
	}

	ctx.Engine.ToggleCompletion(habit.ID, date, c.Duration*60)
	if ctx.Engine.IsCompleted(habit.ID, date) {
		fmt.Printf("✓ %s marked complete for %s (streak: %d)\n", habit.Name, date, ctx.Engine.HabitStreak(habit.ID))
	} else {
		fmt.Printf("✗ %s unmarked for %s\n", habit.Name, date)
	}
	return nil
}
