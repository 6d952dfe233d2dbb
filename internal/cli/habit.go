package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ritual/internal/engine"
	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/validation"
)

type HabitAddCmd struct {
	Name     string `arg:"" help:"Habit name."`
	Type     string `short:"t" help:"Habit type (daily|weekly|timed)." default:"daily"`
	Target   int    `short:"n" help:"Completions per week for weekly habits." default:"1"`
	Duration int    `short:"d" help:"Target duration in minutes for timed habits." default:"30"`
	Why      string `short:"w" help:"Why this habit matters to you."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	if err := validation.HabitName(c.Name); err != nil {
		return err
	}
	typ, err := parseHabitType(c.Type)
	if err != nil {
		return err
	}
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	habit := ctx.Engine.AddHabit(c.Name, typ, engine.HabitOptions{
		TargetPerWeek:  c.Target,
		TargetDuration: c.Duration * 60,
		Why:            c.Why,
	})
	if habit.ID == "" {
		return fmt.Errorf("failed to add habit %q", c.Name)
	}

	fmt.Printf("Added habit: %s (%s, ID: %s)\n", habit.Name, habitSummary(habit), habit.ID)
	return nil
}

type HabitListCmd struct {
	All bool `short:"a" help:"Include archived habits."`
}

func (c *HabitListCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	habits := ctx.Engine.ActiveHabits()
	if c.All {
		habits = ctx.Engine.Habits()
	}
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with: ritual habit add <name>")
		return nil
	}

	today := ctx.Engine.Today()
	for _, h := range habits {
		mark := " "
		if ctx.Engine.IsCompleted(h.ID, today) {
			mark = "✓"
		}
		line := fmt.Sprintf("[%s] %-24s %-18s streak %d", mark, h.Name, habitSummary(h), ctx.Engine.HabitStreak(h.ID))
		if bool(h.Archived) {
			line += "  (archived)"
		}
		fmt.Println(line)
		fmt.Printf("    ID: %s\n", h.ID)
	}
	return nil
}

type HabitEditCmd struct {
	Habit    string  `arg:"" help:"Habit ID or name."`
	Name     *string `help:"New name."`
	Target   *int    `short:"n" help:"New weekly target."`
	Duration *int    `short:"d" help:"New target duration in minutes."`
	Why      *string `short:"w" help:"New reason."`
}

func (c *HabitEditCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	update := models.HabitUpdate{
		Name:          c.Name,
		TargetPerWeek: c.Target,
		Why:           c.Why,
	}
	if c.Duration != nil {
		seconds := *c.Duration * 60
		update.TargetDuration = &seconds
	}
	if c.Name != nil {
		if err := validation.HabitName(*c.Name); err != nil {
			return err
		}
	}

	ctx.Engine.UpdateHabit(habit.ID, update)
	updated, _ := ctx.Engine.HabitByID(habit.ID)
	fmt.Printf("Updated habit: %s (%s)\n", updated.Name, habitSummary(updated))
	return nil
}

type HabitArchiveCmd struct {
	Habit   string `arg:"" help:"Habit ID or name."`
	Restore bool   `short:"r" help:"Unarchive instead."`
}

func (c *HabitArchiveCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	archived := !c.Restore
	ctx.Engine.UpdateHabit(habit.ID, models.HabitUpdate{Archived: &archived})
	if c.Restore {
		fmt.Printf("Restored habit: %s\n", habit.Name)
	} else {
		fmt.Printf("Archived habit: %s (history kept)\n", habit.Name)
	}
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Force bool   `short:"f" help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	if !c.Force {
		completions := len(ctx.Engine.CompletionsForHabit(habit.ID))
		fmt.Printf("This will delete %q and its %d completion(s). Use --force to confirm.\n", habit.Name, completions)
		return nil
	}

	ctx.Engine.DeleteHabit(habit.ID)
	fmt.Printf("Deleted habit: %s\n", habit.Name)
	return nil
}

type HabitMoveCmd struct {
	Habit    string `arg:"" help:"Habit ID or name."`
	Position int    `arg:"" help:"New position (1-based)."`
}

func (c *HabitMoveCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	habits := ctx.Engine.Habits()
	if c.Position < 1 || c.Position > len(habits) {
		return fmt.Errorf("position must be between 1 and %d", len(habits))
	}

	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		if h.ID != habit.ID {
			ids = append(ids, h.ID)
		}
	}
	idx := c.Position - 1
	ids = append(ids[:idx], append([]string{habit.ID}, ids[idx:]...)...)
	ctx.Engine.ReorderHabits(ids)

	names := make([]string, 0, len(ids))
	for _, h := range ctx.Engine.Habits() {
		names = append(names, h.Name)
	}
	fmt.Printf("New order: %s\n", strings.Join(names, ", "))
	return nil
}
