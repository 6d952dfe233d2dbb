package cli

import (
	"fmt"
	"strings"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/phrases"
)

type TodayCmd struct{}

func (c *TodayCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	today := ctx.Engine.Today()
	phrase := strings.Join(phrases.Select(ctx.Engine.Settings(), today), " ")
	fmt.Printf("%s\n%s\n\n", today, phrase)

	habits := ctx.Engine.ActiveHabits()
	if len(habits) == 0 {
		fmt.Println("No habits yet. Add one with: ritual habit add <name>")
		return nil
	}

	for _, h := range habits {
		mark := "[ ]"
		if ctx.Engine.IsCompleted(h.ID, today) {
			mark = "[✓]"
		}
		detail := ""
		switch h.Type {
		case models.HabitTimed:
			if progress := ctx.Engine.TimedProgressFor(h.ID, today); progress > 0 && mark == "[ ]" {
				detail = fmt.Sprintf("  (%s of %s)", formatClock(progress), formatDuration(h.TargetDuration))
			}
		case models.HabitWeekly:
			for _, wp := range ctx.Engine.WeeklyProgressFor(today) {
				if wp.HabitID == h.ID {
					detail = fmt.Sprintf("  (%d/%d this week)", wp.Completed, wp.Target)
				}
			}
		}
		fmt.Printf("%s %s%s\n", mark, h.Name, detail)
	}

	if risks := ctx.Engine.StreaksAtRisk(); len(risks) > 0 {
		fmt.Println()
		for _, r := range risks {
			fmt.Printf("⚠ %s: %d-day streak at risk\n", r.HabitName, r.StreakLength)
		}
	}

	fmt.Printf("\nToday: %s complete\n", formatPercent(ctx.Engine.DayCompletionRate(today)))
	if !ctx.Engine.HasReviewedToday() {
		fmt.Println("Evening review pending: ritual review add <rating>")
	}
	return nil
}
