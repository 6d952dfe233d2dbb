package cli

import "fmt"

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	stats := ctx.Engine.Statistics()
	fmt.Printf("Today:          %s\n", formatPercent(stats.TodayRate))
	fmt.Printf("This week:      %s\n", formatPercent(stats.WeekRate))
	fmt.Printf("Last 30 days:   %s\n", formatPercent(stats.ThirtyDayRate))
	if stats.WeeklyTargetsTotal > 0 {
		fmt.Printf("Weekly targets: %d/%d met\n", stats.WeeklyTargetsMet, stats.WeeklyTargetsTotal)
	}
	fmt.Printf("Perfect days:   %d of %d this week\n", stats.PerfectDays, stats.PerfectDaysTotal)
	fmt.Printf("Completions:    %d total\n", stats.TotalCompletions)
	fmt.Printf("Best streak:    %d days\n", stats.BestStreak)
	fmt.Printf("Current best:   %d days\n", stats.CurrentBestStreak)
	if stats.DaysSinceStart > 0 {
		fmt.Printf("Tracking for:   %d days\n", stats.DaysSinceStart)
	}
	return nil
}

type WeekCmd struct{}

func (c *WeekCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	progress := ctx.Engine.WeeklyProgressFor(ctx.Engine.Today())
	if len(progress) == 0 {
		fmt.Println("No weekly habits.")
		return nil
	}

	for _, wp := range progress {
		mark := " "
		if wp.Met() {
			mark = "✓"
		}
		fmt.Printf("[%s] %-24s %d/%d\n", mark, wp.HabitName, wp.Completed, wp.Target)
	}
	return nil
}
