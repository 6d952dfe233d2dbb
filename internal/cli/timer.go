package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type TimerStartCmd struct {
	Habit string `arg:"" help:"Timed habit ID or name."`
	Watch bool   `short:"w" help:"Stay in the foreground and tick until done or interrupted." default:"true" negatable:""`
}

func (c *TimerStartCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	habit, err := resolveHabit(ctx, c.Habit)
	if err != nil {
		return err
	}

	ctx.Engine.StartTimer(habit.ID)
	timer := ctx.Engine.Timer()
	if timer.Idle() || timer.HabitID != habit.ID {
		return fmt.Errorf("could not start a timer for %q (is it a timed habit?)", habit.Name)
	}

	fmt.Printf("Timer started: %s (%s of %s)\n", timer.HabitName,
		formatClock(timer.ElapsedTime), formatDuration(timer.TargetDuration))
	if !c.Watch {
		return nil
	}
	return watchTimer(ctx)
}

// watchTimer drives the session from the foreground, ticking once a second.
// Interrupting pauses the session so a later start resumes where it left off.
func watchTimer(ctx *Context) error {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sig)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-sig:
			ctx.Engine.PauseTimer()
			timer := ctx.Engine.Timer()
			fmt.Printf("\nPaused at %s. Resume with: ritual timer resume\n", formatClock(timer.ElapsedTime))
			return nil
		case <-ticker.C:
			ctx.Engine.TickTimer()
			timer := ctx.Engine.Timer()
			if timer.Idle() {
				fmt.Println("\nTimer stopped elsewhere.")
				return nil
			}
			fmt.Printf("\r%s  %s / %s   ", timer.HabitName,
				formatClock(timer.ElapsedTime), formatDuration(timer.TargetDuration))
			if timer.ElapsedTime >= timer.TargetDuration {
				ctx.Engine.CompleteTimer()
				fmt.Printf("\n✓ %s complete!\n", timer.HabitName)
				return nil
			}
		}
	}
}

type TimerStatusCmd struct{}

func (c *TimerStatusCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	timer := ctx.Engine.Timer()
	if timer.Idle() {
		fmt.Println("No active timer.")
		return nil
	}

	state := "running"
	if timer.Paused {
		state = "paused"
	}
	fmt.Printf("%s: %s / %s (%s)\n", timer.HabitName,
		formatClock(timer.ElapsedTime), formatDuration(timer.TargetDuration), state)
	return nil
}

type TimerPauseCmd struct{}

func (c *TimerPauseCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	ctx.Engine.PauseTimer()
	timer := ctx.Engine.Timer()
	if timer.Idle() {
		fmt.Println("No active timer.")
		return nil
	}
	fmt.Printf("Paused %s at %s.\n", timer.HabitName, formatClock(timer.ElapsedTime))
	return nil
}

type TimerResumeCmd struct {
	Watch bool `short:"w" help:"Stay in the foreground and tick until done or interrupted." default:"true" negatable:""`
}

func (c *TimerResumeCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	timer := ctx.Engine.Timer()
	if timer.Idle() {
		fmt.Println("No timer to resume.")
		return nil
	}

	ctx.Engine.ResumeTimer()
	fmt.Printf("Resumed %s at %s.\n", timer.HabitName, formatClock(timer.ElapsedTime))
	if !c.Watch {
		return nil
	}
	return watchTimer(ctx)
}

type TimerStopCmd struct{}

func (c *TimerStopCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	timer := ctx.Engine.Timer()
	if timer.Idle() {
		fmt.Println("No active timer.")
		return nil
	}

	ctx.Engine.StopTimer()
	fmt.Printf("Stopped %s. %s saved toward today's target.\n",
		timer.HabitName, formatClock(timer.ElapsedTime))
	return nil
}

type TimerCompleteCmd struct{}

func (c *TimerCompleteCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}
	timer := ctx.Engine.Timer()
	if timer.Idle() {
		fmt.Println("No active timer.")
		return nil
	}

	ctx.Engine.CompleteTimer()
	fmt.Printf("✓ %s complete (%s).\n", timer.HabitName, formatClock(timer.ElapsedTime))
	return nil
}
