package cli

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/ritual/internal/models"
	"github.com/julianstephens/ritual/internal/validation"
)

type SettingsShowCmd struct{}

func (c *SettingsShowCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	s := ctx.Engine.Settings()
	phrase := "rotating"
	if s.SelectedPhraseIndex != nil {
		phrase = strconv.Itoa(*s.SelectedPhraseIndex)
	}
	fmt.Printf("phrase-index              %s\n", phrase)
	fmt.Printf("notifications             %t\n", s.NotificationsEnabled)
	fmt.Printf("morning-reminder          %s\n", s.MorningReminderTime)
	fmt.Printf("evening-reminder          %s\n", s.EveningReminderTime)
	fmt.Printf("streak-alert              %t\n", s.StreakAlertEnabled)
	fmt.Printf("streak-alert-time         %s\n", s.StreakAlertTime)
	fmt.Printf("incomplete-reminder       %t\n", s.IncompleteReminderEnabled)
	fmt.Printf("incomplete-reminder-time  %s\n", s.IncompleteReminderTime)
	fmt.Printf("celebration               %t\n", s.CompletionCelebrationEnabled)
	fmt.Printf("timer-feedback            %s\n", s.TimerEndFeedback)
	return nil
}

type SettingsSetCmd struct {
	Key   string `arg:"" help:"Setting key (see 'ritual settings show')."`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *Context) error {
	if err := ctx.Engine.Load(); err != nil {
		return err
	}

	s := ctx.Engine.Settings()
	switch c.Key {
	case "phrase-index":
		if c.Value == "rotating" {
			s.SelectedPhraseIndex = nil
			break
		}
		idx, err := strconv.Atoi(c.Value)
		if err != nil || idx < 0 {
			return fmt.Errorf("phrase-index must be a non-negative number or \"rotating\"")
		}
		s.SelectedPhraseIndex = &idx
	case "notifications", "streak-alert", "incomplete-reminder", "celebration":
		on, err := strconv.ParseBool(c.Value)
		if err != nil {
			return fmt.Errorf("%s must be true or false", c.Key)
		}
		switch c.Key {
		case "notifications":
			s.NotificationsEnabled = on
		case "streak-alert":
			s.StreakAlertEnabled = on
		case "incomplete-reminder":
			s.IncompleteReminderEnabled = on
		case "celebration":
			s.CompletionCelebrationEnabled = on
		}
	case "morning-reminder", "evening-reminder", "streak-alert-time", "incomplete-reminder-time":
		if err := validation.ReminderTime(c.Value); err != nil {
			return err
		}
		switch c.Key {
		case "morning-reminder":
			s.MorningReminderTime = c.Value
		case "evening-reminder":
			s.EveningReminderTime = c.Value
		case "streak-alert-time":
			s.StreakAlertTime = c.Value
		case "incomplete-reminder-time":
			s.IncompleteReminderTime = c.Value
		}
	case "timer-feedback":
		if err := validation.FeedbackMode(c.Value); err != nil {
			return err
		}
		s.TimerEndFeedback = models.TimerEndFeedback(c.Value)
	default:
		return fmt.Errorf("unknown setting: %s", c.Key)
	}

	ctx.Engine.UpdateSettings(s)
	fmt.Printf("Set %s = %s\n", c.Key, c.Value)
	return nil
}
