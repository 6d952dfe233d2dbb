package models

// TimerEndFeedback selects the feedback played when a timer session reaches
// its target.
type TimerEndFeedback string

const (
	FeedbackSound     TimerEndFeedback = "sound"
	FeedbackVibration TimerEndFeedback = "vibration"
	FeedbackNone      TimerEndFeedback = "none"
)

// UserSettings represents application-wide settings.
type UserSettings struct {
	SelectedPhraseIndex          *int             `json:"selected_phrase_index"` // nil = random phrase set
	CustomPhrases                [][]string       `json:"custom_phrases,omitempty"`
	NotificationsEnabled         bool             `json:"notifications_enabled"`
	MorningReminderTime          string           `json:"morning_reminder_time"`          // HH:MM
	EveningReminderTime          string           `json:"evening_reminder_time"`          // HH:MM
	StreakAlertEnabled           bool             `json:"streak_alert_enabled"`
	StreakAlertTime              string           `json:"streak_alert_time"`              // HH:MM
	IncompleteReminderEnabled    bool             `json:"incomplete_reminder_enabled"`
	IncompleteReminderTime       string           `json:"incomplete_reminder_time"`       // HH:MM
	CompletionCelebrationEnabled bool             `json:"completion_celebration_enabled"`
	TimerEndFeedback             TimerEndFeedback `json:"timer_end_feedback"`
}

// DefaultSettings returns the settings used on first run.
func DefaultSettings() UserSettings {
	return UserSettings{
		SelectedPhraseIndex:          nil,
		NotificationsEnabled:         false,
		MorningReminderTime:          "08:00",
		EveningReminderTime:          "21:00",
		StreakAlertEnabled:           false,
		StreakAlertTime:              "15:00",
		IncompleteReminderEnabled:    false,
		IncompleteReminderTime:       "21:00",
		CompletionCelebrationEnabled: true,
		TimerEndFeedback:             FeedbackVibration,
	}
}

// ApplyDefaultSettings fills in defaults for fields a stored settings blob
// from an older schema may be missing.
func ApplyDefaultSettings(s *UserSettings) {
	defaults := DefaultSettings()
	if s.MorningReminderTime == "" {
		s.MorningReminderTime = defaults.MorningReminderTime
	}
	if s.EveningReminderTime == "" {
		s.EveningReminderTime = defaults.EveningReminderTime
	}
	if s.StreakAlertTime == "" {
		s.StreakAlertTime = defaults.StreakAlertTime
	}
	if s.IncompleteReminderTime == "" {
		s.IncompleteReminderTime = defaults.IncompleteReminderTime
	}
	if s.TimerEndFeedback == "" {
		s.TimerEndFeedback = defaults.TimerEndFeedback
	}
}
