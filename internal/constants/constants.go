package constants

const (
	AppName           = "ritual"
	Version           = "v0.3.0"
	DefaultConfigPath = "~/.config/ritual"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TimeFormat is the standard clock format used for reminder times (HH:MM)
	TimeFormat = "15:04"

	// DefaultTargetDuration is the default target for timed rituals, in seconds (30 minutes)
	DefaultTargetDuration = 1800

	// DefaultTargetPerWeek is the default weekly target for weekly rituals
	DefaultTargetPerWeek = 1

	// StreakRiskThreshold is the minimum current streak length worth warning about
	StreakRiskThreshold = 3

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ritual-"

	// Notify constants
	TrayAppIdentifier      = "ritual-tray"
	NotifierLockfileName   = "ritual-tray.lock"
	NotificationDurationMs = 5000
)
