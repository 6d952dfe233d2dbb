package main

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/ritual/internal/cli"
	"github.com/julianstephens/ritual/internal/constants"
	"github.com/julianstephens/ritual/internal/engine"
	apperrors "github.com/julianstephens/ritual/internal/errors"
	"github.com/julianstephens/ritual/internal/logger"
	"github.com/julianstephens/ritual/internal/notifier"
	"github.com/julianstephens/ritual/internal/storage"
	"github.com/julianstephens/ritual/internal/tui"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Data file or directory path." type:"path" default:"~/.config/ritual"`
	Debug   bool   `help:"Enable debug logging."`

	Init  cli.InitCmd  `cmd:"" help:"Initialize ritual storage."`
	Tui   cli.TuiCmd   `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Today cli.TodayCmd `cmd:"" help:"Show today's rituals."`
	Mark  cli.MarkCmd  `cmd:"" help:"Toggle a habit's completion."`
	Habit struct {
		Add     cli.HabitAddCmd     `cmd:"" help:"Add a new habit."`
		List    cli.HabitListCmd    `cmd:"" help:"List habits."`
		Edit    cli.HabitEditCmd    `cmd:"" help:"Edit a habit."`
		Archive cli.HabitArchiveCmd `cmd:"" help:"Archive a habit, keeping its history."`
		Delete  cli.HabitDeleteCmd  `cmd:"" help:"Delete a habit and its history."`
		Move    cli.HabitMoveCmd    `cmd:"" help:"Move a habit to a new position."`
	} `cmd:"" help:"Manage habits."`
	Timer struct {
		Start    cli.TimerStartCmd    `cmd:"" help:"Start a timed session."`
		Status   cli.TimerStatusCmd   `cmd:"" help:"Show the active timer."`
		Pause    cli.TimerPauseCmd    `cmd:"" help:"Pause the active timer."`
		Resume   cli.TimerResumeCmd   `cmd:"" help:"Resume a paused timer."`
		Stop     cli.TimerStopCmd     `cmd:"" help:"Stop, keeping partial progress."`
		Complete cli.TimerCompleteCmd `cmd:"" help:"Finish and record a completion."`
	} `cmd:"" help:"Run focus timers for timed habits."`
	Stats  cli.StatsCmd `cmd:"" help:"Show completion statistics."`
	Week   cli.WeekCmd  `cmd:"" help:"Show weekly habit progress."`
	Review struct {
		Add  cli.ReviewAddCmd  `cmd:"" help:"Record how today went."`
		Show cli.ReviewShowCmd `cmd:"" help:"Show a day's review."`
	} `cmd:"" help:"Daily reviews."`
	Settings struct {
		Show cli.SettingsShowCmd `cmd:"" help:"Show current settings."`
		Set  cli.SettingsSetCmd  `cmd:"" help:"Change a setting."`
	} `cmd:"" help:"Manage settings."`
	Export cli.ExportCmd `cmd:"" help:"Export habits and completions as JSON."`
	Import cli.ImportCmd `cmd:"" help:"Import a previous export."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup."`
		List    cli.BackupListCmd    `cmd:"" help:"List backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage data backups."`
}

// trigger fans a celebration out to the desktop tray and the TUI banner.
type trigger struct {
	notifier *notifier.Notifier
}

func (t *trigger) Celebrate() {
	tui.CelebrationTrigger().Celebrate()
	if err := t.notifier.Notify("🎉 All rituals complete. Well done."); err != nil {
		logger.Debug("Tray notification skipped", "error", err)
	}
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Personal habit tracker / daily ritual companion"),
		kong.UsageOnError(),
		kong.Vars{"version": constants.Version},
	)

	// A .db path selects the SQLite backend; anything else is treated as a
	// directory of JSON files.
	var adapter storage.Adapter
	dataDir := CLI.Config
	if strings.HasSuffix(CLI.Config, ".db") {
		adapter = storage.NewSQLiteAdapter(CLI.Config)
		dataDir = filepath.Dir(CLI.Config)
	} else {
		adapter = storage.NewJSONAdapter(CLI.Config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: dataDir}); err != nil {
		apperrors.Fatalf("failed to initialize logging: %v", err)
	}

	eng := engine.New(adapter, &trigger{notifier: notifier.New()})
	appCtx := &cli.Context{
		Engine:  eng,
		Adapter: adapter,
		DataDir: dataDir,
	}

	err := ctx.Run(appCtx)
	eng.Close()
	if cerr := adapter.Close(); cerr != nil {
		logger.Warn("Failed to close storage", "error", cerr)
	}
	apperrors.Fatal(err)
}
