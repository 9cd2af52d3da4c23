package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"habitkit/internal/cli"
	"habitkit/internal/constants"
	"habitkit/internal/logger"
	"habitkit/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Store path (.db, .json) or postgres:// URL." type:"path" default:"~/.config/habitkit/habitkit.db"`
	Owner   string `help:"Owner id to scope habits to." env:"HABITKIT_OWNER"`
	Debug   bool   `help:"Enable debug logging."`

	Init     cli.InitCmd     `cmd:"" help:"Initialize habitkit storage."`
	Tui      cli.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Add      cli.AddCmd      `cmd:"" help:"Add a new habit."`
	List     cli.ListCmd     `cmd:"" help:"List all habits."`
	Day      cli.DayCmd      `cmd:"" help:"Show habits due on a day."`
	Done     cli.DoneCmd     `cmd:"" help:"Mark a habit completed."`
	Skip     cli.SkipCmd     `cmd:"" help:"Mark a habit skipped."`
	Clear    cli.ClearCmd    `cmd:"" help:"Clear a recorded outcome."`
	Stats    cli.StatsCmd    `cmd:"" help:"Show statistics for a habit."`
	Edit     cli.EditCmd     `cmd:"" help:"Edit an existing habit."`
	Delete   cli.DeleteCmd   `cmd:"" help:"Soft-delete a habit."`
	Restore  cli.RestoreCmd  `cmd:"" help:"Restore a deleted habit."`
	Purge    cli.PurgeCmd    `cmd:"" help:"Permanently delete a habit."`
	Import   cli.ImportCmd   `cmd:"" help:"Import habits from a legacy export."`
	Validate cli.ValidateCmd `cmd:"" help:"Check the habit collection for problems."`
	Doctor   cli.DoctorCmd   `cmd:"" help:"Run health checks on the installation."`
	Backup   cli.BackupCmd   `cmd:"" help:"Manage store backups."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit scheduling and streak tracking"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	// Pick the storage backend from the config value: a connection URL
	// selects Postgres, otherwise the file extension decides.
	var store storage.Provider
	var configDir string
	switch {
	case strings.HasPrefix(CLI.Config, "postgres://"), strings.HasPrefix(CLI.Config, "postgresql://"):
		store = storage.NewPostgresStore(CLI.Config)
		if home, err := os.UserHomeDir(); err == nil {
			configDir = filepath.Join(home, ".config", constants.AppName)
		}
	case strings.HasSuffix(CLI.Config, ".json"):
		store = storage.NewJSONStore(CLI.Config)
		configDir = filepath.Dir(CLI.Config)
	default:
		store = storage.NewSQLiteStore(CLI.Config)
		configDir = filepath.Dir(CLI.Config)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	appCtx := &cli.Context{
		Store: store,
		Owner: CLI.Owner,
		Debug: CLI.Debug,
	}

	err := ctx.Run(appCtx)
	if cerr := store.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
