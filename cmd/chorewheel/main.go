package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/cli/backups"
	"github.com/julianstephens/chorewheel/internal/cli/chores"
	"github.com/julianstephens/chorewheel/internal/cli/system"
	"github.com/julianstephens/chorewheel/internal/config"
	"github.com/julianstephens/chorewheel/internal/constants"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/keyring"
	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/materializer"
	"github.com/julianstephens/chorewheel/internal/storage"
	"github.com/julianstephens/chorewheel/internal/storage/postgres"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Path to config.yaml." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize chorewheel storage and sync the roster."`
	Today    chores.TodayCmd    `cmd:"" help:"Show the day's assignments." default:"1"`
	Done     chores.DoneCmd     `cmd:"" help:"Mark a task as done."`
	Remind   chores.RemindCmd   `cmd:"" help:"List unfinished tasks."`
	Report   chores.ReportCmd   `cmd:"" help:"Show completion stats for a day, week or month."`
	Levels   chores.LevelsCmd   `cmd:"" help:"Show which cleaning levels are due."`
	Rotation chores.RotationCmd `cmd:"" help:"Show who owns which rooms."`
	Notify   system.NotifyCmd   `cmd:"" help:"Send the daily digest, evening reminder or daily report (run from cron)."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive chore board."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check the OS keyring."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Household chore rotation: who cleans which room, and how thoroughly, today."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	configPath, err := config.ExpandHome(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, Dir: filepath.Dir(configPath)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	app, err := config.Bootstrap(configPath)
	if err != nil {
		if errors.Is(err, apperrors.ErrConfig) {
			logger.Fatal("Invalid configuration", "path", configPath, "error", err)
		}
		apperrors.Fatal(err)
	}

	store, err := openStore(app.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	defer store.Close()

	sched, err := app.Config.Schedule()
	if err != nil {
		apperrors.Fatal(err)
	}
	policy, err := app.Config.Policy()
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		App:          app,
		Store:        store,
		Materializer: materializer.New(store, app.Roster, app.Catalog, sched, policy),
	}

	// init creates the store and doctor reports load failures itself
	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
		if err := store.SyncPeople(app.Roster); err != nil {
			apperrors.Fatal(fmt.Errorf("failed to sync roster: %w", err))
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		apperrors.Fatal(err)
	}
}

func needsStore(command string) bool {
	switch strings.Fields(command)[0] {
	case "init", "doctor", "keyring":
		return false
	}
	return true
}

// openStore picks SQLite or PostgreSQL from database.path. PostgreSQL
// passwords come from the environment or the OS keyring, never the file.
func openStore(cfg *config.Config) (storage.Provider, error) {
	if !cfg.Database.IsPostgres() {
		return storage.New(cfg.Database.Path, false), nil
	}

	if err := postgres.ValidateConnString(cfg.Database.Path); err != nil {
		if errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, fmt.Errorf("database.path must not contain a password: set %s or run '%s keyring set' instead",
				constants.EnvDBConnection, constants.AppName)
		}
		return nil, err
	}

	connStr, source, err := keyring.Resolve(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Using PostgreSQL", "source", source)
	return storage.New(connStr, true), nil
}
