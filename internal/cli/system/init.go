package system

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/chorewheel/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database first."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := resetSQLite(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Store.SyncPeople(ctx.App.Roster); err != nil {
		return fmt.Errorf("failed to sync roster: %w", err)
	}

	ctx.Printf("Initialized chorewheel storage at: %s\n", ctx.Store.GetConfigPath())
	ctx.Printf("  %d people, %d rooms\n", len(ctx.App.Roster), len(ctx.App.Catalog.Rooms()))
	return nil
}

// resetSQLite closes and deletes the database file. A missing file is fine.
func resetSQLite(ctx *cli.Context) error {
	if !ctx.UsesSQLite() {
		return errors.New("--force only applies to SQLite databases")
	}
	path := ctx.Store.GetConfigPath()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", path)
	return nil
}
