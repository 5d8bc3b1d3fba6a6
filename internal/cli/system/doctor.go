package system

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/chorewheel/internal/backup"
	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/config"
	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/storage"
	"github.com/julianstephens/chorewheel/internal/storage/sqlite"
)

type DoctorCmd struct{}

type check struct {
	name string
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warnOnly failures are reported without failing the run.
	warnOnly bool
	run      func(ctx *cli.Context) error
}

var checks = []check{
	{name: "Schema version", needsDB: true, run: checkSchemaVersion},
	{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
	{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
	{name: "Task catalog", run: checkCatalog},
	{name: "Rotation", run: checkRotation},
	{name: "Roster in sync", needsDB: true, warnOnly: true, run: checkRosterSynced},
	{name: "Date formats", needsDB: true, run: checkAssignmentDates},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Database reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if f := logger.File(); f != "" {
		ctx.Printf("Log file: %s\n", f)
	}
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func sqliteDB(ctx *cli.Context) *sql.DB {
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		return s.GetDB()
	}
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if db := sqliteDB(ctx); db != nil {
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func schemaVersion(ctx *cli.Context) (int, int, error) {
	reporter, ok := ctx.Store.(storage.SchemaReporter)
	if !ok {
		return 0, 0, nil
	}
	return reporter.SchemaVersion()
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := schemaVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.UsesSQLite() {
		return nil
	}
	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'chorewheel backup create'")
	}
	return nil
}

func checkCatalog(ctx *cli.Context) error {
	if len(ctx.App.Catalog.Rooms()) == 0 {
		return fmt.Errorf("task catalog has no rooms")
	}
	return config.ValidateCatalog(ctx.App.Config, ctx.App.Catalog)
}

func checkRotation(ctx *cli.Context) error {
	today, err := ctx.App.Config.Today()
	if err != nil {
		return err
	}
	plan, err := ctx.Materializer.Plan(today)
	if err != nil {
		return err
	}
	covered := 0
	for _, rooms := range plan.Rooms {
		covered += len(rooms)
	}
	if covered != len(ctx.App.Catalog.Rooms()) {
		return fmt.Errorf("rotation covers %d of %d rooms", covered, len(ctx.App.Catalog.Rooms()))
	}
	return nil
}

// checkRosterSynced reports people in the database that left the roster. Their
// history stays, but they receive no new assignments.
func checkRosterSynced(ctx *cli.Context) error {
	db := sqliteDB(ctx)
	if db == nil {
		return nil
	}
	rows, err := db.Query("SELECT id, name FROM people ORDER BY id")
	if err != nil {
		return fmt.Errorf("failed to read people: %w", err)
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return err
		}
		if _, ok := ctx.App.Person(id); !ok {
			stale = append(stale, fmt.Sprintf("%s (%d)", name, id))
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(stale) > 0 {
		return fmt.Errorf("not on the roster anymore: %v", stale)
	}
	return nil
}

func checkAssignmentDates(ctx *cli.Context) error {
	db := sqliteDB(ctx)
	if db == nil {
		return nil
	}
	var invalid int
	err := db.QueryRow(`
		SELECT COUNT(*)
		FROM assignments
		WHERE day NOT GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]'
	`).Scan(&invalid)
	if err != nil {
		return fmt.Errorf("failed to check assignment dates: %w", err)
	}
	if invalid > 0 {
		return fmt.Errorf("found %d assignments with an invalid day", invalid)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, err := ctx.App.Config.Location(); err != nil {
		return err
	}
	return nil
}
