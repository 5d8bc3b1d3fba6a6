// Package clitest builds a command context over a temporary SQLite database.
package clitest

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/config"
	"github.com/julianstephens/chorewheel/internal/materializer"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/storage/sqlite"
)

// Tuesday is the first Tuesday after the default rotation start; only the
// daily minimum is due.
var Tuesday = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// NewContext returns a context with Anna (1, admin) and Boris (2), a Kitchen
// with two daily tasks and a Bathroom with one, plus one task per heavier level. Output is captured in the
// returned buffer.
func NewContext(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()

	cfg := config.Default()
	cfg.Scheduler.Timezone = "UTC"
	cfg.Notifications.AdminIDs = []int64{1}
	cfg.Database.Path = filepath.Join(t.TempDir(), "chorewheel.db")

	roster := []models.Person{{ID: 1, Name: "Anna"}, {ID: 2, Name: "Boris"}}
	catalog := models.NewCatalog()
	catalog.Set("Kitchen", models.LevelDaily, []string{"Wipe", "Dishes"})
	catalog.Set("Kitchen", models.LevelLight, []string{"Fridge"})
	catalog.Set("Kitchen", models.LevelRegular, []string{"Mop"})
	catalog.Set("Kitchen", models.LevelExtended, []string{"Oven"})
	catalog.Set("Kitchen", models.LevelGeneral, []string{"Walls"})
	catalog.Set("Bathroom", models.LevelDaily, []string{"Rinse"})
	catalog.Set("Bathroom", models.LevelLight, []string{"Mirror"})
	catalog.Set("Bathroom", models.LevelRegular, []string{"Tub"})
	catalog.Set("Bathroom", models.LevelExtended, []string{"Grout"})
	catalog.Set("Bathroom", models.LevelGeneral, []string{"Ceiling"})

	store := sqlite.NewStore(cfg.Database.Path)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if err := store.SyncPeople(roster); err != nil {
		t.Fatalf("failed to sync people: %v", err)
	}

	sched, err := cfg.Schedule()
	if err != nil {
		t.Fatal(err)
	}
	policy, err := cfg.Policy()
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	return &cli.Context{
		App:          &config.App{Config: &cfg, Roster: roster, Catalog: catalog},
		Store:        store,
		Materializer: materializer.New(store, roster, catalog, sched, policy),
		Out:          &out,
	}, &out
}
