package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/chorewheel/internal/constants"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

const sampleConfig = `
scheduler:
  timezone: UTC
  rotation_start: "2024-01-01"
  extended_interval_weeks: 5
  general_interval_weeks: 26
rotation:
  policy: clustered-pair
  flip_on_weekday: true
  clusters:
    odd:
      - [Bedroom, Bathroom]
      - [Kitchen]
    even:
      - [Bedroom, Kitchen]
      - [Bathroom]
database:
  path: data/chores.db
files:
  tasks: tasks.json
  users: users.yaml
notifications:
  admin_ids: [1]
`

const sampleTasks = `{
  "Kitchen": {
    "daily-minimum": ["Wipe counters"],
    "light": ["Sweep"],
    "regular": ["Mop"],
    "extended": ["Oven"],
    "general": ["Fridge"]
  },
  "Bathroom": {
    "daily minimum": ["Rinse sink"],
    "light cleaning": [],
    "regular": ["Scrub tub"],
    "extended": ["Grout"],
    "general": ["Tiles"]
  },
  "Bedroom": {
    "daily-minimum": [], "light": [], "regular": ["Vacuum"], "extended": [], "general": []
  }
}`

const sampleUsers = `
- id: 1
  name: Anna
- id: 2
  name: Boris
`

func writeFixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"config.yaml": sampleConfig,
		"tasks.json":  sampleTasks,
		"users.yaml":  sampleUsers,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return filepath.Join(dir, "config.yaml")
}

func TestBootstrap(t *testing.T) {
	path := writeFixture(t)
	app, err := Bootstrap(path)
	if err != nil {
		t.Fatalf("Bootstrap() error: %v", err)
	}

	dir := filepath.Dir(path)
	if app.Config.Database.Path != filepath.Join(dir, "data", "chores.db") {
		t.Errorf("database path not resolved against config dir: %s", app.Config.Database.Path)
	}
	if app.Config.Scheduler.DailyNotificationTime != constants.DefaultDailyNotificationTime {
		t.Errorf("default daily time not applied: %q", app.Config.Scheduler.DailyNotificationTime)
	}
	if len(app.Roster) != 2 || app.Roster[1].Name != "Boris" {
		t.Errorf("roster = %+v", app.Roster)
	}
	if diff := cmp.Diff([]string{"Kitchen", "Bathroom", "Bedroom"}, app.Catalog.Rooms()); diff != "" {
		t.Errorf("room order mismatch (-want +got):\n%s", diff)
	}
	if got := app.Catalog.Tasks("Bathroom", models.LevelDaily); len(got) != 1 || got[0] != "Rinse sink" {
		t.Errorf("label-keyed level not parsed: %v", got)
	}

	policy, err := app.Config.Policy()
	if err != nil || policy.Name() != constants.PolicyClusteredPair {
		t.Errorf("Policy() = %v, %v", policy, err)
	}
	if !app.Config.IsAdmin(1) || app.Config.IsAdmin(2) {
		t.Error("IsAdmin() mismatch")
	}
	if p, ok := app.Person(2); !ok || p.Name != "Boris" {
		t.Errorf("Person(2) = %+v, %v", p, ok)
	}
}

func TestParseRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero extended interval", "scheduler:\n  extended_interval_weeks: 0\n"},
		{"negative general interval", "scheduler:\n  general_interval_weeks: -2\n"},
		{"bad rotation start", "scheduler:\n  rotation_start: 01/01/2024\n"},
		{"bad time", "scheduler:\n  reminder_time: 8pm\n"},
		{"bad timezone", "scheduler:\n  timezone: Mars/Olympus\n"},
		{"unknown policy", "rotation:\n  policy: lottery\n"},
		{"empty database path", "database:\n  path: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, apperrors.ErrConfig) {
				t.Errorf("Parse() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestParseRoster(t *testing.T) {
	people, err := ParseRoster([]byte(`[{"id": 7, "name": "Anna"}]`))
	if err != nil {
		t.Fatalf("ParseRoster(json) error: %v", err)
	}
	if len(people) != 1 || people[0].ID != 7 {
		t.Errorf("ParseRoster() = %+v", people)
	}

	bad := []string{
		`[]`,
		`[{"id": 1, "name": ""}]`,
		`[{"id": 1, "name": "A"}, {"id": 1, "name": "B"}]`,
		"- name: Anna\n",
		`[{"id": 0, "name": "Anna"}]`,
		`[{"id": -3, "name": "Anna"}]`,
	}
	for _, data := range bad {
		if _, err := ParseRoster([]byte(data)); !errors.Is(err, apperrors.ErrConfig) {
			t.Errorf("ParseRoster(%s) error = %v, want ErrConfig", data, err)
		}
	}
}

func TestParseCatalogErrors(t *testing.T) {
	bad := map[string]string{
		"not a mapping":  "- Kitchen\n",
		"unknown level":  "Kitchen:\n  sparkling: [Polish]\n",
		"room not a map": "Kitchen: [Sweep]\n",
		"tasks not list": "Kitchen:\n  regular:\n    a: b\n",
		"empty":          "",
		"duplicate room": "Kitchen:\n  regular: [Mop]\nBathroom:\n  regular: [Tub]\nKitchen:\n  general: [Walls]\n",
		"duplicate level": "Kitchen:\n  regular: [Mop]\n  regular: [Sweep]\n",
		"level alias":    "Kitchen:\n  daily-minimum: [Wipe]\n  daily minimum: [Dishes]\n",
	}
	for name, data := range bad {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(data)); !errors.Is(err, apperrors.ErrConfig) {
				t.Errorf("ParseCatalog() error = %v, want ErrConfig", err)
			}
		})
	}
}

func TestValidateCatalogMissingLevel(t *testing.T) {
	cfg := Default()
	catalog, err := ParseCatalog([]byte("Kitchen:\n  daily-minimum: [Wipe]\n  regular: [Mop]\n"))
	if err != nil {
		t.Fatalf("ParseCatalog() error: %v", err)
	}
	err = ValidateCatalog(&cfg, catalog)
	if !errors.Is(err, apperrors.ErrConfig) {
		t.Fatalf("ValidateCatalog() error = %v, want ErrConfig", err)
	}
	if !strings.Contains(err.Error(), "Kitchen") {
		t.Errorf("error should name the room: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandHome("~/.config/chorewheel/config.yaml")
	if err != nil {
		t.Fatalf("ExpandHome() error: %v", err)
	}
	if got != filepath.Join(home, ".config", "chorewheel", "config.yaml") {
		t.Errorf("ExpandHome() = %s", got)
	}
	if got, _ := ExpandHome("/etc/chores.yaml"); got != "/etc/chores.yaml" {
		t.Errorf("absolute path changed: %s", got)
	}
}

func TestIsPostgresURL(t *testing.T) {
	if !IsPostgresURL("postgres://chores@localhost/chores") || !IsPostgresURL("postgresql://x@y/z") {
		t.Error("postgres URLs not detected")
	}
	if IsPostgresURL("/var/lib/chores.db") {
		t.Error("file path detected as postgres")
	}
}
