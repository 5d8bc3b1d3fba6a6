package config

import (
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

// App bundles everything loaded at startup.
type App struct {
	Config  *Config
	Roster  []models.Person
	Catalog *models.Catalog
}

// Bootstrap loads config.yaml, the roster and the catalog, and checks that the
// catalog defines every level the calendar can produce for every room.
func Bootstrap(path string) (*App, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	roster, err := LoadRoster(cfg.Files.Users)
	if err != nil {
		return nil, err
	}
	catalog, err := LoadCatalog(cfg.Files.Tasks)
	if err != nil {
		return nil, err
	}
	if err := ValidateCatalog(cfg, catalog); err != nil {
		return nil, err
	}
	return &App{Config: cfg, Roster: roster, Catalog: catalog}, nil
}

// ValidateCatalog fails when a room is missing a level the calendar can produce.
func ValidateCatalog(cfg *Config, catalog *models.Catalog) error {
	sched, err := cfg.Schedule()
	if err != nil {
		return err
	}
	if err := catalog.RequireLevels(sched.Producible()...); err != nil {
		return apperrors.Configf("%v", err)
	}
	return nil
}

// Person looks a roster member up by id.
func (a *App) Person(id int64) (models.Person, bool) {
	for _, p := range a.Roster {
		if p.ID == id {
			return p, true
		}
	}
	return models.Person{}, false
}
