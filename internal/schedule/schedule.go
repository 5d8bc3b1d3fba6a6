package schedule

import (
	"fmt"
	"time"

	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

// Config drives the level calendar.
type Config struct {
	// Epoch is the rotation start; only its calendar date is used.
	Epoch                 time.Time
	ExtendedIntervalWeeks int
	GeneralIntervalWeeks  int
	// ExpandLevels makes heavier levels include every lighter one.
	ExpandLevels bool
}

func (c Config) Validate() error {
	if c.ExtendedIntervalWeeks <= 0 {
		return apperrors.Configf("extended interval must be positive, got %d", c.ExtendedIntervalWeeks)
	}
	if c.GeneralIntervalWeeks <= 0 {
		return apperrors.Configf("general interval must be positive, got %d", c.GeneralIntervalWeeks)
	}
	return nil
}

// Producible lists, lightest first, every level Levels can return under this
// configuration. Week numbers run through every positive integer, so general
// is always reachable. Extended needs a multiple of the extended interval that
// is not one of the general interval. Regular needs a week that is a multiple
// of neither, which fails only when an interval is 1. Expansion pulls every
// lighter level in behind general.
func (c Config) Producible() []models.Level {
	if c.ExpandLevels {
		return append([]models.Level(nil), models.LevelOrder...)
	}
	levels := []models.Level{models.LevelDaily, models.LevelLight}
	if c.ExtendedIntervalWeeks > 1 && c.GeneralIntervalWeeks > 1 {
		levels = append(levels, models.LevelRegular)
	}
	if c.GeneralIntervalWeeks <= 0 || c.ExtendedIntervalWeeks%c.GeneralIntervalWeeks != 0 {
		levels = append(levels, models.LevelExtended)
	}
	return append(levels, models.LevelGeneral)
}

// WeeksBetween returns the number of whole weeks from epoch to target, never negative.
// Only the calendar dates matter; clock time and zone offsets are ignored.
func WeeksBetween(epoch, target time.Time) int {
	days := dayNumber(target) - dayNumber(epoch)
	if days < 0 {
		return 0
	}
	return int(days / 7)
}

// DueLevels returns the levels due on date, lightest first. The daily minimum is
// always present. Wednesday adds light cleaning; weekends add general, extended or
// regular cleaning depending on the 1-based week number, general taking priority.
func DueLevels(date time.Time, cfg Config) []models.Level {
	levels := []models.Level{models.LevelDaily}

	weekday := date.Weekday()
	if weekday == time.Wednesday {
		levels = append(levels, models.LevelLight)
	}

	if weekday == time.Saturday || weekday == time.Sunday {
		weekNumber := WeeksBetween(cfg.Epoch, date) + 1
		switch {
		case cfg.GeneralIntervalWeeks > 0 && weekNumber%cfg.GeneralIntervalWeeks == 0:
			levels = append(levels, models.LevelGeneral)
		case cfg.ExtendedIntervalWeeks > 0 && weekNumber%cfg.ExtendedIntervalWeeks == 0:
			levels = append(levels, models.LevelExtended)
		default:
			levels = append(levels, models.LevelRegular)
		}
	}
	return levels
}

// ExpandLevels returns every level up to and including the heaviest one present.
func ExpandLevels(levels []models.Level) ([]models.Level, error) {
	if len(levels) == 0 {
		return nil, nil
	}
	maxRank := -1
	for _, lvl := range levels {
		rank := lvl.Rank()
		if rank < 0 {
			return nil, fmt.Errorf("unknown level: %s", lvl)
		}
		if rank > maxRank {
			maxRank = rank
		}
	}
	return append([]models.Level(nil), models.LevelOrder[:maxRank+1]...), nil
}

// Levels is DueLevels followed by ExpandLevels when the configuration asks for it.
func Levels(date time.Time, cfg Config) []models.Level {
	levels := DueLevels(date, cfg)
	if !cfg.ExpandLevels {
		return levels
	}
	// DueLevels only produces known levels, so expansion cannot fail here.
	expanded, _ := ExpandLevels(levels)
	return expanded
}

func dayNumber(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
