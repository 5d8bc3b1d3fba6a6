package models

import "fmt"

// Level is a cleaning intensity. Levels are totally ordered from lightest to heaviest.
type Level string

const (
	LevelDaily    Level = "daily-minimum"
	LevelLight    Level = "light"
	LevelRegular  Level = "regular"
	LevelExtended Level = "extended"
	LevelGeneral  Level = "general"
)

// LevelOrder lists every level from lightest to heaviest.
var LevelOrder = []Level{
	LevelDaily,
	LevelLight,
	LevelRegular,
	LevelExtended,
	LevelGeneral,
}

var levelLabels = map[Level]string{
	LevelDaily:    "daily minimum",
	LevelLight:    "light cleaning",
	LevelRegular:  "regular cleaning",
	LevelExtended: "extended cleaning",
	LevelGeneral:  "general cleaning",
}

// Rank returns the position of the level in LevelOrder, or -1 for unknown levels.
func (l Level) Rank() int {
	for i, lvl := range LevelOrder {
		if lvl == l {
			return i
		}
	}
	return -1
}

func (l Level) Valid() bool {
	return l.Rank() >= 0
}

// Label is the human readable name used in digests and reports.
func (l Level) Label() string {
	if label, ok := levelLabels[l]; ok {
		return label
	}
	return string(l)
}

// ParseLevel accepts either the identifier ("regular") or the label ("regular cleaning").
func ParseLevel(s string) (Level, error) {
	for _, lvl := range LevelOrder {
		if string(lvl) == s || levelLabels[lvl] == s {
			return lvl, nil
		}
	}
	return "", fmt.Errorf("unknown cleaning level %q", s)
}
