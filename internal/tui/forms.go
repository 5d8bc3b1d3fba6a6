package tui

import (
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/chorewheel/internal/models"
)

// NewPersonForm asks who is using the board. The chosen id is written to id.
func NewPersonForm(roster []models.Person, id *int64) *huh.Form {
	options := make([]huh.Option[int64], len(roster))
	for i, p := range roster {
		options[i] = huh.NewOption(p.Name, p.ID)
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int64]().
				Title("Who are you?").
				Options(options...).
				Value(id),
		),
	)
}
