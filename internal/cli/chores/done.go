package chores

import (
	"errors"
	"fmt"

	"github.com/julianstephens/chorewheel/internal/cli"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/tui"
)

// pickPerson is swapped out in tests; the real one needs a terminal.
var pickPerson = func(roster []models.Person) (models.Person, error) {
	var id int64
	if err := tui.NewPersonForm(roster, &id).Run(); err != nil {
		return models.Person{}, err
	}
	for _, p := range roster {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Person{}, fmt.Errorf("no person selected")
}

type DoneCmd struct {
	ID   int64  `arg:"" help:"Task number as shown by 'today'."`
	As   string `help:"Who is completing the task (id or name). Prompts when omitted."`
	Date string `help:"Day the task belongs to." default:"today"`
}

func (c *DoneCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}

	var actor models.Person
	if c.As != "" {
		actor, err = ctx.ResolvePerson(c.As)
	} else {
		actor, err = pickPerson(ctx.App.Roster)
	}
	if err != nil {
		return err
	}

	a, err := ctx.Materializer.Complete(actor.ID, c.ID, date)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return fmt.Errorf("no task #%d for %s", c.ID, date.Format("02.01.2006"))
	case errors.Is(err, apperrors.ErrNotOwner):
		return fmt.Errorf("task #%d is not yours, %s", c.ID, actor.Name)
	case err != nil:
		return err
	}

	ctx.Printf("✓ Done: %s (%s, %s)\n", a.Description, a.Room, a.Level.Label())
	return nil
}
