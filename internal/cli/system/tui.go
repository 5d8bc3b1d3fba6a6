package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/tui"
)

type TuiCmd struct {
	As   string `help:"Open the board for this person (id or name). Prompts when omitted."`
	Date string `help:"Day to show." default:"today"`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	var personID int64
	if c.As != "" {
		p, err := ctx.ResolvePerson(c.As)
		if err != nil {
			return err
		}
		personID = p.ID
	}
	if err := ctx.PrepareDay(date); err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewModel(ctx.Materializer, date, personID), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
