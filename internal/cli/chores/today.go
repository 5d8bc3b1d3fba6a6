package chores

import (
	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/report"
)

type TodayCmd struct {
	Date   string `help:"Day to show (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	Person string `help:"Only show this person (id or name)." short:"p"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	people, err := ctx.People(c.Person)
	if err != nil {
		return err
	}
	if err := ctx.PrepareDay(date); err != nil {
		return err
	}

	byPerson, err := ctx.Materializer.Ensure(date)
	if err != nil {
		return err
	}

	if c.Person == "" {
		ctx.Println(report.FormatGroupSummary(date, ctx.App.Roster, byPerson))
		ctx.Println()
	}
	for i, p := range people {
		if i > 0 {
			ctx.Println()
		}
		ctx.Printf("👤 %s\n", p.Name)
		ctx.Println(report.FormatAssignments(byPerson[p.ID]))
	}
	return nil
}

type RemindCmd struct {
	Date   string `help:"Day to check (YYYY-MM-DD, 'today' or 'yesterday')." default:"today"`
	Person string `help:"Only check this person (id or name)." short:"p"`
}

func (c *RemindCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	people, err := ctx.People(c.Person)
	if err != nil {
		return err
	}
	if err := ctx.PrepareDay(date); err != nil {
		return err
	}

	open := 0
	for _, p := range people {
		incomplete, err := ctx.Materializer.Incomplete(date, p.ID)
		if err != nil {
			return err
		}
		if len(incomplete) == 0 {
			continue
		}
		if open > 0 {
			ctx.Println()
		}
		open++
		ctx.Printf("👤 %s\n", p.Name)
		ctx.Println(report.FormatReminder(incomplete))
	}
	if open == 0 {
		ctx.Println("Everything is done 🎉")
	}
	return nil
}
