package chores

import (
	"fmt"

	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/report"
	"github.com/julianstephens/chorewheel/internal/rotation"
)

type ReportCmd struct {
	Period string `help:"Reporting period." enum:"day,week,month" default:"day"`
	Date   string `help:"Any day inside the period." default:"today"`
	As     string `help:"Person asking; week and month reports are limited to admins."`
}

func (c *ReportCmd) Run(ctx *cli.Context) error {
	if c.As != "" && c.Period != "day" {
		p, err := ctx.ResolvePerson(c.As)
		if err != nil {
			return err
		}
		if !ctx.App.Config.IsAdmin(p.ID) {
			return fmt.Errorf("%s is not allowed to see %s reports", p.Name, c.Period)
		}
	}

	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	period, err := report.ParsePeriod(c.Period, date)
	if err != nil {
		return err
	}

	start, end := period.Range()
	rows, err := ctx.Store.Stats(start, end)
	if err != nil {
		return fmt.Errorf("failed to load stats: %w", err)
	}
	ctx.Println(report.FormatStats(period.Label, report.Summarize(rows)))
	return nil
}

type LevelsCmd struct {
	Date string `help:"Day to inspect." default:"today"`
}

func (c *LevelsCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	plan, err := ctx.Materializer.Plan(date)
	if err != nil {
		return err
	}
	ctx.Printf("📅 %s (week %d): %s\n", plan.Day, plan.WeekIndex, report.FormatLevelsLine(plan.Levels))
	return nil
}

type RotationCmd struct {
	Date string `help:"Day to inspect." default:"today"`
}

func (c *RotationCmd) Run(ctx *cli.Context) error {
	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	plan, err := ctx.Materializer.Plan(date)
	if err != nil {
		return err
	}
	ctx.Printf("🔄 %s (week %d)\n", plan.Day, plan.WeekIndex)
	ctx.Println(rotation.Describe(ctx.App.Roster, plan.Rooms))
	return nil
}
