package system

import (
	"fmt"

	"github.com/julianstephens/chorewheel/internal/cli"
	"github.com/julianstephens/chorewheel/internal/constants"
	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/notifier"
)

// newSender is replaced in tests.
var newSender = func() notifier.Sender { return notifier.NewTray() }

// NotifyCmd is run by an external scheduler (cron, systemd timer) at the
// configured trigger times.
type NotifyCmd struct {
	Kind   string `arg:"" help:"Which notification to send." enum:"daily,evening,report"`
	Date   string `help:"Day to notify about." default:"today"`
	DryRun bool   `help:"Print notifications to stdout instead of sending them."`
	Resend bool   `help:"Send again even if the notification already went out."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	if !ctx.App.Config.Notifications.Enabled && !c.DryRun {
		logger.Debug("Notifications disabled, skipping", "kind", c.Kind)
		return nil
	}

	date, err := ctx.ParseDate(c.Date)
	if err != nil {
		return err
	}
	if c.Kind != constants.NotifyKindReport {
		if err := ctx.PrepareDay(date); err != nil {
			return err
		}
	}

	var sender notifier.Sender
	if c.DryRun {
		sender = notifier.Writer{Out: ctx.Stdout()}
	} else {
		sender = newSender()
	}
	d := notifier.NewDispatcher(ctx.Materializer, sender, ctx.App.Config.Notifications.GroupLocation)
	d.DryRun = c.DryRun
	d.Resend = c.Resend

	var refs []models.NotificationRef
	switch c.Kind {
	case constants.NotifyKindDaily:
		refs, err = d.Daily(date)
	case constants.NotifyKindEvening:
		refs, err = d.Evening(date)
	case constants.NotifyKindReport:
		refs, err = d.Report(date)
	default:
		return fmt.Errorf("unknown notification kind %q", c.Kind)
	}
	if err != nil {
		return err
	}

	if !c.DryRun {
		ctx.Printf("✓ Sent %d %s notification(s)\n", len(refs), c.Kind)
	}
	return nil
}
