package notifier

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/chorewheel/internal/constants"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/materializer"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/report"
	"github.com/julianstephens/chorewheel/internal/storage"
)

// GroupPersonID keys group-wide messages in the notification index.
const GroupPersonID int64 = 0

// Message is one outgoing notification.
type Message struct {
	ID    string
	Title string
	Text  string
}

// Sender delivers messages somewhere a person will see them.
type Sender interface {
	Send(Message) error
	Location() string
}

// Writer prints messages, used for dry runs and terminals without a tray.
type Writer struct {
	Out io.Writer
}

func (w Writer) Location() string { return "stdout" }

func (w Writer) Send(msg Message) error {
	_, err := fmt.Fprintf(w.Out, "── %s ──\n%s\n\n", msg.Title, msg.Text)
	return err
}

// Dispatcher builds the daily digest, the evening reminder and the daily report,
// and records where each one went.
type Dispatcher struct {
	m      *materializer.Materializer
	store  storage.Provider
	sender Sender
	group  string

	// DryRun sends without recording deliveries.
	DryRun bool
	// Resend delivers even when the index already has a message for the slot.
	Resend bool

	now func() time.Time
}

func NewDispatcher(m *materializer.Materializer, sender Sender, groupLocation string) *Dispatcher {
	if groupLocation == "" {
		groupLocation = constants.DefaultGroupNotificationLabel
	}
	return &Dispatcher{
		m:      m,
		store:  m.Store(),
		sender: sender,
		group:  groupLocation,
		now:    time.Now,
	}
}

// Daily sends each person their list for the day plus a group summary.
func (d *Dispatcher) Daily(date time.Time) ([]models.NotificationRef, error) {
	byPerson, err := d.m.Ensure(date)
	if err != nil {
		return nil, err
	}

	var refs []models.NotificationRef
	for _, p := range d.m.Roster() {
		assignments := byPerson[p.ID]
		if len(assignments) == 0 {
			continue
		}
		ref, err := d.deliver(date, p.ID, constants.NotifyKindDaily, p.Name, report.FormatPersonal(date, assignments), false)
		if err != nil {
			return refs, err
		}
		refs = appendRef(refs, ref)
	}

	summary := report.FormatGroupSummary(date, d.m.Roster(), byPerson)
	ref, err := d.deliver(date, GroupPersonID, constants.NotifyKindDaily, "Household", summary, true)
	if err != nil {
		return refs, err
	}
	return appendRef(refs, ref), nil
}

// Evening reminds everyone who still has open tasks.
func (d *Dispatcher) Evening(date time.Time) ([]models.NotificationRef, error) {
	var refs []models.NotificationRef
	for _, p := range d.m.Roster() {
		incomplete, err := d.m.Incomplete(date, p.ID)
		if err != nil {
			return refs, err
		}
		if len(incomplete) == 0 {
			continue
		}
		ref, err := d.deliver(date, p.ID, constants.NotifyKindEvening, p.Name, report.FormatReminder(incomplete), false)
		if err != nil {
			return refs, err
		}
		refs = appendRef(refs, ref)
	}
	return refs, nil
}

// Report posts the day's per-person completion badges to the group.
func (d *Dispatcher) Report(date time.Time) ([]models.NotificationRef, error) {
	period := report.Day(date)
	start, end := period.Range()
	rows, err := d.store.Stats(start, end)
	if err != nil {
		return nil, err
	}
	text := report.FormatStats(period.Label, report.Summarize(rows))
	ref, err := d.deliver(date, GroupPersonID, constants.NotifyKindReport, "Daily report", text, true)
	if err != nil {
		return nil, err
	}
	return appendRef(nil, ref), nil
}

func appendRef(refs []models.NotificationRef, ref *models.NotificationRef) []models.NotificationRef {
	if ref == nil {
		return refs
	}
	return append(refs, *ref)
}

// deliver returns nil without sending when the slot was already delivered.
func (d *Dispatcher) deliver(date time.Time, personID int64, kind, title, text string, group bool) (*models.NotificationRef, error) {
	day := date.Format(constants.DateFormat)

	if !d.DryRun && !d.Resend {
		prev, err := d.store.GetNotification(day, personID, kind)
		if err == nil {
			logger.Debug("Notification already sent", "day", day, "person", personID, "kind", kind, "message_id", prev.MessageID)
			return nil, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	msg := Message{ID: uuid.NewString(), Title: title, Text: text}
	if err := d.sender.Send(msg); err != nil {
		return nil, fmt.Errorf("failed to send %s notification for %s: %w", kind, title, err)
	}

	location := d.sender.Location()
	if group {
		location += "/" + d.group
	}
	ref := models.NotificationRef{
		Day:       day,
		PersonID:  personID,
		Kind:      kind,
		Location:  location,
		MessageID: msg.ID,
		SentAt:    d.now().UTC(),
	}
	if d.DryRun {
		return &ref, nil
	}
	if err := d.store.SaveNotification(ref); err != nil {
		return nil, err
	}
	logger.Info("Notification sent", "day", day, "person", personID, "kind", kind, "location", location, "message_id", msg.ID)
	return &ref, nil
}
