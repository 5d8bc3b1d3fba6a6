package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/chorewheel/internal/backup"
	"github.com/julianstephens/chorewheel/internal/config"
	"github.com/julianstephens/chorewheel/internal/constants"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/materializer"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/storage"
)

// Context is built once in main and handed to every command.
type Context struct {
	App          *config.App
	Store        storage.Provider
	Materializer *materializer.Materializer

	// Out and In default to the process streams when nil.
	Out io.Writer
	In  io.Reader
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Confirm asks a y/N question and reports whether the answer was yes.
func (c *Context) Confirm(question string) (bool, error) {
	c.Printf("%s [y/N]: ", question)
	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// UsesSQLite reports whether the store is a local file that can be backed up.
func (c *Context) UsesSQLite() bool {
	return !c.App.Config.Database.IsPostgres()
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !c.UsesSQLite() {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// PrepareDay takes an automatic backup when date has not been materialized yet.
func (c *Context) PrepareDay(date time.Time) error {
	existing, err := c.Store.ListAssignments(date.Format(constants.DateFormat))
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		c.PerformAutomaticBackup()
	}
	return nil
}

// ParseDate accepts YYYY-MM-DD, "today", "yesterday" or an empty string, and
// returns midnight in the configured timezone.
func (c *Context) ParseDate(s string) (time.Time, error) {
	today, err := c.App.Config.Today()
	if err != nil {
		return time.Time{}, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}
	loc, err := c.App.Config.Location()
	if err != nil {
		return time.Time{}, err
	}
	date, err := time.ParseInLocation(constants.DateFormat, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or 'today')", s)
	}
	return date, nil
}

// ResolvePerson finds a roster member by numeric id or by name, ignoring case.
func (c *Context) ResolvePerson(s string) (models.Person, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if p, ok := c.App.Person(id); ok {
			return p, nil
		}
	}
	for _, p := range c.App.Roster {
		if strings.EqualFold(p.Name, s) {
			return p, nil
		}
	}
	return models.Person{}, fmt.Errorf("person %q is not on the roster: %w", s, apperrors.ErrNotFound)
}

// People returns the whole roster, or just the named person when s is set.
func (c *Context) People(s string) ([]models.Person, error) {
	if strings.TrimSpace(s) == "" {
		return c.App.Roster, nil
	}
	p, err := c.ResolvePerson(s)
	if err != nil {
		return nil, err
	}
	return []models.Person{p}, nil
}
