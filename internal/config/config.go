// Package config loads the application configuration, the roster and the task
// catalog. Everything here runs once at startup; any error is fatal.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/chorewheel/internal/constants"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/rotation"
	"github.com/julianstephens/chorewheel/internal/schedule"
)

// SchedulerConfig holds the rotation calendar and the trigger times used by
// whatever external clock invokes `chorewheel notify`.
type SchedulerConfig struct {
	Timezone              string `yaml:"timezone"`
	DailyNotificationTime string `yaml:"daily_notification_time"`
	ReminderTime          string `yaml:"reminder_time"`
	ReportTime            string `yaml:"report_time"`
	RotationStart         string `yaml:"rotation_start"`
	ExtendedIntervalWeeks int    `yaml:"extended_interval_weeks"`
	GeneralIntervalWeeks  int    `yaml:"general_interval_weeks"`
	ExpandLevels          bool   `yaml:"expand_levels"`
}

type RotationConfig struct {
	Policy        string               `yaml:"policy"`
	Clusters      rotation.ClusterPlan `yaml:"clusters"`
	FlipOnWeekday bool                 `yaml:"flip_on_weekday"`
}

// DatabaseConfig points at a SQLite file or a PostgreSQL URL without a password.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

func (d DatabaseConfig) IsPostgres() bool {
	return IsPostgresURL(d.Path)
}

type FilesConfig struct {
	Tasks string `yaml:"tasks"`
	Users string `yaml:"users"`
}

type NotificationsConfig struct {
	Enabled       bool    `yaml:"enabled"`
	AdminIDs      []int64 `yaml:"admin_ids"`
	GroupLocation string  `yaml:"group_location"`
}

// Config models config.yaml.
type Config struct {
	Scheduler     SchedulerConfig     `yaml:"scheduler"`
	Rotation      RotationConfig      `yaml:"rotation"`
	Database      DatabaseConfig      `yaml:"database"`
	Files         FilesConfig         `yaml:"files"`
	Notifications NotificationsConfig `yaml:"notifications"`

	// Dir is the directory holding config.yaml; relative paths resolve against it.
	Dir string `yaml:"-"`
}

// Default returns a configuration with every default applied.
func Default() Config {
	return Config{
		Scheduler: SchedulerConfig{
			Timezone:              constants.DefaultTimezone,
			DailyNotificationTime: constants.DefaultDailyNotificationTime,
			ReminderTime:          constants.DefaultReminderTime,
			ReportTime:            constants.DefaultReportTime,
			RotationStart:         constants.DefaultRotationStart,
			ExtendedIntervalWeeks: constants.DefaultExtendedIntervalWeeks,
			GeneralIntervalWeeks:  constants.DefaultGeneralIntervalWeeks,
		},
		Rotation: RotationConfig{Policy: constants.DefaultPolicy},
		Database: DatabaseConfig{Path: constants.AppName + ".db"},
		Files: FilesConfig{
			Tasks: constants.DefaultTasksFile,
			Users: constants.DefaultUsersFile,
		},
		Notifications: NotificationsConfig{
			Enabled:       constants.DefaultNotificationsEnabled,
			GroupLocation: constants.DefaultGroupNotificationLabel,
		},
	}
}

// Load reads config.yaml, applies defaults for missing keys and validates it.
func Load(path string) (*Config, error) {
	path, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg.Dir = filepath.Dir(path)
	cfg.Files.Tasks = cfg.resolve(cfg.Files.Tasks)
	cfg.Files.Users = cfg.resolve(cfg.Files.Users)
	if !cfg.Database.IsPostgres() {
		cfg.Database.Path = cfg.resolve(cfg.Database.Path)
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, apperrors.Configf("invalid YAML: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	s := c.Scheduler
	for name, value := range map[string]string{
		"daily_notification_time": s.DailyNotificationTime,
		"reminder_time":           s.ReminderTime,
		"report_time":             s.ReportTime,
	} {
		if _, err := time.Parse(constants.TimeFormat, value); err != nil {
			return apperrors.Configf("scheduler.%s must be HH:MM, got %q", name, value)
		}
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	sched, err := c.Schedule()
	if err != nil {
		return err
	}
	if err := sched.Validate(); err != nil {
		return err
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return apperrors.Configf("database.path cannot be empty")
	}
	return nil
}

// Schedule converts the scheduler section into the level calendar configuration.
func (c *Config) Schedule() (schedule.Config, error) {
	epoch, err := time.Parse(constants.DateFormat, c.Scheduler.RotationStart)
	if err != nil {
		return schedule.Config{}, apperrors.Configf("scheduler.rotation_start must be YYYY-MM-DD, got %q", c.Scheduler.RotationStart)
	}
	return schedule.Config{
		Epoch:                 epoch,
		ExtendedIntervalWeeks: c.Scheduler.ExtendedIntervalWeeks,
		GeneralIntervalWeeks:  c.Scheduler.GeneralIntervalWeeks,
		ExpandLevels:          c.Scheduler.ExpandLevels,
	}, nil
}

func (c *Config) Policy() (rotation.Policy, error) {
	return rotation.New(c.Rotation.Policy, c.Rotation.Clusters, c.Rotation.FlipOnWeekday)
}

// Location loads the configured timezone. "Local" and "" mean the system zone.
func (c *Config) Location() (*time.Location, error) {
	tz := c.Scheduler.Timezone
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, apperrors.Configf("invalid timezone %q: %v", tz, err)
	}
	return loc, nil
}

// Today returns the current calendar date in the configured timezone.
func (c *Config) Today() (time.Time, error) {
	loc, err := c.Location()
	if err != nil {
		return time.Time{}, err
	}
	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc), nil
}

// IsAdmin reports whether the person may see roster-wide statistics.
func (c *Config) IsAdmin(personID int64) bool {
	for _, id := range c.Notifications.AdminIDs {
		if id == personID {
			return true
		}
	}
	return false
}

func (c *Config) resolve(p string) string {
	p, err := ExpandHome(p)
	if err != nil || filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}

// IsPostgresURL reports whether s looks like a PostgreSQL connection URL.
func IsPostgresURL(s string) bool {
	return strings.HasPrefix(s, "postgres://") || strings.HasPrefix(s, "postgresql://")
}
