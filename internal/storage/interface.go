package storage

import "github.com/julianstephens/chorewheel/internal/models"

// Provider is the assignment store. Days are YYYY-MM-DD strings.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// People
	SyncPeople([]models.Person) error

	// Assignments
	// AddAssignment inserts the row unless an identical (day, person, room, level,
	// description) row exists and returns the id of whichever row is stored.
	AddAssignment(day string, personID int64, room string, level models.Level, description string) (int64, error)
	// AddDay inserts every row for day in one transaction, skipping rows that
	// already exist, and returns how many were new. Readers see all of the
	// day's rows or none of them.
	AddDay(day string, rows []models.Assignment) (int, error)
	ListAssignments(day string) ([]models.Assignment, error)
	ListAssignmentsForPerson(day string, personID int64) ([]models.Assignment, error)
	ListIncompleteForPerson(day string, personID int64) ([]models.Assignment, error)
	GetAssignment(id int64) (models.Assignment, error)
	// CompleteAssignment marks the row done. Completing an already completed row
	// keeps the first completion timestamp.
	CompleteAssignment(id int64) error

	// Stats returns one row per (person, day) in [start, end] ordered by name, day.
	Stats(start, end string) ([]models.StatRow, error)

	// Notifications
	SaveNotification(models.NotificationRef) error
	GetNotification(day string, personID int64, kind string) (models.NotificationRef, error)

	// Utils
	GetConfigPath() string
}

// SchemaReporter is implemented by stores backed by the migration runner.
type SchemaReporter interface {
	SchemaVersion() (current, latest int, err error)
}
