package materializer

import (
	"fmt"
	"time"

	"github.com/julianstephens/chorewheel/internal/constants"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/logger"
	"github.com/julianstephens/chorewheel/internal/models"
	"github.com/julianstephens/chorewheel/internal/rotation"
	"github.com/julianstephens/chorewheel/internal/schedule"
	"github.com/julianstephens/chorewheel/internal/storage"
)

// Materializer turns the calendar, the room rotation and the task catalog into
// stored assignments, once per day.
type Materializer struct {
	store    storage.Provider
	roster   []models.Person
	catalog  *models.Catalog
	schedule schedule.Config
	policy   rotation.Policy
}

func New(store storage.Provider, roster []models.Person, catalog *models.Catalog, sched schedule.Config, policy rotation.Policy) *Materializer {
	return &Materializer{
		store:    store,
		roster:   roster,
		catalog:  catalog,
		schedule: sched,
		policy:   policy,
	}
}

// Plan is what a day would produce, computed without touching the store.
type Plan struct {
	Day       string
	WeekIndex int
	Levels    []models.Level
	Rooms     rotation.Assignment
}

func (m *Materializer) Plan(date time.Time) (Plan, error) {
	weekIndex := schedule.WeeksBetween(m.schedule.Epoch, date)
	rooms, err := rotation.RotateRooms(m.roster, m.catalog.Rooms(), weekIndex, date.Weekday(), m.policy)
	if err != nil {
		return Plan{}, err
	}
	return Plan{
		Day:       date.Format(constants.DateFormat),
		WeekIndex: weekIndex,
		Levels:    schedule.Levels(date, m.schedule),
		Rooms:     rooms,
	}, nil
}

// Ensure returns the day's assignments grouped by person, generating them first
// if the day has none. A day that already has rows is returned as stored, even
// if the roster or catalog changed since.
func (m *Materializer) Ensure(date time.Time) (map[int64][]models.Assignment, error) {
	day := date.Format(constants.DateFormat)

	existing, err := m.store.ListAssignments(day)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return groupByPerson(existing), nil
	}

	plan, err := m.Plan(date)
	if err != nil {
		return nil, err
	}

	var rows []models.Assignment
	for _, person := range m.roster {
		for _, room := range plan.Rooms[person.ID] {
			for _, level := range plan.Levels {
				for _, description := range m.catalog.Tasks(room, level) {
					rows = append(rows, models.Assignment{
						Day:         day,
						PersonID:    person.ID,
						Room:        room,
						Level:       level,
						Description: description,
					})
				}
			}
		}
	}
	// one transaction, so a concurrent Ensure never sees a partial day
	added, err := m.store.AddDay(day, rows)
	if err != nil {
		return nil, fmt.Errorf("failed to materialize %s: %w", day, err)
	}
	logger.Info("Materialized assignments", "day", day, "week_index", plan.WeekIndex, "levels", plan.Levels, "count", added)

	stored, err := m.store.ListAssignments(day)
	if err != nil {
		return nil, err
	}
	return groupByPerson(stored), nil
}

// ForPerson materializes the day if needed and returns one person's assignments.
func (m *Materializer) ForPerson(date time.Time, personID int64) ([]models.Assignment, error) {
	if _, err := m.Ensure(date); err != nil {
		return nil, err
	}
	return m.store.ListAssignmentsForPerson(date.Format(constants.DateFormat), personID)
}

// Incomplete materializes the day if needed and returns what a person has left.
func (m *Materializer) Incomplete(date time.Time, personID int64) ([]models.Assignment, error) {
	if _, err := m.Ensure(date); err != nil {
		return nil, err
	}
	return m.store.ListIncompleteForPerson(date.Format(constants.DateFormat), personID)
}

// Complete marks an assignment done on behalf of actorID. The assignment must
// exist, belong to date and be owned by the actor.
func (m *Materializer) Complete(actorID, assignmentID int64, date time.Time) (models.Assignment, error) {
	a, err := m.store.GetAssignment(assignmentID)
	if err != nil {
		return models.Assignment{}, err
	}
	if day := date.Format(constants.DateFormat); a.Day != day {
		return models.Assignment{}, fmt.Errorf("assignment %d is for %s, not %s: %w", assignmentID, a.Day, day, apperrors.ErrNotFound)
	}
	if a.PersonID != actorID {
		return models.Assignment{}, fmt.Errorf("assignment %d belongs to person %d: %w", assignmentID, a.PersonID, apperrors.ErrNotOwner)
	}
	if err := m.store.CompleteAssignment(assignmentID); err != nil {
		return models.Assignment{}, err
	}
	logger.Info("Assignment completed", "id", assignmentID, "person", actorID, "day", a.Day)
	return m.store.GetAssignment(assignmentID)
}

// Roster returns the people assignments are generated for, in roster order.
func (m *Materializer) Roster() []models.Person {
	return m.roster
}

func (m *Materializer) Store() storage.Provider {
	return m.store
}

func groupByPerson(rows []models.Assignment) map[int64][]models.Assignment {
	grouped := make(map[int64][]models.Assignment)
	for _, a := range rows {
		grouped[a.PersonID] = append(grouped[a.PersonID], a)
	}
	return grouped
}
