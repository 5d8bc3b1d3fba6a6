package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

const assignmentColumns = `id, day, person_id, room, level, description, completed, completed_at`

func (s *Store) AddAssignment(day string, personID int64, room string, level models.Level, description string) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var id int64
	err = tx.QueryRow(`
INSERT INTO assignments (day, person_id, room, level, description)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (day, person_id, room, level, description) DO NOTHING
RETURNING id`, day, personID, room, string(level), description).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		// Conflict: the row already exists.
		err = tx.QueryRow(`
SELECT id FROM assignments
WHERE day = $1 AND person_id = $2 AND room = $3 AND level = $4 AND description = $5`,
			day, personID, room, string(level), description).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to add assignment: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit assignment: %w", err)
	}
	return id, nil
}

func (s *Store) AddDay(day string, rows []models.Assignment) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
INSERT INTO assignments (day, person_id, room, level, description)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (day, person_id, room, level, description) DO NOTHING`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, a := range rows {
		res, err := stmt.Exec(day, a.PersonID, a.Room, string(a.Level), a.Description)
		if err != nil {
			return 0, fmt.Errorf("failed to insert assignment for person %d: %w", a.PersonID, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			added += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit %s: %w", day, err)
	}
	return added, nil
}

func (s *Store) ListAssignments(day string) ([]models.Assignment, error) {
	return s.queryAssignments(`
SELECT `+assignmentColumns+` FROM assignments
WHERE day = $1
ORDER BY person_id, room, level, id`, day)
}

func (s *Store) ListAssignmentsForPerson(day string, personID int64) ([]models.Assignment, error) {
	return s.queryAssignments(`
SELECT `+assignmentColumns+` FROM assignments
WHERE day = $1 AND person_id = $2
ORDER BY room, level, id`, day, personID)
}

func (s *Store) ListIncompleteForPerson(day string, personID int64) ([]models.Assignment, error) {
	return s.queryAssignments(`
SELECT `+assignmentColumns+` FROM assignments
WHERE day = $1 AND person_id = $2 AND NOT completed
ORDER BY room, level, id`, day, personID)
}

func (s *Store) GetAssignment(id int64) (models.Assignment, error) {
	row := s.db.QueryRow(`SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id)
	a, err := scanAssignment(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Assignment{}, fmt.Errorf("assignment %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return models.Assignment{}, fmt.Errorf("failed to get assignment %d: %w", id, err)
	}
	return a, nil
}

func (s *Store) CompleteAssignment(id int64) error {
	res, err := s.db.Exec(`
UPDATE assignments SET completed = TRUE, completed_at = $1
WHERE id = $2 AND NOT completed`, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to complete assignment %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to complete assignment %d: %w", id, err)
	}
	if n > 0 {
		return nil
	}

	var exists bool
	err = s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM assignments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check assignment %d: %w", id, err)
	}
	if !exists {
		return fmt.Errorf("assignment %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

func (s *Store) Stats(start, end string) ([]models.StatRow, error) {
	rows, err := s.db.Query(`
SELECT a.person_id, COALESCE(p.name, a.person_id::text), a.day,
       COUNT(*) FILTER (WHERE a.completed), COUNT(*)
FROM assignments a
LEFT JOIN people p ON p.id = a.person_id
WHERE a.day >= $1 AND a.day <= $2
GROUP BY a.person_id, p.name, a.day
ORDER BY 2, a.day`, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	var stats []models.StatRow
	for rows.Next() {
		var r models.StatRow
		if err := rows.Scan(&r.PersonID, &r.Name, &r.Day, &r.Completed, &r.Total); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats = append(stats, r)
	}
	return stats, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row scanner) (models.Assignment, error) {
	var a models.Assignment
	var level string
	var completedAt sql.NullTime

	if err := row.Scan(&a.ID, &a.Day, &a.PersonID, &a.Room, &level, &a.Description, &a.Completed, &completedAt); err != nil {
		return models.Assignment{}, err
	}
	a.Level = models.Level(level)
	if completedAt.Valid {
		ts := completedAt.Time.UTC()
		a.CompletedAt = &ts
	}
	return a, nil
}

func (s *Store) queryAssignments(query string, args ...any) ([]models.Assignment, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var out []models.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
