package sqlite

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

	if _, err := tx.Exec(`
		INSERT OR IGNORE INTO assignments (day, person_id, room, level, description)
		VALUES (?, ?, ?, ?, ?)`,
		day, personID, room, string(level), description); err != nil {
		return 0, fmt.Errorf("failed to insert assignment: %w", err)
	}

	var id int64
	if err := tx.QueryRow(`
		SELECT id FROM assignments
		WHERE day = ? AND person_id = ? AND room = ? AND level = ? AND description = ?`,
		day, personID, room, string(level), description).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to read assignment id: %w", err)
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
		INSERT OR IGNORE INTO assignments (day, person_id, room, level, description)
		VALUES (?, ?, ?, ?, ?)`)
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
		WHERE day = ?
		ORDER BY person_id, room, level, id`, day)
}

func (s *Store) ListAssignmentsForPerson(day string, personID int64) ([]models.Assignment, error) {
	return s.queryAssignments(`
		SELECT `+assignmentColumns+` FROM assignments
		WHERE day = ? AND person_id = ?
		ORDER BY room, level, id`, day, personID)
}

func (s *Store) ListIncompleteForPerson(day string, personID int64) ([]models.Assignment, error) {
	return s.queryAssignments(`
		SELECT `+assignmentColumns+` FROM assignments
		WHERE day = ? AND person_id = ? AND completed = 0
		ORDER BY room, level, id`, day, personID)
}

func (s *Store) GetAssignment(id int64) (models.Assignment, error) {
	row := s.db.QueryRow(`SELECT `+assignmentColumns+` FROM assignments WHERE id = ?`, id)
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
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(`
		UPDATE assignments SET completed = 1, completed_at = ?
		WHERE id = ? AND completed = 0`, now, id)
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

	// Nothing changed: either already completed or missing.
	var exists int
	err = s.db.QueryRow(`SELECT 1 FROM assignments WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("assignment %d: %w", id, apperrors.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check assignment %d: %w", id, err)
	}
	return nil
}

func (s *Store) Stats(start, end string) ([]models.StatRow, error) {
	rows, err := s.db.Query(`
		SELECT a.person_id, COALESCE(p.name, CAST(a.person_id AS TEXT)) AS name, a.day,
		       SUM(CASE WHEN a.completed = 1 THEN 1 ELSE 0 END), COUNT(*)
		FROM assignments a
		LEFT JOIN people p ON p.id = a.person_id
		WHERE a.day >= ? AND a.day <= ?
		GROUP BY a.person_id, name, a.day
		ORDER BY name, a.day`, start, end)
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
	var completed int
	var completedAt sql.NullString

	if err := row.Scan(&a.ID, &a.Day, &a.PersonID, &a.Room, &level, &a.Description, &completed, &completedAt); err != nil {
		return models.Assignment{}, err
	}
	a.Level = models.Level(level)
	a.Completed = completed != 0
	if completedAt.Valid {
		ts, err := time.Parse(time.RFC3339, completedAt.String)
		if err != nil {
			return models.Assignment{}, fmt.Errorf("invalid completed_at %q: %w", completedAt.String, err)
		}
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
