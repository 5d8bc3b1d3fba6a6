package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

func (s *Store) SaveNotification(ref models.NotificationRef) error {
	_, err := s.db.Exec(`
		INSERT INTO notifications (day, person_id, kind, location, message_id, sent_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(day, person_id, kind) DO UPDATE SET
			location = excluded.location,
			message_id = excluded.message_id,
			sent_at = excluded.sent_at`,
		ref.Day, ref.PersonID, ref.Kind, ref.Location, ref.MessageID, ref.SentAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (s *Store) GetNotification(day string, personID int64, kind string) (models.NotificationRef, error) {
	var ref models.NotificationRef
	var sentAt string
	err := s.db.QueryRow(`
		SELECT day, person_id, kind, location, message_id, sent_at
		FROM notifications WHERE day = ? AND person_id = ? AND kind = ?`,
		day, personID, kind).Scan(&ref.Day, &ref.PersonID, &ref.Kind, &ref.Location, &ref.MessageID, &sentAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotificationRef{}, fmt.Errorf("%s notification for %d on %s: %w", kind, personID, day, apperrors.ErrNotFound)
	}
	if err != nil {
		return models.NotificationRef{}, fmt.Errorf("failed to get notification: %w", err)
	}
	ts, err := time.Parse(time.RFC3339, sentAt)
	if err != nil {
		return models.NotificationRef{}, fmt.Errorf("invalid sent_at %q: %w", sentAt, err)
	}
	ref.SentAt = ts
	return ref, nil
}
