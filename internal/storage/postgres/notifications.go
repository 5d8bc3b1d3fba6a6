package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

func (s *Store) SaveNotification(ref models.NotificationRef) error {
	_, err := s.db.Exec(`
INSERT INTO notifications (day, person_id, kind, location, message_id, sent_at)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (day, person_id, kind) DO UPDATE SET
    location = EXCLUDED.location,
    message_id = EXCLUDED.message_id,
    sent_at = EXCLUDED.sent_at`,
		ref.Day, ref.PersonID, ref.Kind, ref.Location, ref.MessageID, ref.SentAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save notification: %w", err)
	}
	return nil
}

func (s *Store) GetNotification(day string, personID int64, kind string) (models.NotificationRef, error) {
	var ref models.NotificationRef
	err := s.db.QueryRow(`
SELECT day, person_id, kind, location, message_id, sent_at
FROM notifications WHERE day = $1 AND person_id = $2 AND kind = $3`,
		day, personID, kind).Scan(&ref.Day, &ref.PersonID, &ref.Kind, &ref.Location, &ref.MessageID, &ref.SentAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NotificationRef{}, fmt.Errorf("%s notification for %d on %s: %w", kind, personID, day, apperrors.ErrNotFound)
	}
	if err != nil {
		return models.NotificationRef{}, fmt.Errorf("failed to get notification: %w", err)
	}
	ref.SentAt = ref.SentAt.UTC()
	return ref, nil
}
