package models

import "time"

// Person is a roster member. ID is an opaque, stable numeric identity.
type Person struct {
	ID   int64  `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Assignment is one (day, person, room, level, task) obligation.
type Assignment struct {
	ID          int64      `json:"id"`
	Day         string     `json:"day"` // YYYY-MM-DD format
	PersonID    int64      `json:"person_id"`
	Room        string     `json:"room"`
	Level       Level      `json:"level"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// StatRow aggregates one person's assignments for one day.
type StatRow struct {
	PersonID  int64  `json:"person_id"`
	Name      string `json:"name"`
	Day       string `json:"day"` // YYYY-MM-DD format
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// NotificationRef records where a digest for a person was delivered, so a boundary
// layer can find and refresh it later.
type NotificationRef struct {
	Day       string    `json:"day"`
	PersonID  int64     `json:"person_id"`
	Kind      string    `json:"kind"`
	Location  string    `json:"location"`
	MessageID string    `json:"message_id"`
	SentAt    time.Time `json:"sent_at"`
}
