package models

import (
	"fmt"
	"strings"
)

// Catalog maps room -> level -> ordered task descriptions. Rooms keep the order in
// which they were added, which is the order the rotation distributes them in.
type Catalog struct {
	rooms []string
	tasks map[string]map[Level][]string
}

func NewCatalog() *Catalog {
	return &Catalog{tasks: make(map[string]map[Level][]string)}
}

// AddRoom registers a room without any levels. Adding a known room is a no-op.
func (c *Catalog) AddRoom(room string) {
	if c.tasks == nil {
		c.tasks = make(map[string]map[Level][]string)
	}
	if _, ok := c.tasks[room]; ok {
		return
	}
	c.tasks[room] = make(map[Level][]string)
	c.rooms = append(c.rooms, room)
}

// Set stores the task list for a room and level, registering the room on first use.
func (c *Catalog) Set(room string, level Level, descriptions []string) {
	c.AddRoom(room)
	c.tasks[room][level] = append([]string(nil), descriptions...)
}

// Rooms returns the room set in catalog order.
func (c *Catalog) Rooms() []string {
	return append([]string(nil), c.rooms...)
}

func (c *Catalog) HasRoom(room string) bool {
	_, ok := c.tasks[room]
	return ok
}

// Tasks returns the descriptions for a room and level. A missing entry yields nil.
func (c *Catalog) Tasks(room string, level Level) []string {
	return c.tasks[room][level]
}

// HasLevel reports whether the room defines the level at all (an empty list counts).
func (c *Catalog) HasLevel(room string, level Level) bool {
	_, ok := c.tasks[room][level]
	return ok
}

// RequireLevels fails when any room lacks one of the given levels.
func (c *Catalog) RequireLevels(levels ...Level) error {
	if len(c.rooms) == 0 {
		return fmt.Errorf("task catalog has no rooms")
	}
	for _, level := range levels {
		var missing []string
		for _, room := range c.rooms {
			if !c.HasLevel(room, level) {
				missing = append(missing, room)
			}
		}
		if len(missing) > 0 {
			return fmt.Errorf("level %q missing for rooms: %s", level, strings.Join(missing, ", "))
		}
	}
	return nil
}
