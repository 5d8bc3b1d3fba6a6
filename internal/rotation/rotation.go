// Package rotation distributes the room set among the roster for a given week.
//
// Two interchangeable policies are provided: RoundRobin, which shifts every room
// one person along each week, and ClusteredPair, which hands fixed room clusters
// to the first people on the roster and alternates them by week parity. Both
// finish with the same residual round-robin step, so every room always ends up
// with exactly one person.
package rotation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/chorewheel/internal/constants"
	apperrors "github.com/julianstephens/chorewheel/internal/errors"
	"github.com/julianstephens/chorewheel/internal/models"
)

// Assignment maps person id to the rooms that person owes, in allocation order.
type Assignment map[int64][]string

// Policy decides which rooms go to which person. Implementations must be pure.
type Policy interface {
	Name() string
	Assign(roster []models.Person, rooms []string, weekIndex int, weekday time.Weekday) Assignment
}

// RotateRooms validates the inputs and applies the policy. The result has an entry
// for every roster member, and every room appears in exactly one list.
func RotateRooms(roster []models.Person, rooms []string, weekIndex int, weekday time.Weekday, policy Policy) (Assignment, error) {
	if len(roster) == 0 {
		return nil, apperrors.Configf("roster cannot be empty")
	}
	seen := make(map[int64]bool, len(roster))
	for _, p := range roster {
		if seen[p.ID] {
			return nil, apperrors.Configf("duplicate person id %d in roster", p.ID)
		}
		seen[p.ID] = true
	}
	if weekIndex < 0 {
		weekIndex = 0
	}
	if policy == nil {
		policy = RoundRobin{}
	}
	return policy.Assign(roster, uniqueRooms(rooms), weekIndex, weekday), nil
}

// New returns the policy registered under name.
func New(name string, plan ClusterPlan, flipOnWeekday bool) (Policy, error) {
	switch name {
	case "", constants.PolicyRoundRobin:
		return RoundRobin{}, nil
	case constants.PolicyClusteredPair:
		return ClusteredPair{Plan: plan, FlipOnWeekday: flipOnWeekday}, nil
	default:
		return nil, apperrors.Configf("unknown rotation policy %q", name)
	}
}

// RoundRobin gives room i to roster index (i + weekIndex) mod len(roster).
type RoundRobin struct{}

func (RoundRobin) Name() string { return constants.PolicyRoundRobin }

func (RoundRobin) Assign(roster []models.Person, rooms []string, weekIndex int, _ time.Weekday) Assignment {
	result := emptyAssignment(roster)
	distribute(result, roster, rooms, weekIndex)
	return result
}

func emptyAssignment(roster []models.Person) Assignment {
	result := make(Assignment, len(roster))
	for _, p := range roster {
		result[p.ID] = []string{}
	}
	return result
}

// distribute hands out rooms round-robin, starting at the week offset.
func distribute(result Assignment, roster []models.Person, rooms []string, weekIndex int) {
	n := len(roster)
	for i, room := range rooms {
		p := roster[(i+weekIndex)%n]
		result[p.ID] = append(result[p.ID], room)
	}
}

func uniqueRooms(rooms []string) []string {
	seen := make(map[string]bool, len(rooms))
	out := make([]string, 0, len(rooms))
	for _, room := range rooms {
		if seen[room] {
			continue
		}
		seen[room] = true
		out = append(out, room)
	}
	return out
}

// Describe renders an assignment in roster order, for logs and the CLI.
func Describe(roster []models.Person, a Assignment) string {
	parts := make([]string, 0, len(roster))
	for _, p := range roster {
		parts = append(parts, fmt.Sprintf("%s: %s", p.Name, strings.Join(a[p.ID], ", ")))
	}
	return strings.Join(parts, "; ")
}
