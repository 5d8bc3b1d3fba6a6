package rotation

import (
	"time"

	"github.com/julianstephens/chorewheel/internal/constants"
	"github.com/julianstephens/chorewheel/internal/models"
)

// ClusterPlan groups rooms into fixed clusters, one list per week parity.
// Cluster k goes to the k-th person on the roster.
type ClusterPlan struct {
	Odd  [][]string `yaml:"odd"`
	Even [][]string `yaml:"even"`
}

func (p ClusterPlan) forWeek(weekNumber int) [][]string {
	if weekNumber%2 == 1 {
		return p.Odd
	}
	return p.Even
}

// ClusteredPair alternates fixed room clusters between the first people on the
// roster by week parity. With FlipOnWeekday set, the clusters additionally move
// one person along on even ISO weekdays (Tuesday, Thursday, Saturday).
type ClusteredPair struct {
	Plan          ClusterPlan
	FlipOnWeekday bool
}

func (ClusteredPair) Name() string { return constants.PolicyClusteredPair }

func (c ClusteredPair) Assign(roster []models.Person, rooms []string, weekIndex int, weekday time.Weekday) Assignment {
	result := emptyAssignment(roster)
	covered := make(map[string]bool)

	if clusters, ok := c.primary(roster, rooms, weekIndex); ok {
		shift := 0
		if c.FlipOnWeekday && isoWeekday(weekday)%2 == 0 {
			shift = 1
		}
		for k, cluster := range clusters {
			p := roster[(k+shift)%len(clusters)]
			for _, room := range cluster {
				result[p.ID] = append(result[p.ID], room)
				covered[room] = true
			}
		}
	}

	var residual []string
	for _, room := range rooms {
		if !covered[room] {
			residual = append(residual, room)
		}
	}
	distribute(result, roster, residual, weekIndex)
	return result
}

// primary returns the clusters to hand out this week, truncated to the roster size.
// It reports false when the plan cannot be used as-is: fewer than two people, no
// clusters for this parity, a room absent from the live set, or a room repeated.
func (c ClusteredPair) primary(roster []models.Person, rooms []string, weekIndex int) ([][]string, bool) {
	if len(roster) < 2 {
		return nil, false
	}
	clusters := c.Plan.forWeek(weekIndex + 1)
	if len(clusters) == 0 {
		return nil, false
	}

	live := make(map[string]bool, len(rooms))
	for _, room := range rooms {
		live[room] = true
	}
	used := make(map[string]bool)
	for _, cluster := range clusters {
		for _, room := range cluster {
			if !live[room] || used[room] {
				return nil, false
			}
			used[room] = true
		}
	}

	if len(clusters) > len(roster) {
		clusters = clusters[:len(roster)]
	}
	return clusters, true
}

// isoWeekday maps Monday..Sunday to 1..7.
func isoWeekday(d time.Weekday) int {
	if d == time.Sunday {
		return 7
	}
	return int(d)
}
