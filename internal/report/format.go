package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/chorewheel/internal/models"
)

const displayDate = "02.01.2006"

// FormatAssignments renders assignments grouped by room, then by level.
func FormatAssignments(assignments []models.Assignment) string {
	if len(assignments) == 0 {
		return "No tasks 🎉"
	}

	grouped := make(map[string]map[models.Level][]models.Assignment)
	for _, a := range assignments {
		if grouped[a.Room] == nil {
			grouped[a.Room] = make(map[models.Level][]models.Assignment)
		}
		grouped[a.Room][a.Level] = append(grouped[a.Room][a.Level], a)
	}

	rooms := make([]string, 0, len(grouped))
	for room := range grouped {
		rooms = append(rooms, room)
	}
	sort.Strings(rooms)

	var b strings.Builder
	for i, room := range rooms {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "🏠 %s", room)
		for _, level := range sortedLevels(grouped[room]) {
			fmt.Fprintf(&b, "\n  • %s", level.Label())
			for _, a := range grouped[room][level] {
				fmt.Fprintf(&b, "\n    - %s #%d %s", mark(a), a.ID, a.Description)
			}
		}
	}
	return b.String()
}

func mark(a models.Assignment) string {
	if a.Completed {
		return "✅"
	}
	return "⬜️"
}

func sortedLevels(m map[models.Level][]models.Assignment) []models.Level {
	levels := make([]models.Level, 0, len(m))
	for l := range m {
		levels = append(levels, l)
	}
	sort.Slice(levels, func(i, j int) bool {
		ri, rj := levels[i].Rank(), levels[j].Rank()
		if ri != rj {
			return ri < rj
		}
		return levels[i] < levels[j]
	})
	return levels
}

// FormatPersonSummary is the one-line "done/total" summary for a person's day.
func FormatPersonSummary(assignments []models.Assignment) string {
	if len(assignments) == 0 {
		return "No tasks"
	}
	done := 0
	for _, a := range assignments {
		if a.Completed {
			done++
		}
	}
	return fmt.Sprintf("%d/%d tasks done", done, len(assignments))
}

// FormatPersonal is the personal digest for one day.
func FormatPersonal(day time.Time, assignments []models.Assignment) string {
	return fmt.Sprintf("🧽 Tasks for %s\n%s", day.Format(displayDate), FormatAssignments(assignments))
}

// FormatReminder lists what is still open in the evening.
func FormatReminder(incomplete []models.Assignment) string {
	return "Reminder! Unfinished tasks:\n" + FormatAssignments(incomplete)
}

// FormatGroupSummary lists every roster member's progress for the day.
func FormatGroupSummary(day time.Time, roster []models.Person, byPerson map[int64][]models.Assignment) string {
	lines := []string{fmt.Sprintf("📅 Tasks for %s", day.Format(displayDate))}
	for _, p := range roster {
		lines = append(lines, fmt.Sprintf("• %s: %s", p.Name, FormatPersonSummary(byPerson[p.ID])))
	}
	return strings.Join(lines, "\n")
}

// FormatLevelsLine names the due levels, lightest first.
func FormatLevelsLine(levels []models.Level) string {
	sorted := append([]models.Level(nil), levels...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Rank() < sorted[j].Rank() })
	labels := make([]string, len(sorted))
	for i, l := range sorted {
		labels[i] = l.Label()
	}
	return strings.Join(labels, ", ")
}

// FormatStats renders a period report with one badge per person.
func FormatStats(label string, summaries []PersonSummary) string {
	lines := []string{"📊 Stats for " + label}
	if len(summaries) == 0 {
		lines = append(lines, "No data yet")
	}
	for _, s := range summaries {
		lines = append(lines, fmt.Sprintf("• %s: %d/%d %s", s.Name, s.Completed, s.Total, s.Grade().Badge()))
	}
	return strings.Join(lines, "\n")
}
