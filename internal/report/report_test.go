package report

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/julianstephens/chorewheel/internal/models"
)

func TestBucket(t *testing.T) {
	tests := []struct {
		completed, total int
		want             Grade
	}{
		{0, 0, GradeNone},
		{0, 5, GradeZero},
		{1, 3, GradeLow},
		{2, 5, GradeLow},
		{1, 2, GradeHalf},
		{3, 6, GradeHalf},
		{2, 3, GradeMost},
		{4, 5, GradeMost},
		{3, 3, GradeDone},
		{1, 1, GradeDone},
	}
	for _, tt := range tests {
		if got := Bucket(tt.completed, tt.total); got != tt.want {
			t.Errorf("Bucket(%d, %d) = %s, want %s", tt.completed, tt.total, got, tt.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	rows := []models.StatRow{
		{PersonID: 2, Name: "Anna", Day: "2024-01-06", Completed: 1, Total: 2},
		{PersonID: 2, Name: "Anna", Day: "2024-01-07", Completed: 2, Total: 2},
		{PersonID: 1, Name: "Boris", Day: "2024-01-06", Completed: 0, Total: 3},
	}
	got := Summarize(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].Name != "Anna" || got[0].Completed != 3 || got[0].Total != 4 || len(got[0].Days) != 2 {
		t.Errorf("Anna summary = %+v", got[0])
	}
	if got[0].Ratio() != 0.75 || got[0].Grade() != GradeMost {
		t.Errorf("Anna ratio/grade = %v/%s", got[0].Ratio(), got[0].Grade())
	}
	if got[1].Grade() != GradeZero {
		t.Errorf("Boris grade = %s", got[1].Grade())
	}
	if Summarize(nil) != nil {
		t.Error("Summarize(nil) should be empty")
	}
}

func TestPeriods(t *testing.T) {
	saturday := time.Date(2024, 1, 6, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name       string
		period     Period
		start, end string
	}{
		{"day", Day(saturday), "2024-01-06", "2024-01-06"},
		{"week", Week(saturday), "2024-01-01", "2024-01-07"},
		{"week from sunday", Week(time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)), "2024-01-01", "2024-01-07"},
		{"week from monday", Week(time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)), "2024-01-08", "2024-01-14"},
		{"month", Month(saturday), "2024-01-01", "2024-01-31"},
		{"leap february", Month(time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)), "2024-02-01", "2024-02-29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := tt.period.Range()
			if start != tt.start || end != tt.end {
				t.Errorf("Range() = %s..%s, want %s..%s", start, end, tt.start, tt.end)
			}
		})
	}

	if _, err := ParsePeriod("fortnight", saturday); err == nil {
		t.Error("expected error for unknown period")
	}
	p, err := ParsePeriod("month", saturday)
	if err != nil || p.Label != "January 2024" {
		t.Errorf("ParsePeriod(month) = %+v, %v", p, err)
	}
}

func TestFormatAssignments(t *testing.T) {
	if got := FormatAssignments(nil); got != "No tasks 🎉" {
		t.Errorf("empty FormatAssignments = %q", got)
	}

	assignments := []models.Assignment{
		{ID: 3, Room: "Kitchen", Level: models.LevelRegular, Description: "Mop"},
		{ID: 1, Room: "Kitchen", Level: models.LevelDaily, Description: "Wipe", Completed: true},
		{ID: 2, Room: "Bathroom", Level: models.LevelDaily, Description: "Rinse"},
	}
	want := strings.Join([]string{
		"🏠 Bathroom",
		"  • daily minimum",
		"    - ⬜️ #2 Rinse",
		"🏠 Kitchen",
		"  • daily minimum",
		"    - ✅ #1 Wipe",
		"  • regular cleaning",
		"    - ⬜️ #3 Mop",
	}, "\n")
	if diff := cmp.Diff(want, FormatAssignments(assignments)); diff != "" {
		t.Errorf("FormatAssignments mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatSummaries(t *testing.T) {
	assignments := []models.Assignment{{Completed: true}, {}, {}}
	if got := FormatPersonSummary(assignments); got != "1/3 tasks done" {
		t.Errorf("FormatPersonSummary = %q", got)
	}
	if got := FormatPersonSummary(nil); got != "No tasks" {
		t.Errorf("FormatPersonSummary(nil) = %q", got)
	}

	day := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	roster := []models.Person{{ID: 1, Name: "Anna"}, {ID: 2, Name: "Boris"}}
	group := FormatGroupSummary(day, roster, map[int64][]models.Assignment{1: assignments})
	want := "📅 Tasks for 06.01.2024\n• Anna: 1/3 tasks done\n• Boris: No tasks"
	if group != want {
		t.Errorf("FormatGroupSummary = %q, want %q", group, want)
	}

	if got := FormatLevelsLine([]models.Level{models.LevelRegular, models.LevelDaily}); got != "daily minimum, regular cleaning" {
		t.Errorf("FormatLevelsLine = %q", got)
	}
}

func TestFormatStats(t *testing.T) {
	if got := FormatStats("week of 2024-01-01", nil); got != "📊 Stats for week of 2024-01-01\nNo data yet" {
		t.Errorf("empty FormatStats = %q", got)
	}
	got := FormatStats("today", []PersonSummary{
		{Name: "Anna", Completed: 2, Total: 4},
		{Name: "Boris", Completed: 3, Total: 3},
	})
	want := "📊 Stats for today\n• Anna: 2/4 🟡\n• Boris: 3/3 ✅"
	if got != want {
		t.Errorf("FormatStats = %q, want %q", got, want)
	}
}
