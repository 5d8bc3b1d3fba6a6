package chores

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/chorewheel/internal/backup"
	"github.com/julianstephens/chorewheel/internal/cli/clitest"
	"github.com/julianstephens/chorewheel/internal/models"
)

const tuesday = "2024-01-02"

func TestTodayCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)

	cmd := &TodayCmd{Date: tuesday}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("today failed: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"📅 Tasks for 02.01.2024",
		"• Anna: 0/2 tasks done",
		"• Boris: 0/1 tasks done",
		"👤 Anna\n🏠 Kitchen\n  • daily minimum\n    - ⬜️ #1 Wipe\n    - ⬜️ #2 Dishes",
		"👤 Boris\n🏠 Bathroom",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).List()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Errorf("expected an automatic backup before the first materialization, got %d", len(backups))
	}

	// The day exists now, so no second backup.
	out.Reset()
	if err := (&TodayCmd{Date: tuesday, Person: "boris"}).Run(ctx); err != nil {
		t.Fatalf("today --person failed: %v", err)
	}
	if strings.Contains(out.String(), "Anna") || !strings.Contains(out.String(), "Rinse") {
		t.Errorf("person filter output:\n%s", out.String())
	}
	backups, _ = backup.NewManager(ctx.Store.GetConfigPath()).List()
	if len(backups) != 1 {
		t.Errorf("expected no further backup, got %d", len(backups))
	}
}

func TestTodayCmdUnknownPerson(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	if err := (&TodayCmd{Date: tuesday, Person: "Carla"}).Run(ctx); err == nil {
		t.Error("expected error for a person outside the roster")
	}
}

func TestDoneCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	if _, err := ctx.Materializer.Ensure(clitest.Tuesday); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		cmd     DoneCmd
		wantErr string
	}{
		{"owner by name", DoneCmd{ID: 1, As: "Anna", Date: tuesday}, ""},
		{"again is fine", DoneCmd{ID: 1, As: "1", Date: tuesday}, ""},
		{"someone else's task", DoneCmd{ID: 3, As: "Anna", Date: tuesday}, "not yours"},
		{"unknown id", DoneCmd{ID: 99, As: "Anna", Date: tuesday}, "no task #99"},
		{"wrong day", DoneCmd{ID: 1, As: "Anna", Date: "2024-01-03"}, "no task #1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Run(ctx)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if !strings.Contains(out.String(), "✓ Done: Wipe (Kitchen, daily minimum)") {
		t.Errorf("output = %q", out.String())
	}
	a, err := ctx.Store.GetAssignment(3)
	if err != nil || a.Completed {
		t.Errorf("Boris' task must stay open: %+v, %v", a, err)
	}
}

func TestDoneCmdPicker(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	if _, err := ctx.Materializer.Ensure(clitest.Tuesday); err != nil {
		t.Fatal(err)
	}

	orig := pickPerson
	defer func() { pickPerson = orig }()

	pickPerson = func(roster []models.Person) (models.Person, error) {
		return roster[1], nil
	}
	if err := (&DoneCmd{ID: 3, Date: tuesday}).Run(ctx); err != nil {
		t.Fatalf("done with picker failed: %v", err)
	}

	pickPerson = func([]models.Person) (models.Person, error) {
		return models.Person{}, errors.New("user aborted")
	}
	if err := (&DoneCmd{ID: 3, Date: tuesday}).Run(ctx); err == nil {
		t.Error("expected aborted picker to fail")
	}
}

func TestRemindCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	if _, err := ctx.Materializer.Ensure(clitest.Tuesday); err != nil {
		t.Fatal(err)
	}
	for _, id := range []int64{1, 2} {
		if err := ctx.Store.CompleteAssignment(id); err != nil {
			t.Fatal(err)
		}
	}

	if err := (&RemindCmd{Date: tuesday}).Run(ctx); err != nil {
		t.Fatalf("remind failed: %v", err)
	}
	got := out.String()
	if strings.Contains(got, "Anna") || !strings.Contains(got, "👤 Boris\nReminder! Unfinished tasks:") {
		t.Errorf("remind output:\n%s", got)
	}

	if err := ctx.Store.CompleteAssignment(3); err != nil {
		t.Fatal(err)
	}
	out.Reset()
	if err := (&RemindCmd{Date: tuesday}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out.String()) != "Everything is done 🎉" {
		t.Errorf("remind output = %q", out.String())
	}
}

func TestReportCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	if _, err := ctx.Materializer.Ensure(clitest.Tuesday); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Store.CompleteAssignment(1); err != nil {
		t.Fatal(err)
	}

	if err := (&ReportCmd{Period: "day", Date: tuesday}).Run(ctx); err != nil {
		t.Fatalf("report failed: %v", err)
	}
	want := "📊 Stats for 2024-01-02\n• Anna: 1/2 🟡\n• Boris: 0/1 🔴\n"
	if out.String() != want {
		t.Errorf("report = %q, want %q", out.String(), want)
	}

	out.Reset()
	if err := (&ReportCmd{Period: "week", Date: tuesday, As: "Anna"}).Run(ctx); err != nil {
		t.Fatalf("admin week report failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "📊 Stats for week of 2024-01-01") {
		t.Errorf("week report = %q", out.String())
	}

	if err := (&ReportCmd{Period: "month", Date: tuesday, As: "Boris"}).Run(ctx); err == nil {
		t.Error("expected non-admin month report to be refused")
	}
	if err := (&ReportCmd{Period: "day", Date: tuesday, As: "Boris"}).Run(ctx); err != nil {
		t.Errorf("day report is open to everyone: %v", err)
	}
}

func TestLevelsAndRotationCmd(t *testing.T) {
	ctx, out := clitest.NewContext(t)

	if err := (&LevelsCmd{Date: "2024-01-03"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "📅 2024-01-03 (week 0): daily minimum, light cleaning\n" {
		t.Errorf("levels = %q", got)
	}

	out.Reset()
	if err := (&RotationCmd{Date: "2024-01-08"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "🔄 2024-01-08 (week 1)\nAnna: Bathroom; Boris: Kitchen\n" {
		t.Errorf("rotation = %q", got)
	}

	if err := (&LevelsCmd{Date: "03/01/2024"}).Run(ctx); err == nil {
		t.Error("expected invalid date to fail")
	}
}
