package backups

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/chorewheel/internal/cli/clitest"
)

func TestBackupCreateAndList(t *testing.T) {
	ctx, out := clitest.NewContext(t)

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "No backups found.") {
		t.Errorf("empty list output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "✓ Backup created: chorewheel-") {
		t.Errorf("create output = %q", out.String())
	}

	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "Available backups (1 total, keeping most recent 14)") {
		t.Errorf("list output = %q", out.String())
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, out := clitest.NewContext(t)
	if _, err := ctx.Materializer.Ensure(clitest.Tuesday); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	name := strings.TrimSpace(strings.TrimPrefix(out.String(), "✓ Backup created: "))

	if err := ctx.Store.CompleteAssignment(1); err != nil {
		t.Fatal(err)
	}

	// Declining leaves everything as is
	ctx.In = strings.NewReader("n\n")
	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
		t.Fatalf("cancelled restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Restore cancelled.") {
		t.Errorf("output = %q", out.String())
	}

	ctx.In = strings.NewReader("yes\n")
	out.Reset()
	if err := (&BackupRestoreCmd{BackupFile: name}).Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}
	if !strings.Contains(out.String(), "✓ Database restored successfully!") {
		t.Errorf("output = %q", out.String())
	}

	if err := ctx.Store.Load(); err != nil {
		t.Fatalf("failed to reload store: %v", err)
	}
	a, err := ctx.Store.GetAssignment(1)
	if err != nil {
		t.Fatal(err)
	}
	if a.Completed {
		t.Error("restored database should predate the completion")
	}
}

func TestBackupRestoreMissingFile(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	err := (&BackupRestoreCmd{BackupFile: "nope.db", Yes: true}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "backup file not found") {
		t.Errorf("error = %v", err)
	}
}

func TestBackupsRequireSQLite(t *testing.T) {
	ctx, _ := clitest.NewContext(t)
	ctx.App.Config.Database.Path = "postgres://chores@localhost/chores"

	if err := (&BackupCreateCmd{}).Run(ctx); err != errPostgres {
		t.Errorf("error = %v, want %v", err, errPostgres)
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := t.TempDir()
	if _, err := resolveBackupPath(filepath.Join(dir, "missing.db"), dir); err == nil {
		t.Error("expected error for missing absolute path")
	}
}
