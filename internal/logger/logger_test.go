package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readLog(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(File())
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	return string(data)
}

func TestInitWritesToLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")

	if err := Init(Config{Dir: dir}); err != nil {
		t.Fatalf("Init() error: %v", err)
	}
	if want := filepath.Join(dir, "logs", "chorewheel.log"); File() != want {
		t.Errorf("File() = %q, want %q", File(), want)
	}

	Info("materialized day", "day", "2024-01-06", "rows", 2)
	Warn("automatic backup failed", "error", "disk full")
	Debug("dropped below info level")

	content := readLog(t)
	for _, want := range []string{"materialized day", "day=2024-01-06", "rows=2", "automatic backup failed"} {
		if !strings.Contains(content, want) {
			t.Errorf("log file missing %q: %q", want, content)
		}
	}
	if strings.Contains(content, "dropped below info level") {
		t.Errorf("debug entry should be filtered outside debug mode: %q", content)
	}
}

func TestInitDebugMode(t *testing.T) {
	if err := Init(Config{Debug: true, Dir: t.TempDir()}); err != nil {
		t.Fatalf("Init() in debug mode error: %v", err)
	}
	Debug("rotation computed", "week", 3)

	if content := readLog(t); !strings.Contains(content, "rotation computed") {
		t.Errorf("debug entry missing in debug mode: %q", content)
	}
}

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil

	// No panics
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}
