package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/chorewheel/internal/constants"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://chores@localhost:5432/chores?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if got != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", got, connStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("  "); err == nil {
		t.Error("SetConnectionString with blank input should fail")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://chores@localhost/chores"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want ErrNotFound", err)
	}
	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}

func TestResolve(t *testing.T) {
	oldGetenv := getenv
	defer func() { getenv = oldGetenv }()

	env := map[string]string{}
	getenv = func(key string) string { return env[key] }

	gokeyring.MockInit()
	_ = DeleteConnectionString()

	configured := "postgres://chores@db/chores"

	got, source, err := Resolve(configured)
	if err != nil || got != configured || source != SourceConfig {
		t.Errorf("Resolve() without env or keyring = %q, %s, %v", got, source, err)
	}

	if _, _, err := Resolve(""); err == nil {
		t.Error("Resolve(\"\") with nothing stored should fail")
	}

	if err := SetConnectionString("postgres://chores:secret@db/chores"); err != nil {
		t.Fatal(err)
	}
	got, source, err = Resolve(configured)
	if err != nil || source != SourceKeyring || got != "postgres://chores:secret@db/chores" {
		t.Errorf("Resolve() with keyring = %q, %s, %v", got, source, err)
	}

	env[constants.EnvDBConnection] = "postgres://env@db/chores"
	got, source, err = Resolve(configured)
	if err != nil || source != SourceEnv || got != "postgres://env@db/chores" {
		t.Errorf("Resolve() with env = %q, %s, %v", got, source, err)
	}
}
