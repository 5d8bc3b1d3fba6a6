package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/chorewheel/internal/logger"
)

var (
	// ErrConfig marks configuration problems that must stop the process at startup.
	ErrConfig = errors.New("configuration error")
	// ErrNotFound is returned for unknown assignment ids or ids that belong to another day.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner is returned when someone tries to complete another person's assignment.
	ErrNotOwner = errors.New("assignment belongs to someone else")
)

func Configf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}

// Format renders err for the terminal. Configuration errors get a pointer
// to doctor on a second line.
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := "Error: " + err.Error()
	if errors.Is(err, ErrConfig) {
		msg += "\nRun 'chorewheel doctor' to check the setup."
	}
	return msg
}

// Fatal logs err, prints it to stderr and exits with status 1. A nil error is
// ignored.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}
