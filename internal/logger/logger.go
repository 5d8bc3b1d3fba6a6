package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/chorewheel/internal/constants"
)

// Logger is nil until Init runs. The package helpers are no-ops until then,
// so library code can log unconditionally.
var Logger *log.Logger

var logFile string

type Config struct {
	Debug bool
	// Dir receives the logs/ subdirectory, normally the config directory.
	Dir string
}

func Init(cfg Config) error {
	dir := filepath.Join(cfg.Dir, constants.LogDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	logFile = filepath.Join(dir, constants.AppName+".log")

	rotated := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    constants.LogMaxSizeMB,
		MaxBackups: constants.LogMaxBackups,
		MaxAge:     constants.LogMaxAgeDays,
		Compress:   true,
	}

	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Prefix:          constants.AppName,
		Level:           log.InfoLevel,
	}
	var out io.Writer = rotated
	if cfg.Debug {
		opts.Level = log.DebugLevel
		opts.ReportCaller = true
		out = io.MultiWriter(os.Stderr, rotated)
	}

	Logger = log.NewWithOptions(out, opts)
	return nil
}

// File returns the active log file, or "" before Init.
func File() string {
	return logFile
}

func emit(level log.Level, msg string, keyvals []interface{}) {
	if Logger == nil {
		return
	}
	Logger.Log(level, msg, keyvals...)
}

func Debug(msg string, keyvals ...interface{}) { emit(log.DebugLevel, msg, keyvals) }

func Info(msg string, keyvals ...interface{}) { emit(log.InfoLevel, msg, keyvals) }

func Warn(msg string, keyvals ...interface{}) { emit(log.WarnLevel, msg, keyvals) }

func Error(msg string, keyvals ...interface{}) { emit(log.ErrorLevel, msg, keyvals) }

// Fatal logs at fatal level and exits with status 1, with or without Init.
func Fatal(msg string, keyvals ...interface{}) {
	emit(log.FatalLevel, msg, keyvals)
	if Logger == nil {
		fmt.Fprintln(os.Stderr, msg)
	}
	os.Exit(1)
}
