// Package logging writes structured logs to a per-day file under the
// application home directory. The CLI owns stdout for reports, so nothing
// here ever writes to the terminal.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const levelEnv = "GHOSTBRIEF_LOG_LEVEL"

var (
	// Logger is the process-wide logger. Nil until Init succeeds; the
	// package-level helpers treat nil as a no-op so library code can log
	// unconditionally.
	Logger *log.Logger

	logFile *os.File
)

// Init opens today's log file and builds the global logger. The level
// defaults to debug and can be overridden with GHOSTBRIEF_LOG_LEVEL
// (debug, info, warn, error).
func Init() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	logDir := filepath.Join(homeDir, ".ghostbrief", "logs")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	logPath := filepath.Join(logDir, fmt.Sprintf("ghostbrief-%s.log", time.Now().Format("2006-01-02")))
	logFile, err = os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	Logger = log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           levelFromEnv(),
	})

	Logger.Info("ghostbrief started", "version", "0.1.0")
	return nil
}

func levelFromEnv() log.Level {
	switch os.Getenv(levelEnv) {
	case "info":
		return log.InfoLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.DebugLevel
	}
}

// Close flushes and closes the log file.
func Close() {
	if Logger != nil {
		Logger.Info("ghostbrief shutting down")
	}
	if logFile != nil {
		logFile.Close()
	}
}

// Info logs an info message.
func Info(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Info(msg, keyvals...)
	}
}

// Debug logs a debug message.
func Debug(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Debug(msg, keyvals...)
	}
}

// Warn logs a warning message.
func Warn(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Warn(msg, keyvals...)
	}
}

// Error logs an error message.
func Error(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Error(msg, keyvals...)
	}
}

// Fatal logs at error level and exits.
func Fatal(msg string, keyvals ...interface{}) {
	if Logger != nil {
		Logger.Fatal(msg, keyvals...)
		return
	}
	fmt.Fprintln(os.Stderr, "ghostbrief:", msg)
	os.Exit(1)
}

// WithPrefix returns a child logger carrying a subsystem prefix, or nil
// before Init.
func WithPrefix(prefix string) *log.Logger {
	if Logger != nil {
		return Logger.WithPrefix(prefix)
	}
	return nil
}
