// Package logger writes structured diagnostics to a file under /tmp so the
// terminal UI never shares stdout with them. Every caller logs through a
// component or frame scoped slog.Logger.
package logger

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	// DefaultLogPath is the log file of the TUI
	DefaultLogPath = "/tmp/cardtray-debug.log"

	// UpdateLogPath is the log file of the catalog updater command
	UpdateLogPath = "/tmp/cardtray-update.log"

	// LogGlob matches every file cardtray logs to
	LogGlob = "/tmp/cardtray-*.log"
)

// sink is the open log destination shared by all scoped loggers
type sink struct {
	mu    sync.Mutex
	file  *os.File
	base  *slog.Logger
	path  string
	level slog.LevelVar
}

var out = &sink{}

// Init opens path as the log destination. It is a no-op once a destination
// is open; call Reset first to switch files.
func Init(path string) error {
	out.mu.Lock()
	defer out.mu.Unlock()
	return out.openLocked(path)
}

func (s *sink) openLocked(path string) error {
	if s.base != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	s.file = f
	s.path = path
	s.base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: &s.level}))
	s.base.Info("logger initialized", "path", path)
	return nil
}

// scoped returns the base logger with one attribute attached, opening the
// default file on first use. Falls back to slog.Default after Close or when
// the file cannot be opened.
func scoped(key, value string) *slog.Logger {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.base == nil && out.path == "" {
		if err := out.openLocked(DefaultLogPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			out.path = DefaultLogPath
		}
	}
	if out.base == nil {
		return slog.Default().With(slog.String(key, value))
	}
	return out.base.With(slog.String(key, value))
}

// WithComponent returns a logger tagged with the component name.
//
// Example:
//
//	log := logger.WithComponent("catalog")
//	log.Info("catalog loaded", "source", src, "items", len(items))
func WithComponent(component string) *slog.Logger {
	return scoped("component", component)
}

// WithFrame returns a logger tagged with a frame ID
func WithFrame(frameID string) *slog.Logger {
	return scoped("frame", frameID)
}

// SetDebug switches between debug and info level
func SetDebug(enabled bool) {
	if enabled {
		out.level.Set(slog.LevelDebug)
	} else {
		out.level.Set(slog.LevelInfo)
	}
}

// Close closes the log file. Later log calls go to slog.Default.
func Close() {
	out.mu.Lock()
	defer out.mu.Unlock()

	if out.file != nil {
		out.file.Close()
		out.file = nil
	}
	out.base = nil
}

// Reset closes the log file and forgets it so Init can open another.
// Used by tests.
func Reset() {
	Close()

	out.mu.Lock()
	defer out.mu.Unlock()
	out.path = ""
	out.level.Set(slog.LevelInfo)
}

// ClearLogsMatching removes the log files matching a glob pattern and
// returns how many were removed
func ClearLogsMatching(pattern string) (int, error) {
	logs, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, p := range logs {
		if err := os.Remove(p); err == nil {
			count++
		} else if !os.IsNotExist(err) {
			return count, err
		}
	}
	return count, nil
}
