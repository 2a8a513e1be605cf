// Package logger writes structured logs to a file.
//
// The terminal belongs to the UI while parley runs, so nothing is ever
// logged to stdout or stderr. Until Init is called every logger discards
// its output.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	base     = discard()
)

// DefaultPath returns the log file used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "parley.log")
}

// SetDebug toggles debug level output.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Init opens path for appending and routes every logger to it. Calling
// Init again switches to the new file.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	base = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar}))
	base.Info("Logger initialized", "path", path)
	return nil
}

// Close closes the log file; later output is discarded.
func Close() {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	base = discard()
}

// Logger returns the root logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return base
}

// ComponentLogger returns a logger with the component attribute attached.
//
//	log := logger.ComponentLogger("client")
//	log.Info("window opened", "name", name)
func ComponentLogger(component string) *slog.Logger {
	return Logger().With(slog.String("component", component))
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: levelVar}))
}
