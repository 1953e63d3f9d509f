// Package logger writes structured logs to a file, since the terminal is
// owned by the UI while the program runs.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	log      = slog.New(slog.NewTextHandler(io.Discard, nil))
	session  string
)

// Init opens path for appending and routes all logging there. Every record
// carries a per-run session id.
func Init(path string) error {
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	if logFile != nil {
		logFile.Close()
	}
	logFile = f

	session = uuid.NewString()
	handler := slog.NewTextHandler(f, &slog.HandlerOptions{Level: levelVar})
	log = slog.New(handler).With("session", session)
	log.Info("logger initialized", "path", path)
	return nil
}

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Session returns the id attached to this run's records, or "" before Init.
func Session() string {
	mu.Lock()
	defer mu.Unlock()
	return session
}

func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return log
}

func Debug(msg string, args ...any) { Get().Debug(msg, args...) }
func Info(msg string, args ...any)  { Get().Info(msg, args...) }
func Warn(msg string, args ...any)  { Get().Warn(msg, args...) }
func Error(msg string, args ...any) { Get().Error(msg, args...) }

// Close flushes and closes the log file. Logging afterwards is discarded.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	log = slog.New(slog.NewTextHandler(io.Discard, nil))
	session = ""
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
