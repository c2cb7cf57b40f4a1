// Package applog provides general-purpose application logging.
//
// Logs are written to ~/.asksql/logs/app.log through a slog logger with a
// tint handler. Covers: app start/stop, config, seeding, questions asked,
// generated SQL and failures. In CLI commands a second, coloured handler
// can mirror records to the terminal.
package applog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

const timeFormat = "2006-01-02 15:04:05"

var (
	mu      sync.RWMutex
	logger  = slog.New(tint.NewHandler(io.Discard, nil))
	logFile *os.File
)

// Setup opens <dir>/logs/app.log and routes all records there. When
// console is non-nil, records are also written to it with colour.
func Setup(dir string, verbose bool, console io.Writer) error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	logDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(logDir, "app.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return err
	}

	handlers := []slog.Handler{
		tint.NewHandler(f, &tint.Options{
			Level:      level,
			TimeFormat: timeFormat,
			NoColor:    true,
		}),
	}
	if console != nil {
		handlers = append(handlers, tint.NewHandler(console, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}

	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	logger = slog.New(fanout(handlers))
	return nil
}

// SetOutput replaces the logger with one writing to w. Useful for testing.
func SetOutput(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	logger = slog.New(tint.NewHandler(w, &tint.Options{Level: level, NoColor: true}))
}

// Logger returns the current application logger.
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { Logger().Debug(msg, args...) }

// Info logs a general info message.
func Info(msg string, args ...any) { Logger().Info(msg, args...) }

// Warn logs a warning.
func Warn(msg string, args ...any) { Logger().Warn(msg, args...) }

// Error logs an error message.
func Error(msg string, args ...any) { Logger().Error(msg, args...) }

// Event logs an info record tagged with a category.
func Event(category string, msg string, args ...any) {
	Logger().Info(msg, append([]any{"category", category}, args...)...)
}

// Active reports whether a log file is open.
func Active() bool {
	mu.RLock()
	defer mu.RUnlock()
	return logFile != nil
}

// Close flushes and closes the log file.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
	logger = slog.New(tint.NewHandler(io.Discard, nil))
}

// fanout sends each record to every handler that accepts its level.
type fanout []slog.Handler

func (h fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, hh := range h {
		if hh.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanout) Handle(ctx context.Context, r slog.Record) error {
	var first error
	for _, hh := range h {
		if !hh.Enabled(ctx, r.Level) {
			continue
		}
		if err := hh.Handle(ctx, r.Clone()); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (h fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(h))
	for i, hh := range h {
		out[i] = hh.WithAttrs(attrs)
	}
	return out
}

func (h fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(h))
	for i, hh := range h {
		out[i] = hh.WithGroup(name)
	}
	return out
}
