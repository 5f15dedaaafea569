// Package logging builds the slog logger used by the command line tools.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
)

// Options selects the log format, level and an optional file sink.
type Options struct {
	Format string // "json" or "text"
	Level  string // debug, info, warn, error
	File   string // also write text logs here when set

	// Stdout overrides os.Stdout, mainly for tests.
	Stdout io.Writer
}

// Logger is a configured logger with an adjustable level. Close releases the
// log file, if any.
type Logger struct {
	*slog.Logger
	Level *slog.LevelVar
	file  *os.File
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// New builds the logger. Stdout gets JSON or text records; the file, when
// given, always gets text.
func New(opts Options) (*Logger, error) {
	lvl, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	level := new(slog.LevelVar)
	level.Set(lvl)
	hopts := &slog.HandlerOptions{Level: level}

	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}

	var handlers []slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "json":
		handlers = append(handlers, slog.NewJSONHandler(out, hopts))
	case "text":
		handlers = append(handlers, slog.NewTextHandler(out, hopts))
	default:
		return nil, fmt.Errorf("unknown log format %q", opts.Format)
	}

	l := &Logger{Level: level}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		l.file = f
		handlers = append(handlers, slog.NewTextHandler(f, hopts))
	}

	l.Logger = slog.New(slogmulti.Fanout(handlers...))
	return l, nil
}

// Close closes the log file.
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
