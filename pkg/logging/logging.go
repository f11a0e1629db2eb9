// Package logging configures structured logging with log/slog: colored text
// through tint for terminals, or JSON for log collectors.
//
// Usage:
//
//	logging.Setup()                                   // from LOG_LEVEL / LOG_FORMAT env
//	logging.SetupWithOptions(logging.Options{...})    // explicit override
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
//	LOG_FORMAT: text, json (default: text)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Format selects the handler.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Options configures the default logger.
type Options struct {
	Level  slog.Level
	Format Format
}

// Setup configures logging from LOG_LEVEL and LOG_FORMAT, falling back to
// INFO text on unknown values.
func Setup() *slog.Logger {
	level, err := ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = slog.LevelInfo
	}
	format, err := ParseFormat(os.Getenv("LOG_FORMAT"))
	if err != nil {
		format = FormatText
	}
	return SetupWithOptions(Options{Level: level, Format: format})
}

// SetupWithOptions installs and returns a logger writing to stderr.
func SetupWithOptions(opts Options) *slog.Logger {
	logger := slog.New(NewHandler(os.Stderr, opts))
	slog.SetDefault(logger)
	return logger
}

// NewHandler builds the handler for opts writing to w.
func NewHandler(w io.Writer, opts Options) slog.Handler {
	if opts.Format == FormatJSON {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     opts.Level,
			AddSource: true,
		})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      opts.Level,
		TimeFormat: time.Kitchen,
		AddSource:  true,
	})
}

// ParseLevel maps debug, info, warn and error (any case) to a level.
// The empty string is INFO.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// ParseFormat maps text and json (any case) to a Format. The empty string is text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown log format %q", s)
	}
}
