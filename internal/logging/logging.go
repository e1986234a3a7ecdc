// Package logging builds the slog logger used across fuelog.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/inovacc/fuelog/internal/params"
)

// ParseLevel converts a level name into a slog.Level. An empty name means info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("parse log level: unknown level %q", name)
	}
}

// Setup creates a logger writing to w. Development mode gets a text handler,
// every other mode emits JSON.
func Setup(w io.Writer, level string, mode params.Mode) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}

	var handler slog.Handler
	if mode.IsDevelopment() {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(handler).With("app", "fuelog"), nil
}
