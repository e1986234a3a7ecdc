package database

import (
	"log/slog"
	"strings"

	"github.com/inovacc/fuelog/internal/params"
)

// LogLevel is a kind of event the database client is allowed to log.
type LogLevel string

const (
	LogQuery LogLevel = "query"
	LogError LogLevel = "error"
	LogWarn  LogLevel = "warn"
)

// LogLevels is the set of events a client logs.
type LogLevels []LogLevel

// Has reports whether level is enabled.
func (l LogLevels) Has(level LogLevel) bool {
	for _, v := range l {
		if v == level {
			return true
		}
	}

	return false
}

func (l LogLevels) String() string {
	names := make([]string, len(l))
	for i, v := range l {
		names[i] = string(v)
	}

	return strings.Join(names, ",")
}

// LogLevelsFor returns the verbose set in development and errors only otherwise.
func LogLevelsFor(mode params.Mode) LogLevels {
	if mode.IsDevelopment() {
		return LogLevels{LogQuery, LogError, LogWarn}
	}

	return LogLevels{LogError}
}

// Options configures the construction of a client.
type Options struct {
	// URL is the connection target, passed through unvalidated
	URL string

	// LogLevels selects which client events are logged
	LogLevels LogLevels

	// Logger receives client events; slog.Default() when nil
	Logger *slog.Logger
}

// OptionsFor derives client options from runtime parameters.
func OptionsFor(p params.Params, logger *slog.Logger) Options {
	return Options{
		URL:       p.DatabaseURL,
		LogLevels: LogLevelsFor(p.Mode),
		Logger:    logger,
	}
}
