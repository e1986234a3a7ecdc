package database

import (
	"log/slog"
	"time"
)

// clientLogger emits client events filtered by the configured log levels.
type clientLogger struct {
	levels LogLevels
	logger *slog.Logger
}

func newClientLogger(backend string, opts Options) clientLogger {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return clientLogger{
		levels: opts.LogLevels,
		logger: logger.With("backend", backend),
	}
}

// observe logs op as a query on success and as an error on failure.
func (l clientLogger) observe(op string, started time.Time, err error, attrs ...any) {
	if err != nil {
		l.error(op, err, attrs...)
		return
	}

	if !l.levels.Has(LogQuery) {
		return
	}

	l.logger.Debug("query", append([]any{"op", op, "duration", time.Since(started)}, attrs...)...)
}

func (l clientLogger) warn(msg string, attrs ...any) {
	if l.levels.Has(LogWarn) {
		l.logger.Warn(msg, attrs...)
	}
}

func (l clientLogger) error(op string, err error, attrs ...any) {
	if l.levels.Has(LogError) {
		l.logger.Error("query failed", append([]any{"op", op, "error", err}, attrs...)...)
	}
}
