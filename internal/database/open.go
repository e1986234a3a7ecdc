package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrEmptyURL is returned by Open when no connection target is configured.
	ErrEmptyURL = errors.New("database url is required")

	// ErrUnsupportedScheme is returned by Open for unknown URL schemes.
	ErrUnsupportedScheme = errors.New("unsupported database scheme")

	// ErrMemoryUnsupported is returned for ":memory:" targets on backends
	// that only work on files.
	ErrMemoryUnsupported = errors.New("in-memory database not supported")

	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.New("entry not found")
)

// Open constructs a store for opts.URL:
//
//	bolt://<path>            bbolt file (no in-memory mode)
//	sqlite://<path>          SQLite file (":memory:" for an in-memory database)
//	file:<path>              SQLite file
func Open(opts Options) (Store, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, ErrEmptyURL
	}

	scheme, path, err := parseTarget(opts.URL)
	if err != nil {
		return nil, err
	}

	switch scheme {
	case "bolt", "bbolt":
		if path == memoryPath {
			return nil, fmt.Errorf("%w: %s", ErrMemoryUnsupported, scheme)
		}

		return NewBolt(path, opts)
	case "sqlite", "sqlite3", "file":
		return NewSQLite(path, opts)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}

func parseTarget(raw string) (scheme, path string, err error) {
	scheme, rest, ok := strings.Cut(raw, ":")
	if !ok || scheme == "" {
		return "", "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, raw)
	}

	scheme = strings.ToLower(scheme)

	if strings.TrimPrefix(rest, "//") == memoryPath {
		return scheme, memoryPath, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse database url: %w", err)
	}

	switch {
	case u.Opaque != "":
		path = u.Opaque
	case u.Host != "":
		path = u.Host + u.Path
	default:
		path = u.Path
	}

	if path == "" {
		return "", "", fmt.Errorf("database url %q has no path", raw)
	}

	return scheme, path, nil
}
