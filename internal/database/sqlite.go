package database

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inovacc/fuelog/internal/model"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// timeLayout is fixed width so filled_at sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const memoryPath = ":memory:"

// connMaxLifetime applies to file databases only. An in-memory database
// lives and dies with its single connection.
var connMaxLifetime = time.Hour

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLite is the SQLite-backed Store.
type SQLite struct {
	db     *sql.DB
	levels LogLevels
	log    clientLogger
}

// NewSQLite opens (or creates) a SQLite database at path and applies
// pending migrations.
func NewSQLite(path string, opts Options) (*SQLite, error) {
	log := newClientLogger("sqlite", opts)

	dsn := path
	if path != memoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}

		dsn = path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.error("open", err, "path", path)
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// SQLite doesn't handle multiple writers well, and ":memory:" is per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if path != memoryPath {
		db.SetConnMaxLifetime(connMaxLifetime)
	}

	s := &SQLite{db: db, levels: opts.LogLevels, log: log}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

func (s *SQLite) migrate() error {
	started := time.Now()

	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	)`); err != nil {
		s.log.error("migrate", err)
		return err
	}

	files, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return err
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Name() < files[j].Name() })

	for _, f := range files {
		version, err := strconv.Atoi(strings.SplitN(f.Name(), "_", 2)[0])
		if err != nil {
			return fmt.Errorf("invalid migration name %s: %w", f.Name(), err)
		}

		var applied int
		if err := s.db.QueryRow(`SELECT COUNT(1) FROM schema_migrations WHERE version = ?`, version).Scan(&applied); err != nil {
			return err
		}

		if applied > 0 {
			continue
		}

		body, err := migrationsFS.ReadFile("migrations/" + f.Name())
		if err != nil {
			return err
		}

		if err := s.applyMigration(version, string(body)); err != nil {
			s.log.error("migrate", err, "version", version)
			return err
		}
	}

	s.log.observe("migrate", started, nil)

	return nil
}

func (s *SQLite) applyMigration(version int, body string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(body); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.Exec(`INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)`,
		version, time.Now().UTC().Format(time.RFC3339)); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (s *SQLite) Backend() string {
	return "sqlite"
}

func (s *SQLite) LogLevels() LogLevels {
	return s.levels
}

func (s *SQLite) Ping() error {
	started := time.Now()
	err := s.db.Ping()
	s.log.observe("ping", started, err)

	return err
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

const insertEntry = `INSERT INTO fuel_entries (id, vehicle, liters, price_per_liter, odometer, station, filled_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	vehicle = excluded.vehicle,
	liters = excluded.liters,
	price_per_liter = excluded.price_per_liter,
	odometer = excluded.odometer,
	station = excluded.station,
	filled_at = excluded.filled_at`

func (s *SQLite) AddEntry(entry *model.FuelEntry) error {
	if entry == nil {
		return errors.New("entry is required")
	}

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	if entry.FilledAt.IsZero() {
		entry.FilledAt = time.Now()
	}

	started := time.Now()
	err := s.upsert(entry)
	s.log.observe("insert", started, err, "sql", insertEntry, "id", entry.ID)

	return err
}

func (s *SQLite) upsert(entry *model.FuelEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	var existing int
	if err := tx.QueryRow(`SELECT COUNT(1) FROM fuel_entries WHERE id = ?`, entry.ID).Scan(&existing); err != nil {
		_ = tx.Rollback()
		return err
	}

	if existing > 0 {
		s.log.warn("overwriting existing entry", "id", entry.ID)
	}

	if _, err := tx.Exec(insertEntry,
		entry.ID,
		entry.Vehicle,
		entry.Liters,
		entry.PricePerLiter,
		entry.Odometer,
		entry.Station,
		entry.FilledAt.UTC().Format(timeLayout),
	); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

const selectEntries = `SELECT id, vehicle, liters, price_per_liter, odometer, station, filled_at FROM fuel_entries`

func (s *SQLite) GetEntry(id string) (*model.FuelEntry, error) {
	query := selectEntries + ` WHERE id = ?`

	started := time.Now()

	entry, err := scanEntry(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		s.log.observe("select", started, nil, "sql", query, "id", id)
		return nil, ErrNotFound
	}

	s.log.observe("select", started, err, "sql", query, "id", id)

	if err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *SQLite) ListEntries(vehicle string) ([]model.FuelEntry, error) {
	var (
		query = selectEntries
		args  []any
	)

	if vehicle != "" {
		query += ` WHERE vehicle = ?`
		args = append(args, vehicle)
	}

	query += ` ORDER BY filled_at ASC`

	started := time.Now()

	rows, err := s.db.Query(query, args...)
	if err != nil {
		s.log.observe("select", started, err, "sql", query)
		return nil, err
	}

	defer func() { _ = rows.Close() }()

	var entries []model.FuelEntry

	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			s.log.observe("select", started, err, "sql", query)
			return nil, err
		}

		entries = append(entries, *entry)
	}

	err = rows.Err()
	s.log.observe("select", started, err, "sql", query)

	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (s *SQLite) RemoveEntry(id string) error {
	const query = `DELETE FROM fuel_entries WHERE id = ?`

	started := time.Now()

	res, err := s.db.Exec(query, id)
	s.log.observe("delete", started, err, "sql", query, "id", id)

	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*model.FuelEntry, error) {
	var (
		entry    model.FuelEntry
		filledAt string
	)

	if err := row.Scan(
		&entry.ID,
		&entry.Vehicle,
		&entry.Liters,
		&entry.PricePerLiter,
		&entry.Odometer,
		&entry.Station,
		&filledAt,
	); err != nil {
		return nil, err
	}

	t, err := time.Parse(timeLayout, filledAt)
	if err != nil {
		return nil, fmt.Errorf("parse filled_at: %w", err)
	}

	entry.FilledAt = t

	return &entry, nil
}
