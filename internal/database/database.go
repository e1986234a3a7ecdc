package database

import (
	"log/slog"
	"sync"

	"github.com/inovacc/fuelog/internal/model"
	"github.com/inovacc/fuelog/internal/params"
)

// DefaultKey is the process slot key of the package-level accessor.
const DefaultKey = "fuelog.database"

// Store defines the database operations used by the app.
type Store interface {
	Ping() error
	Close() error

	// Backend names the storage engine ("bolt" or "sqlite")
	Backend() string

	// LogLevels returns the events this client logs
	LogLevels() LogLevels

	AddEntry(entry *model.FuelEntry) error
	GetEntry(id string) (*model.FuelEntry, error)
	ListEntries(vehicle string) ([]model.FuelEntry, error)
	RemoveEntry(id string) error
}

var (
	mu       sync.RWMutex
	initOpts []AccessorOption
	accessor = newDefaultAccessor()
)

func newDefaultAccessor(opts ...AccessorOption) *Accessor[Store] {
	return NewAccessor[Store](DefaultKey, Open, append([]AccessorOption{WithParams(loadParams)}, opts...)...)
}

func loadParams() params.Params {
	p, err := params.Load()
	if err != nil {
		slog.Warn("falling back to environment parameters", "error", err)

		return params.FromEnv()
	}

	return p
}

// Init replaces the package-level accessor with one built from opts. Outside
// production a client already cached by the process is adopted.
func Init(opts ...AccessorOption) {
	mu.Lock()
	defer mu.Unlock()

	initOpts = opts
	accessor = newDefaultAccessor(opts...)
}

// Reload re-creates the package-level accessor with the options of the last
// Init, the way a hot reload re-evaluates package state.
func Reload() {
	mu.Lock()
	defer mu.Unlock()

	accessor = newDefaultAccessor(initOpts...)
}

// GetDB returns the shared database store, opening it on first use.
func GetDB() (Store, error) {
	mu.RLock()
	a := accessor
	mu.RUnlock()

	return a.Get()
}
