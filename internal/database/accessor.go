package database

import (
	"log/slog"
	"sync"

	"github.com/inovacc/fuelog/internal/common"
	"github.com/inovacc/fuelog/internal/params"
)

// Builder constructs a client handle from options.
type Builder[T any] func(opts Options) (T, error)

type accessorOptions struct {
	params    func() params.Params
	logger    *slog.Logger
	collector Collector
}

// AccessorOption configures an Accessor.
type AccessorOption func(*accessorOptions)

// WithParams sets the source of runtime parameters. It is consulted on every
// construction attempt, so mode changes are seen by the next attempt.
func WithParams(fn func() params.Params) AccessorOption {
	return func(o *accessorOptions) {
		o.params = fn
	}
}

// WithLogger sets the logger handed to constructed clients.
func WithLogger(logger *slog.Logger) AccessorOption {
	return func(o *accessorOptions) {
		o.logger = logger
	}
}

// WithCollector sets the telemetry collector.
func WithCollector(c Collector) AccessorOption {
	return func(o *accessorOptions) {
		o.collector = c
	}
}

// Accessor hands out a single shared client per process.
//
// An accessor keeps the handle it obtained for its own lifetime. Outside
// production mode it also publishes the handle to a process slot under its
// key, so an accessor created later with the same key (after a reload)
// adopts the existing handle instead of constructing another one.
//
// Construction failures are returned unchanged and leave nothing cached.
type Accessor[T any] struct {
	key   string
	build Builder[T]
	opts  accessorOptions
	slots *slotTable

	mu     sync.Mutex
	handle T
	cached bool
}

// NewAccessor returns an accessor for key. Nothing is constructed until Get.
func NewAccessor[T any](key string, build Builder[T], opts ...AccessorOption) *Accessor[T] {
	o := accessorOptions{
		params:    params.FromEnv,
		collector: NoopCollector(),
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Accessor[T]{
		key:   key,
		build: build,
		opts:  o,
		slots: process,
	}
}

// Key returns the process slot key.
func (a *Accessor[T]) Key() string {
	return a.key
}

// Cached reports whether the accessor holds a handle.
func (a *Accessor[T]) Cached() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.cached
}

// Get returns the shared handle, constructing it on first use.
func (a *Accessor[T]) Get() (T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cached {
		return a.handle, nil
	}

	s := a.slots.get(a.key)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.set {
		if h, ok := s.value.(T); ok {
			a.handle, a.cached = h, true
			a.opts.collector.IncSlotReuse(a.key)
			a.opts.logger.Debug("reusing shared database client", "key", a.key)

			return h, nil
		}
	}

	p := a.opts.params()
	clientOpts := OptionsFor(p, a.opts.logger)

	h, err := a.build(clientOpts)
	if err != nil {
		a.opts.collector.IncConstructionFailure(a.key)

		var zero T

		return zero, err
	}

	a.handle, a.cached = h, true
	a.opts.collector.IncConstruction(a.key)

	if !p.Mode.IsProduction() {
		s.value, s.set = h, true
	}

	a.opts.logger.Debug("constructed database client",
		"key", a.key,
		"mode", p.Mode.String(),
		"target", common.SanitizeURL(clientOpts.URL),
		"log_levels", clientOpts.LogLevels.String(),
	)

	return h, nil
}
