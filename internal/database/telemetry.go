package database

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector receives accessor events. Implementations are called while the
// accessor holds its lock and must not call back into it.
type Collector interface {
	IncConstruction(key string)
	IncConstructionFailure(key string)
	IncSlotReuse(key string)
}

type noopCollector struct{}

// NoopCollector returns a collector that discards all events.
func NoopCollector() Collector {
	return noopCollector{}
}

func (noopCollector) IncConstruction(string)        {}
func (noopCollector) IncConstructionFailure(string) {}
func (noopCollector) IncSlotReuse(string)           {}

// PrometheusCollector exposes accessor counters via Prometheus.
type PrometheusCollector struct {
	constructions *prometheus.CounterVec
	failures      *prometheus.CounterVec
	reuses        *prometheus.CounterVec
}

// NewPrometheusCollector registers the accessor counters with reg, or with the
// default registerer when reg is nil. Registering twice reuses the counters.
func NewPrometheusCollector(reg prometheus.Registerer) (*PrometheusCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	constructions, err := registerCounter(reg, "fuelog_db_client_constructions_total",
		"Number of database clients constructed per accessor key.")
	if err != nil {
		return nil, err
	}

	failures, err := registerCounter(reg, "fuelog_db_client_construction_failures_total",
		"Number of failed database client constructions per accessor key.")
	if err != nil {
		return nil, err
	}

	reuses, err := registerCounter(reg, "fuelog_db_client_slot_reuses_total",
		"Number of times an accessor adopted a client cached by the process.")
	if err != nil {
		return nil, err
	}

	return &PrometheusCollector{
		constructions: constructions,
		failures:      failures,
		reuses:        reuses,
	}, nil
}

func registerCounter(reg prometheus.Registerer, name, help string) (*prometheus.CounterVec, error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{Name: name, Help: help}, []string{"key"})
	if err := reg.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			return nil, err
		}

		existing, ok := already.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, err
		}

		counter = existing
	}

	return counter, nil
}

func (c *PrometheusCollector) IncConstruction(key string) {
	c.constructions.WithLabelValues(key).Inc()
}

func (c *PrometheusCollector) IncConstructionFailure(key string) {
	c.failures.WithLabelValues(key).Inc()
}

func (c *PrometheusCollector) IncSlotReuse(key string) {
	c.reuses.WithLabelValues(key).Inc()
}
