// Package metrics exports live connection metrics in the Prometheus format.
package metrics

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gabrielmiguelok/livefolio/pkg/core"
	"github.com/gabrielmiguelok/livefolio/pkg/limits"
	"github.com/gabrielmiguelok/livefolio/pkg/router"
)

// OtherEvent labels events outside the known set.
const OtherEvent = "other"

// Metrics holds all application metrics. It implements router.Observer.
type Metrics struct {
	registry *prometheus.Registry

	// Connections
	ConnectionsActive  prometheus.Gauge
	ConnectionsTotal   *prometheus.CounterVec
	ConnectionLifetime *prometheus.HistogramVec

	// Events
	EventsTotal   *prometheus.CounterVec
	EventDuration *prometheus.HistogramVec
	PanicsTotal   prometheus.Counter

	// Diffs
	DiffSize prometheus.Histogram

	known map[string]bool
	mu    sync.RWMutex
}

// Option configures Metrics.
type Option func(*Metrics)

// WithEvents sets the event names that get their own label value.
func WithEvents(events ...string) Option {
	return func(m *Metrics) {
		for _, e := range events {
			m.known[e] = true
		}
	}
}

// WithProcessCollectors adds the Go runtime and process collectors.
func WithProcessCollectors() Option {
	return func(m *Metrics) {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// NewMetrics creates metrics under namespace on a private registry.
func NewMetrics(namespace string, opts ...Option) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		known:    make(map[string]bool),

		ConnectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of open live connections.",
		}),
		ConnectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Live connections established, by wire codec.",
		}, []string{"codec"}),
		ConnectionLifetime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "connection_lifetime_seconds",
			Help:      "How long live connections stayed open, by close reason.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800, 3600},
		}, []string{"reason"}),
		EventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Client events handled, by event and outcome.",
		}, []string{"event", "outcome"}),
		EventDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "event_duration_seconds",
			Help:      "Time spent handling a client event.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"event"}),
		PanicsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "panics_total",
			Help:      "Component panics recovered.",
		}),
		DiffSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "diff_size_bytes",
			Help:      "Approximate size of pushed diffs.",
			Buckets:   prometheus.ExponentialBuckets(32, 4, 7),
		}),
	}

	m.registry.MustRegister(
		m.ConnectionsActive,
		m.ConnectionsTotal,
		m.ConnectionLifetime,
		m.EventsTotal,
		m.EventDuration,
		m.PanicsTotal,
		m.DiffSize,
	)

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Registry returns the registry the metrics are registered on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler for the metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) eventLabel(event string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.known[event] {
		return event
	}
	return OtherEvent
}

// ConnectionOpened implements router.Observer.
func (m *Metrics) ConnectionOpened(codec string) {
	m.ConnectionsActive.Inc()
	m.ConnectionsTotal.WithLabelValues(codec).Inc()
}

// ConnectionClosed implements router.Observer.
func (m *Metrics) ConnectionClosed(reason core.TerminateReason, lifetime time.Duration) {
	m.ConnectionsActive.Dec()
	m.ConnectionLifetime.WithLabelValues(reason.String()).Observe(lifetime.Seconds())
}

// EventHandled implements router.Observer.
func (m *Metrics) EventHandled(event string, d time.Duration, err error) {
	label := m.eventLabel(event)

	outcome := "ok"
	switch {
	case errors.Is(err, router.ErrComponentPanic):
		outcome = "panic"
		m.PanicsTotal.Inc()
	case errors.Is(err, limits.ErrRateLimitExceeded):
		outcome = "limited"
	case err != nil:
		outcome = "error"
	}

	m.EventsTotal.WithLabelValues(label, outcome).Inc()
	m.EventDuration.WithLabelValues(label).Observe(d.Seconds())
}

// DiffSent implements router.Observer.
func (m *Metrics) DiffSent(bytes int) {
	m.DiffSize.Observe(float64(bytes))
}

var _ router.Observer = (*Metrics)(nil)
