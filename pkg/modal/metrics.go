package modal

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics for modal registries.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "modalhost").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registerer is the Prometheus registerer to use.
	// Default: prometheus.DefaultRegisterer
	Registerer prometheus.Registerer
}

// MetricsOption configures the modal metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegisterer sets the Prometheus registerer.
func WithRegisterer(reg prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registerer = reg
	}
}

// Metrics holds the Prometheus collectors updated by a Registry.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	shownTotal     prometheus.Counter
	hiddenTotal    prometheus.Counter
	destroyedTotal prometheus.Counter
	diagnostics    *prometheus.CounterVec
	active         prometheus.Gauge
	open           prometheus.Gauge
}

// NewMetrics creates and registers the modal collectors.
// Registering twice on the same registerer panics, so call it once per
// registerer and share the result between registries.
//
// Metrics collected:
//   - modalhost_modals_shown_total
//   - modalhost_modals_hidden_total
//   - modalhost_modals_destroyed_total
//   - modalhost_modal_diagnostics_total{op}
//   - modalhost_modals_active (records present, open or closed)
//   - modalhost_modals_open
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace:  "modalhost",
		Registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(config.Registerer)

	return &Metrics{
		shownTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "modals_shown_total",
			Help:        "Total number of modals shown",
			ConstLabels: config.ConstLabels,
		}),
		hiddenTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "modals_hidden_total",
			Help:        "Total number of open modals that were hidden",
			ConstLabels: config.ConstLabels,
		}),
		destroyedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "modals_destroyed_total",
			Help:        "Total number of modal records removed",
			ConstLabels: config.ConstLabels,
		}),
		diagnostics: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "modal_diagnostics_total",
			Help:        "Operations skipped because the modal id was missing",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),
		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "modals_active",
			Help:        "Number of modal records in the registry",
			ConstLabels: config.ConstLabels,
		}),
		open: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "modals_open",
			Help:        "Number of modal records with isOpen=true",
			ConstLabels: config.ConstLabels,
		}),
	}
}

var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns metrics registered on prometheus.DefaultRegisterer.
// It is safe to call repeatedly.
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		defaultMetrics = NewMetrics()
	})
	return defaultMetrics
}

func (m *Metrics) shown() {
	if m == nil {
		return
	}
	m.shownTotal.Inc()
}

func (m *Metrics) hidden() {
	if m == nil {
		return
	}
	m.hiddenTotal.Inc()
}

func (m *Metrics) destroyed(n int) {
	if m == nil {
		return
	}
	m.destroyedTotal.Add(float64(n))
}

func (m *Metrics) diagnostic(op string) {
	if m == nil {
		return
	}
	m.diagnostics.WithLabelValues(op).Inc()
}

// track moves the gauges by the difference between two snapshots of one
// registry, so registries sharing a Metrics add up.
func (m *Metrics) track(prev, next State) {
	if m == nil {
		return
	}
	m.active.Add(float64(len(next) - len(prev)))
	m.open.Add(float64(countOpen(next) - countOpen(prev)))
}

func countOpen(s State) int {
	n := 0
	for _, rec := range s {
		if rec.IsOpen() {
			n++
		}
	}
	return n
}
