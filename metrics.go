package pathrouter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultMatched  = "matched"
	resultNotFound = "not_found"
)

// MetricsConfig configures the router metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "pathrouter").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels
}

// MetricsOption configures the router metrics.
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

// Metrics counts route lookups. A nil *Metrics records nothing.
type Metrics struct {
	lookups *prometheus.CounterVec
	routes  prometheus.Gauge
}

// NewMetrics creates the router metrics and registers them with reg.
// It panics if the metrics are already registered, like promauto does.
func NewMetrics(reg prometheus.Registerer, opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "pathrouter",
	}

	for _, opt := range opts {
		opt(&config)
	}

	factory := promauto.With(reg)

	return &Metrics{
		lookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "lookups_total",
			Help:        "Total number of path lookups by result",
			ConstLabels: config.ConstLabels,
		}, []string{"result"}),

		routes: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "routes",
			Help:        "Number of compiled route patterns",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) observeLookup(result string) {
	if m == nil {
		return
	}

	m.lookups.WithLabelValues(result).Inc()
}

func (m *Metrics) setRoutes(n int) {
	if m == nil {
		return
	}

	m.routes.Set(float64(n))
}
