package render

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/vtree/pkg/host"
)

// MetricsConfig configures the Prometheus render metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for render duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus render metrics.
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

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vtree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the Prometheus collectors for render cycles. A nil
// *Metrics records nothing.
//
// Metrics collected:
//   - vtree_renders_total: Counter of render cycles by phase (mount, update)
//   - vtree_render_duration_seconds: Histogram of render cycle duration
//   - vtree_mutations_total: Counter of host mutations by op
//   - vtree_nodes_mounted_total: Counter of host nodes created
//   - vtree_diagnostics_total: Counter of diagnostics by code
//   - vtree_dispatches_total: Counter of delegated events by type and outcome
//   - vtree_registered_handlers: Gauge of registered handlers after the last cycle
type Metrics struct {
	rendersTotal       *prometheus.CounterVec
	renderDuration     prometheus.Histogram
	mutationsTotal     *prometheus.CounterVec
	nodesMounted       prometheus.Counter
	diagnosticsTotal   *prometheus.CounterVec
	dispatchesTotal    *prometheus.CounterVec
	registeredHandlers prometheus.Gauge
}

// NewMetrics registers the render collectors.
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		rendersTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of render cycles",
			ConstLabels: config.ConstLabels,
		}, []string{"phase"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render cycle duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		mutationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "mutations_total",
			Help:        "Total number of host tree mutations",
			ConstLabels: config.ConstLabels,
		}, []string{"op"}),

		nodesMounted: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "nodes_mounted_total",
			Help:        "Total number of host nodes created by mounts",
			ConstLabels: config.ConstLabels,
		}),

		diagnosticsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "diagnostics_total",
			Help:        "Total number of render diagnostics by code",
			ConstLabels: config.ConstLabels,
		}, []string{"code"}),

		dispatchesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "dispatches_total",
			Help:        "Total number of delegated events by type and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "handled"}),

		registeredHandlers: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "registered_handlers",
			Help:        "Number of registered event handlers after the last render",
			ConstLabels: config.ConstLabels,
		}),
	}
}

// DispatchHook returns a callback for events.WithDispatchHook.
func (m *Metrics) DispatchHook() func(eventType string, handled bool) {
	return func(eventType string, handled bool) {
		if m == nil {
			return
		}
		m.dispatchesTotal.WithLabelValues(eventType, strconv.FormatBool(handled)).Inc()
	}
}

func (m *Metrics) recordDiagnostic(code string) {
	if m == nil {
		return
	}
	m.diagnosticsTotal.WithLabelValues(code).Inc()
}

func (m *Metrics) recordCycle(phase string, d time.Duration, mounted, handlers int, mutations []host.Mutation) {
	if m == nil {
		return
	}
	m.rendersTotal.WithLabelValues(phase).Inc()
	m.renderDuration.Observe(d.Seconds())
	m.nodesMounted.Add(float64(mounted))
	m.registeredHandlers.Set(float64(handlers))
	for _, mut := range mutations {
		m.mutationsTotal.WithLabelValues(mut.Op.String()).Inc()
	}
}
