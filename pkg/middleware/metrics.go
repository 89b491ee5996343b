package middleware

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/melba-ui/melba/pkg/toast"
)

// MetricsConfig configures the Prometheus metrics observer.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "melba").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for toast lifetime.
	// Default: lifetimeBuckets.
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// lifetimeBuckets spans the realistic range of toast lifetimes: the
// floor for auto-dismiss is one second, and sticky toasts can sit for
// minutes before someone closes them.
var lifetimeBuckets = []float64{1, 2.5, 5, 10, 30, 60, 300, 900}

// MetricsOption configures the Prometheus metrics observer.
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

// WithBuckets sets the lifetime histogram buckets.
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

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace:   "melba",
		Subsystem:   "",
		ConstLabels: nil,
		Buckets:     lifetimeBuckets,
		Registry:    prometheus.DefaultRegisterer,
	}
}

// metrics holds the instruments for one observer.
type metrics struct {
	shown     *prometheus.CounterVec
	dismissed *prometheus.CounterVec
	active    prometheus.Gauge
	lifetime  prometheus.Histogram
}

// initMetrics registers the instruments with the configured registry.
func initMetrics(config MetricsConfig) *metrics {
	factory := promauto.With(config.Registry)

	return &metrics{
		shown: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_shown_total",
			Help:        "Total number of toasts shown, by type",
			ConstLabels: config.ConstLabels,
		}, []string{"type"}),

		dismissed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toasts_dismissed_total",
			Help:        "Total number of toasts dismissed, by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),

		active: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_toasts",
			Help:        "Number of toasts currently tracked by the engine",
			ConstLabels: config.ConstLabels,
		}),

		lifetime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "toast_lifetime_seconds",
			Help:        "Time from show to dismissal in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),
	}
}

// observe maps one engine event onto the instruments. Pause, resume,
// and progress events carry no metric weight.
func (m *metrics) observe(ev toast.Event) {
	switch ev.Kind {
	case toast.EventShown:
		m.shown.WithLabelValues(string(ev.Toast.Type)).Inc()
		m.active.Inc()

	case toast.EventDismissed:
		m.dismissed.WithLabelValues(string(ev.Reason)).Inc()
		m.active.Dec()
		m.lifetime.Observe(ev.At.Sub(ev.Toast.CreatedAt).Seconds())
	}
}

// collectors returns every instrument for unregistration.
func (m *metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.shown, m.dismissed, m.active, m.lifetime}
}

// Metrics attaches Prometheus instrumentation to a manager's event
// stream.
//
// Metrics collected:
//   - melba_toasts_shown_total: Counter of shown toasts by type
//   - melba_toasts_dismissed_total: Counter of dismissals by reason
//   - melba_active_toasts: Gauge of toasts currently tracked
//   - melba_toast_lifetime_seconds: Histogram of show-to-dismiss time
//
// The returned stop function unsubscribes from the manager and
// unregisters the instruments. Instrumenting two managers against the
// same registry needs distinct namespaces or const labels, or the
// second registration panics.
//
// Example:
//
//	stop := middleware.Metrics(manager,
//	    middleware.WithNamespace("myapp"),
//	)
//	defer stop()
//
//	http.Handle("/metrics", promhttp.Handler())
func Metrics(m *toast.Manager, opts ...MetricsOption) (stop func()) {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.DefaultRegisterer
	}

	mx := initMetrics(config)
	cancel := m.Subscribe(mx.observe)

	return func() {
		cancel()
		for _, c := range mx.collectors() {
			config.Registry.Unregister(c)
		}
	}
}
