package live

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus metrics for live sessions.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "querybind").
	Namespace string

	// Subsystem is the metrics subsystem (default: "live").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics.
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

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "querybind",
		Subsystem: "live",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Metrics holds the live-session instruments. A nil *Metrics is a valid
// no-op receiver, so sessions run unchanged without instrumentation.
type Metrics struct {
	sessionsActive prometheus.Gauge
	sessionsTotal  prometheus.Counter
	framesSent     prometheus.Counter
	framesDropped  prometheus.Counter
	navEvents      prometheus.Counter
	writeErrors    prometheus.Counter
}

// NewMetrics registers and returns the live-session metrics.
func NewMetrics(opts ...MetricsOption) *Metrics {
	cfg := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	factory := promauto.With(cfg.Registry)

	return &Metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "sessions_active",
			Help:        "Number of currently connected sessions.",
			ConstLabels: cfg.ConstLabels,
		}),
		sessionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "sessions_total",
			Help:        "Total sessions accepted.",
			ConstLabels: cfg.ConstLabels,
		}),
		framesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "frames_sent_total",
			Help:        "URL frames queued to clients.",
			ConstLabels: cfg.ConstLabels,
		}),
		framesDropped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "frames_dropped_total",
			Help:        "URL frames dropped due to a full outbound buffer.",
			ConstLabels: cfg.ConstLabels,
		}),
		navEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "navigation_events_total",
			Help:        "Inbound navigate frames received.",
			ConstLabels: cfg.ConstLabels,
		}),
		writeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Subsystem:   cfg.Subsystem,
			Name:        "write_errors_total",
			Help:        "WebSocket write failures.",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

// RecordSessionStart records an accepted session.
func (m *Metrics) RecordSessionStart() {
	if m == nil {
		return
	}
	m.sessionsActive.Inc()
	m.sessionsTotal.Inc()
}

// RecordSessionEnd records a closed session.
func (m *Metrics) RecordSessionEnd() {
	if m == nil {
		return
	}
	m.sessionsActive.Dec()
}

// RecordFrameSent records a queued url frame.
func (m *Metrics) RecordFrameSent() {
	if m == nil {
		return
	}
	m.framesSent.Inc()
}

// RecordFrameDropped records a dropped url frame.
func (m *Metrics) RecordFrameDropped() {
	if m == nil {
		return
	}
	m.framesDropped.Inc()
}

// RecordNavEvent records an inbound navigate frame.
func (m *Metrics) RecordNavEvent() {
	if m == nil {
		return
	}
	m.navEvents.Inc()
}

// RecordWriteError records a WebSocket write failure.
func (m *Metrics) RecordWriteError() {
	if m == nil {
		return
	}
	m.writeErrors.Inc()
}
