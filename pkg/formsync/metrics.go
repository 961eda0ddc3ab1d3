package formsync

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus instrumentation.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "formsync").
	Namespace string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels
}

// MetricOption configures NewMetrics.
type MetricOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// Metrics holds the Prometheus counters for a Syncer. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	hydrations          prometheus.Counter
	publications        prometheus.Counter
	publicationsSkipped prometheus.Counter
	encodeFailures      prometheus.Counter
	urlLengthOverflows  prometheus.Counter
}

// NewMetrics registers the formsync counters with the given registerer.
// Pass prometheus.DefaultRegisterer for the process-wide registry.
func NewMetrics(reg prometheus.Registerer, opts ...MetricOption) *Metrics {
	cfg := MetricsConfig{Namespace: "formsync"}
	for _, opt := range opts {
		opt(&cfg)
	}

	factory := promauto.With(reg)
	return &Metrics{
		hydrations: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "hydrations_total",
			Help:        "Total number of hydration passes applied from the URL",
			ConstLabels: cfg.ConstLabels,
		}),
		publications: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "publications_total",
			Help:        "Total number of query strings committed to the URL sink",
			ConstLabels: cfg.ConstLabels,
		}),
		publicationsSkipped: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "publications_skipped_total",
			Help:        "Total number of publication fires skipped because the canonical string was unchanged",
			ConstLabels: cfg.ConstLabels,
		}),
		encodeFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "encode_failures_total",
			Help:        "Total number of form values dropped because they could not be serialized",
			ConstLabels: cfg.ConstLabels,
		}),
		urlLengthOverflows: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   cfg.Namespace,
			Name:        "url_length_overflows_total",
			Help:        "Total number of commits whose query string exceeded the advisory maximum length",
			ConstLabels: cfg.ConstLabels,
		}),
	}
}

func (m *Metrics) recordHydration() {
	if m == nil {
		return
	}
	m.hydrations.Inc()
}

func (m *Metrics) recordPublication() {
	if m == nil {
		return
	}
	m.publications.Inc()
}

func (m *Metrics) recordPublicationSkipped() {
	if m == nil {
		return
	}
	m.publicationsSkipped.Inc()
}

func (m *Metrics) recordEncodeFailure() {
	if m == nil {
		return
	}
	m.encodeFailures.Inc()
}

func (m *Metrics) recordURLOverflow() {
	if m == nil {
		return
	}
	m.urlLengthOverflows.Inc()
}
