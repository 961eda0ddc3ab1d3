package formsync

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultDebounce is the delay between the last form change and the
	// URL commit.
	DefaultDebounce = 500 * time.Millisecond

	// DefaultMaxURLLength is the advisory query string length limit.
	DefaultMaxURLLength = 2000
)

// config holds the resolved Syncer configuration.
type config struct {
	debounce     time.Duration
	maxURLLength int
	exclude      map[string]struct{}
	diagnostics  bool
	logger       *slog.Logger
	metrics      *Metrics
	tracer       trace.Tracer
}

func defaultConfig() config {
	return config{
		debounce:     DefaultDebounce,
		maxURLLength: DefaultMaxURLLength,
		exclude:      make(map[string]struct{}),
		logger:       slog.Default(),
	}
}

// Option configures a Syncer.
type Option func(*config)

// Debounce sets the delay between the last form change and the URL
// commit. Non-positive values keep the default.
func Debounce(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.debounce = d
		}
	}
}

// MaxURLLength sets the advisory query string length limit. Commits
// over the limit still proceed; they only produce a diagnostic.
func MaxURLLength(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxURLLength = n
		}
	}
}

// ExcludeFields names fields that are never written to the URL and
// never read from it.
func ExcludeFields(names ...string) Option {
	return func(c *config) {
		for _, name := range names {
			c.exclude[name] = struct{}{}
		}
	}
}

// Diagnostics enables development-mode diagnostics, currently the
// sensitive-field-name warning. Serialization failures and length
// overages are always reported.
func Diagnostics(enabled bool) Option {
	return func(c *config) {
		c.diagnostics = enabled
	}
}

// Logger sets the diagnostic logger. Defaults to slog.Default().
func Logger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics attaches Prometheus instrumentation.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithTracer enables an OpenTelemetry span per hydration pass and per
// publication fire.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) {
		c.tracer = t
	}
}
