package formsync

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

// startSpan starts a span on the configured tracer, or returns a
// non-recording span when tracing is disabled so callers can End and
// SetAttributes unconditionally.
func (s *Syncer) startSpan(name string) trace.Span {
	if s.cfg.tracer == nil {
		return trace.SpanFromContext(context.Background())
	}
	_, span := s.cfg.tracer.Start(context.Background(), name)
	return span
}
