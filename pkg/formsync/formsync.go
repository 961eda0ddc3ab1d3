package formsync

import (
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/formsync-dev/formsync/pkg/codec"
	"github.com/formsync-dev/formsync/pkg/query"
)

// QuerySource is the boundary to the external URL representation.
type QuerySource interface {
	// SearchParams returns a snapshot of the current query string. The
	// Syncer owns the returned value and may mutate it.
	SearchParams() *query.Params

	// SetSearchParams commits a full replacement query string.
	SetSearchParams(params *query.Params)
}

// FormStore is the boundary to the host form state.
type FormStore interface {
	// Values returns the current field->value mapping.
	Values() map[string]any

	// Reset applies a merge-reset: named fields are written, all other
	// fields keep their current value.
	Reset(partial map[string]any)

	// Subscribe registers a change callback and returns an unsubscribe
	// function. Callbacks must be invoked synchronously after each
	// change.
	Subscribe(fn func()) func()
}

// Syncer synchronizes a FormStore with a QuerySource.
//
// The zero value is not usable; construct with New. New runs the first
// hydration pass before returning, so form defaults are overlaid with
// whatever the URL already carries. Call HydrateFromURL whenever the
// external source reports a change, and Close when done.
type Syncer struct {
	source QuerySource
	store  FormStore
	cfg    config

	mu            sync.Mutex
	lastKnown     string // canonical string of the last commit or observation
	firstObserved bool
	synced        bool // first hydration pass completed
	hydrating     bool // guard: merge-reset in flight, ignore store changes
	closed        bool
	timer         *time.Timer

	unsubscribe func()
}

// New creates a Syncer, subscribes to the store and runs the initial
// hydration pass.
func New(source QuerySource, store FormStore, opts ...Option) *Syncer {
	s := &Syncer{
		source: source,
		store:  store,
		cfg:    defaultConfig(),
	}
	for _, opt := range opts {
		opt(&s.cfg)
	}

	s.unsubscribe = store.Subscribe(s.onStoreChange)
	s.HydrateFromURL()
	return s
}

// HydrateFromURL processes the current external snapshot.
//
// The first call always runs a full pass; later calls no-op when the
// snapshot's canonical string equals the last known one, which is what
// keeps the Syncer's own commits from echoing back into the store.
func (s *Syncer) HydrateFromURL() {
	span := s.startSpan("formsync.hydrate")
	defer span.End()

	snap := s.source.SearchParams()
	raw := snap.Encode()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	first := !s.firstObserved
	s.firstObserved = true
	if !first && raw == s.lastKnown {
		s.mu.Unlock()
		return
	}
	s.lastKnown = raw

	restored := make(map[string]any)
	for _, key := range snap.Keys() {
		if _, excluded := s.cfg.exclude[key]; excluded {
			continue
		}
		value := snap.Get(key)
		if value == "" {
			continue
		}
		restored[key] = codec.Decode(value)
	}
	apply := len(restored) > 0
	if apply {
		s.hydrating = true
	}
	s.mu.Unlock()

	if apply {
		// The store notifies its subscribers synchronously, so every
		// publication trigger caused by this reset observes the guard.
		s.store.Reset(restored)
	}

	s.mu.Lock()
	s.hydrating = false
	s.synced = true
	s.mu.Unlock()

	s.cfg.metrics.recordHydration()
	span.SetAttributes(
		attribute.Bool("formsync.first", first),
		attribute.Int("formsync.restored_fields", len(restored)),
	)
}

// onStoreChange is the publication trigger. It no-ops until the first
// hydration completes and while a hydration merge-reset is in flight;
// otherwise it restarts the debounce window.
func (s *Syncer) onStoreChange() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || !s.synced || s.hydrating {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.cfg.debounce, s.publish)
}

// publish runs when the debounce window closes. It merges the current
// form values over the unrelated parameters already in the URL and
// commits the result if the canonical string changed.
func (s *Syncer) publish() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	span := s.startSpan("formsync.publish")
	defer span.End()

	working := s.source.SearchParams()

	// Self-healing: excluded fields are removed even if some other
	// writer put them in the URL.
	for field := range s.cfg.exclude {
		working.Del(field)
	}

	values := s.store.Values()
	fields := make([]string, 0, len(values))
	for field := range values {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if _, excluded := s.cfg.exclude[field]; excluded {
			continue
		}
		if s.cfg.diagnostics && SensitiveFieldName(field) {
			s.cfg.logger.Warn("field name looks sensitive; exclude it from URL sync if it holds secrets",
				"field", field)
		}
		encoded, err := codec.Encode(values[field])
		if err != nil {
			s.cfg.logger.Warn("form value not serializable, omitting from URL",
				"field", field, "error", err)
			s.cfg.metrics.recordEncodeFailure()
			working.Del(field)
			continue
		}
		if encoded == "" {
			working.Del(field)
			continue
		}
		working.Set(field, encoded)
	}

	raw := working.Encode()
	if len(raw) > s.cfg.maxURLLength {
		s.cfg.logger.Warn("query string exceeds configured maximum length",
			"length", len(raw), "max", s.cfg.maxURLLength, "over", len(raw)-s.cfg.maxURLLength)
		s.cfg.metrics.recordURLOverflow()
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	changed := raw != s.lastKnown
	if changed {
		s.lastKnown = raw
	}
	s.mu.Unlock()

	if changed {
		s.source.SetSearchParams(working)
		s.cfg.metrics.recordPublication()
	} else {
		s.cfg.metrics.recordPublicationSkipped()
	}
	span.SetAttributes(
		attribute.Bool("formsync.committed", changed),
		attribute.Int("formsync.url_length", len(raw)),
	)
}

// Close cancels any pending debounce timer and unsubscribes from the
// store. No commit is made after Close returns.
func (s *Syncer) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}
