package formstate

import "sync"

// Store is a subscribable form value mapping.
//
// All methods are safe for concurrent use. Subscribers are notified
// synchronously, after the write completes, using a copy of the
// subscriber list so callbacks may subscribe or unsubscribe freely.
type Store struct {
	mu       sync.RWMutex
	defaults map[string]any
	values   map[string]any

	subMu  sync.Mutex
	subs   map[uint64]func()
	nextID uint64
}

// New creates a Store seeded with the given defaults. The defaults map
// is copied; later mutation of the argument has no effect.
func New(defaults map[string]any) *Store {
	s := &Store{
		defaults: make(map[string]any, len(defaults)),
		values:   make(map[string]any, len(defaults)),
		subs:     make(map[uint64]func()),
	}
	for k, v := range defaults {
		s.defaults[k] = v
		s.values[k] = v
	}
	return s
}

// Values returns a copy of the current value mapping.
func (s *Store) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]any, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Get returns the current value for field.
func (s *Store) Get(field string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[field]
	return v, ok
}

// Set writes a single field and notifies subscribers.
func (s *Store) Set(field string, value any) {
	s.mu.Lock()
	s.values[field] = value
	s.mu.Unlock()
	s.notify()
}

// Reset applies a merge-reset and notifies subscribers.
//
// With a non-nil partial mapping, only the named fields are written;
// every other field keeps its current value. With nil, all fields are
// restored to their defaults.
func (s *Store) Reset(partial map[string]any) {
	s.mu.Lock()
	if partial == nil {
		s.values = make(map[string]any, len(s.defaults))
		for k, v := range s.defaults {
			s.values[k] = v
		}
	} else {
		for k, v := range partial {
			s.values[k] = v
		}
	}
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every change. The returned
// function removes the subscription; calling it more than once is a
// no-op.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

// notify runs all subscribers on a snapshot of the subscriber list.
func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
