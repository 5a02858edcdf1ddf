package series

import (
	"fmt"
	"log/slog"
	"sync"
)

// Registry maps (name, key) to long-lived series. Series are never removed.
type Registry struct {
	logger *slog.Logger

	mu          sync.RWMutex
	byID        map[string]*Series
	ordered     []*Series
	subscribers []func(*Series)
}

// NewRegistry creates an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		logger: logger,
		byID:   make(map[string]*Series),
	}
}

func seriesID(name string, key Key) string {
	return name + "{" + key.String() + "}"
}

// GetOrCreate returns the series for (name, key), creating it with kind on first use.
// Reusing a key with a different kind is a programming error and panics.
func (r *Registry) GetOrCreate(name string, key Key, kind Kind) *Series {
	id := seriesID(name, key)

	r.mu.RLock()
	s, ok := r.byID[id]
	r.mu.RUnlock()
	if ok {
		checkKind(s, kind)
		return s
	}

	r.mu.Lock()
	if s, ok = r.byID[id]; ok {
		r.mu.Unlock()
		checkKind(s, kind)
		return s
	}

	s = &Series{name: name, kind: kind, key: key}
	r.byID[id] = s
	r.ordered = append(r.ordered, s)
	subscribers := r.subscribers
	r.mu.Unlock()

	r.logger.Debug("registered series", "name", name, "type", kind, "labels", key.String())

	for _, fn := range subscribers {
		fn(s)
	}
	return s
}

func checkKind(s *Series, kind Kind) {
	if s.kind != kind {
		panic(fmt.Sprintf("series: %s{%s} registered as %s, requested as %s",
			s.name, s.key, s.kind, kind))
	}
}

// Lookup returns an existing series without creating it.
func (r *Registry) Lookup(name string, key Key) (*Series, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[seriesID(name, key)]
	return s, ok
}

// OnCreate subscribes fn to every series created after the call.
// fn runs synchronously on the creating goroutine and must not call back into GetOrCreate.
func (r *Registry) OnCreate(fn func(*Series)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	// Copy so creators holding the previous slice are unaffected.
	subs := make([]func(*Series), len(r.subscribers), len(r.subscribers)+1)
	copy(subs, r.subscribers)
	r.subscribers = append(subs, fn)
}

// Each calls fn for every series in creation order.
func (r *Registry) Each(fn func(*Series)) {
	r.mu.RLock()
	snapshot := r.ordered[:len(r.ordered):len(r.ordered)]
	r.mu.RUnlock()

	for _, s := range snapshot {
		fn(s)
	}
}

// Len returns the number of registered series.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.ordered)
}

// Count returns the number of series registered under name.
func (r *Registry) Count(name string) int {
	n := 0
	r.Each(func(s *Series) {
		if s.name == name {
			n++
		}
	})
	return n
}
