package series

import (
	"fmt"
	"math"
	"strings"
	"sync/atomic"
)

// Kind defines the semantic type of a series.
type Kind string

const (
	KindCounter Kind = "counter"
	KindGauge   Kind = "gauge"
)

// Label is a single name/value dimension of a Key.
type Label struct {
	Name  string
	Value string
}

// Key is an ordered label set identifying one series among those sharing a name.
type Key struct {
	labels []Label
	id     string
}

// NewKey builds a key from alternating label names and values.
func NewKey(pairs ...string) Key {
	if len(pairs)%2 != 0 {
		panic(fmt.Sprintf("series: odd number of label arguments: %v", pairs))
	}

	labels := make([]Label, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		labels = append(labels, Label{Name: pairs[i], Value: pairs[i+1]})
	}

	var b strings.Builder
	for i, l := range labels {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Name)
		b.WriteByte('=')
		b.WriteString(l.Value)
	}

	return Key{labels: labels, id: b.String()}
}

// Labels returns a copy of the key's labels in order.
func (k Key) Labels() []Label {
	out := make([]Label, len(k.labels))
	copy(out, k.labels)
	return out
}

// Get returns the value of the named label.
func (k Key) Get(name string) (string, bool) {
	for _, l := range k.labels {
		if l.Name == name {
			return l.Value, true
		}
	}
	return "", false
}

// String returns the canonical form, e.g. "host=h1,process=sadc".
func (k Key) String() string {
	return k.id
}

// Series is one exported time series backed by an atomic cell.
type Series struct {
	name string
	kind Kind
	key  Key
	bits atomic.Uint64
}

// Name returns the dotted metric name.
func (s *Series) Name() string { return s.name }

// Kind returns whether the series is a counter or a gauge.
func (s *Series) Kind() Kind { return s.kind }

// Key returns the series label set.
func (s *Series) Key() Key { return s.key }

// Value returns the current value. Safe to call concurrently with writers.
func (s *Series) Value() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Set stores an absolute value. Only gauges may be set.
func (s *Series) Set(v float64) {
	if s.kind != KindGauge {
		panic(fmt.Sprintf("series: Set on %s %s{%s}", s.kind, s.name, s.key))
	}
	s.bits.Store(math.Float64bits(v))
}

// Add increases the value by delta. Counters ignore negative deltas.
func (s *Series) Add(delta float64) {
	if s.kind == KindCounter && delta < 0 {
		return
	}
	for {
		old := s.bits.Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if s.bits.CompareAndSwap(old, next) {
			return
		}
	}
}
