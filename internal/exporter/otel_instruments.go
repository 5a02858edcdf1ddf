package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	otelmetric "go.opentelemetry.io/otel/metric"

	"github.com/neox5/acctstat/internal/series"
)

// instrument is one observable OTEL instrument covering every series of a name.
type instrument struct {
	name string
	kind series.Kind

	mu       sync.RWMutex
	seen     map[*series.Series]struct{}
	observed []observedSeries
}

type observedSeries struct {
	series *series.Series
	attrs  otelmetric.MeasurementOption
}

func newInstrument(name string, kind series.Kind) *instrument {
	return &instrument{
		name: name,
		kind: kind,
		seen: make(map[*series.Series]struct{}),
	}
}

// add attaches s to the instrument. Adding a series twice is a no-op.
func (i *instrument) add(s *series.Series) {
	labels := s.Key().Labels()
	kvs := make([]attribute.KeyValue, len(labels))
	for j, l := range labels {
		kvs[j] = attribute.String(l.Name, l.Value)
	}

	i.mu.Lock()
	defer i.mu.Unlock()

	if _, ok := i.seen[s]; ok {
		return
	}
	i.seen[s] = struct{}{}
	i.observed = append(i.observed, observedSeries{
		series: s,
		attrs:  otelmetric.WithAttributeSet(attribute.NewSet(kvs...)),
	})
}

// callback observes the current value of every attached series.
func (i *instrument) callback(_ context.Context, o otelmetric.Float64Observer) error {
	i.mu.RLock()
	defer i.mu.RUnlock()

	for _, obs := range i.observed {
		o.Observe(obs.series.Value(), obs.attrs)
	}
	return nil
}

// register creates the observable instrument on meter.
func (i *instrument) register(meter otelmetric.Meter) error {
	var err error
	switch i.kind {
	case series.KindCounter:
		_, err = meter.Float64ObservableCounter(
			i.name,
			otelmetric.WithDescription(i.name),
			otelmetric.WithFloat64Callback(i.callback),
		)
	case series.KindGauge:
		_, err = meter.Float64ObservableGauge(
			i.name,
			otelmetric.WithDescription(i.name),
			otelmetric.WithFloat64Callback(i.callback),
		)
	default:
		err = fmt.Errorf("unknown series kind %q", i.kind)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s %q: %w", i.kind, i.name, err)
	}

	slog.Info("registered otel metric", "name", i.name, "type", i.kind)
	return nil
}
