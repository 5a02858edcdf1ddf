package exporter

import (
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/neox5/acctstat/internal/series"
)

// collector implements prometheus.Collector over the series registry.
// It describes nothing and is registered unchecked, since series appear
// while the process runs.
type collector struct {
	series *series.Registry

	mu    sync.Mutex
	descs map[string]*prometheus.Desc
}

// newCollector creates a collector reading from the series registry.
func newCollector(reg *series.Registry) *collector {
	return &collector{
		series: reg,
		descs:  make(map[string]*prometheus.Desc),
	}
}

// PrometheusName converts a dotted series name to its Prometheus form.
func PrometheusName(name string) string {
	return strings.NewReplacer(".", "_", "-", "_").Replace(name)
}

// Describe sends nothing, making the collector unchecked.
func (c *collector) Describe(ch chan<- *prometheus.Desc) {}

// Collect reads every series on each scrape.
func (c *collector) Collect(ch chan<- prometheus.Metric) {
	c.series.Each(func(s *series.Series) {
		names, values := sortedLabels(s.Key())

		m, err := prometheus.NewConstMetric(
			c.desc(s.Name(), names),
			valueType(s.Kind()),
			s.Value(),
			values...,
		)
		if err != nil {
			slog.Debug("skipping series", "name", s.Name(), "error", err)
			return
		}

		ch <- m
	})
}

// desc returns the cached descriptor for a name and label set.
func (c *collector) desc(name string, labelNames []string) *prometheus.Desc {
	id := name + "{" + strings.Join(labelNames, ",") + "}"

	c.mu.Lock()
	defer c.mu.Unlock()

	if d, ok := c.descs[id]; ok {
		return d
	}

	d := prometheus.NewDesc(PrometheusName(name), name, labelNames, nil)
	c.descs[id] = d
	return d
}

func valueType(kind series.Kind) prometheus.ValueType {
	if kind == series.KindCounter {
		return prometheus.CounterValue
	}
	return prometheus.GaugeValue
}

// sortedLabels splits a key into label names and values ordered by name.
func sortedLabels(key series.Key) ([]string, []string) {
	labels := key.Labels()
	sort.Slice(labels, func(i, j int) bool { return labels[i].Name < labels[j].Name })

	names := make([]string, len(labels))
	values := make([]string, len(labels))
	for i, l := range labels {
		names[i] = l.Name
		values[i] = l.Value
	}
	return names, values
}
