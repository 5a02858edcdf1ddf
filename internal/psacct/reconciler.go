package psacct

import (
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/neox5/acctstat/internal/series"
)

// Metric names exported per process@host.
const (
	MetricInvocationTotal = "psacct.invocation.total"
	MetricInvocationCount = "psacct.invocation.count"
	MetricTimeElapsed     = "psacct.time.elapsed"
	MetricTimeUser        = "psacct.time.user"
	MetricTimeSystem      = "psacct.time.system"
	MetricFaultMajor      = "psacct.vm.fault.major"
	MetricFaultMinor      = "psacct.vm.fault.minor"
	MetricSwapEvents      = "psacct.vm.swap.events"
)

// keySeries holds the cumulative counter and the per-interval gauges of one key.
type keySeries struct {
	total *series.Series

	count      *series.Series
	elapsed    *series.Series
	user       *series.Series
	system     *series.Series
	majFaults  *series.Series
	minFaults  *series.Series
	swapEvents *series.Series
}

func (k *keySeries) gauges() []*series.Series {
	return []*series.Series{k.count, k.elapsed, k.user, k.system, k.majFaults, k.minFaults, k.swapEvents}
}

// Reconciler maps process accounting records onto registered series.
type Reconciler struct {
	registry *series.Registry
	logger   *slog.Logger

	mu   sync.Mutex
	keys map[string]*keySeries
}

// NewReconciler creates a reconciler publishing into registry.
func NewReconciler(registry *series.Registry, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		registry: registry,
		logger:   logger,
		keys:     make(map[string]*keySeries),
	}
}

// seriesFor returns the series of a key, registering them on first sight.
func (r *Reconciler) seriesFor(rec Record) *keySeries {
	id := rec.Key()

	r.mu.Lock()
	defer r.mu.Unlock()

	if ks, ok := r.keys[id]; ok {
		return ks
	}

	r.logger.Debug("registering psacct series", "key", id)

	key := series.NewKey("host", rec.Host, "process", rec.Process)
	gauge := func(name string) *series.Series {
		return r.registry.GetOrCreate(name, key, series.KindGauge)
	}

	ks := &keySeries{
		total:      r.registry.GetOrCreate(MetricInvocationTotal, key, series.KindCounter),
		count:      gauge(MetricInvocationCount),
		elapsed:    gauge(MetricTimeElapsed),
		user:       gauge(MetricTimeUser),
		system:     gauge(MetricTimeSystem),
		majFaults:  gauge(MetricFaultMajor),
		minFaults:  gauge(MetricFaultMinor),
		swapEvents: gauge(MetricSwapEvents),
	}
	r.keys[id] = ks
	return ks
}

// RegisterRecord accumulates the invocation counter and overwrites the
// per-interval gauges of the record's key.
func (r *Reconciler) RegisterRecord(rec Record) {
	ks := r.seriesFor(rec)

	ks.total.Add(float64(rec.NumCalls))

	ks.count.Set(float64(rec.NumCalls))
	ks.elapsed.Set(millis(rec.ElapsedTime))
	ks.user.Set(millis(rec.UserTime))
	ks.system.Set(millis(rec.SystemTime))
	ks.majFaults.Set(float64(rec.MajFaults))
	ks.minFaults.Set(float64(rec.MinFaults))
	ks.swapEvents.Set(float64(rec.SwapEvents))
}

// millis converts seconds to whole milliseconds, truncating toward zero.
// The value is first rounded to microseconds so that decimal inputs such as
// 2.01 are not pulled below their exact millisecond.
func millis(seconds float64) float64 {
	return math.Trunc(math.Round(seconds*1e6) / 1e3)
}

// ResetGauges zeroes the per-interval gauges of every seen key.
// Counters are left untouched.
func (r *Reconciler) ResetGauges() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Debug("resetting psacct gauges", "keys", len(r.keys))

	for _, ks := range r.keys {
		for _, g := range ks.gauges() {
			g.Set(0)
		}
	}
}

// Keys returns the sorted process@host keys seen so far.
func (r *Reconciler) Keys() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]string, 0, len(r.keys))
	for k := range r.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
