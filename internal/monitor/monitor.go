package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/neox5/acctstat/internal/series"
)

// Self metric names, labelled by host.
const (
	MetricCPUPercent = "acctstat.process.cpu.pct"
	MetricHeapBytes  = "acctstat.process.heap.bytes"
	MetricGoroutines = "acctstat.process.goroutines"
)

// Monitor tracks the resource usage of the exporter process itself.
type Monitor struct {
	interval time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
	proc     *process.Process

	cpu        *series.Series
	heap       *series.Series
	goroutines *series.Series
}

// New creates a monitor sampling every interval and publishing into reg.
func New(interval time.Duration, host string, reg *series.Registry, logger *slog.Logger) (*Monitor, error) {
	if logger == nil {
		logger = slog.Default()
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to get process handle: %w", err)
	}

	key := series.NewKey("host", host)
	return &Monitor{
		interval:   interval,
		logger:     logger,
		proc:       proc,
		cpu:        reg.GetOrCreate(MetricCPUPercent, key, series.KindGauge),
		heap:       reg.GetOrCreate(MetricHeapBytes, key, series.KindGauge),
		goroutines: reg.GetOrCreate(MetricGoroutines, key, series.KindGauge),
	}, nil
}

// Run starts the monitoring loop in a background goroutine.
// The loop ends when ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) {
	m.wg.Go(func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		// Immediate first collection
		m.collect()

		for {
			select {
			case <-ctx.Done():
				m.logger.Info("monitor shutdown complete")
				return
			case <-ticker.C:
				m.collect()
			}
		}
	})
}

// Wait blocks until the monitor goroutine exits.
func (m *Monitor) Wait() {
	m.wg.Wait()
}

// collect samples the process, logs the sample and updates the gauges.
func (m *Monitor) collect() {
	processCPU, err := m.proc.CPUPercent()
	if err != nil {
		m.logger.Warn("failed to get CPU percent", "error", err)
		processCPU = 0
	}

	cores := runtime.GOMAXPROCS(-1)
	utilization := 0.0
	if cores > 0 {
		utilization = processCPU / float64(cores*100)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	goroutines := runtime.NumGoroutine()

	m.cpu.Set(processCPU)
	m.heap.Set(float64(ms.HeapAlloc))
	m.goroutines.Set(float64(goroutines))

	m.logger.LogAttrs(
		context.Background(),
		slog.LevelDebug,
		"resource",
		slog.String("cpu", fmt.Sprintf("%.4f%%", processCPU)),
		slog.String("util", fmt.Sprintf("%.4f%%", utilization*100)),
		slog.Int("cores", cores),
		slog.Int("gor", goroutines),
		slog.String("heap", fmt.Sprintf("%.2fMB", float64(ms.HeapAlloc)/(1024*1024))),
		slog.Uint64("gc", uint64(ms.NumGC)),
	)

	if utilization > 0.95 {
		m.logger.Warn("cpu saturation detected",
			"cpu", processCPU,
			"util_pct", utilization*100)
	}
}
