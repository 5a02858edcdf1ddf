package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	otelmetric "go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/neox5/acctstat/internal/config"
	"github.com/neox5/acctstat/internal/series"
)

const meterName = "github.com/neox5/acctstat"

// OTELExporter pushes the series registry to an OTEL collector.
// One instrument is created per series name the first time it appears.
type OTELExporter struct {
	config        *config.OTELExportConfig
	meterProvider *sdkmetric.MeterProvider
	meter         otelmetric.Meter

	mu          sync.Mutex
	instruments map[string]*instrument
}

// NewOTELExporter creates a new OTEL exporter over the series registry.
func NewOTELExporter(cfg *config.OTELExportConfig, host string, reg *series.Registry) (*OTELExporter, error) {
	ctx := context.Background()

	res, err := createOTELResource(ctx, host, cfg.Resource)
	if err != nil {
		return nil, err
	}

	meterProvider, err := createMeterProvider(ctx, cfg, res)
	if err != nil {
		return nil, err
	}

	return newOTELExporter(cfg, meterProvider, reg), nil
}

func newOTELExporter(cfg *config.OTELExportConfig, meterProvider *sdkmetric.MeterProvider, reg *series.Registry) *OTELExporter {
	e := &OTELExporter{
		config:        cfg,
		meterProvider: meterProvider,
		meter:         meterProvider.Meter(meterName),
		instruments:   make(map[string]*instrument),
	}

	// Subscribe first so no series falls between the backfill and the subscription.
	reg.OnCreate(e.observe)
	reg.Each(e.observe)

	return e
}

// observe attaches s to the instrument of its name, creating it on first sight.
func (e *OTELExporter) observe(s *series.Series) {
	e.mu.Lock()
	inst, ok := e.instruments[s.Name()]
	if !ok {
		inst = newInstrument(s.Name(), s.Kind())
		if err := inst.register(e.meter); err != nil {
			e.mu.Unlock()
			slog.Warn("skipping otel metric", "name", s.Name(), "error", err)
			return
		}
		e.instruments[s.Name()] = inst
	}
	e.mu.Unlock()

	inst.add(s)
}

// Instruments returns the number of registered instruments.
func (e *OTELExporter) Instruments() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.instruments)
}

// Start blocks until ctx is cancelled and then flushes and stops the exporter.
// The periodic reader pushes on its own schedule.
func (e *OTELExporter) Start(ctx context.Context) error {
	slog.Info("starting otel exporter",
		"transport", e.config.Transport,
		"endpoint", e.config.GetEndpoint(),
		"interval", e.config.Interval,
	)

	<-ctx.Done()
	return e.Stop()
}

// Stop gracefully stops the exporter.
func (e *OTELExporter) Stop() error {
	slog.Info("shutting down otel exporter")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.meterProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down meter provider: %w", err)
	}
	return nil
}
