package app

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/neox5/acctstat/internal/config"
	"github.com/neox5/acctstat/internal/exporter"
	"github.com/neox5/acctstat/internal/ingest"
	"github.com/neox5/acctstat/internal/monitor"
	"github.com/neox5/acctstat/internal/psacct"
	"github.com/neox5/acctstat/internal/series"
	"github.com/neox5/acctstat/internal/sysstat"
)

// App holds initialized application components.
type App struct {
	Config             *config.Config
	Series             *series.Registry
	Psacct             *psacct.Reconciler
	Sysstat            *sysstat.Reconciler
	Watcher            *ingest.Watcher
	Monitor            *monitor.Monitor
	PrometheusExporter *exporter.PrometheusExporter
	OTELExporter       *exporter.OTELExporter
}

// New wires all components from a validated configuration.
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reg := series.NewRegistry(logger.With("component", "series"))

	a := &App{
		Config:  cfg,
		Series:  reg,
		Psacct:  psacct.NewReconciler(reg, logger.With("component", "psacct")),
		Sysstat: sysstat.NewReconciler(reg, logger.With("component", "sysstat")),
	}

	a.Watcher = ingest.New(cfg.Ingest, cfg.Host, a.Psacct, a.Sysstat, logger.With("component", "ingest"))

	// OTEL subscribes to the registry, so it is created before any series.
	if cfg.Export.OTELEnabled() {
		otelExporter, err := exporter.NewOTELExporter(cfg.Export.OTEL, cfg.Host, reg)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTEL exporter: %w", err)
		}
		a.OTELExporter = otelExporter
	}

	if cfg.Export.PrometheusEnabled() {
		a.PrometheusExporter = exporter.NewPrometheusExporter(cfg.Export.Prometheus, reg)
	}

	if cfg.Monitor.IsEnabled() {
		mon, err := monitor.New(cfg.Monitor.Interval, cfg.Host, reg, logger.With("component", "monitor"))
		if err != nil {
			return nil, fmt.Errorf("failed to create monitor: %w", err)
		}
		a.Monitor = mon
	}

	return a, nil
}

// Run starts every component and blocks until ctx is cancelled or one of
// them fails. A failing component cancels the others.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.Watcher.Run(gctx)
	})

	if a.Monitor != nil {
		a.Monitor.Run(gctx)
		g.Go(func() error {
			a.Monitor.Wait()
			return nil
		})
	}

	if a.PrometheusExporter != nil {
		g.Go(func() error {
			if err := a.PrometheusExporter.Start(gctx); err != nil {
				return fmt.Errorf("prometheus exporter: %w", err)
			}
			return nil
		})
	}

	if a.OTELExporter != nil {
		g.Go(func() error {
			if err := a.OTELExporter.Start(gctx); err != nil {
				return fmt.Errorf("otel exporter: %w", err)
			}
			return nil
		})
	}

	return g.Wait()
}
