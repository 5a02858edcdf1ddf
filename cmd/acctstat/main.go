package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/neox5/acctstat/internal/app"
	"github.com/neox5/acctstat/internal/config"
	"github.com/neox5/acctstat/internal/version"
)

func main() {
	cmd := &cli.Command{
		Name:    "acctstat",
		Usage:   "Expose process accounting and sysstat dumps as metrics",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to configuration file (defaults apply when empty)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
			&cli.StringFlag{
				Name:  "data-path",
				Usage: "directory watched for dump files (overrides config)",
			},
		},
		Action: serve,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	debug := cmd.Bool("debug")

	// Bootstrap logger until the configuration is known
	slog.SetDefault(newLogger(config.LogConfig{Level: "info", Format: config.LogFormatText}, debug))

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataPath := cmd.String("data-path"); dataPath != "" {
		cfg.Ingest.DataPath = dataPath
	}

	logger := newLogger(cfg.Log, debug)
	slog.SetDefault(logger)

	slog.Info("starting acctstat",
		"version", version.String(),
		"config", configPath,
		"host", cfg.Host,
		"data_path", cfg.Ingest.DataPath)

	application, err := app.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	// Setup graceful shutdown
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := application.Run(shutdownCtx); err != nil {
		return err
	}

	slog.Info("shutdown complete")
	return nil
}

// newLogger builds the process logger; debug forces the debug level.
func newLogger(cfg config.LogConfig, debug bool) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == config.LogFormatJSON {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
