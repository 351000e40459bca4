package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bobmcallan/stocksage/internal/clients/stocksage"
	"github.com/bobmcallan/stocksage/internal/common"
	"github.com/bobmcallan/stocksage/internal/services/search"
	"github.com/bobmcallan/stocksage/internal/services/view"
	"github.com/bobmcallan/stocksage/internal/trace"
)

func main() {
	defaultConfig := os.Getenv("STOCKSAGE_CONFIG")
	if defaultConfig == "" {
		defaultConfig = "stocksage.toml"
	}
	configPath := flag.String("config", defaultConfig, "path to TOML config file")
	flag.Parse()

	common.LoadVersionFromFile()

	cfg, err := common.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)
	common.PrintBanner(os.Stderr, cfg, logger)

	closeTrace, err := setupTracing(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("Tracing disabled")
	}

	client := stocksage.NewClient(
		stocksage.WithBaseURL(cfg.API.BaseURL),
		stocksage.WithTimeout(cfg.API.GetTimeout()),
		stocksage.WithRateLimit(cfg.API.RateLimit),
		stocksage.WithLogger(logger),
	)
	controller := search.NewController(search.NewFetcher(client, logger), logger)

	var cache *ImageCache
	if cfg.Chart.Enabled {
		cache = NewImageCache(cfg.Chart.Dir, logger)
	}
	app := NewApp(controller, cache, view.ChartOptions{Width: cfg.Chart.Width, Height: cfg.Chart.Height}, os.Stdout, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx, os.Stdin) }()

	select {
	case err := <-done:
		if err != nil {
			logger.Error().Err(err).Msg("Input loop failed")
		}
	case <-ctx.Done():
		logger.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := trace.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("Trace flush failed")
	}
	closeTrace()

	common.PrintShutdownBanner(os.Stderr, logger)
}

// setupTracing starts span export when enabled. The returned func closes the span sink.
func setupTracing(cfg *common.Config) (func(), error) {
	noop := func() {}
	if !cfg.Tracing.Enabled {
		return noop, nil
	}

	var w io.Writer = os.Stderr
	closer := noop
	if cfg.Tracing.FilePath != "" {
		f, err := os.OpenFile(cfg.Tracing.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return noop, fmt.Errorf("open trace file %s: %w", cfg.Tracing.FilePath, err)
		}
		w = f
		closer = func() { f.Close() }
	}

	if err := trace.Init(trace.Options{Enabled: true, Writer: w, Version: common.GetVersion()}); err != nil {
		closer()
		return noop, err
	}
	return closer, nil
}
