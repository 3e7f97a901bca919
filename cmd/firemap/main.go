// Command firemap reads a wildfire incident table and writes an interactive
// HTML map with one hidden layer per year and a time-slider layer.
//
// Usage:
//
//	firemap [-input LA_fires.xlsx] [-output interactive_fire_map_with_years.html]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/couchcryptid/fire-map-etl/internal/adapter/leaflet"
	"github.com/couchcryptid/fire-map-etl/internal/adapter/mapbox"
	"github.com/couchcryptid/fire-map-etl/internal/adapter/table"
	"github.com/couchcryptid/fire-map-etl/internal/config"
	"github.com/couchcryptid/fire-map-etl/internal/domain"
	"github.com/couchcryptid/fire-map-etl/internal/observability"
	"github.com/couchcryptid/fire-map-etl/internal/pipeline"
)

const pushTimeout = 10 * time.Second

func main() {
	input := flag.String("input", "", "incident table (.xlsx, .csv or .db); overrides FIREMAP_INPUT")
	output := flag.String("output", "", "HTML map path; overrides FIREMAP_OUTPUT")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *input != "" {
		cfg.InputPath = *input
	}
	if *output != "" {
		cfg.OutputPath = *output
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runErr := run(ctx, cfg, logger, metrics)

	if cfg.PushgatewayURL != "" {
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		if err := metrics.Push(pushCtx, cfg.PushgatewayURL, cfg.PushgatewayJob); err != nil {
			logger.Warn("metrics push failed", "error", err)
		}
		cancel()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "firemap: %s\n", describe(runErr))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) error {
	reader := table.NewReader(cfg.InputPath, table.Options{
		Sheet:       cfg.Sheet,
		SQLiteTable: cfg.SQLiteTable,
	}, logger)
	renderer := leaflet.NewRenderer(cfg.OutputPath, logger)

	p := pipeline.New(reader, renderer, pipeline.Options{
		Horizon: cfg.Horizon,
		Title:   cfg.Title,
		Zoom:    cfg.Zoom,
	}, logger, metrics)

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, metrics, logger)
		if cfg.MapboxBaseURL != "" {
			client.WithBaseURL(cfg.MapboxBaseURL)
		}
		p.WithGeocoder(mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics))
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	if _, err := p.Run(ctx); err != nil {
		return err
	}
	logger.Info("map generated", "output", cfg.OutputPath)
	return nil
}

// describe turns a fatal pipeline error into a message for the operator.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrInputUnreadable):
		return fmt.Sprintf("cannot read input: %v", err)
	case errors.Is(err, domain.ErrSchemaMismatch):
		return fmt.Sprintf("input is missing required columns: %v", err)
	case errors.Is(err, domain.ErrEmptyDataset):
		return fmt.Sprintf("no usable incidents, nothing written: %v", err)
	case errors.Is(err, domain.ErrOutputWrite):
		return fmt.Sprintf("cannot write map: %v", err)
	default:
		return err.Error()
	}
}
