package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	httpadapter "github.com/couchcryptid/heritage-explorer/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/heritage-explorer/internal/adapter/kafka"
	"github.com/couchcryptid/heritage-explorer/internal/adapter/mapbox"
	"github.com/couchcryptid/heritage-explorer/internal/config"
	"github.com/couchcryptid/heritage-explorer/internal/domain"
	"github.com/couchcryptid/heritage-explorer/internal/observability"
	"github.com/couchcryptid/heritage-explorer/internal/pipeline"
	"github.com/couchcryptid/heritage-explorer/internal/recommend"
	"github.com/couchcryptid/heritage-explorer/internal/source"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Initialize geocoder (feature-flagged via MAPBOX_ENABLED / MAPBOX_TOKEN).
	var geocoder domain.Geocoder
	if cfg.MapboxEnabled {
		client := mapbox.NewClient(cfg.MapboxToken, cfg.MapboxTimeout, logger, metrics)
		geocoder = mapbox.NewCachedGeocoder(client, cfg.MapboxCacheSize, metrics)
		metrics.GeocodeEnabled.Set(1)
		logger.Info("mapbox geocoding enabled", "cache_size", cfg.MapboxCacheSize, "timeout", cfg.MapboxTimeout)
	} else {
		logger.Info("mapbox geocoding disabled")
	}

	src, closeSource, err := openSource(cfg, logger, metrics)
	if err != nil {
		logger.Error("failed to open data source", "source", cfg.DataSource, "error", err)
		os.Exit(1)
	}
	defer closeSource()

	builder := pipeline.NewBuilder(src, geocoder, cfg.SyntheticSeed, logger, metrics)
	ready := readiness{builder}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var writer *kafkaadapter.Writer
	if cfg.KafkaExportEnabled {
		writer = kafkaadapter.NewWriter(cfg, logger)
		runner := pipeline.NewRunner(builder, writer, cfg.ExportInterval, logger, metrics)
		ready = append(ready, runner)
		go func() {
			if err := runner.Run(ctx); err != nil {
				logger.Error("export loop error", "error", err)
			}
		}()
	}

	srv := httpadapter.NewServer(httpadapter.Options{
		Addr:               cfg.HTTPAddr,
		AppTitle:           cfg.AppTitle,
		AppIcon:            cfg.AppIcon,
		DataSource:         cfg.DataSource,
		Selection:          recommend.Selection(cfg.ItinerarySelection),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}, builder, ready, logger, metrics)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}

// openSource builds the configured table source. The returned func releases
// any warehouse connection pool.
func openSource(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) (source.Source, func(), error) {
	synthetic := source.NewSynthetic(cfg.SyntheticSeed)
	switch cfg.DataSource {
	case config.SourceFile:
		return source.NewFile(cfg.DataFile), func() {}, nil
	case config.SourceWarehouse:
		db, err := source.OpenWarehouse(cfg.WarehouseDriver, cfg.WarehouseDSN)
		if err != nil {
			return nil, nil, err
		}
		wh := source.NewWarehouse(db, cfg.WarehouseTimeout)
		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.WarehouseTimeout)
		defer cancel()
		if err := wh.Ping(pingCtx); err != nil {
			// Every table will fall back to synthetic data until the
			// warehouse comes back.
			logger.Warn("warehouse unreachable at startup", "driver", cfg.WarehouseDriver, "error", err)
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				logger.Error("warehouse close error", "error", err)
			}
		}
		return source.NewFallback(wh, synthetic, logger, metrics), closeDB, nil
	case config.SourceSynthetic:
		return synthetic, func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
	}
}

// readiness is ready when every check passes.
type readiness []sharedobs.ReadinessChecker

func (r readiness) CheckReadiness(ctx context.Context) error {
	for _, c := range r {
		if err := c.CheckReadiness(ctx); err != nil {
			return err
		}
	}
	return nil
}
