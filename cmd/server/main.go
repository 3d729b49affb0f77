// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package main is the entry point for the Torchlight server.
//
// Torchlight is a read-only analytics API over the historical Olympic
// Games dataset: game editions, athletes, results, and medal tables
// aggregated per country with normalized country naming. An optional
// external ML service supplies medal forecasts, proxied behind a
// circuit breaker.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: settings from environment variables and config files (Koanf v2)
//  2. Database: embedded DuckDB, schema creation, CSV dataset ingestion
//  3. Prediction client: rate-limited, breaker-wrapped ML service proxy (optional)
//  4. Supervisor tree: reference-data refresher and the HTTP server
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest
// priority wins): environment variables, config file (config.yaml),
// built-in defaults.
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM: it stops
// accepting new connections, waits for in-flight requests to finish
// (10s timeout), then checkpoints and closes the database.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/torchlight-io/torchlight/internal/api"
	"github.com/torchlight-io/torchlight/internal/config"
	"github.com/torchlight-io/torchlight/internal/database"
	"github.com/torchlight-io/torchlight/internal/logging"
	"github.com/torchlight-io/torchlight/internal/prediction"
	"github.com/torchlight-io/torchlight/internal/refresh"
	"github.com/torchlight-io/torchlight/internal/supervisor"
	"github.com/torchlight-io/torchlight/internal/supervisor/services"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("db_path", cfg.Database.Path).
		Str("dataset_dir", cfg.Database.DatasetDir).
		Bool("prediction_enabled", cfg.Prediction.Enabled).
		Msg("Configuration loaded")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	if err := db.LoadDataset(context.Background()); err != nil {
		logging.Fatal().Err(err).Msg("Failed to load dataset")
	}

	// Prediction service is optional; without it the proxy endpoints
	// answer 503 and everything else works normally.
	var predictor prediction.Predictor = prediction.Disabled{}
	if cfg.Prediction.Enabled {
		predictor = prediction.NewCircuitBreakerClient(prediction.NewClient(&cfg.Prediction))
		if err := predictor.Ping(context.Background()); err != nil {
			logging.Warn().Err(err).Msg("Prediction service unreachable (will retry per request)")
		} else {
			logging.Info().Str("url", cfg.Prediction.URL).Msg("Connected to prediction service")
		}
	} else {
		logging.Info().Msg("Prediction service disabled")
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bridge zerolog to slog for sutureslog
	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())

	if cfg.Refresh.Enabled {
		tree.AddDataService(refresh.New(db, &cfg.Refresh))
	}

	router := api.NewRouter(cfg, db, predictor)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Server.Addr()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	logging.Info().Msg("Application stopped gracefully")
}
