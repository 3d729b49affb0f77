// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package refresh periodically reloads the reference datasets (country
// locations and GDP figures) so long-running deployments pick up corrections
// to the CSV sources without a restart.
package refresh

import (
	"context"
	"time"

	"github.com/torchlight-io/torchlight/internal/config"
	"github.com/torchlight-io/torchlight/internal/logging"
	"github.com/torchlight-io/torchlight/internal/metrics"
)

// Store is the subset of the database layer the refresher needs.
type Store interface {
	RefreshReferenceData(ctx context.Context) error
}

// Service reloads reference data on a fixed interval. It implements
// suture.Service and runs until its context is canceled.
type Service struct {
	store    Store
	interval time.Duration
}

// New builds a refresh service from configuration.
func New(store Store, cfg *config.RefreshConfig) *Service {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Service{
		store:    store,
		interval: interval,
	}
}

// Serve runs the refresh loop. The first reload happens after one full
// interval; startup ingestion has already populated the tables.
func (s *Service) Serve(ctx context.Context) error {
	log := logging.WithComponent("refresh")
	log.Info().Dur("interval", s.interval).Msg("Reference data refresh started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Reference data refresh stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Service) runOnce(ctx context.Context) {
	log := logging.WithComponent("refresh")
	start := time.Now()

	err := s.store.RefreshReferenceData(ctx)
	metrics.RecordRefresh(err)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Reference data refresh failed")
		return
	}

	log.Info().Dur("elapsed", time.Since(start)).Msg("Reference data refreshed")
}

func (s *Service) String() string {
	return "reference-data-refresh"
}
