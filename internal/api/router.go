// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/torchlight-io/torchlight/internal/config"
	"github.com/torchlight-io/torchlight/internal/database"
	"github.com/torchlight-io/torchlight/internal/middleware"
	"github.com/torchlight-io/torchlight/internal/prediction"
)

// Router wires handlers, middleware, and configuration into one HTTP
// handler.
type Router struct {
	handler *Handler
	mw      *ChiMiddleware
	cfg     *config.Config
}

// NewRouter creates the API router.
func NewRouter(cfg *config.Config, db *database.DB, predictor prediction.Predictor) *Router {
	return &Router{
		handler: NewHandler(db, predictor, cfg),
		mw:      NewChiMiddleware(&cfg.Security),
		cfg:     cfg,
	}
}

// Setup configures all routes. Data endpoints live under /api; health
// and metrics sit at the root so probes bypass the API rate limit.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware(middleware.RequestID))
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.mw.CORS())

	r.Route("/health", func(r chi.Router) {
		r.Use(router.mw.RateLimitHealth())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	if router.cfg.Metrics.Enabled {
		r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(router.mw.RateLimit())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))

		r.Get("/hosts", router.handler.Hosts)
		r.Get("/hosts/{slug}", router.handler.HostBySlug)
		r.Get("/athletes", router.handler.Athletes)
		r.Get("/athletes/{id}", router.handler.AthleteByID)
		r.Get("/results", router.handler.Results)
		r.Get("/medals", router.handler.Medals)
		r.Get("/medalists", router.handler.Medalists)

		r.Get("/medal_countries", router.handler.MedalCountries)
		r.Get("/medal_countries/ranking", router.handler.MedalCountriesRanking)
		r.Get("/medal_countries/totals", router.handler.MedalCountriesTotals)
		r.Get("/medal_countries/top", router.handler.MedalCountriesTop)

		r.Get("/stats/gdp-vs-medals", router.handler.GDPVsMedals)
		r.Get("/countries/locations", router.handler.CountryLocations)
		r.Get("/history/medals", router.handler.MedalHistory)

		r.Get("/predictions", router.handler.PredictTop)
		r.Get("/predictions/{country}", router.handler.PredictCountry)
	})

	return r
}
