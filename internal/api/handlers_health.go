// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"context"
	"net/http"
	"time"
)

// healthStatus is the /health response body.
type healthStatus struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// HealthLive handles GET /health/live. The process answering at all is
// the entire check.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, healthStatus{Status: "ok"})
}

// HealthReady handles GET /health/ready: the dataset must be reachable
// before the instance can take traffic.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, healthStatus{
			Status:     "unavailable",
			Components: map[string]string{"database": err.Error()},
		})
		return
	}
	respondJSON(w, http.StatusOK, healthStatus{Status: "ok"})
}

// Health handles GET /health: overall status with per-component detail.
// A degraded prediction service does not fail the check; the query API
// works without it.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	components := map[string]string{"database": "ok"}
	status := http.StatusOK
	overall := "ok"

	if err := h.db.Ping(ctx); err != nil {
		components["database"] = err.Error()
		status = http.StatusServiceUnavailable
		overall = "unavailable"
	}

	if h.cfg.Prediction.Enabled {
		if err := h.predictor.Ping(ctx); err != nil {
			components["prediction"] = "unreachable"
			if overall == "ok" {
				overall = "degraded"
			}
		} else {
			components["prediction"] = "ok"
		}
	}

	respondJSON(w, status, healthStatus{Status: overall, Components: components})
}
