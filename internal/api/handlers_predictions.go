// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/torchlight-io/torchlight/internal/models"
	"github.com/torchlight-io/torchlight/internal/prediction"
)

// respondPredictionError maps prediction client errors onto the API
// error contract. An unreachable or open-circuit upstream is a 503 so
// callers can tell "no such country" from "try again later".
func respondPredictionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, prediction.ErrNotFound):
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, nil)
	case errors.Is(err, prediction.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUnavailable, err)
	default:
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, err)
	}
}

// PredictCountry handles GET /predictions/{country}, proxying the
// medal forecast service for a single country.
func (h *Handler) PredictCountry(w http.ResponseWriter, r *http.Request) {
	countryName := chi.URLParam(r, "country")

	pred, err := h.predictor.PredictCountry(r.Context(), countryName)
	if err != nil {
		respondPredictionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pred)
}

// PredictTop handles GET /predictions, proxying the forecast service's
// top-25 list.
func (h *Handler) PredictTop(w http.ResponseWriter, r *http.Request) {
	preds, err := h.predictor.PredictTop(r.Context())
	if err != nil {
		respondPredictionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emptyAsList(preds))
}
