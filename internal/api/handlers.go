// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/torchlight-io/torchlight/internal/config"
	"github.com/torchlight-io/torchlight/internal/database"
	"github.com/torchlight-io/torchlight/internal/models"
	"github.com/torchlight-io/torchlight/internal/prediction"
)

// Handler serves the query API. Handlers are stateless; all shared data
// lives in the read-only dataset behind db.
type Handler struct {
	db        *database.DB
	predictor prediction.Predictor
	cfg       *config.Config
}

// NewHandler creates the API handler.
func NewHandler(db *database.DB, predictor prediction.Predictor, cfg *config.Config) *Handler {
	if predictor == nil {
		predictor = prediction.Disabled{}
	}
	return &Handler{
		db:        db,
		predictor: predictor,
		cfg:       cfg,
	}
}

// respondDBError maps database errors onto the API error contract:
// ErrNotFound becomes a 404, everything else a generic 500.
func respondDBError(w http.ResponseWriter, err error) {
	if errors.Is(err, database.ErrNotFound) {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, nil)
		return
	}
	respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, err)
}

// emptyAsList protects list endpoints from serializing nil as null.
func emptyAsList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

// Hosts handles GET /hosts.
func (h *Handler) Hosts(w http.ResponseWriter, r *http.Request) {
	year, err := getIntParam(r, "year", 0)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}
	filter := database.HostFilter{
		Year:   year,
		Season: r.URL.Query().Get("season"),
	}

	hosts, err := h.db.Hosts(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emptyAsList(hosts))
}

// HostBySlug handles GET /hosts/{slug}.
func (h *Handler) HostBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	host, err := h.db.HostBySlug(r.Context(), slug)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, host)
}

// Athletes handles GET /athletes.
func (h *Handler) Athletes(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := limitOffset(r, 100)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}
	filter := database.AthleteFilter{
		Name:   r.URL.Query().Get("name"),
		Sex:    r.URL.Query().Get("sex"),
		NOC:    r.URL.Query().Get("noc"),
		Team:   r.URL.Query().Get("team"),
		Limit:  limit,
		Offset: offset,
	}

	athletes, err := h.db.Athletes(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emptyAsList(athletes))
}

// AthleteByID handles GET /athletes/{id}. A non-numeric id is
// indistinguishable from a missing athlete to the caller.
func (h *Handler) AthleteByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, nil)
		return
	}

	athlete, err := h.db.AthleteByID(r.Context(), id)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, athlete)
}

// Results handles GET /results.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := limitOffset(r, 200)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}
	filter := database.ResultFilter{
		GameSlug:   r.URL.Query().Get("game_slug"),
		Sport:      r.URL.Query().Get("sport"),
		Event:      r.URL.Query().Get("event"),
		MedalType:  r.URL.Query().Get("medal"),
		MedalsOnly: getBoolParam(r, "medals_only"),
		Limit:      limit,
		Offset:     offset,
	}
	if v := r.URL.Query().Get("athlete_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
			return
		}
		filter.AthleteID = &id
	}

	results, err := h.db.Results(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emptyAsList(results))
}
