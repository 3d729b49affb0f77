// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"net/http"

	"github.com/torchlight-io/torchlight/internal/database"
	"github.com/torchlight-io/torchlight/internal/models"
)

// Medals handles GET /medals.
func (h *Handler) Medals(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := limitOffset(r, 200)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}
	filter := database.MedalFilter{
		GameSlug:  r.URL.Query().Get("game_slug"),
		NOC:       r.URL.Query().Get("noc"),
		MedalType: r.URL.Query().Get("medal_type"),
		Limit:     limit,
		Offset:    offset,
	}

	medals, err := h.db.Medals(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emptyAsList(medals))
}

// Medalists handles GET /medalists.
func (h *Handler) Medalists(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := limitOffset(r, 100)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}
	filter := database.MedalistFilter{
		GameSlug:        r.URL.Query().Get("game_slug"),
		NOC:             r.URL.Query().Get("noc"),
		MedalType:       r.URL.Query().Get("medal_type"),
		OnlyIndividuals: getBoolParam(r, "only_individuals"),
		OnlyTeams:       getBoolParam(r, "only_teams"),
		Limit:           limit,
		Offset:          offset,
	}

	medalists, err := h.db.Medalists(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, emptyAsList(medalists))
}
