// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"context"
	"net/http"

	"github.com/torchlight-io/torchlight/internal/country"
	"github.com/torchlight-io/torchlight/internal/database"
	"github.com/torchlight-io/torchlight/internal/medals"
	"github.com/torchlight-io/torchlight/internal/models"
)

// countrySourceFilter reads the shared medal-country query parameters.
func countrySourceFilter(r *http.Request) database.CountrySourceFilter {
	return database.CountrySourceFilter{
		GameSlug:  r.URL.Query().Get("game_slug"),
		MedalType: r.URL.Query().Get("medal_type"),
	}
}

// countryTable runs the full aggregation pipeline: team-level rows from
// the database, then normalization and merging. The result is sorted by
// total medals descending, gold descending, name ascending.
func (h *Handler) countryTable(ctx context.Context, filter database.CountrySourceFilter) ([]models.MedalCountry, error) {
	rows, err := h.db.CountrySourceRows(ctx, filter)
	if err != nil {
		return nil, err
	}
	return medals.Aggregate(rows), nil
}

// MedalCountries handles GET /medal_countries: per-country aggregates
// with each country's nested medal list.
func (h *Handler) MedalCountries(w http.ResponseWriter, r *http.Request) {
	filter := countrySourceFilter(r)
	limit, offset, err := limitOffset(r, 100)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}

	table, err := h.countryTable(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}

	refs, err := h.db.CountryMedalRefs(r.Context(), filter)
	if err != nil {
		respondDBError(w, err)
		return
	}
	medals.AttachRefs(table, refs)

	respondJSON(w, http.StatusOK, medals.Paginate(table, limit, offset))
}

// MedalCountriesRanking handles GET /medal_countries/ranking:
// aggregates with a dense rank attached, no nested detail.
func (h *Handler) MedalCountriesRanking(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := limitOffset(r, 100)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}

	table, err := h.countryTable(r.Context(), countrySourceFilter(r))
	if err != nil {
		respondDBError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, medals.Paginate(medals.Rank(table), limit, offset))
}

// MedalCountriesTotals handles GET /medal_countries/totals: every
// country plus a global summary object.
func (h *Handler) MedalCountriesTotals(w http.ResponseWriter, r *http.Request) {
	table, err := h.countryTable(r.Context(), countrySourceFilter(r))
	if err != nil {
		respondDBError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.MedalTotals{
		Countries: table,
		Global:    medals.Totals(table),
	})
}

// MedalCountriesTop handles GET /medal_countries/top: the leaderboard,
// ordered by total medals or by gold-first comparison.
func (h *Handler) MedalCountriesTop(w http.ResponseWriter, r *http.Request) {
	limit, err := getIntParam(r, "limit", 10)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}
	req := topCountriesRequest{
		Order: r.URL.Query().Get("order"),
		Limit: limit,
	}
	if err := validateRequest(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}
	order, ok := medals.ParseOrder(req.Order)
	if !ok {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, nil)
		return
	}

	table, err := h.countryTable(r.Context(), countrySourceFilter(r))
	if err != nil {
		respondDBError(w, err)
		return
	}

	medals.Sort(table, order)
	respondJSON(w, http.StatusOK, medals.Paginate(table, clampTopLimit(req.Limit), 0))
}

// GDPVsMedals handles GET /stats/gdp-vs-medals: the full country table
// left-joined against the GDP reference data.
func (h *Handler) GDPVsMedals(w http.ResponseWriter, r *http.Request) {
	table, err := h.countryTable(r.Context(), database.CountrySourceFilter{})
	if err != nil {
		respondDBError(w, err)
		return
	}

	gdp, err := h.db.GDPRows(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, medals.JoinGDP(table, gdp))
}

// CountryLocations handles GET /countries/locations: the full country
// table left-joined against the geographic reference data.
func (h *Handler) CountryLocations(w http.ResponseWriter, r *http.Request) {
	table, err := h.countryTable(r.Context(), database.CountrySourceFilter{})
	if err != nil {
		respondDBError(w, err)
		return
	}

	locations, err := h.db.LocationRows(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, medals.JoinLocations(table, locations))
}

// MedalHistory handles GET /history/medals: per-edition medal counts
// over time for one country, selected by NOC code or name.
func (h *Handler) MedalHistory(w http.ResponseWriter, r *http.Request) {
	req := historyRequest{Country: r.URL.Query().Get("country")}
	if req.Country == "" {
		// The frontend historically sent ?noc=USA.
		req.Country = r.URL.Query().Get("noc")
	}
	if err := validateRequest(&req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeBadRequest, err)
		return
	}

	rows, err := h.db.HistorySourceRows(r.Context())
	if err != nil {
		respondDBError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, historyFor(rows, req.Country))
}

// historyFor folds edition-level team rows into one entry per edition
// for the requested country. Input rows arrive chronological; output
// order follows.
func historyFor(rows []database.HistorySourceRow, query string) []models.HistoryEntry {
	out := []models.HistoryEntry{}
	idx := make(map[string]int)

	for _, row := range rows {
		name := country.Normalize(row.Label)
		if !country.Matches(name, row.NOC, query) {
			continue
		}

		i, ok := idx[row.GameSlug]
		if !ok {
			out = append(out, models.HistoryEntry{
				GameSlug:   row.GameSlug,
				GameYear:   row.GameYear,
				GameSeason: row.GameSeason,
			})
			i = len(out) - 1
			idx[row.GameSlug] = i
		}
		out[i].GoldCount += row.Gold
		out[i].SilverCount += row.Silver
		out[i].BronzeCount += row.Bronze
		out[i].MedalCount += row.Gold + row.Silver + row.Bronze
	}
	return out
}
