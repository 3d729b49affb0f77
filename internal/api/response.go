// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package api provides HTTP routing and handlers for the Olympic Games
// query API using the Chi router.
package api

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/torchlight-io/torchlight/internal/logging"
	"github.com/torchlight-io/torchlight/internal/models"
)

// sanitizeLogValue replaces control characters so request-supplied
// strings cannot inject log lines.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")

	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondError sends the flat error envelope {"error": code}. Internal
// detail goes to the log, never to the caller.
func respondError(w http.ResponseWriter, status int, code string, err error) {
	if err != nil {
		logging.Error().
			Str("code", code).
			Str("error", sanitizeLogValue(err.Error())).
			Msg("API error")
	}
	respondJSON(w, status, models.APIError{Error: code})
}

// getIntParam extracts an integer query parameter with a default value.
// A malformed value is an error; the caller maps it to a 400.
func getIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid integer parameter %s: %q", key, value)
	}
	return intValue, nil
}

// getBoolParam treats only the literal "true" as true.
func getBoolParam(r *http.Request, key string) bool {
	return r.URL.Query().Get(key) == "true"
}

// limitOffset extracts pagination with a per-endpoint default limit.
// Negative values collapse to the defaults; non-numeric values are an
// error.
func limitOffset(r *http.Request, defaultLimit int) (int, int, error) {
	limit, err := getIntParam(r, "limit", defaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if limit < 0 {
		limit = defaultLimit
	}
	offset, err := getIntParam(r, "offset", 0)
	if err != nil {
		return 0, 0, err
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}
