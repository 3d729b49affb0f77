// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"github.com/torchlight-io/torchlight/internal/validation"
)

// topCountriesRequest validates the /medal_countries/top parameters.
// The limit is clamped separately, see clampTopLimit.
type topCountriesRequest struct {
	Order string `validate:"omitempty,oneof=total gold"`
	Limit int
}

// clampTopLimit caps the leaderboard size so nobody can request the
// whole table through the top endpoint. Non-positive values fall back
// to the default.
func clampTopLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > 50 {
		return 50
	}
	return limit
}

// historyRequest validates the /history/medals parameters.
type historyRequest struct {
	Country string `validate:"required"`
}

// validateRequest runs struct validation and reports whether the
// request passed. The caller maps a failure to a 400.
func validateRequest(v interface{}) error {
	if err := validation.ValidateStruct(v); err != nil {
		return err
	}
	return nil
}
