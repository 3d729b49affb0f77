// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/torchlight-io/torchlight/internal/database/query"
	"github.com/torchlight-io/torchlight/internal/models"
)

// ResultFilter narrows the result listing.
type ResultFilter struct {
	AthleteID *int
	GameSlug  string
	// Sport matches case-insensitively.
	Sport string
	// Event matches as a case-insensitive substring.
	Event string
	// MedalType filters on one medal color, case-insensitively.
	MedalType string
	// MedalsOnly keeps only medal-winning results.
	MedalsOnly bool

	Limit  int
	Offset int
}

// Results returns results matching the filter, ordered by edition then
// event.
func (db *DB) Results(ctx context.Context, filter ResultFilter) ([]models.Result, error) {
	wb := query.NewWhereBuilder()
	if filter.AthleteID != nil {
		wb.AddClause("athlete_id = ?", *filter.AthleteID)
	}
	wb.AddEquals("game_slug", filter.GameSlug)
	wb.AddEqualsFold("sport", filter.Sport)
	wb.AddSubstring("event", filter.Event)
	wb.AddEqualsFold("medal_type", filter.MedalType)
	if filter.MedalsOnly {
		wb.AddClause("medal_type IS NOT NULL")
	}
	where, args := wb.Build()

	q := fmt.Sprintf(`
		SELECT result_id, athlete_id, game_slug, sport, event, medal_type
		FROM results
		WHERE %s
		ORDER BY game_slug, sport, event, result_id`, where)
	q, args = applyLimitOffset(q, args, filter.Limit, filter.Offset)

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer closeQuietly(rows)

	var results []models.Result
	for rows.Next() {
		var r models.Result
		var medal sql.NullString
		if err := rows.Scan(&r.ResultID, &r.AthleteID, &r.GameSlug, &r.Sport, &r.Event, &medal); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.MedalType = nullString(medal)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate results: %w", err)
	}
	return results, nil
}
