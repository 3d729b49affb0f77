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
	"github.com/torchlight-io/torchlight/internal/medals"
)

// CountrySourceFilter narrows country aggregation to one edition or one
// medal color.
type CountrySourceFilter struct {
	GameSlug  string
	MedalType string
}

// CountrySourceRows returns medal counts grouped by the literal
// (team, noc) pair, ready for the country normalizer. Athletes with
// neither a team nor a NOC cannot be attributed to a country and are
// excluded. Name normalization and merging happen in the medals package.
func (db *DB) CountrySourceRows(ctx context.Context, filter CountrySourceFilter) ([]medals.SourceRow, error) {
	wb := query.NewWhereBuilder()
	wb.AddClause("r.medal_type IS NOT NULL")
	wb.AddClause("(a.team IS NOT NULL OR a.noc IS NOT NULL)")
	wb.AddEqualsFold("r.game_slug", filter.GameSlug)
	wb.AddEqualsFold("r.medal_type", filter.MedalType)
	whereClause, args := wb.Build()

	q := `
	SELECT COALESCE(a.team, a.name) AS label, a.noc,
	       SUM(CASE WHEN r.medal_type ILIKE 'Gold' THEN 1 ELSE 0 END) AS gold,
	       SUM(CASE WHEN r.medal_type ILIKE 'Silver' THEN 1 ELSE 0 END) AS silver,
	       SUM(CASE WHEN r.medal_type ILIKE 'Bronze' THEN 1 ELSE 0 END) AS bronze
	FROM results r
	JOIN athletes a ON a.athlete_id = r.athlete_id
	WHERE ` + whereClause + `
	GROUP BY COALESCE(a.team, a.name), a.noc`

	stmt, err := db.stmt(ctx, q)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query country aggregates: %w", err)
	}
	defer closeQuietly(rows)

	var out []medals.SourceRow
	for rows.Next() {
		var row medals.SourceRow
		var noc sql.NullString
		if err := rows.Scan(&row.Label, &noc, &row.Gold, &row.Silver, &row.Bronze); err != nil {
			return nil, fmt.Errorf("failed to scan country aggregate: %w", err)
		}
		row.NOC = nullString(noc)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate country aggregates: %w", err)
	}
	return out, nil
}

// CountryMedalRefs returns every medal row under the same attribution
// rules as CountrySourceRows, carrying the raw team identity so the
// medals package can attach nested medal lists to country aggregates.
func (db *DB) CountryMedalRefs(ctx context.Context, filter CountrySourceFilter) ([]medals.RefRow, error) {
	wb := query.NewWhereBuilder()
	wb.AddClause("r.medal_type IS NOT NULL")
	wb.AddClause("(a.team IS NOT NULL OR a.noc IS NOT NULL)")
	wb.AddEqualsFold("r.game_slug", filter.GameSlug)
	wb.AddEqualsFold("r.medal_type", filter.MedalType)
	whereClause, args := wb.Build()

	q := `
	SELECT COALESCE(a.team, a.name) AS label, a.noc,
	       r.game_slug, r.sport, r.event, r.medal_type
	FROM results r
	JOIN athletes a ON a.athlete_id = r.athlete_id
	WHERE ` + whereClause + `
	ORDER BY r.result_id`

	stmt, err := db.stmt(ctx, q)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query country medal refs: %w", err)
	}
	defer closeQuietly(rows)

	var out []medals.RefRow
	for rows.Next() {
		var row medals.RefRow
		var noc sql.NullString
		if err := rows.Scan(&row.Label, &noc,
			&row.Ref.GameSlug, &row.Ref.Sport, &row.Ref.Event, &row.Ref.MedalType); err != nil {
			return nil, fmt.Errorf("failed to scan country medal ref: %w", err)
		}
		row.NOC = nullString(noc)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate country medal refs: %w", err)
	}
	return out, nil
}

// HistorySourceRow is a team-level medal aggregate for one edition.
type HistorySourceRow struct {
	GameSlug   string
	GameYear   int
	GameSeason string
	Label      string
	NOC        *string
	Gold       int
	Silver     int
	Bronze     int
}

const historySourceQuery = `
	SELECT h.game_slug, h.game_year, h.game_season,
	       COALESCE(a.team, a.name) AS label, a.noc,
	       SUM(CASE WHEN r.medal_type ILIKE 'Gold' THEN 1 ELSE 0 END) AS gold,
	       SUM(CASE WHEN r.medal_type ILIKE 'Silver' THEN 1 ELSE 0 END) AS silver,
	       SUM(CASE WHEN r.medal_type ILIKE 'Bronze' THEN 1 ELSE 0 END) AS bronze
	FROM results r
	JOIN athletes a ON a.athlete_id = r.athlete_id
	JOIN hosts h ON h.game_slug = r.game_slug
	WHERE r.medal_type IS NOT NULL
	  AND (a.team IS NOT NULL OR a.noc IS NOT NULL)
	GROUP BY h.game_slug, h.game_year, h.game_season, COALESCE(a.team, a.name), a.noc
	ORDER BY h.game_year, h.game_slug`

// HistorySourceRows returns team-level medal aggregates per edition,
// chronological, for the country history endpoint.
func (db *DB) HistorySourceRows(ctx context.Context) ([]HistorySourceRow, error) {
	stmt, err := db.stmt(ctx, historySourceQuery)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query history aggregates: %w", err)
	}
	defer closeQuietly(rows)

	var out []HistorySourceRow
	for rows.Next() {
		var row HistorySourceRow
		var noc sql.NullString
		if err := rows.Scan(&row.GameSlug, &row.GameYear, &row.GameSeason,
			&row.Label, &noc, &row.Gold, &row.Silver, &row.Bronze); err != nil {
			return nil, fmt.Errorf("failed to scan history aggregate: %w", err)
		}
		row.NOC = nullString(noc)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history aggregates: %w", err)
	}
	return out, nil
}

// GDPRows returns the GDP reference table.
func (db *DB) GDPRows(ctx context.Context) ([]medals.GDPRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT country_name, country_code, gdp FROM country_gdp`)
	if err != nil {
		return nil, fmt.Errorf("failed to query country_gdp: %w", err)
	}
	defer closeQuietly(rows)

	var out []medals.GDPRow
	for rows.Next() {
		var row medals.GDPRow
		var code sql.NullString
		var gdp sql.NullFloat64
		if err := rows.Scan(&row.CountryName, &code, &gdp); err != nil {
			return nil, fmt.Errorf("failed to scan country_gdp: %w", err)
		}
		row.CountryCode = nullString(code)
		row.GDP = nullFloat(gdp)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate country_gdp: %w", err)
	}
	return out, nil
}

// LocationRows returns the geographic reference table.
func (db *DB) LocationRows(ctx context.Context) ([]medals.LocationRow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT country_name, noc, latitude, longitude FROM country_locations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query country_locations: %w", err)
	}
	defer closeQuietly(rows)

	var out []medals.LocationRow
	for rows.Next() {
		var row medals.LocationRow
		var noc sql.NullString
		var lat, lon sql.NullFloat64
		if err := rows.Scan(&row.CountryName, &noc, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan country_locations: %w", err)
		}
		row.NOC = nullString(noc)
		row.Latitude = nullFloat(lat)
		row.Longitude = nullFloat(lon)
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate country_locations: %w", err)
	}
	return out, nil
}
