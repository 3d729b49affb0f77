// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/torchlight-io/torchlight/internal/database/query"
	"github.com/torchlight-io/torchlight/internal/models"
)

// HostFilter narrows the host listing.
type HostFilter struct {
	// Year filters on game_year; zero means all years.
	Year int
	// Season filters on game_season, case-insensitively ("summer", "Winter").
	Season string
}

const hostColumns = `game_slug, game_name, game_location, game_season, game_year, game_start_date, game_end_date`

// Hosts returns all game editions, most recent first.
func (db *DB) Hosts(ctx context.Context, filter HostFilter) ([]models.Host, error) {
	wb := query.NewWhereBuilder()
	if filter.Year != 0 {
		wb.AddClause("game_year = ?", filter.Year)
	}
	wb.AddEqualsFold("game_season", filter.Season)
	where, args := wb.Build()

	q := fmt.Sprintf(`SELECT %s FROM hosts WHERE %s ORDER BY game_year DESC, game_slug`, hostColumns, where)

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query hosts: %w", err)
	}
	defer closeQuietly(rows)

	var hosts []models.Host
	for rows.Next() {
		host, err := scanHost(rows)
		if err != nil {
			return nil, err
		}
		hosts = append(hosts, host)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hosts: %w", err)
	}
	return hosts, nil
}

// HostBySlug returns a single edition, or ErrNotFound.
func (db *DB) HostBySlug(ctx context.Context, slug string) (*models.Host, error) {
	q := fmt.Sprintf(`SELECT %s FROM hosts WHERE game_slug = ?`, hostColumns)

	stmt, err := db.stmt(ctx, q)
	if err != nil {
		return nil, err
	}

	host, err := scanHost(stmt.QueryRowContext(ctx, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &host, nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHost(row rowScanner) (models.Host, error) {
	var h models.Host
	var start, end sql.NullTime
	err := row.Scan(&h.GameSlug, &h.GameName, &h.GameLocation, &h.GameSeason, &h.GameYear, &start, &end)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return h, err
		}
		return h, fmt.Errorf("failed to scan host: %w", err)
	}
	h.GameStartDate = nullTime(start)
	h.GameEndDate = nullTime(end)
	return h, nil
}

func nullTime(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}

func nullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int64)
	return &i
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
