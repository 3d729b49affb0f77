// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package database

import (
	"context"
	"fmt"
	"time"
)

// createTables creates the dataset tables if they do not exist yet.
func (db *DB) createTables() error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS hosts (
			game_slug       VARCHAR PRIMARY KEY,
			game_name       VARCHAR NOT NULL,
			game_location   VARCHAR NOT NULL,
			game_season     VARCHAR NOT NULL,
			game_year       INTEGER NOT NULL,
			game_start_date DATE,
			game_end_date   DATE
		)`,
		`CREATE TABLE IF NOT EXISTS athletes (
			athlete_id INTEGER PRIMARY KEY,
			ref_id     VARCHAR,
			name       VARCHAR NOT NULL,
			sex        VARCHAR,
			age        INTEGER,
			height     DOUBLE,
			weight     DOUBLE,
			team       VARCHAR,
			noc        VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			result_id  INTEGER PRIMARY KEY,
			athlete_id INTEGER NOT NULL,
			game_slug  VARCHAR NOT NULL,
			sport      VARCHAR NOT NULL,
			event      VARCHAR NOT NULL,
			medal_type VARCHAR
		)`,
		`CREATE TABLE IF NOT EXISTS country_locations (
			country_name VARCHAR NOT NULL,
			noc          VARCHAR UNIQUE,
			latitude     DOUBLE,
			longitude    DOUBLE
		)`,
		`CREATE TABLE IF NOT EXISTS country_gdp (
			country_name VARCHAR NOT NULL,
			country_code VARCHAR UNIQUE,
			gdp          DOUBLE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_athlete ON results (athlete_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_game ON results (game_slug)`,
		`CREATE INDEX IF NOT EXISTS idx_results_medal ON results (medal_type)`,
		`CREATE INDEX IF NOT EXISTS idx_athletes_noc ON athletes (noc)`,
	}

	for _, stmt := range statements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute schema statement: %w", err)
		}
	}
	return nil
}
