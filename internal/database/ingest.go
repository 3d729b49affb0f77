// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/torchlight-io/torchlight/internal/logging"
)

// Dataset file names expected inside the configured dataset directory.
const (
	hostsCSV     = "hosts.csv"
	athletesCSV  = "athletes.csv"
	resultsCSV   = "results.csv"
	locationsCSV = "country_locations.csv"
	gdpCSV       = "country_gdp.csv"
)

// LoadDataset ingests the Olympic CSV files from the configured dataset
// directory. Already-populated tables are left alone, so restarting the
// server does not duplicate data. Medal designators are normalized on
// the way in: any value starting with g/s/b becomes Gold/Silver/Bronze.
func (db *DB) LoadDataset(ctx context.Context) error {
	dir := db.cfg.DatasetDir
	if dir == "" {
		logging.Debug().Msg("No dataset directory configured, skipping ingest")
		return nil
	}

	loads := []struct {
		table string
		file  string
		load  func(ctx context.Context, path string) error
	}{
		{"hosts", hostsCSV, db.loadHosts},
		{"athletes", athletesCSV, db.loadAthletes},
		{"results", resultsCSV, db.loadResults},
		{"country_locations", locationsCSV, db.loadLocations},
		{"country_gdp", gdpCSV, db.loadGDP},
	}

	for _, l := range loads {
		count, err := db.tableCount(ctx, l.table)
		if err != nil {
			return err
		}
		if count > 0 {
			logging.Debug().Str("table", l.table).Int64("rows", count).Msg("Table already populated, skipping")
			continue
		}

		path := filepath.Join(dir, l.file)
		if _, err := os.Stat(path); err != nil {
			logging.Warn().Str("file", path).Msg("Dataset file missing, skipping")
			continue
		}

		if err := l.load(ctx, path); err != nil {
			return fmt.Errorf("failed to load %s: %w", l.table, err)
		}

		loaded, err := db.tableCount(ctx, l.table)
		if err != nil {
			return err
		}
		logging.Info().Str("table", l.table).Int64("rows", loaded).Msg("Dataset table loaded")
	}

	return nil
}

// RefreshReferenceData reloads the GDP and location reference tables
// from the dataset directory, replacing the existing rows. Used by the
// periodic refresher service.
func (db *DB) RefreshReferenceData(ctx context.Context) error {
	dir := db.cfg.DatasetDir
	if dir == "" {
		return nil
	}

	refreshes := []struct {
		table string
		file  string
		load  func(ctx context.Context, path string) error
	}{
		{"country_locations", locationsCSV, db.loadLocations},
		{"country_gdp", gdpCSV, db.loadGDP},
	}

	for _, r := range refreshes {
		path := filepath.Join(dir, r.file)
		if _, err := os.Stat(path); err != nil {
			continue
		}

		if _, err := db.conn.ExecContext(ctx, "DELETE FROM "+r.table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", r.table, err)
		}
		if err := r.load(ctx, path); err != nil {
			return fmt.Errorf("failed to reload %s: %w", r.table, err)
		}
	}

	return nil
}

func (db *DB) tableCount(ctx context.Context, table string) (int64, error) {
	var count int64
	if err := db.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

func (db *DB) loadHosts(ctx context.Context, path string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO hosts
		SELECT game_slug, game_name, game_location, game_season,
		       CAST(game_year AS INTEGER),
		       TRY_CAST(game_start_date AS DATE),
		       TRY_CAST(game_end_date AS DATE)
		FROM read_csv(?, header = true)`, path)
	return err
}

func (db *DB) loadAthletes(ctx context.Context, path string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO athletes
		SELECT CAST(athlete_id AS INTEGER),
		       NULLIF(TRIM(ref_id), ''),
		       name,
		       NULLIF(TRIM(sex), ''),
		       TRY_CAST(age AS INTEGER),
		       TRY_CAST(height AS DOUBLE),
		       TRY_CAST(weight AS DOUBLE),
		       NULLIF(TRIM(team), ''),
		       NULLIF(TRIM(noc), '')
		FROM read_csv(?, header = true)`, path)
	return err
}

func (db *DB) loadResults(ctx context.Context, path string) error {
	// Medal designators arrive in several spellings ("g", "Gold", "GOLD").
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO results
		SELECT CAST(result_id AS INTEGER),
		       CAST(athlete_id AS INTEGER),
		       game_slug, sport, event,
		       CASE
		           WHEN medal_type ILIKE 'g%' THEN 'Gold'
		           WHEN medal_type ILIKE 's%' THEN 'Silver'
		           WHEN medal_type ILIKE 'b%' THEN 'Bronze'
		           ELSE NULL
		       END
		FROM read_csv(?, header = true)`, path)
	return err
}

func (db *DB) loadLocations(ctx context.Context, path string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO country_locations
		SELECT country_name,
		       NULLIF(TRIM(noc), ''),
		       TRY_CAST(latitude AS DOUBLE),
		       TRY_CAST(longitude AS DOUBLE)
		FROM read_csv(?, header = true)`, path)
	return err
}

func (db *DB) loadGDP(ctx context.Context, path string) error {
	_, err := db.conn.ExecContext(ctx, `
		INSERT INTO country_gdp
		SELECT country_name,
		       NULLIF(TRIM(country_code), ''),
		       TRY_CAST(gdp AS DOUBLE)
		FROM read_csv(?, header = true)`, path)
	return err
}
