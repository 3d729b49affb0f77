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

	"github.com/torchlight-io/torchlight/internal/database/query"
	"github.com/torchlight-io/torchlight/internal/models"
)

// AthleteFilter narrows the athlete listing.
type AthleteFilter struct {
	// Name matches as a case-insensitive substring.
	Name string
	Sex  string
	NOC  string
	// Team matches as a case-insensitive substring.
	Team string

	Limit  int
	Offset int
}

const athleteColumns = `athlete_id, ref_id, name, sex, age, height, weight, team, noc`

// Athletes returns athletes matching the filter, ordered by name.
func (db *DB) Athletes(ctx context.Context, filter AthleteFilter) ([]models.Athlete, error) {
	wb := query.NewWhereBuilder()
	wb.AddSubstring("name", filter.Name)
	wb.AddEqualsFold("sex", filter.Sex)
	wb.AddEqualsFold("noc", filter.NOC)
	wb.AddSubstring("team", filter.Team)
	where, args := wb.Build()

	q := fmt.Sprintf(`SELECT %s FROM athletes WHERE %s ORDER BY name, athlete_id`, athleteColumns, where)
	q, args = applyLimitOffset(q, args, filter.Limit, filter.Offset)

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query athletes: %w", err)
	}
	defer closeQuietly(rows)

	var athletes []models.Athlete
	for rows.Next() {
		a, err := scanAthlete(rows)
		if err != nil {
			return nil, err
		}
		athletes = append(athletes, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate athletes: %w", err)
	}
	return athletes, nil
}

// AthleteByID returns a single athlete with all of their results, or
// ErrNotFound.
func (db *DB) AthleteByID(ctx context.Context, id int) (*models.AthleteDetail, error) {
	q := fmt.Sprintf(`SELECT %s FROM athletes WHERE athlete_id = ?`, athleteColumns)

	stmt, err := db.stmt(ctx, q)
	if err != nil {
		return nil, err
	}

	athlete, err := scanAthlete(stmt.QueryRowContext(ctx, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	results, err := db.Results(ctx, ResultFilter{AthleteID: &id})
	if err != nil {
		return nil, err
	}

	return &models.AthleteDetail{Athlete: athlete, Results: results}, nil
}

func scanAthlete(row rowScanner) (models.Athlete, error) {
	var a models.Athlete
	var refID, sex, team, noc sql.NullString
	var age sql.NullInt64
	var height, weight sql.NullFloat64
	err := row.Scan(&a.AthleteID, &refID, &a.Name, &sex, &age, &height, &weight, &team, &noc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return a, err
		}
		return a, fmt.Errorf("failed to scan athlete: %w", err)
	}
	a.RefID = nullString(refID)
	a.Sex = nullString(sex)
	a.Age = nullInt(age)
	a.Height = nullFloat(height)
	a.Weight = nullFloat(weight)
	a.Team = nullString(team)
	a.NOC = nullString(noc)
	return a, nil
}

// applyLimitOffset appends LIMIT/OFFSET clauses when set. Limit 0 means
// no limit; offset without limit is still honored.
func applyLimitOffset(q string, args []interface{}, limit, offset int) (string, []interface{}) {
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	if offset > 0 {
		q += " OFFSET ?"
		args = append(args, offset)
	}
	return q, args
}
