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

// MedalFilter narrows the raw medal listing.
type MedalFilter struct {
	GameSlug  string
	NOC       string
	MedalType string

	Limit  int
	Offset int
}

// Medals returns medal-winning results joined with their athletes.
func (db *DB) Medals(ctx context.Context, filter MedalFilter) ([]models.Medal, error) {
	wb := query.NewWhereBuilder()
	wb.AddClause("r.medal_type IS NOT NULL")
	wb.AddEquals("r.game_slug", filter.GameSlug)
	wb.AddEqualsFold("a.noc", filter.NOC)
	wb.AddEqualsFold("r.medal_type", filter.MedalType)
	where, args := wb.Build()

	q := fmt.Sprintf(`
		SELECT r.result_id, a.athlete_id, a.name, a.team, a.noc,
		       r.game_slug, r.sport, r.event, r.medal_type
		FROM results r
		JOIN athletes a ON a.athlete_id = r.athlete_id
		WHERE %s
		ORDER BY r.game_slug, r.sport, r.event, a.name`, where)
	q, args = applyLimitOffset(q, args, filter.Limit, filter.Offset)

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query medals: %w", err)
	}
	defer closeQuietly(rows)

	var medals []models.Medal
	for rows.Next() {
		var m models.Medal
		var team, noc sql.NullString
		if err := rows.Scan(&m.ResultID, &m.AthleteID, &m.AthleteName, &team, &noc,
			&m.GameSlug, &m.Sport, &m.Event, &m.MedalType); err != nil {
			return nil, fmt.Errorf("failed to scan medal: %w", err)
		}
		m.Team = nullString(team)
		m.NOC = nullString(noc)
		medals = append(medals, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medals: %w", err)
	}
	return medals, nil
}

// MedalistFilter narrows the medalist listing.
type MedalistFilter struct {
	GameSlug  string
	NOC       string
	MedalType string

	// OnlyIndividuals keeps athletes with no team recorded;
	// OnlyTeams keeps athletes competing for a team. Setting both
	// yields no rows.
	OnlyIndividuals bool
	OnlyTeams       bool

	Limit  int
	Offset int
}

// Medalists returns athletes with their aggregated medals, most
// decorated first.
func (db *DB) Medalists(ctx context.Context, filter MedalistFilter) ([]models.Medalist, error) {
	wb := query.NewWhereBuilder()
	wb.AddClause("r.medal_type IS NOT NULL")
	wb.AddEquals("r.game_slug", filter.GameSlug)
	wb.AddEqualsFold("a.noc", filter.NOC)
	wb.AddEqualsFold("r.medal_type", filter.MedalType)
	if filter.OnlyIndividuals {
		wb.AddClause("a.team IS NULL")
	}
	if filter.OnlyTeams {
		wb.AddClause("a.team IS NOT NULL")
	}
	where, args := wb.Build()

	q := fmt.Sprintf(`
		SELECT a.athlete_id, a.name, a.team, a.noc, COUNT(*) AS medal_count
		FROM results r
		JOIN athletes a ON a.athlete_id = r.athlete_id
		WHERE %s
		GROUP BY a.athlete_id, a.name, a.team, a.noc
		ORDER BY medal_count DESC, a.name, a.athlete_id`, where)
	q, args = applyLimitOffset(q, args, filter.Limit, filter.Offset)

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query medalists: %w", err)
	}
	defer closeQuietly(rows)

	var medalists []models.Medalist
	var ids []int
	for rows.Next() {
		var m models.Medalist
		var team, noc sql.NullString
		if err := rows.Scan(&m.AthleteID, &m.Name, &team, &noc, &m.MedalCount); err != nil {
			return nil, fmt.Errorf("failed to scan medalist: %w", err)
		}
		m.Team = nullString(team)
		m.NOC = nullString(noc)
		m.Medals = []models.MedalRef{}
		medalists = append(medalists, m)
		ids = append(ids, m.AthleteID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medalists: %w", err)
	}
	if len(medalists) == 0 {
		return medalists, nil
	}

	medals, err := db.medalRefsByAthlete(ctx, ids, filter.GameSlug, filter.MedalType)
	if err != nil {
		return nil, err
	}
	for i := range medalists {
		if refs, ok := medals[medalists[i].AthleteID]; ok {
			medalists[i].Medals = refs
		}
	}
	return medalists, nil
}

// medalRefsByAthlete fetches the medal list for each athlete ID in one
// query.
func (db *DB) medalRefsByAthlete(ctx context.Context, ids []int, gameSlug, medalType string) (map[int][]models.MedalRef, error) {
	wb := query.NewWhereBuilder()
	wb.AddClause("medal_type IS NOT NULL")
	wb.AddIntIn("athlete_id", ids)
	wb.AddEquals("game_slug", gameSlug)
	wb.AddEqualsFold("medal_type", medalType)
	where, args := wb.Build()

	q := fmt.Sprintf(`
		SELECT athlete_id, game_slug, sport, event, medal_type
		FROM results
		WHERE %s
		ORDER BY athlete_id, game_slug, event`, where)

	rows, err := db.conn.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query medal refs: %w", err)
	}
	defer closeQuietly(rows)

	refs := make(map[int][]models.MedalRef, len(ids))
	for rows.Next() {
		var athleteID int
		var ref models.MedalRef
		if err := rows.Scan(&athleteID, &ref.GameSlug, &ref.Sport, &ref.Event, &ref.MedalType); err != nil {
			return nil, fmt.Errorf("failed to scan medal ref: %w", err)
		}
		refs[athleteID] = append(refs[athleteID], ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate medal refs: %w", err)
	}
	return refs, nil
}
