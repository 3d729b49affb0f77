// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildEmpty(t *testing.T) {
	wb := NewWhereBuilder()
	clause, args := wb.Build()
	assert.Equal(t, "1=1", clause)
	assert.Empty(t, args)
	assert.True(t, wb.IsEmpty())
}

func TestAddEqualsSkipsEmpty(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddEquals("a.noc", "")
	assert.True(t, wb.IsEmpty())

	wb.AddEquals("a.noc", "USA")
	clause, args := wb.Build()
	assert.Equal(t, "a.noc = ?", clause)
	assert.Equal(t, []interface{}{"USA"}, args)
}

func TestAddSubstring(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddSubstring("a.name", "phelps")
	clause, args := wb.Build()
	assert.Equal(t, "a.name ILIKE ?", clause)
	assert.Equal(t, []interface{}{"%phelps%"}, args)
}

func TestAddInPlaceholders(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddIn("medal_type", []string{"Gold", "Silver"})
	clause, args := wb.Build()
	assert.Equal(t, "medal_type IN (?, ?)", clause)
	assert.Len(t, args, 2)
}

func TestChainedClausesJoinWithAnd(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddEquals("game_slug", "paris-2024").
		AddEqualsFold("game_season", "summer").
		AddClause("medal_type IS NOT NULL")

	clause, args := wb.Build()
	assert.Equal(t, "game_slug = ? AND game_season ILIKE ? AND medal_type IS NOT NULL", clause)
	assert.Equal(t, []interface{}{"paris-2024", "summer"}, args)
	assert.Equal(t, 3, wb.Count())
}

func TestBuildWithPrefix(t *testing.T) {
	wb := NewWhereBuilder()
	wb.AddIntIn("athlete_id", []int{1, 2, 3})
	clause, args := wb.BuildWithPrefix()
	assert.Equal(t, "WHERE athlete_id IN (?, ?, ?)", clause)
	assert.Len(t, args, 3)
}
