// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package medals

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchlight-io/torchlight/internal/models"
)

func strPtr(s string) *string { return &s }

func TestAggregateMergesNormalizedVariants(t *testing.T) {
	rows := []SourceRow{
		{Label: "United States Team #2", NOC: strPtr("USA"), Gold: 2, Silver: 1},
		{Label: "usa", NOC: strPtr("USA"), Gold: 1, Bronze: 3},
		{Label: "France", NOC: strPtr("FRA"), Gold: 1, Silver: 1, Bronze: 1},
	}

	table := Aggregate(rows)
	require.Len(t, table, 2)

	us := table[0]
	assert.Equal(t, "United States", us.CountryName)
	require.NotNil(t, us.NOC)
	assert.Equal(t, "USA", *us.NOC)
	assert.Equal(t, 3, us.GoldCount)
	assert.Equal(t, 1, us.SilverCount)
	assert.Equal(t, 3, us.BronzeCount)
	assert.Equal(t, 7, us.MedalCount)

	assert.Equal(t, "France", table[1].CountryName)
	assert.Equal(t, 3, table[1].MedalCount)
}

func TestAggregateGroupsByNameWithoutNOC(t *testing.T) {
	rows := []SourceRow{
		{Label: "Soviet Union", Gold: 5},
		{Label: "USSR", Silver: 2},
	}

	table := Aggregate(rows)
	require.Len(t, table, 1)
	assert.Equal(t, "Russia", table[0].CountryName)
	assert.Nil(t, table[0].NOC)
	assert.Equal(t, 7, table[0].MedalCount)
}

func TestAggregateSkipsRowsWithNoIdentity(t *testing.T) {
	rows := []SourceRow{
		{Label: "", NOC: nil, Gold: 1},
		{Label: "   ", NOC: nil, Silver: 1},
	}
	assert.Empty(t, Aggregate(rows))
}

func TestAggregateTotalInvariant(t *testing.T) {
	rows := []SourceRow{
		{Label: "France", NOC: strPtr("FRA"), Gold: 4, Silver: 2, Bronze: 9},
		{Label: "Japan", NOC: strPtr("JPN"), Gold: 1, Silver: 7},
		{Label: "Kenya", NOC: strPtr("KEN"), Bronze: 3},
	}

	for _, mc := range Aggregate(rows) {
		assert.Equal(t, mc.GoldCount+mc.SilverCount+mc.BronzeCount, mc.MedalCount, mc.CountryName)
	}
}

func TestParseOrder(t *testing.T) {
	tests := []struct {
		input string
		want  Order
		ok    bool
	}{
		{"", OrderTotal, true},
		{"total", OrderTotal, true},
		{"gold", OrderGold, true},
		{"GOLD", OrderGold, true},
		{"silver", "", false},
		{"bogus", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseOrder(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSortOrderTotal(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "B", MedalCount: 5},
		{CountryName: "A", MedalCount: 5},
		{CountryName: "C", MedalCount: 9},
	}

	Sort(table, OrderTotal)

	assert.Equal(t, "C", table[0].CountryName)
	assert.Equal(t, "A", table[1].CountryName, "ties break by name ascending")
	assert.Equal(t, "B", table[2].CountryName)
}

func TestSortOrderTotalGoldTiebreak(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "Austria", SilverCount: 3, BronzeCount: 2, MedalCount: 5},
		{CountryName: "Zambia", GoldCount: 5, MedalCount: 5},
	}

	Sort(table, OrderTotal)

	assert.Equal(t, "Zambia", table[0].CountryName, "equal totals order by gold before name")
	assert.Equal(t, "Austria", table[1].CountryName)
}

func TestSortOrderGold(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "A", GoldCount: 2, SilverCount: 0, MedalCount: 2},
		{CountryName: "B", GoldCount: 3, SilverCount: 1, MedalCount: 4},
		{CountryName: "C", GoldCount: 3, SilverCount: 2, MedalCount: 5},
		{CountryName: "D", GoldCount: 3, SilverCount: 2, BronzeCount: 1, MedalCount: 6},
	}

	Sort(table, OrderGold)

	names := []string{table[0].CountryName, table[1].CountryName, table[2].CountryName, table[3].CountryName}
	assert.Equal(t, []string{"D", "C", "B", "A"}, names)
}

func TestRankDense(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "A", MedalCount: 10},
		{CountryName: "B", MedalCount: 7},
		{CountryName: "C", MedalCount: 7},
		{CountryName: "D", MedalCount: 3},
	}

	ranked := Rank(table)
	require.Len(t, ranked, 4)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
	assert.Equal(t, 2, ranked[2].Rank)
	assert.Equal(t, 3, ranked[3].Rank)
}

func TestTotalsMatchColumnSums(t *testing.T) {
	table := []models.MedalCountry{
		{GoldCount: 4, SilverCount: 2, BronzeCount: 1, MedalCount: 7},
		{GoldCount: 1, SilverCount: 5, BronzeCount: 0, MedalCount: 6},
	}

	totals := Totals(table)
	assert.Equal(t, 5, totals.GoldCount)
	assert.Equal(t, 7, totals.SilverCount)
	assert.Equal(t, 1, totals.BronzeCount)
	assert.Equal(t, 13, totals.TotalMedals)
	assert.Equal(t, totals.GoldCount+totals.SilverCount+totals.BronzeCount, totals.TotalMedals)
}

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2, 3}, Paginate(items, 3, 0))
	assert.Equal(t, []int{3, 4}, Paginate(items, 2, 2))
	assert.Equal(t, []int{4, 5}, Paginate(items, 10, 3), "limit past the end returns the tail")
	assert.Empty(t, Paginate(items, 3, 99), "offset past the end returns empty")
	assert.Equal(t, items, Paginate(items, 0, 0), "zero limit means no limit")
	assert.Equal(t, []int{1, 2}, Paginate(items, 2, -1), "negative offset clamps to zero")
}
