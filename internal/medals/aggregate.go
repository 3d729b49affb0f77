// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package medals builds per-country medal tables from raw team-level
// aggregates.
//
// The database groups medal counts by the literal (team, noc) pair; this
// package runs the country normalizer over those rows, merges rows that
// fold onto the same country, and produces ordered, ranked, paginated
// medal tables.
package medals

import (
	"sort"
	"strings"

	"github.com/torchlight-io/torchlight/internal/country"
	"github.com/torchlight-io/torchlight/internal/models"
)

// SourceRow is one team-level aggregate as it comes out of the database:
// medal counts grouped by the raw team label and NOC code, before any
// name normalization.
type SourceRow struct {
	// Label is the raw team string, falling back to the athlete name
	// when the dataset has no team recorded.
	Label  string
	NOC    *string
	Gold   int
	Silver int
	Bronze int
}

// Order selects the sort order of a medal table.
type Order string

const (
	// OrderTotal sorts by total medals descending, ties broken by gold
	// descending, then name ascending.
	OrderTotal Order = "total"

	// OrderGold sorts by gold, then silver, then bronze, all descending.
	OrderGold Order = "gold"
)

// ParseOrder maps a query string to an Order. Empty defaults to total;
// anything unrecognized is rejected.
func ParseOrder(s string) (Order, bool) {
	switch strings.ToLower(s) {
	case "", string(OrderTotal):
		return OrderTotal, true
	case string(OrderGold):
		return OrderGold, true
	default:
		return "", false
	}
}

// Aggregate merges team-level rows onto countries using the normalizer
// and returns the table sorted by OrderTotal.
//
// Rows whose normalized key collides are merged; the country name is the
// lexicographically smallest normalized name in the group and the NOC is
// the largest non-empty code, matching how the dataset resolves
// conflicting spellings.
func Aggregate(rows []SourceRow) []models.MedalCountry {
	type group struct {
		name   string
		noc    string
		gold   int
		silver int
		bronze int
	}

	groups := make(map[string]*group)
	for _, row := range rows {
		norm := country.Normalize(row.Label)
		if norm == "" && (row.NOC == nil || *row.NOC == "") {
			continue
		}
		key := country.GroupKey(row.NOC, norm)

		g, ok := groups[key]
		if !ok {
			g = &group{name: norm}
			groups[key] = g
		}
		if norm != "" && (g.name == "" || norm < g.name) {
			g.name = norm
		}
		if row.NOC != nil && *row.NOC > g.noc {
			g.noc = *row.NOC
		}
		g.gold += row.Gold
		g.silver += row.Silver
		g.bronze += row.Bronze
	}

	out := make([]models.MedalCountry, 0, len(groups))
	for _, g := range groups {
		mc := models.MedalCountry{
			CountryName: g.name,
			GoldCount:   g.gold,
			SilverCount: g.silver,
			BronzeCount: g.bronze,
			MedalCount:  g.gold + g.silver + g.bronze,
		}
		if g.noc != "" {
			noc := g.noc
			mc.NOC = &noc
		}
		out = append(out, mc)
	}

	Sort(out, OrderTotal)
	return out
}

// RefRow is one medal row with its raw team identity, used to attach
// nested medal lists to aggregated country rows.
type RefRow struct {
	Label string
	NOC   *string
	Ref   models.MedalRef
}

// AttachRefs fills each country's nested medal list from unaggregated
// medal rows. Rows are matched to countries by the same group key the
// aggregator uses; rows that match no country are dropped.
func AttachRefs(table []models.MedalCountry, rows []RefRow) {
	idx := make(map[string]int, len(table))
	for i, mc := range table {
		idx[country.GroupKey(mc.NOC, mc.CountryName)] = i
	}

	for _, row := range rows {
		key := country.GroupKey(row.NOC, country.Normalize(row.Label))
		if i, ok := idx[key]; ok {
			table[i].Medals = append(table[i].Medals, row.Ref)
		}
	}
}

// Sort orders a medal table in place.
func Sort(table []models.MedalCountry, order Order) {
	switch order {
	case OrderGold:
		sort.SliceStable(table, func(i, j int) bool {
			a, b := table[i], table[j]
			if a.GoldCount != b.GoldCount {
				return a.GoldCount > b.GoldCount
			}
			if a.SilverCount != b.SilverCount {
				return a.SilverCount > b.SilverCount
			}
			if a.BronzeCount != b.BronzeCount {
				return a.BronzeCount > b.BronzeCount
			}
			return a.CountryName < b.CountryName
		})
	default:
		sort.SliceStable(table, func(i, j int) bool {
			a, b := table[i], table[j]
			if a.MedalCount != b.MedalCount {
				return a.MedalCount > b.MedalCount
			}
			if a.GoldCount != b.GoldCount {
				return a.GoldCount > b.GoldCount
			}
			return a.CountryName < b.CountryName
		})
	}
}

// Rank attaches dense ranks to a table already sorted by OrderTotal:
// countries with equal totals share a rank and the next distinct total
// gets the following rank.
func Rank(table []models.MedalCountry) []models.RankedMedalCountry {
	ranked := make([]models.RankedMedalCountry, len(table))
	rank := 0
	prevTotal := -1
	for i, mc := range table {
		if mc.MedalCount != prevTotal {
			rank++
			prevTotal = mc.MedalCount
		}
		ranked[i] = models.RankedMedalCountry{MedalCountry: mc, Rank: rank}
	}
	return ranked
}

// Totals sums the medal columns over the whole table.
func Totals(table []models.MedalCountry) models.GlobalTotals {
	var t models.GlobalTotals
	for _, mc := range table {
		t.GoldCount += mc.GoldCount
		t.SilverCount += mc.SilverCount
		t.BronzeCount += mc.BronzeCount
		t.TotalMedals += mc.MedalCount
	}
	return t
}

// Paginate slices a table by offset and limit. A limit of 0 means no
// limit. Out-of-range offsets yield an empty slice, never an error.
func Paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
