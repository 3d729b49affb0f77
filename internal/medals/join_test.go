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

func floatPtr(f float64) *float64 { return &f }

func TestJoinGDPMatchesByCode(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "United States", NOC: strPtr("USA"), MedalCount: 10},
	}
	refs := []GDPRow{
		{CountryName: "United States of America", CountryCode: strPtr("USA"), GDP: floatPtr(25e12)},
	}

	joined := JoinGDP(table, refs)
	require.Len(t, joined, 1)
	require.NotNil(t, joined[0].GDP)
	assert.InDelta(t, 25e12, *joined[0].GDP, 1)
	assert.Equal(t, "USA", *joined[0].CountryCode)
}

func TestJoinGDPMatchesByNormalizedName(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "Russia", MedalCount: 8},
	}
	refs := []GDPRow{
		{CountryName: "Russian Federation", CountryCode: strPtr("RUS"), GDP: floatPtr(2e12)},
	}

	joined := JoinGDP(table, refs)
	require.Len(t, joined, 1)
	require.NotNil(t, joined[0].GDP, "reference name should fold onto the same country")
	assert.InDelta(t, 2e12, *joined[0].GDP, 1)
}

func TestJoinGDPLeftJoinKeepsUnmatched(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "Atlantis", NOC: strPtr("ATL"), MedalCount: 1},
		{CountryName: "France", NOC: strPtr("FRA"), MedalCount: 3},
	}
	refs := []GDPRow{
		{CountryName: "France", CountryCode: strPtr("FRA"), GDP: floatPtr(3e12)},
	}

	joined := JoinGDP(table, refs)
	require.Len(t, joined, 2, "unmatched countries survive the join")

	assert.Nil(t, joined[0].GDP)
	assert.Nil(t, joined[0].CountryCode)
	assert.Equal(t, 1, joined[0].MedalCount)

	require.NotNil(t, joined[1].GDP)
}

func TestJoinGDPCodeWinsOverName(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "Georgia", NOC: strPtr("GEO"), MedalCount: 2},
	}
	refs := []GDPRow{
		{CountryName: "Georgia", CountryCode: strPtr("USA"), GDP: floatPtr(1)}, // US state, wrong row
		{CountryName: "Georgia (country)", CountryCode: strPtr("GEO"), GDP: floatPtr(2)},
	}

	joined := JoinGDP(table, refs)
	require.NotNil(t, joined[0].GDP)
	assert.InDelta(t, 2, *joined[0].GDP, 0.001)
}

func TestJoinLocations(t *testing.T) {
	table := []models.MedalCountry{
		{CountryName: "Japan", NOC: strPtr("JPN"), MedalCount: 6},
		{CountryName: "Wakanda", MedalCount: 2},
	}
	refs := []LocationRow{
		{CountryName: "Japan", NOC: strPtr("JPN"), Latitude: floatPtr(36.2), Longitude: floatPtr(138.25)},
	}

	joined := JoinLocations(table, refs)
	require.Len(t, joined, 2)

	require.NotNil(t, joined[0].Latitude)
	assert.InDelta(t, 36.2, *joined[0].Latitude, 0.001)
	assert.InDelta(t, 138.25, *joined[0].Longitude, 0.001)

	assert.Nil(t, joined[1].Latitude)
	assert.Nil(t, joined[1].Longitude)
}
