// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package medals

import (
	"strings"

	"github.com/torchlight-io/torchlight/internal/country"
	"github.com/torchlight-io/torchlight/internal/models"
)

// GDPRow is one row of the GDP reference table.
type GDPRow struct {
	CountryName string
	CountryCode *string
	GDP         *float64
}

// LocationRow is one row of the geographic reference table.
type LocationRow struct {
	CountryName string
	NOC         *string
	Latitude    *float64
	Longitude   *float64
}

// JoinGDP left-joins a medal table against GDP reference rows. A
// reference row matches on NOC/country code or on normalized country
// name; code matches win when both exist. Unmatched countries keep nil
// GDP fields.
func JoinGDP(table []models.MedalCountry, refs []GDPRow) []models.GDPMedals {
	byCode := make(map[string]GDPRow)
	byName := make(map[string]GDPRow)
	for _, ref := range refs {
		if ref.CountryCode != nil && *ref.CountryCode != "" {
			byCode[strings.ToUpper(*ref.CountryCode)] = ref
		}
		if ref.CountryName != "" {
			byName[strings.ToLower(country.Normalize(ref.CountryName))] = ref
		}
	}

	out := make([]models.GDPMedals, len(table))
	for i, mc := range table {
		out[i] = models.GDPMedals{MedalCountry: mc}
		if ref, ok := lookupRef(mc, byCode, byName); ok {
			out[i].CountryCode = ref.CountryCode
			out[i].GDP = ref.GDP
		}
	}
	return out
}

// JoinLocations left-joins a medal table against the geographic
// reference rows with the same matching rules as JoinGDP.
func JoinLocations(table []models.MedalCountry, refs []LocationRow) []models.CountryLocation {
	byCode := make(map[string]LocationRow)
	byName := make(map[string]LocationRow)
	for _, ref := range refs {
		if ref.NOC != nil && *ref.NOC != "" {
			byCode[strings.ToUpper(*ref.NOC)] = ref
		}
		if ref.CountryName != "" {
			byName[strings.ToLower(country.Normalize(ref.CountryName))] = ref
		}
	}

	out := make([]models.CountryLocation, len(table))
	for i, mc := range table {
		out[i] = models.CountryLocation{MedalCountry: mc}
		if ref, ok := lookupLoc(mc, byCode, byName); ok {
			out[i].Latitude = ref.Latitude
			out[i].Longitude = ref.Longitude
		}
	}
	return out
}

func lookupRef(mc models.MedalCountry, byCode, byName map[string]GDPRow) (GDPRow, bool) {
	if mc.NOC != nil {
		if ref, ok := byCode[strings.ToUpper(*mc.NOC)]; ok {
			return ref, true
		}
	}
	ref, ok := byName[strings.ToLower(mc.CountryName)]
	return ref, ok
}

func lookupLoc(mc models.MedalCountry, byCode, byName map[string]LocationRow) (LocationRow, bool) {
	if mc.NOC != nil {
		if ref, ok := byCode[strings.ToUpper(*mc.NOC)]; ok {
			return ref, true
		}
	}
	ref, ok := byName[strings.ToLower(mc.CountryName)]
	return ref, ok
}
