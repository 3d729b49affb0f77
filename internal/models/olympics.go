// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package models defines the data structures served by the Torchlight API.
//
// Nullable dataset columns are represented as pointer fields so missing
// values render as JSON null rather than zero values.
package models

import "time"

// Host is a single Olympic Games edition.
type Host struct {
	GameSlug      string     `json:"game_slug"`
	GameName      string     `json:"game_name"`
	GameLocation  string     `json:"game_location"`
	GameSeason    string     `json:"game_season"`
	GameYear      int        `json:"game_year"`
	GameStartDate *time.Time `json:"game_start_date"`
	GameEndDate   *time.Time `json:"game_end_date"`
}

// Athlete is a single competitor. Team and NOC are nullable in the
// source dataset; athletes missing both are excluded from country
// aggregation.
type Athlete struct {
	AthleteID int      `json:"athlete_id"`
	RefID     *string  `json:"ref_id"`
	Name      string   `json:"name"`
	Sex       *string  `json:"sex"`
	Age       *int     `json:"age"`
	Height    *float64 `json:"height"`
	Weight    *float64 `json:"weight"`
	Team      *string  `json:"team"`
	NOC       *string  `json:"noc"`
}

// AthleteDetail is an athlete with all of their results.
type AthleteDetail struct {
	Athlete
	Results []Result `json:"results"`
}

// Result is one athlete's entry in one event at one edition.
// MedalType is nil for non-medal results, otherwise Gold, Silver or Bronze.
type Result struct {
	ResultID  int     `json:"result_id"`
	AthleteID int     `json:"athlete_id"`
	GameSlug  string  `json:"game_slug"`
	Sport     string  `json:"sport"`
	Event     string  `json:"event"`
	MedalType *string `json:"medal_type"`
}

// Medal is a medal-winning result joined with its athlete.
type Medal struct {
	ResultID    int     `json:"result_id"`
	AthleteID   int     `json:"athlete_id"`
	AthleteName string  `json:"athlete_name"`
	Team        *string `json:"team"`
	NOC         *string `json:"noc"`
	GameSlug    string  `json:"game_slug"`
	Sport       string  `json:"sport"`
	Event       string  `json:"event"`
	MedalType   string  `json:"medal_type"`
}

// MedalRef is one medal inside a medalist's medal list.
type MedalRef struct {
	GameSlug  string `json:"game_slug"`
	Sport     string `json:"sport"`
	Event     string `json:"event"`
	MedalType string `json:"medal_type"`
}

// Medalist is an athlete with their aggregated medals.
type Medalist struct {
	AthleteID  int        `json:"athlete_id"`
	Name       string     `json:"name"`
	Team       *string    `json:"team"`
	NOC        *string    `json:"noc"`
	MedalCount int        `json:"medal_count"`
	Medals     []MedalRef `json:"medals"`
}

// MedalCountry is the per-country medal aggregate. MedalCount always
// equals GoldCount + SilverCount + BronzeCount. Medals holds the
// country's nested medal list where the endpoint includes it.
type MedalCountry struct {
	CountryName string     `json:"country_name"`
	NOC         *string    `json:"noc"`
	GoldCount   int        `json:"gold_count"`
	SilverCount int        `json:"silver_count"`
	BronzeCount int        `json:"bronze_count"`
	MedalCount  int        `json:"medal_count"`
	Medals      []MedalRef `json:"medals,omitempty"`
}

// RankedMedalCountry is a MedalCountry with its position in the ranking.
// Rank is dense: countries with identical counts share a rank.
type RankedMedalCountry struct {
	MedalCountry
	Rank int `json:"rank"`
}

// GlobalTotals sums the medal columns over every country.
type GlobalTotals struct {
	GoldCount   int `json:"gold_count"`
	SilverCount int `json:"silver_count"`
	BronzeCount int `json:"bronze_count"`
	TotalMedals int `json:"total_medals"`
}

// MedalTotals is the /medal_countries/totals payload.
type MedalTotals struct {
	Countries []MedalCountry `json:"countries"`
	Global    GlobalTotals   `json:"global"`
}

// GDPMedals is a medal aggregate joined against the GDP reference table.
// GDP and CountryCode are nil when no GDP row matched.
type GDPMedals struct {
	MedalCountry
	CountryCode *string  `json:"country_code"`
	GDP         *float64 `json:"gdp"`
}

// CountryLocation is a medal aggregate joined against the location
// reference table. Latitude and Longitude are nil when no location
// row matched.
type CountryLocation struct {
	MedalCountry
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// HistoryEntry is one edition's medal haul for a single country.
type HistoryEntry struct {
	GameSlug    string `json:"game_slug"`
	GameYear    int    `json:"game_year"`
	GameSeason  string `json:"game_season"`
	GoldCount   int    `json:"gold_count"`
	SilverCount int    `json:"silver_count"`
	BronzeCount int    `json:"bronze_count"`
	MedalCount  int    `json:"medal_count"`
}

// MedalPrediction is the predicted medal haul for one country.
type MedalPrediction struct {
	Gold   int `json:"gold"`
	Silver int `json:"silver"`
	Bronze int `json:"bronze"`
	Total  int `json:"total"`
}

// Prediction is the payload proxied from the prediction service.
type Prediction struct {
	Country    string          `json:"country"`
	Prediction MedalPrediction `json:"prediction"`
	ModelUsed  string          `json:"model_used"`
}

// APIError is the uniform error body.
type APIError struct {
	Error string `json:"error"`
}

// Error codes used in APIError bodies.
const (
	ErrCodeNotFound    = "not_found"
	ErrCodeBadRequest  = "bad_request"
	ErrCodeInternal    = "internal_error"
	ErrCodeUnavailable = "service_unavailable"
)
