// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package country canonicalizes the free-form team and country strings
// found in the historical Olympic dataset.
//
// The dataset records teams as entered at the time: "United States Team #2",
// "Soviet Union", "West Germany". Normalization folds these onto stable
// country names so aggregation produces one row per country:
//
//  1. trim whitespace and strip trailing squad numbers ("#2") and
//     trailing "Team" designators
//  2. strip political prefixes ("Republic of ", "People's ", ...)
//  3. fold known synonyms and historical entities onto a canonical
//     name; unknown labels fall back to title-cased text
//
// The grouping key prefers the NOC code when one is present, since the
// IOC code is more stable than the spelled-out team name.
package country

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// teamSuffixRe matches a trailing "Team" or "Team #N" designator.
	teamSuffixRe = regexp.MustCompile(`(?i)\s*(team(\s*#\d+)?)\s*$`)

	// squadNumberRe matches a trailing "#N" squad marker. Mid-string
	// markers are left alone, they are part of the recorded name.
	squadNumberRe = regexp.MustCompile(`\s*#\d+\s*$`)
)

// politicalPrefixes are stripped repeatedly from the front of a name, so
// "People's Republic of China" reduces to "China".
var politicalPrefixes = []string{
	"The ",
	"Republic of ",
	"People's ",
	"Democratic ",
}

// synonyms folds spelling variants and historical entities onto one
// canonical name. Keys are lowercase. The table is never mutated after
// package init.
var synonyms = map[string]string{
	// United States
	"usa":                      "United States",
	"us":                       "United States",
	"u.s.a.":                   "United States",
	"united states":            "United States",
	"united states of america": "United States",

	// Russia and predecessor entities
	"russia":             "Russia",
	"russian federation": "Russia",
	"ussr":               "Russia",
	"soviet union":       "Russia",

	// Germany variants, including the divided era
	"germany":                     "Germany",
	"west germany":                "Germany",
	"east germany":                "Germany",
	"federal republic of germany": "Germany",
	"german democratic republic":  "Germany",
	"unified team of germany":     "Germany",

	// United Kingdom
	"uk":             "Great Britain",
	"united kingdom": "Great Britain",
	"great britain":  "Great Britain",
}

// Normalize canonicalizes a raw team or country string. The empty
// string normalizes to itself.
func Normalize(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	name = squadNumberRe.ReplaceAllString(name, "")
	name = teamSuffixRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)

	name = stripPoliticalPrefixes(name)

	if canonical, ok := synonyms[strings.ToLower(name)]; ok {
		return canonical
	}
	return titleCase(name)
}

// titleCase uppercases the first letter of each word, leaving the rest
// of the word as written. Labels that reach this fallback are unknown
// to the synonym table and come straight from the dataset, often in
// inconsistent casing.
func titleCase(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		r := []rune(word)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// stripPoliticalPrefixes removes leading political qualifiers until none
// match, so stacked prefixes all come off.
func stripPoliticalPrefixes(name string) string {
	for {
		stripped := false
		for _, prefix := range politicalPrefixes {
			if len(name) > len(prefix) && strings.EqualFold(name[:len(prefix)], prefix) {
				name = strings.TrimSpace(name[len(prefix):])
				stripped = true
			}
		}
		if !stripped {
			return name
		}
	}
}

// GroupKey returns the aggregation key for a team row: the NOC code
// when present, otherwise the lowercased normalized name.
func GroupKey(noc *string, normalized string) string {
	if noc != nil && *noc != "" {
		return *noc
	}
	return strings.ToLower(normalized)
}

// Matches reports whether a normalized country name or NOC code refers
// to the given query string. Used by lookups that accept either form.
func Matches(name string, noc *string, query string) bool {
	if strings.EqualFold(name, query) {
		return true
	}
	if noc != nil && strings.EqualFold(*noc, query) {
		return true
	}
	return strings.EqualFold(name, Normalize(query))
}
