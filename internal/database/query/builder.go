// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package query provides SQL query building utilities for the database
// package. It keeps filter construction parameterized and in one place.
package query

import (
	"fmt"
	"strings"
)

// WhereBuilder constructs SQL WHERE clauses with parameterized arguments.
//
// Example usage:
//
//	wb := query.NewWhereBuilder()
//	wb.AddEquals("a.noc", "USA")
//	wb.AddSubstring("a.name", "phelps")
//	whereClause, args := wb.Build()
//	// a.noc = ? AND a.name ILIKE ?
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates a new WhereBuilder instance.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{
		clauses: []string{},
		args:    []interface{}{},
	}
}

// AddClause adds a raw WHERE clause with its arguments. Useful for
// conditions not covered by the helper methods.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddEquals adds an exact-match filter. Empty values are skipped so
// optional query parameters can be passed straight through.
func (wb *WhereBuilder) AddEquals(column, value string) *WhereBuilder {
	if value != "" {
		wb.clauses = append(wb.clauses, column+" = ?")
		wb.args = append(wb.args, value)
	}
	return wb
}

// AddEqualsFold adds a case-insensitive exact-match filter.
func (wb *WhereBuilder) AddEqualsFold(column, value string) *WhereBuilder {
	if value != "" {
		wb.clauses = append(wb.clauses, column+" ILIKE ?")
		wb.args = append(wb.args, value)
	}
	return wb
}

// AddSubstring adds a case-insensitive substring filter
// (column ILIKE '%value%'). Empty values are skipped.
func (wb *WhereBuilder) AddSubstring(column, value string) *WhereBuilder {
	if value != "" {
		wb.clauses = append(wb.clauses, column+" ILIKE ?")
		wb.args = append(wb.args, "%"+value+"%")
	}
	return wb
}

// AddIn adds an IN filter with one placeholder per value. Empty slices
// are skipped.
func (wb *WhereBuilder) AddIn(column string, values []string) *WhereBuilder {
	if len(values) > 0 {
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = "?"
			wb.args = append(wb.args, v)
		}
		wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	}
	return wb
}

// AddIntIn adds an IN filter over integer values.
func (wb *WhereBuilder) AddIntIn(column string, values []int) *WhereBuilder {
	if len(values) > 0 {
		placeholders := make([]string, len(values))
		for i, v := range values {
			placeholders[i] = "?"
			wb.args = append(wb.args, v)
		}
		wb.clauses = append(wb.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
	}
	return wb
}

// Build constructs the final WHERE clause and returns it with arguments.
// Clauses are joined with "AND". Returns ("1=1", []) if no clauses were
// added, so callers can always interpolate the result.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "1=1", []interface{}{}
	}
	return strings.Join(wb.clauses, " AND "), wb.args
}

// BuildWithPrefix returns the WHERE clause with a "WHERE " prefix.
func (wb *WhereBuilder) BuildWithPrefix() (string, []interface{}) {
	whereClause, args := wb.Build()
	return "WHERE " + whereClause, args
}

// Count returns the number of clauses added to the builder.
func (wb *WhereBuilder) Count() int {
	return len(wb.clauses)
}

// IsEmpty returns true if no clauses have been added.
func (wb *WhereBuilder) IsEmpty() bool {
	return len(wb.clauses) == 0
}
