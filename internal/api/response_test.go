// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/torchlight-io/torchlight/internal/models"
)

func TestGetIntParam(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{"missing", "", 42, false},
		{"valid", "limit=7", 7, false},
		{"spaces", "limit=%207%20", 7, false},
		{"garbage", "limit=abc", 0, true},
		{"float", "limit=3.5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			got, err := getIntParam(r, "limit", 42)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLimitOffsetDefaults(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=-5&offset=-1", nil)
	limit, offset, err := limitOffset(r, 100)
	assert.NoError(t, err)
	assert.Equal(t, 100, limit)
	assert.Equal(t, 0, offset)
}

func TestLimitOffsetMalformed(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	_, _, err := limitOffset(r, 100)
	assert.Error(t, err)

	r = httptest.NewRequest(http.MethodGet, "/?offset=1.5", nil)
	_, _, err = limitOffset(r, 100)
	assert.Error(t, err)
}

func TestRespondErrorHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, http.StatusInternalServerError, models.ErrCodeInternal, errors.New("select failed: secret path"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal_error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestSanitizeLogValue(t *testing.T) {
	assert.Equal(t, "plain text", sanitizeLogValue("plain text"))
	assert.Equal(t, `line\x0ainjected`, sanitizeLogValue("line\ninjected"))
}

func TestClampTopLimit(t *testing.T) {
	assert.Equal(t, 10, clampTopLimit(0))
	assert.Equal(t, 10, clampTopLimit(-3))
	assert.Equal(t, 1, clampTopLimit(1))
	assert.Equal(t, 50, clampTopLimit(50))
	assert.Equal(t, 50, clampTopLimit(500))
}
