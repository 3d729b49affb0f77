// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDGeneratesID(t *testing.T) {
	var got string
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		got = GetRequestID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/hosts", nil))

	require.NotEmpty(t, got)
	assert.Equal(t, got, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDKeepsUpstreamID(t *testing.T) {
	handler := RequestID(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "upstream-42", GetRequestID(r.Context()))
	})

	req := httptest.NewRequest(http.MethodGet, "/hosts", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, "upstream-42", rec.Header().Get("X-Request-ID"))
}

func TestGetRequestIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, GetRequestID(req.Context()))
}

func TestPrometheusMetricsPassesThrough(t *testing.T) {
	handler := PrometheusMetrics(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/medals", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
}
