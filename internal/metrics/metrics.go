// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package metrics provides Prometheus instrumentation for the API
// server: endpoint latency and throughput, DuckDB query performance,
// and prediction service client health.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Prediction service client metrics
	PredictionRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "prediction_requests_total",
			Help: "Total number of requests to the prediction service",
		},
		[]string{"operation", "outcome"},
	)

	PredictionRequestDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "prediction_request_duration_seconds",
			Help:    "Prediction service request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Reference data refresh metrics
	RefreshRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reference_refresh_runs_total",
			Help: "Total number of reference data refresh runs",
		},
		[]string{"outcome"},
	)

	RefreshLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reference_refresh_last_success_timestamp_seconds",
			Help: "Unix timestamp of the last successful reference data refresh",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordPredictionRequest records one call to the prediction service.
func RecordPredictionRequest(operation string, duration time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	PredictionRequestsTotal.WithLabelValues(operation, outcome).Inc()
	PredictionRequestDuration.Observe(duration.Seconds())
}

// RecordRefresh records one reference data refresh run.
func RecordRefresh(err error) {
	if err != nil {
		RefreshRuns.WithLabelValues("error").Inc()
		return
	}
	RefreshRuns.WithLabelValues("success").Inc()
	RefreshLastSuccess.Set(float64(time.Now().Unix()))
}
