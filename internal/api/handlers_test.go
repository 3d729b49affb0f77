// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/torchlight-io/torchlight/internal/config"
	"github.com/torchlight-io/torchlight/internal/database"
	"github.com/torchlight-io/torchlight/internal/models"
	"github.com/torchlight-io/torchlight/internal/prediction"
)

// newTestDB opens an in-memory DuckDB with a small fixture dataset.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(&config.DatabaseConfig{
		Path:                   ":memory:",
		MaxMemory:              "512MB",
		Threads:                2,
		PreserveInsertionOrder: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })

	ctx := context.Background()
	seed := []string{
		`INSERT INTO hosts VALUES
			('paris-2024', 'Paris 2024', 'Paris, France', 'Summer', 2024, DATE '2024-07-26', DATE '2024-08-11'),
			('tokyo-2020', 'Tokyo 2020', 'Tokyo, Japan', 'Summer', 2021, DATE '2021-07-23', DATE '2021-08-08'),
			('beijing-2022', 'Beijing 2022', 'Beijing, China', 'Winter', 2022, DATE '2022-02-04', DATE '2022-02-20')`,
		`INSERT INTO athletes VALUES
			(1, 'A-1001', 'Alice Swim', 'F', 24, 172.0, 60.0, 'United States Team #1', 'USA'),
			(2, 'A-1002', 'Bob Runner', 'M', 28, 180.0, 70.0, 'usa', 'USA'),
			(3, NULL, 'Claire Fence', 'F', NULL, NULL, NULL, 'France', 'FRA'),
			(4, NULL, 'Dmitri Lift', 'M', 31, 175.0, 95.0, NULL, 'FRA'),
			(5, NULL, 'Eve Nowhere', 'F', NULL, NULL, NULL, NULL, NULL)`,
		`INSERT INTO results VALUES
			(10, 1, 'paris-2024', 'Swimming', '100m Freestyle', 'Gold'),
			(11, 1, 'paris-2024', 'Swimming', '200m Freestyle', 'Silver'),
			(12, 1, 'tokyo-2020', 'Swimming', '100m Freestyle', 'Gold'),
			(13, 2, 'paris-2024', 'Athletics', '100m', 'Bronze'),
			(14, 3, 'paris-2024', 'Fencing', 'Foil', 'Gold'),
			(15, 4, 'paris-2024', 'Weightlifting', '96kg', NULL),
			(16, 4, 'tokyo-2020', 'Weightlifting', '96kg', 'Silver'),
			(17, 5, 'paris-2024', 'Judo', '57kg', 'Gold')`,
		`INSERT INTO country_locations VALUES
			('United States', 'USA', 39.8, -98.6),
			('France', 'FRA', 46.2, 2.2)`,
		`INSERT INTO country_gdp VALUES
			('United States of America', 'USA', 25000000000000),
			('France', 'FRA', 3000000000000)`,
	}
	for _, stmt := range seed {
		_, err := db.Conn().ExecContext(ctx, stmt)
		require.NoError(t, err)
	}
	return db
}

// newTestRouter builds the full router over the fixture dataset. Rate
// limiting stays off so tests can hammer endpoints freely.
func newTestRouter(t *testing.T, predictor prediction.Predictor) http.Handler {
	t.Helper()

	cfg := &config.Config{
		Security: config.SecurityConfig{
			RateLimitDisabled: true,
		},
		Prediction: config.PredictionConfig{
			Enabled: predictor != nil,
		},
	}
	return NewRouter(cfg, newTestDB(t), predictor).Setup()
}

func doGet(t *testing.T, handler http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func TestHostsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/hosts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var hosts []models.Host
	decodeBody(t, rec, &hosts)
	require.Len(t, hosts, 3)
	assert.Equal(t, "paris-2024", hosts[0].GameSlug)
	assert.Equal(t, "tokyo-2020", hosts[2].GameSlug)
}

func TestHostsSeasonAndYearFilters(t *testing.T) {
	router := newTestRouter(t, nil)

	var hosts []models.Host
	rec := doGet(t, router, "/api/hosts?season=winter")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &hosts)
	require.Len(t, hosts, 1)
	assert.Equal(t, "beijing-2022", hosts[0].GameSlug)

	rec = doGet(t, router, "/api/hosts?year=2021")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &hosts)
	require.Len(t, hosts, 1)
	assert.Equal(t, "tokyo-2020", hosts[0].GameSlug)
}

func TestHostBySlugNotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/hosts/not-a-real-slug")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestAthleteByID(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/athletes/1")
	require.Equal(t, http.StatusOK, rec.Code)

	var athlete models.AthleteDetail
	decodeBody(t, rec, &athlete)
	assert.Equal(t, "Alice Swim", athlete.Name)
	require.NotNil(t, athlete.RefID)
	assert.Equal(t, "A-1001", *athlete.RefID)
	require.NotNil(t, athlete.Age)
	assert.Equal(t, 24, *athlete.Age)
	assert.Len(t, athlete.Results, 3)
}

func TestAthleteByIDNotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/athletes/999")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())

	rec = doGet(t, router, "/api/athletes/abc")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAthletesNameFilter(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/athletes?name=swim")
	require.Equal(t, http.StatusOK, rec.Code)

	var athletes []models.Athlete
	decodeBody(t, rec, &athletes)
	require.Len(t, athletes, 1)
	assert.Equal(t, "Alice Swim", athletes[0].Name)
}

func TestResultsFilters(t *testing.T) {
	router := newTestRouter(t, nil)

	var results []models.Result
	rec := doGet(t, router, "/api/results?sport=swimming")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &results)
	assert.Len(t, results, 3)

	rec = doGet(t, router, "/api/results?medal=gold")
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &results)
	assert.Len(t, results, 4)
}

func TestResultsNonNumericAthleteID(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/results?athlete_id=abc")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"bad_request"}`, rec.Body.String())
}

func TestMalformedPaginationParams(t *testing.T) {
	router := newTestRouter(t, nil)

	for _, path := range []string{
		"/api/athletes?limit=abc",
		"/api/results?offset=xyz",
		"/api/medals?limit=3.5",
		"/api/hosts?year=twenty",
		"/api/medal_countries/top?limit=abc",
	} {
		rec := doGet(t, router, path)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
		assert.JSONEq(t, `{"error":"bad_request"}`, rec.Body.String(), path)
	}
}

func TestMedalsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/medals?medal_type=gold")
	require.Equal(t, http.StatusOK, rec.Code)

	var medals []models.Medal
	decodeBody(t, rec, &medals)
	assert.Len(t, medals, 4)
	for _, m := range medals {
		assert.Equal(t, "Gold", m.MedalType)
	}
}

func TestMedalistsEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/medalists")
	require.Equal(t, http.StatusOK, rec.Code)

	var medalists []models.Medalist
	decodeBody(t, rec, &medalists)
	require.NotEmpty(t, medalists)

	// Most decorated athlete first, with the nested medal list.
	assert.Equal(t, "Alice Swim", medalists[0].Name)
	assert.Equal(t, 3, medalists[0].MedalCount)
	assert.Len(t, medalists[0].Medals, 3)

	for i := 1; i < len(medalists); i++ {
		assert.GreaterOrEqual(t, medalists[i-1].MedalCount, medalists[i].MedalCount)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/nope")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/health/live")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = doGet(t, router, "/health/ready")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doGet(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var status healthStatus
	decodeBody(t, rec, &status)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, "ok", status.Components["database"])
}

// stubPredictor returns canned answers for the prediction proxy tests.
type stubPredictor struct {
	pred *models.Prediction
	err  error
}

func (s *stubPredictor) PredictCountry(ctx context.Context, country string) (*models.Prediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pred, nil
}

func (s *stubPredictor) PredictTop(ctx context.Context) ([]models.Prediction, error) {
	if s.err != nil {
		return nil, s.err
	}
	return []models.Prediction{*s.pred}, nil
}

func (s *stubPredictor) Ping(ctx context.Context) error {
	return s.err
}

func TestPredictCountryProxy(t *testing.T) {
	want := &models.Prediction{
		Country:    "France",
		Prediction: models.MedalPrediction{Gold: 10, Silver: 12, Bronze: 11, Total: 33},
		ModelUsed:  "gradient_boost_v3",
	}
	router := newTestRouter(t, &stubPredictor{pred: want})

	rec := doGet(t, router, "/api/predictions/France")
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.Prediction
	decodeBody(t, rec, &got)
	assert.Equal(t, *want, got)
}

func TestPredictCountryNotFound(t *testing.T) {
	router := newTestRouter(t, &stubPredictor{err: prediction.ErrNotFound})

	rec := doGet(t, router, "/api/predictions/Atlantis")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"not_found"}`, rec.Body.String())
}

func TestPredictionsUnavailable(t *testing.T) {
	router := newTestRouter(t, &stubPredictor{err: prediction.ErrUnavailable})

	rec := doGet(t, router, "/api/predictions")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"service_unavailable"}`, rec.Body.String())
}

func TestPredictionsDisabled(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/predictions")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthReportsDegradedPrediction(t *testing.T) {
	router := newTestRouter(t, &stubPredictor{err: prediction.ErrUnavailable})

	rec := doGet(t, router, "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var status healthStatus
	decodeBody(t, rec, &status)
	assert.Equal(t, "degraded", status.Status)
	assert.Equal(t, "unreachable", status.Components["prediction"])
}

func TestRequestIDHeaderSet(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := doGet(t, router, "/api/hosts")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
