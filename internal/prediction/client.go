// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

// Package prediction provides a client for the external medal prediction
// service. Requests are rate limited and wrapped in a circuit breaker so a
// degraded upstream cannot exhaust local resources.
package prediction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/torchlight-io/torchlight/internal/config"
	"github.com/torchlight-io/torchlight/internal/metrics"
	"github.com/torchlight-io/torchlight/internal/models"
)

var (
	// ErrNotFound indicates the upstream has no prediction for the country.
	ErrNotFound = errors.New("prediction: country not found")

	// ErrUnavailable indicates the upstream is down, the circuit breaker is
	// open, or the client is disabled by configuration.
	ErrUnavailable = errors.New("prediction: service unavailable")
)

// Predictor is the interface exposed to the API layer.
type Predictor interface {
	// PredictCountry returns the medal forecast for a single country.
	PredictCountry(ctx context.Context, country string) (*models.Prediction, error)

	// PredictTop returns forecasts for the top contending countries.
	PredictTop(ctx context.Context) ([]models.Prediction, error)

	// Ping checks upstream health.
	Ping(ctx context.Context) error
}

// countryResponse mirrors the upstream single-country payload.
type countryResponse struct {
	Success    bool                   `json:"success"`
	Country    string                 `json:"country"`
	Prediction models.MedalPrediction `json:"prediction"`
	ModelUsed  string                 `json:"model_used"`
	Error      string                 `json:"error"`
}

// topResponse mirrors the upstream top-25 payload.
type topResponse struct {
	Success     bool                `json:"success"`
	Predictions []models.Prediction `json:"predictions"`
	Error       string              `json:"error"`
}

// Client talks HTTP to the prediction service.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewClient builds a Client from configuration. The base URL is trimmed of
// trailing slashes so path joining stays predictable.
func NewClient(cfg *config.PredictionConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	maxRPS := cfg.MaxRPS
	if maxRPS <= 0 {
		maxRPS = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = int(maxRPS)
	}
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(maxRPS), burst),
	}
}

// PredictCountry fetches the forecast for one country.
func (c *Client) PredictCountry(ctx context.Context, country string) (*models.Prediction, error) {
	start := time.Now()

	var resp countryResponse
	err := c.getJSON(ctx, "/predict/country/"+url.PathEscape(country), &resp)
	if err == nil && !resp.Success {
		if resp.Error != "" {
			err = fmt.Errorf("prediction: upstream error: %s", resp.Error)
		} else {
			err = ErrUnavailable
		}
	}
	metrics.RecordPredictionRequest("predict_country", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return &models.Prediction{
		Country:    resp.Country,
		Prediction: resp.Prediction,
		ModelUsed:  resp.ModelUsed,
	}, nil
}

// PredictTop fetches forecasts for the top contending countries.
func (c *Client) PredictTop(ctx context.Context) ([]models.Prediction, error) {
	start := time.Now()

	var resp topResponse
	err := c.getJSON(ctx, "/predict/top25", &resp)
	if err == nil && !resp.Success {
		if resp.Error != "" {
			err = fmt.Errorf("prediction: upstream error: %s", resp.Error)
		} else {
			err = ErrUnavailable
		}
	}
	metrics.RecordPredictionRequest("predict_top", time.Since(start), err)
	if err != nil {
		return nil, err
	}

	return resp.Predictions, nil
}

// Ping checks the upstream health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("prediction: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health returned %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}

// getJSON performs a rate-limited GET and decodes the response body.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("prediction: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("prediction: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: upstream returned %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("prediction: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("prediction: read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("prediction: decode response: %w", err)
	}
	return nil
}

var _ Predictor = (*Client)(nil)

// Disabled is a Predictor used when the prediction service is not
// configured. Every call reports the service as unavailable.
type Disabled struct{}

func (Disabled) PredictCountry(ctx context.Context, country string) (*models.Prediction, error) {
	return nil, ErrUnavailable
}

func (Disabled) PredictTop(ctx context.Context) ([]models.Prediction, error) {
	return nil, ErrUnavailable
}

func (Disabled) Ping(ctx context.Context) error {
	return ErrUnavailable
}
