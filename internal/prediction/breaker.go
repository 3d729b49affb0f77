// Torchlight - Olympic Games Analytics API
// Copyright 2026 Torchlight Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/torchlight-io/torchlight

package prediction

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/torchlight-io/torchlight/internal/logging"
	"github.com/torchlight-io/torchlight/internal/models"
)

// CircuitBreakerClient wraps a Predictor with a circuit breaker. After
// repeated upstream failures the breaker opens and calls fail fast with
// ErrUnavailable instead of waiting on a dead service.
type CircuitBreakerClient struct {
	inner   Predictor
	breaker *gobreaker.CircuitBreaker[interface{}]
}

// NewCircuitBreakerClient wraps inner with breaker protection.
func NewCircuitBreakerClient(inner Predictor) *CircuitBreakerClient {
	settings := gobreaker.Settings{
		Name:        "prediction-service",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Warn().
				Str("component", "prediction").
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("Circuit breaker state changed")
		},
	}

	return &CircuitBreakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[interface{}](settings),
	}
}

// execute runs fn through the breaker and maps breaker rejections onto
// ErrUnavailable. Not-found responses are passed through without counting
// as failures.
func (c *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		out, err := fn()
		if errors.Is(err, ErrNotFound) {
			// A missing country is a valid upstream answer.
			return out, nil
		}
		return out, err
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	return result, nil
}

func (c *CircuitBreakerClient) PredictCountry(ctx context.Context, country string) (*models.Prediction, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.inner.PredictCountry(ctx, country)
	})
	if err != nil {
		return nil, err
	}
	pred, ok := result.(*models.Prediction)
	if !ok || pred == nil {
		return nil, ErrNotFound
	}
	return pred, nil
}

func (c *CircuitBreakerClient) PredictTop(ctx context.Context) ([]models.Prediction, error) {
	result, err := c.execute(func() (interface{}, error) {
		return c.inner.PredictTop(ctx)
	})
	if err != nil {
		return nil, err
	}
	preds, _ := result.([]models.Prediction)
	return preds, nil
}

func (c *CircuitBreakerClient) Ping(ctx context.Context) error {
	_, err := c.execute(func() (interface{}, error) {
		return nil, c.inner.Ping(ctx)
	})
	return err
}

var _ Predictor = (*CircuitBreakerClient)(nil)
