// Package relevanced provides a similarity oracle backed by a relevanced server.
package relevanced

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/geodist/internal/core/domain"
	"github.com/custodia-labs/geodist/internal/core/ports/driven"
	"github.com/custodia-labs/geodist/internal/logger"
)

// Ensure Oracle implements the interfaces.
var (
	_ driven.SimilarityOracle = (*Oracle)(nil)
	_ driven.CentroidLister   = (*Oracle)(nil)
)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8097"
	DefaultTimeout = 10 * time.Second
	DefaultRate    = 50.0
	DefaultBurst   = 10

	// Breaker opens after this many consecutive failures.
	DefaultFailureThreshold = 5
	DefaultCooldown         = 30 * time.Second
)

// Config holds configuration for the relevanced oracle.
type Config struct {
	// BaseURL is the relevanced API base URL (default: http://localhost:8097).
	BaseURL string

	// Timeout is the per-request timeout (default: 10s).
	Timeout time.Duration

	// Rate is the sustained requests per second. Zero disables throttling.
	Rate float64

	// Burst is the token bucket size (default: 10).
	Burst int

	// FailureThreshold is the consecutive failure count that opens the breaker.
	FailureThreshold uint32

	// Cooldown is how long the breaker stays open before probing again.
	Cooldown time.Duration
}

// Oracle scores centroid pairs by asking a relevanced server.
type Oracle struct {
	client  *http.Client
	baseURL string
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

type similarityResponse struct {
	Similarity *float64 `json:"similarity"`
}

type centroidsResponse struct {
	Centroids []string `json:"centroids"`
}

// NewOracle creates a new relevanced oracle.
func NewOracle(cfg Config) *Oracle {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Burst <= 0 {
		cfg.Burst = DefaultBurst
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = DefaultCooldown
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}

	threshold := cfg.FailureThreshold
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "relevanced",
		MaxRequests: 1,
		Timeout:     cfg.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker %q changed from %s to %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			return !countsAsFailure(err)
		},
	})

	return &Oracle{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(limit, cfg.Burst),
		breaker: breaker,
	}
}

// Similarity returns the similarity of centroids a and b.
func (o *Oracle) Similarity(ctx context.Context, a, b domain.CentroidID) (float64, error) {
	endpoint := fmt.Sprintf("%s/centroids/%s/similarity/%s",
		o.baseURL, url.PathEscape(string(a)), url.PathEscape(string(b)))

	var resp similarityResponse
	if err := o.call(ctx, endpoint, a, &resp); err != nil {
		return 0, err
	}
	if resp.Similarity == nil {
		return 0, fmt.Errorf("relevanced: response for %s/%s has no similarity", a, b)
	}
	return *resp.Similarity, nil
}

// ListCentroids returns every centroid the server knows, sorted.
func (o *Oracle) ListCentroids(ctx context.Context) ([]domain.CentroidID, error) {
	var resp centroidsResponse
	if err := o.call(ctx, o.baseURL+"/centroids", "", &resp); err != nil {
		return nil, err
	}

	ids := make([]domain.CentroidID, len(resp.Centroids))
	for i, id := range resp.Centroids {
		ids[i] = domain.CentroidID(id)
	}
	return domain.NormalizeCentroidIDs(ids)
}

// State returns the circuit breaker state.
func (o *Oracle) State() gobreaker.State {
	return o.breaker.State()
}

// call throttles, runs the request through the breaker and decodes into out.
func (o *Oracle) call(ctx context.Context, endpoint string, subject domain.CentroidID, out any) error {
	if err := o.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("relevanced: rate limit wait: %w", err)
	}

	_, err := o.breaker.Execute(func() (any, error) {
		return nil, o.get(ctx, endpoint, subject, out)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return fmt.Errorf("%w: %v", domain.ErrOracleUnavailable, err)
	}
	return err
}

func (o *Oracle) get(ctx context.Context, endpoint string, subject domain.CentroidID, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return fmt.Errorf("relevanced: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("relevanced: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("relevanced: status %d (failed to read body: %w)", resp.StatusCode, err)
		}
		return decodeError(resp.StatusCode, body, subject)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("relevanced: decode response: %w", err)
	}
	return nil
}
