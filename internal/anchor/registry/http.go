package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"datasentinel/internal/anchor/models"
	"datasentinel/pkg/platform/circuit"
)

// HTTPDoer is the minimal interface needed from an HTTP client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// BackoffConfig configures retries of retryable failures.
type BackoffConfig struct {
	InitialDelay time.Duration
	MaxDelay     time.Duration
	MaxRetries   int
	Multiplier   float64
}

type Config struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient HTTPDoer
	Backoff    BackoffConfig
	Breaker    *circuit.Breaker
}

// HTTPClient calls a registry exposing
//
//	GET  /registry/{hash}  -> {"hash", "registered"}
//	POST /registry         {"hash", "metadata"} -> {"registered", "created"}
type HTTPClient struct {
	baseURL string
	apiKey  string
	client  HTTPDoer
	backoff BackoffConfig
	breaker *circuit.Breaker
}

func NewHTTPClient(cfg Config) *HTTPClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.Backoff.InitialDelay == 0 {
		cfg.Backoff.InitialDelay = 100 * time.Millisecond
	}
	if cfg.Backoff.MaxDelay == 0 {
		cfg.Backoff.MaxDelay = 2 * time.Second
	}
	if cfg.Backoff.MaxRetries == 0 {
		cfg.Backoff.MaxRetries = 3
	}
	if cfg.Backoff.Multiplier == 0 {
		cfg.Backoff.Multiplier = 2.0
	}
	if cfg.Breaker == nil {
		cfg.Breaker = circuit.New("anchor-registry")
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		client:  client,
		backoff: cfg.Backoff,
		breaker: cfg.Breaker,
	}
}

type statusResponse struct {
	Hash       string `json:"hash"`
	Registered bool   `json:"registered"`
	Created    bool   `json:"created"`
}

type registerRequest struct {
	Hash     string          `json:"hash"`
	Metadata models.Metadata `json:"metadata"`
}

func (c *HTTPClient) IsRegistered(ctx context.Context, hash string) (bool, error) {
	var resp statusResponse
	err := c.withRetry(ctx, "is_registered", func() error {
		return c.do(ctx, "is_registered", http.MethodGet, "/registry/"+url.PathEscape(hash), nil, &resp)
	})
	if err != nil {
		return false, err
	}
	return resp.Registered, nil
}

// Register is idempotent on the registry side: a repeated hash reports
// created=false.
func (c *HTTPClient) Register(ctx context.Context, hash string, meta models.Metadata) (bool, error) {
	body, err := json.Marshal(registerRequest{Hash: hash, Metadata: meta})
	if err != nil {
		return false, rejected("register", 0, err)
	}
	var resp statusResponse
	err = c.withRetry(ctx, "register", func() error {
		return c.do(ctx, "register", http.MethodPost, "/registry", body, &resp)
	})
	if err != nil {
		return false, err
	}
	return resp.Created, nil
}

// Breaker exposes the circuit for health reporting.
func (c *HTTPClient) Breaker() *circuit.Breaker {
	return c.breaker
}

func (c *HTTPClient) withRetry(ctx context.Context, op string, call func() error) error {
	var lastErr error
	delay := c.backoff.InitialDelay

	for attempt := 0; attempt <= c.backoff.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return unavailable(op, 0, ctx.Err())
			case <-time.After(delay):
			}
			delay = min(time.Duration(float64(delay)*c.backoff.Multiplier), c.backoff.MaxDelay)
		}

		err := c.breaker.Execute(call)
		if err == nil {
			return nil
		}
		if errors.Is(err, circuit.ErrOpen) {
			return unavailable(op, 0, err)
		}
		lastErr = err
		if !IsRetryable(err) {
			return err
		}
	}
	return lastErr
}

func (c *HTTPClient) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return rejected(op, 0, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return unavailable(op, 0, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return unavailable(op, resp.StatusCode, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return unavailable(op, resp.StatusCode, fmt.Errorf("%s", bytes.TrimSpace(payload)))
	case resp.StatusCode >= 400:
		return rejected(op, resp.StatusCode, fmt.Errorf("%s", bytes.TrimSpace(payload)))
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return rejected(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
	}
	return nil
}
