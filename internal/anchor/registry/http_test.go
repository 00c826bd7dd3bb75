package registry

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datasentinel/internal/anchor/models"
	"datasentinel/pkg/platform/circuit"
	"datasentinel/pkg/platform/sentinel"
)

func fastBackoff() BackoffConfig {
	return BackoffConfig{InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, MaxRetries: 2, Multiplier: 2}
}

func TestRegisterRetriesUnavailableRegistry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/registry", r.URL.Path)
		assert.Equal(t, "registry-key", r.Header.Get("X-API-Key"))
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		var req registerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ht-1", req.Metadata.TokenID)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(statusResponse{Hash: req.Hash, Registered: true, Created: true})
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL, APIKey: "registry-key", Backoff: fastBackoff()})
	created, err := c.Register(context.Background(), "0xabc", models.Metadata{TokenID: "ht-1"})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		http.Error(w, "bad hash", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL, Backoff: fastBackoff()})
	_, err := c.IsRegistered(context.Background(), "nothex")
	require.Error(t, err)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidInput))
	assert.False(t, IsRetryable(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestExhaustedRetriesReportUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL, Backoff: fastBackoff()})
	_, err := c.IsRegistered(context.Background(), "0xabc")
	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
}

func TestOpenCircuitShortCircuitsCalls(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	breaker := circuit.New("test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	c := NewHTTPClient(Config{
		BaseURL: srv.URL,
		Breaker: breaker,
		Backoff: BackoffConfig{InitialDelay: time.Millisecond, MaxRetries: 5, Multiplier: 1, MaxDelay: time.Millisecond},
	})

	_, err := c.IsRegistered(context.Background(), "0xabc")
	require.Error(t, err)
	assert.Equal(t, circuit.StateOpen, breaker.State())
	assert.Equal(t, int32(2), calls.Load())

	_, err = c.IsRegistered(context.Background(), "0xabc")
	assert.True(t, errors.Is(err, circuit.ErrOpen))
	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
	assert.Equal(t, int32(2), calls.Load())
}

func TestUnreachableRegistry(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	c := NewHTTPClient(Config{BaseURL: srv.URL, Backoff: fastBackoff()})
	_, err := c.Register(context.Background(), "0xabc", models.Metadata{})
	assert.True(t, errors.Is(err, sentinel.ErrUnavailable))
}

func TestInMemoryRegistryRegistersOnce(t *testing.T) {
	r := NewInMemory()
	ctx := context.Background()

	ok, err := r.IsRegistered(ctx, "0x1")
	require.NoError(t, err)
	assert.False(t, ok)

	created, err := r.Register(ctx, "0x1", models.Metadata{TokenID: "ht-1"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = r.Register(ctx, "0x1", models.Metadata{TokenID: "ht-1"})
	require.NoError(t, err)
	assert.False(t, created)

	ok, err = r.IsRegistered(ctx, "0x1")
	require.NoError(t, err)
	assert.True(t, ok)
}
