// Package requestcontext carries per-request metadata (request ID, client IP,
// user agent, evaluation clock) through context.Context.
package requestcontext

import (
	"context"
	"time"
)

type (
	requestIDKey struct{}
	clientIPKey  struct{}
	userAgentKey struct{}
	nowKey       struct{}
)

// WithRequestID stores the correlation ID for the current request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// RequestID returns the correlation ID, or "" when absent.
func RequestID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey{}).(string); ok {
		return v
	}
	return ""
}

// WithClientMetadata stores the caller's IP and user agent.
func WithClientMetadata(ctx context.Context, ip, userAgent string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, ip)
	return context.WithValue(ctx, userAgentKey{}, userAgent)
}

// ClientIP returns the caller IP recorded by the metadata middleware.
func ClientIP(ctx context.Context) string {
	if v, ok := ctx.Value(clientIPKey{}).(string); ok {
		return v
	}
	return ""
}

// UserAgent returns the caller user agent recorded by the metadata middleware.
func UserAgent(ctx context.Context) string {
	if v, ok := ctx.Value(userAgentKey{}).(string); ok {
		return v
	}
	return ""
}

// WithTime pins the evaluation clock. Tests use it to make expiry checks deterministic.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, nowKey{}, t)
}

// Now returns the pinned request time, falling back to the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := PinnedTime(ctx); ok {
		return t
	}
	return time.Now()
}

// PinnedTime returns the time set by WithTime, if any.
func PinnedTime(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(nowKey{}).(time.Time)
	return t, ok && !t.IsZero()
}
