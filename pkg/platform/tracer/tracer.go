// Package tracer is a thin span abstraction so domain services can emit traces
// without importing OpenTelemetry directly. Use NewNoop in tests and NewOTel
// in the server.
package tracer

import (
	"context"
	"time"
)

// Span is an active trace span. End must be called exactly once.
type Span interface {
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer starts spans. Implementations must be safe for concurrent use.
type Tracer interface {
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: int64(value)}
}

// Duration records value in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanTestValue   = "trap.test_value"
	SpanSimulateHit = "trap.simulate_hit"
	SpanAnchor      = "anchor.register"
	SpanAnchorCheck = "anchor.check"
)

// Event names.
const (
	EventPartnerMismatch = "trap.attributed_elsewhere"
)

// Attribute keys.
const (
	AttrPartnerID     = "partner_id"
	AttrHit           = "trap.hit"
	AttrMatchKind     = "trap.match_kind"
	AttrRiskScore     = "risk.score"
	AttrPartnerDiffer = "trap.partner_mismatch"
	AttrAttempt       = "attempt"
)
