package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for honeytoken operations.
type Metrics struct {
	TokensCreated   *prometheus.CounterVec
	TokensAssigned  prometheus.Counter
	ResolveAttempts *prometheus.CounterVec
	GenerateRetries prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the collectors on reg. Tests pass a fresh registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TokensCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_honeytokens_created_total",
			Help: "Total number of honeytokens created, labeled by type",
		}, []string{"type"}),
		TokensAssigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_honeytokens_assigned_total",
			Help: "Total number of honeytokens attributed to a partner on first use",
		}),
		ResolveAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_honeytoken_resolve_total",
			Help: "Total number of honeytoken lookups, labeled by outcome",
		}, []string{"outcome"}),
		GenerateRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_honeytoken_generate_retries_total",
			Help: "Generated values discarded because they collided with an existing token",
		}),
	}
}

func (m *Metrics) IncCreated(tokenType string) {
	m.TokensCreated.WithLabelValues(tokenType).Inc()
}

func (m *Metrics) IncAssigned() {
	m.TokensAssigned.Inc()
}

func (m *Metrics) IncResolve(known bool) {
	outcome := "unknown"
	if known {
		outcome = "known"
	}
	m.ResolveAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncGenerateRetry() {
	m.GenerateRetries.Inc()
}
