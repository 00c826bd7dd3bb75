package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for registry anchoring.
type Metrics struct {
	Calls        *prometheus.CounterVec
	CallLatency  *prometheus.HistogramVec
	BreakerState *prometheus.GaugeVec
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Calls: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_anchor_calls_total",
			Help: "Total number of registry calls by operation and outcome",
		}, []string{"op", "outcome"}),
		CallLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sentinel_anchor_call_seconds",
			Help:    "Registry call latency including retries",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		BreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "sentinel_anchor_breaker_state",
			Help: "Registry circuit state (0 closed, 1 open, 2 half-open)",
		}, []string{"name"}),
	}
}

func (m *Metrics) ObserveCall(op, outcome string, d time.Duration) {
	m.Calls.WithLabelValues(op, outcome).Inc()
	m.CallLatency.WithLabelValues(op).Observe(d.Seconds())
}

func (m *Metrics) SetBreakerState(name string, state int) {
	m.BreakerState.WithLabelValues(name).Set(float64(state))
}
