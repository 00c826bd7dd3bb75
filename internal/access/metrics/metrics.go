package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Decisions          *prometheus.CounterVec
	EvaluateLatency    prometheus.Histogram
	RestrictionChanges *prometheus.CounterVec
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_access_decisions_total",
			Help: "Access decisions, labeled by status and reason",
		}, []string{"status", "reason"}),
		EvaluateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_access_evaluate_seconds",
			Help:    "Latency of evaluating one partner data request",
			Buckets: prometheus.DefBuckets,
		}),
		RestrictionChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_restriction_changes_total",
			Help: "Restriction writes, labeled by action",
		}, []string{"action"}),
	}
}

func (m *Metrics) IncDecision(status, reason string) {
	m.Decisions.WithLabelValues(status, reason).Inc()
}

func (m *Metrics) ObserveEvaluateLatency(d time.Duration) {
	m.EvaluateLatency.Observe(d.Seconds())
}

func (m *Metrics) IncRestrictionChange(action string) {
	m.RestrictionChanges.WithLabelValues(action).Inc()
}
