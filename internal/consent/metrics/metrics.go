package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for consent operations.
type Metrics struct {
	ConsentUpdates       *prometheus.CounterVec
	ConsentLookups       *prometheus.CounterVec
	ConsentUpdateLatency prometheus.Histogram
	ShardLockWait        prometheus.Histogram
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ConsentUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_consent_updates_total",
			Help: "Total number of consent record updates, labeled by whether the record was created",
		}, []string{"created"}),
		ConsentLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_consent_lookups_total",
			Help: "Total number of consent lookups, labeled by outcome",
		}, []string{"outcome"}),
		ConsentUpdateLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_consent_update_latency_seconds",
			Help:    "Latency of consent update operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		ShardLockWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_consent_shard_lock_wait_seconds",
			Help:    "Time spent waiting to acquire a user shard lock",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncUpdate(created bool) {
	label := "false"
	if created {
		label = "true"
	}
	m.ConsentUpdates.WithLabelValues(label).Inc()
}

func (m *Metrics) IncLookup(found bool) {
	outcome := "missing"
	if found {
		outcome = "found"
	}
	m.ConsentLookups.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpdateLatency(d time.Duration) {
	m.ConsentUpdateLatency.Observe(d.Seconds())
}

func (m *Metrics) ObserveLockWait(d time.Duration) {
	m.ShardLockWait.Observe(d.Seconds())
}
