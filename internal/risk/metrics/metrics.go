package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the risk engine.
type Metrics struct {
	EventsRecorded  prometheus.Counter
	Escalations     prometheus.Counter
	Resets          prometheus.Counter
	ScoreAfterEvent prometheus.Histogram
	ShardLockWait   prometheus.Histogram
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_risk_events_total",
			Help: "Total number of trap events applied to partner scores",
		}),
		Escalations: factory.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_risk_escalations_total",
			Help: "Total number of times a partner score crossed the escalation threshold",
		}),
		Resets: factory.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_risk_resets_total",
			Help: "Total number of administrative score resets",
		}),
		ScoreAfterEvent: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_risk_score_after_event",
			Help:    "Distribution of partner scores after each trap event",
			Buckets: []float64{0, 20, 40, 60, 85, 100},
		}),
		ShardLockWait: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sentinel_risk_shard_lock_wait_seconds",
			Help:    "Time spent waiting to acquire a partner shard lock",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
	}
}

func (m *Metrics) ObserveEvent(score int) {
	m.EventsRecorded.Inc()
	m.ScoreAfterEvent.Observe(float64(score))
}

func (m *Metrics) IncEscalation() {
	m.Escalations.Inc()
}

func (m *Metrics) IncReset() {
	m.Resets.Inc()
}

// ObserveLockWait matches platformsync.WithWaitObserver.
func (m *Metrics) ObserveLockWait(d time.Duration) {
	m.ShardLockWait.Observe(d.Seconds())
}
