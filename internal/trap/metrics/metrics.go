package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for the trap detector.
type Metrics struct {
	Checks          *prometheus.CounterVec
	PartnerMismatch prometheus.Counter
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_trap_checks_total",
			Help: "Total number of trap checks by source and matched store",
		}, []string{"source", "match"}),
		PartnerMismatch: factory.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_trap_partner_mismatch_total",
			Help: "Total number of hits attributed to a partner other than the submitter",
		}),
	}
}

func (m *Metrics) IncCheck(source, match string) {
	m.Checks.WithLabelValues(source, match).Inc()
}

func (m *Metrics) IncMismatch() {
	m.PartnerMismatch.Inc()
}
