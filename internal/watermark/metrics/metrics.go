package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for watermark operations.
type Metrics struct {
	Issued  prometheus.Counter
	Decodes *prometheus.CounterVec
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Issued: factory.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_watermarks_issued_total",
			Help: "Total number of watermark markers issued",
		}),
		Decodes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_watermark_decodes_total",
			Help: "Total number of watermark decode attempts, labeled by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) IncIssued() {
	m.Issued.Inc()
}

func (m *Metrics) IncDecode(found bool) {
	outcome := "not_found"
	if found {
		outcome = "found"
	}
	m.Decodes.WithLabelValues(outcome).Inc()
}
