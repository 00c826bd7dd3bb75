package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	AdminAlerts   *prometheus.CounterVec
	UserAlerts    prometheus.Counter
	Notifications *prometheus.CounterVec
}

func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AdminAlerts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_admin_alerts_total",
			Help: "Admin alerts raised, labeled by source",
		}, []string{"source"}),
		UserAlerts: factory.NewCounter(prometheus.CounterOpts{
			Name: "sentinel_user_alerts_total",
			Help: "Alerts raised to users about partners holding their data",
		}),
		Notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "sentinel_user_notifications_total",
			Help: "User notifications produced, labeled by level",
		}, []string{"level"}),
	}
}

func (m *Metrics) IncAdminAlert(source string) {
	m.AdminAlerts.WithLabelValues(source).Inc()
}

func (m *Metrics) IncUserAlert() {
	m.UserAlerts.Inc()
}

func (m *Metrics) IncNotification(level string) {
	m.Notifications.WithLabelValues(level).Inc()
}
