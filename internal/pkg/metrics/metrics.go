package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors the services update. A nil *Metrics is a no-op.
type Metrics struct {
	reg            prometheus.Registerer
	checkIns       *prometheus.CounterVec
	reportDuration *prometheus.HistogramVec
	fetchFailures  *prometheus.CounterVec
	notifications  *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		reg: reg,
		checkIns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "check_ins_total",
			Help:      "Check-ins recorded, by resulting status.",
		}, []string{"status"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "attendance",
			Name:      "report_duration_seconds",
			Help:      "Time spent building reports.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		fetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "report_fetch_failures_total",
			Help:      "Per-employee record fetches that failed during report fan-out.",
		}, []string{"kind"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "attendance",
			Name:      "line_notifications_total",
			Help:      "LINE push messages, by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(m.checkIns, m.reportDuration, m.fetchFailures, m.notifications)
	return m
}

// RegisterPool exports the number of database connections in use.
func (m *Metrics) RegisterPool(acquired func() float64) {
	if m == nil {
		return
	}
	m.reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "attendance",
		Name:      "db_connections_acquired",
		Help:      "Database connections currently checked out of the pool.",
	}, acquired))
}

func (m *Metrics) CheckIn(status string) {
	if m == nil {
		return
	}
	m.checkIns.WithLabelValues(status).Inc()
}

// ObserveReport records the time since start for a report kind.
func (m *Metrics) ObserveReport(kind string, start time.Time) {
	if m == nil {
		return
	}
	m.reportDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

func (m *Metrics) FetchFailed(kind string) {
	if m == nil {
		return
	}
	m.fetchFailures.WithLabelValues(kind).Inc()
}

func (m *Metrics) Notification(err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.notifications.WithLabelValues(result).Inc()
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
