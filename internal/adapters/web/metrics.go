package web

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments for the HTTP surface.
type Metrics struct {
	Registry *prometheus.Registry

	recommendationsTotal *prometheus.CounterVec
	recommendDuration    prometheus.Histogram
	editsTotal           *prometheus.CounterVec
}

// NewMetrics creates and registers the instrument set.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		recommendationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "runcard_recommendations_total",
			Help: "Total recommendation runs by incident type and outcome.",
		}, []string{"incident", "outcome"}),
		recommendDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "runcard_recommend_duration_seconds",
			Help:    "Histogram of recommendation run durations.",
			Buckets: prometheus.DefBuckets,
		}),
		editsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "runcard_edits_total",
			Help: "Total status/override edits by kind.",
		}, []string{"kind"}),
	}
	m.Registry.MustRegister(m.recommendationsTotal, m.recommendDuration, m.editsTotal)
	return m
}

// ObserveRecommend records one recommendation run.
func (m *Metrics) ObserveRecommend(incident, outcome string, seconds float64) {
	m.recommendationsTotal.WithLabelValues(incident, outcome).Inc()
	m.recommendDuration.Observe(seconds)
}

// ObserveEdit records one edit.
func (m *Metrics) ObserveEdit(kind string) {
	m.editsTotal.WithLabelValues(kind).Inc()
}
