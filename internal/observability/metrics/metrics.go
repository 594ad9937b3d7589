// Package metrics exposes Prometheus counters for chat and assessment flows.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts chat turns by triage tier and assessment calls by kind.
type Metrics struct {
	chatTurns   *prometheus.CounterVec
	assessments *prometheus.CounterVec
}

// New registers the counters on reg (the default registerer when nil).
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		chatTurns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medbot",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Total chat turns processed, labeled by triage tier",
		}, []string{"tier", "status"}),
		assessments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medbot",
			Subsystem: "assess",
			Name:      "calls_total",
			Help:      "Total assessment/calculator calls",
		}, []string{"kind", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.chatTurns, m.assessments)
	return m
}

// ObserveChatTurn records one processed chat turn.
func (m *Metrics) ObserveChatTurn(tier, status string) {
	if m == nil {
		return
	}
	m.chatTurns.WithLabelValues(tier, status).Inc()
}

// ObserveAssessment records one assessment or calculator call.
func (m *Metrics) ObserveAssessment(kind, status string) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(kind, status).Inc()
}
