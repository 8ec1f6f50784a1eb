// Package metrics counts station activity for Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry  *prometheus.Registry
	logins    *prometheus.CounterVec
	submitted *prometheus.CounterVec
	decisions *prometheus.CounterVec
}

// New registers the station counters on a fresh registry together with the
// process and Go runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "station_logins_total",
			Help: "Login attempts by result.",
		}, []string{"result"}),
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "station_requests_submitted_total",
			Help: "Requests submitted by type.",
		}, []string{"type"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "station_approval_decisions_total",
			Help: "Approval decisions by decision.",
		}, []string{"decision"}),
	}
	m.registry.MustRegister(
		m.logins, m.submitted, m.decisions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Login(ok bool) {
	if m == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	m.logins.WithLabelValues(result).Inc()
}

func (m *Metrics) Submitted(requestType string) {
	if m == nil {
		return
	}
	m.submitted.WithLabelValues(requestType).Inc()
}

func (m *Metrics) Decided(decision string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(decision).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
