// Package metrics holds the prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	YieldEstimates  *prometheus.CounterVec // by source
	PlanSubmissions *prometheus.CounterVec // by outcome
	Decisions       *prometheus.CounterVec // by kind, status
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		YieldEstimates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alphafarm",
			Name:      "yield_estimates_total",
			Help:      "Yield estimates served, by source.",
		}, []string{"source"}),
		PlanSubmissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alphafarm",
			Name:      "crop_plan_submissions_total",
			Help:      "Crop plan submissions, by outcome.",
		}, []string{"outcome"}),
		Decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alphafarm",
			Name:      "approval_decisions_total",
			Help:      "Admin approval decisions, by kind and status.",
		}, []string{"kind", "status"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.YieldEstimates, m.PlanSubmissions, m.Decisions,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}

// The helpers below accept a nil receiver so services can run without metrics.

func (m *Metrics) ObserveYield(source string) {
	if m != nil {
		m.YieldEstimates.WithLabelValues(source).Inc()
	}
}

func (m *Metrics) ObservePlan(outcome string) {
	if m != nil {
		m.PlanSubmissions.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveDecision(kind, status string) {
	if m != nil {
		m.Decisions.WithLabelValues(kind, status).Inc()
	}
}
