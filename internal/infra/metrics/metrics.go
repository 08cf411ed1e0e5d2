// Package metrics exposes run telemetry to Prometheus.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Metrics bundles notifier metrics on a private registry.
type Metrics struct {
	registry    *prometheus.Registry
	Decisions   *prometheus.CounterVec
	Runs        *prometheus.CounterVec
	RunDuration *prometheus.HistogramVec
	LastSuccess *prometheus.GaugeVec
}

// New constructs and registers metrics.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worktime_gate_decisions_total",
				Help: "Admission decisions by kind and reason (reason=allowed when every check passed)",
			},
			[]string{"kind", "reason"},
		),
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worktime_runs_total",
				Help: "Finished runs by kind and terminal state",
			},
			[]string{"kind", "state"},
		),
		RunDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "worktime_run_duration_seconds",
			Help:    "Run duration including the jitter wait",
			Buckets: []float64{1, 10, 60, 120, 180, 240, 300, 600},
		}, []string{"kind"}),
		LastSuccess: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "worktime_last_success_timestamp_seconds",
			Help: "Unix time of the last recorded notification",
		}, []string{"kind"}),
	}
	m.registry.MustRegister(m.Decisions, m.Runs, m.RunDuration, m.LastSuccess)
	return m
}

func (m *Metrics) ObserveDecision(kind string, reasons []string) {
	if len(reasons) == 0 {
		m.Decisions.WithLabelValues(kind, "allowed").Inc()
		return
	}
	for _, r := range reasons {
		m.Decisions.WithLabelValues(kind, r).Inc()
	}
}

func (m *Metrics) ObserveOutcome(kind, state string, elapsed time.Duration) {
	m.Runs.WithLabelValues(kind, state).Inc()
	m.RunDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
	if state == "recorded" {
		m.LastSuccess.WithLabelValues(kind).SetToCurrentTime()
	}
}

// Registry returns the registry backing these metrics.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Push sends the registry to a Pushgateway. One-shot runs use this since
// they exit before any scrape could happen.
func (m *Metrics) Push(ctx context.Context, url, job string) error {
	if err := push.New(url, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
