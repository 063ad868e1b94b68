package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeRejected = "rejected"
)

// ShellMetrics records the outcome of every backend call the shell makes.
type ShellMetrics struct {
	registry *prometheus.Registry

	submissions   *prometheus.CounterVec
	submitLatency *prometheus.HistogramVec
	deletes       *prometheus.CounterVec
	fetches       *prometheus.CounterVec
	inFlight      prometheus.Gauge
}

// NewShellMetrics creates collectors on a private registry.
func NewShellMetrics() *ShellMetrics {
	m := &ShellMetrics{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stt_frontend",
			Name:      "submissions_total",
			Help:      "Transcription submissions by provider and outcome.",
		}, []string{"provider", "outcome"}),
		submitLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "stt_frontend",
			Name:      "submission_duration_seconds",
			Help:      "Time from submit to backend response.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"provider"}),
		deletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stt_frontend",
			Name:      "deletes_total",
			Help:      "Transcript deletions by outcome.",
		}, []string{"outcome"}),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stt_frontend",
			Name:      "history_fetches_total",
			Help:      "History fetches by outcome.",
		}, []string{"outcome"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "stt_frontend",
			Name:      "submissions_in_flight",
			Help:      "1 while a submission is outstanding.",
		}),
	}

	m.registry.MustRegister(m.submissions, m.submitLatency, m.deletes, m.fetches, m.inFlight)
	return m
}

// SubmissionStarted marks a submission as outstanding.
func (m *ShellMetrics) SubmissionStarted() {
	m.inFlight.Set(1)
}

// RecordSubmission records a finished or rejected submission.
func (m *ShellMetrics) RecordSubmission(provider, outcome string, elapsed time.Duration) {
	m.submissions.WithLabelValues(provider, outcome).Inc()
	if outcome == OutcomeRejected {
		return
	}
	m.inFlight.Set(0)
	m.submitLatency.WithLabelValues(provider).Observe(elapsed.Seconds())
}

// RecordDelete records a delete outcome.
func (m *ShellMetrics) RecordDelete(outcome string) {
	m.deletes.WithLabelValues(outcome).Inc()
}

// RecordFetch records a history fetch outcome.
func (m *ShellMetrics) RecordFetch(outcome string) {
	m.fetches.WithLabelValues(outcome).Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *ShellMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collectors in the Prometheus text format.
func (m *ShellMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
