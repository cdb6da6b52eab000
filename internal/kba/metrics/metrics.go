package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the KBA quiz engine.
type Metrics struct {
	SessionsGenerated prometheus.Counter

	// Verification outcomes: passed, failed, not_found, expired, attempts_exceeded
	VerifyOutcomes *prometheus.CounterVec

	// Sessions removed by the periodic expiry sweep
	SessionsSwept prometheus.Counter

	VerifyLatency prometheus.Histogram
}

// New creates a Metrics instance with all KBA metrics registered.
func New() *Metrics {
	return &Metrics{
		SessionsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "guardian_kba_sessions_generated_total",
			Help: "Total KBA quiz sessions issued",
		}),
		VerifyOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_kba_verify_outcomes_total",
			Help: "KBA answer verification outcomes",
		}, []string{"outcome"}),
		SessionsSwept: promauto.NewCounter(prometheus.CounterOpts{
			Name: "guardian_kba_sessions_swept_total",
			Help: "Expired KBA sessions removed by the cleanup sweep",
		}),
		VerifyLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "guardian_kba_verify_duration_seconds",
			Help:    "Duration of KBA answer verification",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
	}
}

// RecordOutcome counts one verification outcome. Safe on a nil receiver so
// tests can run without a registry.
func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.VerifyOutcomes.WithLabelValues(outcome).Inc()
}

// RecordGenerated counts one issued session.
func (m *Metrics) RecordGenerated() {
	if m == nil {
		return
	}
	m.SessionsGenerated.Inc()
}

// RecordSwept counts sessions removed by the expiry sweep.
func (m *Metrics) RecordSwept(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SessionsSwept.Add(float64(n))
}
