package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the consent workflow.
type Metrics struct {
	// Initiations by verification method
	Initiated *prometheus.CounterVec

	// Lifecycle outcomes: granted, denied, revoked, kba_failed, payment_failed
	Outcomes *prometheus.CounterVec

	// Records removed by the retention sweep
	RecordsPurged prometheus.Counter

	// Renewal reminders emitted
	RemindersEmitted prometheus.Counter

	// Grant transaction latency, including both store writes
	GrantLatency prometheus.Histogram
}

// New creates a Metrics instance with all consent metrics registered.
func New() *Metrics {
	return &Metrics{
		Initiated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_consent_initiated_total",
			Help: "Consent flows initiated by verification method",
		}, []string{"method"}),
		Outcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "guardian_consent_outcomes_total",
			Help: "Consent lifecycle outcomes",
		}, []string{"outcome"}),
		RecordsPurged: promauto.NewCounter(prometheus.CounterOpts{
			Name: "guardian_consent_records_purged_total",
			Help: "Consent records removed by the retention sweep",
		}),
		RemindersEmitted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "guardian_consent_reminders_total",
			Help: "Renewal reminder events emitted",
		}),
		GrantLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "guardian_consent_grant_duration_seconds",
			Help:    "Duration of the atomic grant transaction",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// RecordInitiated counts an initiation. Safe on a nil receiver so tests can
// run without a registry.
func (m *Metrics) RecordInitiated(method string) {
	if m == nil {
		return
	}
	m.Initiated.WithLabelValues(method).Inc()
}

// RecordOutcome counts a lifecycle outcome.
func (m *Metrics) RecordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.Outcomes.WithLabelValues(outcome).Inc()
}

// RecordPurged counts records removed by the retention sweep.
func (m *Metrics) RecordPurged(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RecordsPurged.Add(float64(n))
}

// RecordReminders counts emitted renewal reminders.
func (m *Metrics) RecordReminders(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RemindersEmitted.Add(float64(n))
}

// ObserveGrant records a grant transaction duration in seconds.
func (m *Metrics) ObserveGrant(seconds float64) {
	if m == nil {
		return
	}
	m.GrantLatency.Observe(seconds)
}
