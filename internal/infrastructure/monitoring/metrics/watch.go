// Package metrics exposes the Prometheus instrumentation for the watch
// pipeline.  Collectors are registered on the registry supplied by the
// caller, never on the global default, so embedding applications keep control
// of their metrics surface.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "markwatch"

// WatchMetrics aggregates the pipeline counters.  A nil *WatchMetrics is
// valid and turns every observation into a no-op, which keeps the pipeline
// free of conditionals at call sites that run without instrumentation.
type WatchMetrics struct {
	filingsScanned prometheus.Counter
	alertsRaised   *prometheus.CounterVec
	recordsSkipped prometheus.Counter
	runDuration    prometheus.Histogram
}

// NewWatchMetrics builds and registers the watch collectors on reg.
func NewWatchMetrics(reg prometheus.Registerer) *WatchMetrics {
	m := &WatchMetrics{
		filingsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "filings_scanned_total",
			Help:      "Number of filing records scored against the portfolio.",
		}),
		alertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alerts_raised_total",
			Help:      "Number of conflict alerts raised, by risk tier.",
		}, []string{"tier"}),
		recordsSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_skipped_total",
			Help:      "Number of malformed records skipped during a run.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of complete watch runs.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 4, 8),
		}),
	}

	reg.MustRegister(m.filingsScanned, m.alertsRaised, m.recordsSkipped, m.runDuration)
	return m
}

// FilingScanned counts one scored filing.
func (m *WatchMetrics) FilingScanned() {
	if m == nil {
		return
	}
	m.filingsScanned.Inc()
}

// AlertRaised counts one raised alert for the given tier label.
func (m *WatchMetrics) AlertRaised(tier string) {
	if m == nil {
		return
	}
	m.alertsRaised.WithLabelValues(tier).Inc()
}

// RecordsSkipped counts n malformed records skipped in a run.
func (m *WatchMetrics) RecordsSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsSkipped.Add(float64(n))
}

// RunCompleted records the duration of a finished run.
func (m *WatchMetrics) RunCompleted(seconds float64) {
	if m == nil {
		return
	}
	m.runDuration.Observe(seconds)
}
