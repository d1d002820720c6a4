// SPDX-License-Identifier: MIT

package wiedemann

import "github.com/prometheus/client_golang/prometheus"

var attempts = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "exactla",
	Subsystem: "wiedemann",
	Name:      "attempts_total",
	Help:      "Solver attempts by path and resulting status.",
}, []string{"path", "status"})

var sequenceLength = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "exactla",
	Subsystem: "wiedemann",
	Name:      "sequence_length",
	Help:      "Krylov samples consumed per minimal polynomial.",
	Buckets:   prometheus.ExponentialBuckets(1, 2, 16),
}, []string{"early"})

var rankChecks = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "exactla",
	Subsystem: "wiedemann",
	Name:      "rank_trace_checks_total",
	Help:      "Trace checks of Wiedemann rank estimates by outcome.",
}, []string{"result"})

// Collectors returns the package metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{attempts, sequenceLength, rankChecks}
}

func observeAttempt(path string, st Status) {
	attempts.WithLabelValues(path, st.String()).Inc()
}

func observeSequence(steps int, early bool) {
	label := "false"
	if early {
		label = "true"
	}
	sequenceLength.WithLabelValues(label).Observe(float64(steps))
}
