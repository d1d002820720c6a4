// SPDX-License-Identifier: MIT

package modrank

import "github.com/prometheus/client_golang/prometheus"

var computations = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "exactla",
	Subsystem: "modrank",
	Name:      "computations_total",
	Help:      "Modular rank computations by kind and storage width.",
}, []string{"kind", "width"})

var clamps = prometheus.NewCounter(prometheus.CounterOpts{
	Namespace: "exactla",
	Subsystem: "modrank",
	Name:      "exponent_clamps_total",
	Help:      "Prime-power requests whose exponent was clamped to fit fixed-width storage.",
})

var cacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
	Namespace: "exactla",
	Subsystem: "modrank",
	Name:      "cache_lookups_total",
	Help:      "Rank cache lookups by result.",
}, []string{"result"})

// Collectors returns the package metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{computations, clamps, cacheLookups}
}
