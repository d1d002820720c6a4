// SPDX-License-Identifier: MIT

package invariant

import (
	"github.com/katalvlaran/exactla/report"
	"github.com/katalvlaran/exactla/wiedemann"
)

// Option configures a single call.
type Option func(*options)

type options struct {
	method Method
	traits wiedemann.Traits
	seed   int64
	obs    report.Observer
}

func gatherOptions(opts []Option) options {
	o := options{
		method: Auto,
		traits: wiedemann.DefaultTraits(),
		seed:   wiedemann.DefaultSeed,
		obs:    report.Nop,
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.obs = report.OrNop(o.obs)

	return o
}

// WithMethod selects the strategy (default Auto). Panics on values outside
// the Method enumeration.
func WithMethod(m Method) Option {
	if m < Auto || m > BlasElimination {
		panic("invariant: WithMethod: unknown method")
	}
	return func(o *options) { o.method = m }
}

// WithTraits configures the Wiedemann solver used by black-box kernels.
func WithTraits(t wiedemann.Traits) Option {
	return func(o *options) { o.traits = t }
}

// WithSeed seeds the black-box kernels' random generator.
func WithSeed(seed int64) Option {
	return func(o *options) { o.seed = seed }
}

// WithObserver routes the resolved kernel and solver progress to obs.
func WithObserver(obs report.Observer) Option {
	return func(o *options) { o.obs = obs }
}
