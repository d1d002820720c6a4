// SPDX-License-Identifier: MIT

package wiedemann

import (
	"context"
	"math/rand"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/report"
	"github.com/katalvlaran/exactla/ring"
)

// DefaultSeed seeds the generator of a Solver built without WithRand or
// WithSeed, so runs are reproducible unless the caller asks otherwise.
const DefaultSeed int64 = 1

// Option configures a Solver.
type Option func(*options)

type options struct {
	rng *rand.Rand
	obs report.Observer
}

// WithRand makes the solver draw all randomness from rng. Panics on nil.
func WithRand(rng *rand.Rand) Option {
	if rng == nil {
		panic("wiedemann: WithRand: nil generator")
	}
	return func(o *options) { o.rng = rng }
}

// WithSeed is WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

// WithObserver routes progress reporting to obs.
func WithObserver(obs report.Observer) Option {
	return func(o *options) { o.obs = obs }
}

// Solver is a Wiedemann solver over the field F. It is not safe for
// concurrent use: trials share one random generator.
type Solver[E any] struct {
	field  ring.Ring[E]
	traits Traits
	rng    *rand.Rand
	obs    report.Observer
}

// New returns a solver over f with the given traits.
func New[E any](f ring.Ring[E], t Traits, opts ...Option) (*Solver[E], error) {
	if !f.IsField() {
		return nil, wiedemannErrorf("New", ErrNotField)
	}
	if err := t.Validate(); err != nil {
		return nil, wiedemannErrorf("New", err)
	}
	o := options{obs: report.Nop}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(DefaultSeed))
	}

	return &Solver[E]{field: f, traits: t, rng: o.rng, obs: report.OrNop(o.obs)}, nil
}

// Traits returns the configured traits.
func (s *Solver[E]) Traits() Traits { return s.traits }

// Solve finds x with A·x = b.
//
// Implementation (one iteration per trial):
//   - A non-square operator is always treated as Singular.
//   - Unknown: SolveNonsingular; a singular verdict switches to Singular and
//     restores the full trial count.
//   - NonSingular: SolveNonsingular; a singular verdict is returned as is.
//   - Singular: compute the rank unless known, then SolveSingular. A failed
//     attempt forgets the rank so the next one recomputes it.
//   - Failed and BadPreconditioner consume a trial; any other status ends
//     the loop.
//
// On StatusInconsistent, u holds the certificate (uᵀA = 0, u·b ≠ 0).
// Returns StatusFailed once every trial is spent.
//
// Complexity: per trial O(n·T(A) + n²) field operations for an n×n
// operator whose application costs T(A); a singular trial adds the rank
// computation and the preconditioner applications.
func (s *Solver[E]) Solve(ctx context.Context, a blackbox.Operator[E], x, b, u []E) (Status, error) {
	if err := checkSystem(a, x, b); err != nil {
		return StatusFailed, wiedemannErrorf("Solve", err)
	}
	if len(u) != a.Rows() {
		return StatusFailed, wiedemannErrorf("Solve", blackbox.ErrDimensionMismatch)
	}

	singularity := s.traits.Singularity
	if !blackbox.IsSquare(a) {
		singularity = Singular
	}
	rank := s.traits.Rank
	trials := s.traits.TrialsBeforeFailure
	done := report.Span(s.obs, "wiedemann.solve", "rows", a.Rows(), "cols", a.Cols(), "singularity", singularity)

	for trials > 0 {
		if err := ctx.Err(); err != nil {
			done("cancelled")
			return StatusFailed, wiedemannErrorf("Solve", err)
		}

		switch singularity {
		case Unknown, NonSingular:
			st, err := s.SolveNonsingular(ctx, a, x, b)
			if err != nil {
				done("error")
				return StatusFailed, err
			}
			switch {
			case st == StatusOK:
				done(st.String())
				return st, nil
			case st == StatusSingular && singularity == NonSingular:
				s.obs.Warn("operator declared nonsingular is singular")
				done(st.String())
				return st, nil
			case st == StatusSingular:
				s.obs.Debug("switching to singular solver", "trials", s.traits.TrialsBeforeFailure)
				singularity = Singular
				trials = s.traits.TrialsBeforeFailure
				continue
			}

		case Singular:
			if rank == RankUnknown {
				r, err := s.Rank(ctx, a)
				if err != nil {
					done("error")
					return StatusFailed, err
				}
				rank = r
				s.obs.Debug("rank computed", "rank", rank)
			}
			st, err := s.SolveSingular(ctx, a, x, b, u, rank)
			if err != nil {
				done("error")
				return StatusFailed, err
			}
			switch st {
			case StatusOK, StatusInconsistent:
				done(st.String())
				return st, nil
			case StatusFailed:
				rank = RankUnknown
			case StatusBadPreconditioner:
				s.obs.Debug("preconditioner did not expose generic rank profile", "trials_left", trials-1)
			}
		}
		trials--
	}
	s.obs.Warn("trials exhausted", "trials", s.traits.TrialsBeforeFailure)
	done(StatusFailed.String())

	return StatusFailed, nil
}

// checkSystem validates the shapes of A·x = b.
func checkSystem[E any](a blackbox.Operator[E], x, b []E) error {
	if a == nil {
		return blackbox.ErrNilOperator
	}

	return blackbox.ValidateApply(a, b, x)
}
