// SPDX-License-Identifier: MIT

package wiedemann

import (
	"context"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/report"
	"github.com/katalvlaran/exactla/ring"
)

// Precondition returns B = P·A·Q for fresh random P and Q drawn according
// to the traits. P or Q is nil when it is the identity.
//
//   - PrecondNone: B = A.
//   - PrecondButterfly: P and Q are butterfly networks.
//   - PrecondSparse: P is λ-sparse, Q is the transpose of a λ-sparse matrix.
//   - PrecondToeplitz: ErrToeplitzNotImplemented.
func (s *Solver[E]) Precondition(a blackbox.Operator[E]) (b, p, q blackbox.Operator[E], err error) {
	f := s.field
	switch s.traits.Preconditioner {
	case PrecondNone:
		return a, nil, nil, nil
	case PrecondButterfly:
		p = blackbox.NewButterfly(f, s.rng, a.Rows())
		q = blackbox.NewButterfly(f, s.rng, a.Cols())
	case PrecondSparse:
		p = blackbox.NewLambdaSparse(f, s.rng, a.Rows())
		q = blackbox.NewTranspose[E](blackbox.NewLambdaSparse(f, s.rng, a.Cols()))
	case PrecondToeplitz:
		return nil, nil, nil, wiedemannErrorf("Precondition", ErrToeplitzNotImplemented)
	default:
		return nil, nil, nil, wiedemannErrorf("Precondition", ErrBadTraits)
	}
	b = blackbox.MustCompose(p, blackbox.MustCompose(a, q))

	return b, p, q, nil
}

// applyOrCopy sets y = op·x, or y = x when op is nil.
func applyOrCopy[E any](op blackbox.Operator[E], y, x []E) error {
	if op == nil {
		copy(y, x)
		return nil
	}

	return op.Apply(y, x)
}

// SolveSingular attempts one solve of A·x = b for an operator of the given
// rank (RankUnknown computes it first). When the system turns out to be
// inconsistent and certification is on, u receives a vector with uᵀA = 0
// and u·b ≠ 0 and the result is StatusInconsistent.
func (s *Solver[E]) SolveSingular(ctx context.Context, a blackbox.Operator[E], x, b, u []E, rank int) (Status, error) {
	if err := checkSystem(a, x, b); err != nil {
		return StatusFailed, wiedemannErrorf("SolveSingular", err)
	}
	if len(u) != a.Rows() {
		return StatusFailed, wiedemannErrorf("SolveSingular", blackbox.ErrDimensionMismatch)
	}
	f := s.field
	if rank == RankUnknown {
		r, err := s.Rank(ctx, a)
		if err != nil {
			return StatusFailed, err
		}
		rank = r
	}
	done := report.Span(s.obs, "wiedemann.solveSingular", "rank", rank)

	if rank == 0 {
		// A is zero: b = 0 is the only consistent right-hand side, and any
		// unit vector on a non-zero entry of b certifies the contrary.
		for i := range x {
			x[i] = f.Zero()
		}
		for i := range u {
			u[i] = f.Zero()
		}
		for i := range b {
			if !f.IsZero(b[i]) {
				u[i] = f.One()
				observeAttempt("singular", StatusInconsistent)
				done(StatusInconsistent.String())
				return StatusInconsistent, nil
			}
		}
		observeAttempt("singular", StatusOK)
		done(StatusOK.String())
		return StatusOK, nil
	}

	st, err := s.FindRandomSolution(ctx, a, x, b, rank)
	if err != nil {
		done("error")
		return StatusFailed, wiedemannErrorf("SolveSingular", err)
	}
	if st == StatusOK && s.traits.CheckResult {
		ok, err := verify(a, x, b)
		if err != nil {
			done("error")
			return StatusFailed, wiedemannErrorf("SolveSingular", err)
		}
		if !ok {
			st = StatusFailed
		}
	}
	if st == StatusFailed && s.traits.CertifyInconsistency {
		ok, err := s.CertifyInconsistency(ctx, u, a, b, rank)
		if err != nil {
			done("error")
			return StatusFailed, err
		}
		if ok {
			st = StatusInconsistent
		}
	}
	observeAttempt("singular", st)
	done(st.String())

	return st, nil
}

// FindRandomSolution draws a random v, solves the leading r×r block of
// B = P·A·Q against c = B·v + P·b, and maps [y;0] - v back through Q.
// A singular leading block reports StatusBadPreconditioner.
func (s *Solver[E]) FindRandomSolution(ctx context.Context, a blackbox.Operator[E], x, b []E, r int) (Status, error) {
	f := s.field
	bp, p, q, err := s.Precondition(a)
	if err != nil {
		return StatusFailed, err
	}
	m, n := a.Rows(), a.Cols()

	v := ring.RandomVector(f, s.rng, n)
	c := ring.NewVector(f, m)
	if err = bp.Apply(c, v); err != nil {
		return StatusFailed, err
	}
	pb := ring.NewVector(f, m)
	if err = applyOrCopy(p, pb, b); err != nil {
		return StatusFailed, err
	}
	ring.AddTo(f, c, pb)

	z, st, err := s.leadingSolve(ctx, bp, c, r)
	if err != nil || st != StatusOK {
		return st, err
	}
	ring.SubFrom(f, z, v)
	if err = applyOrCopy(q, x, z); err != nil {
		return StatusFailed, err
	}

	return StatusOK, nil
}

// leadingSolve solves the leading r×r block of b against rhs[:r] and
// returns [y;0] sized to b.Cols().
func (s *Solver[E]) leadingSolve(ctx context.Context, b blackbox.Operator[E], rhs []E, r int) ([]E, Status, error) {
	lead, err := blackbox.Leading(b, r)
	if err != nil {
		return nil, StatusFailed, err
	}
	z := ring.NewVector(s.field, b.Cols())
	st, err := s.solveNonsingular(ctx, lead, z[:r], rhs[:r], false)
	if err != nil {
		return nil, StatusFailed, err
	}
	switch st {
	case StatusOK:
		return z, StatusOK, nil
	case StatusSingular:
		return nil, StatusBadPreconditioner, nil
	default:
		return nil, st, nil
	}
}

// FindNullspaceElement writes a random non-zero x with A·x = 0.
//
// Implementation:
//   - Stage 1: take the rank from the traits, or compute it; full column
//     rank has no non-trivial kernel and reports StatusFailed.
//   - Stage 2: precondition B = P·A·Q, draw v, and solve the leading r×r
//     block of B against w = B·v.
//   - Stage 3: x = Q·([y;0] - v), then check A·x = 0 and x ≠ 0.
func (s *Solver[E]) FindNullspaceElement(ctx context.Context, x []E, a blackbox.Operator[E]) (Status, error) {
	if a == nil {
		return StatusFailed, wiedemannErrorf("FindNullspaceElement", blackbox.ErrNilOperator)
	}
	if len(x) != a.Cols() {
		return StatusFailed, wiedemannErrorf("FindNullspaceElement", blackbox.ErrDimensionMismatch)
	}
	f := s.field
	rank := s.traits.Rank
	if rank == RankUnknown {
		r, err := s.Rank(ctx, a)
		if err != nil {
			return StatusFailed, err
		}
		rank = r
	}
	if rank >= a.Cols() {
		observeAttempt("nullspace", StatusFailed)
		return StatusFailed, nil
	}

	var (
		st    Status
		err   error
		z     []E
		bp, q blackbox.Operator[E]
	)
	if rank == 0 {
		copy(x, ring.NonZeroRandomVector(f, s.rng, a.Cols()))
	} else {
		if bp, _, q, err = s.Precondition(a); err != nil {
			return StatusFailed, wiedemannErrorf("FindNullspaceElement", err)
		}
		v := ring.NonZeroRandomVector(f, s.rng, a.Cols())
		w := ring.NewVector(f, a.Rows())
		if err = bp.Apply(w, v); err != nil {
			return StatusFailed, wiedemannErrorf("FindNullspaceElement", err)
		}
		z, st, err = s.leadingSolve(ctx, bp, w, rank)
		if err != nil {
			return StatusFailed, wiedemannErrorf("FindNullspaceElement", err)
		}
		if st != StatusOK {
			observeAttempt("nullspace", st)
			return st, nil
		}
		ring.SubFrom(f, z, v)
		if err = applyOrCopy(q, x, z); err != nil {
			return StatusFailed, wiedemannErrorf("FindNullspaceElement", err)
		}
	}

	zero := ring.NewVector(f, a.Rows())
	var ok bool
	ok, err = verify(a, x, zero)
	if err != nil {
		return StatusFailed, wiedemannErrorf("FindNullspaceElement", err)
	}
	st = StatusOK
	if !ok || ring.VectorIsZero(f, x) {
		st = StatusFailed
	}
	observeAttempt("nullspace", st)

	return st, nil
}

// CertifyInconsistency looks for u with uᵀA = 0 and u·b ≠ 0 using a
// single-trial nullspace search on Aᵀ. It reports true only when such a u
// was found and verified; false means nothing was proven.
func (s *Solver[E]) CertifyInconsistency(ctx context.Context, u []E, a blackbox.Operator[E], b []E, rank int) (bool, error) {
	if len(u) != a.Rows() || len(b) != a.Rows() {
		return false, wiedemannErrorf("CertifyInconsistency", blackbox.ErrDimensionMismatch)
	}
	t := s.traits
	t.TrialsBeforeFailure = 1
	t.Singularity = Singular
	t.Rank = rank
	t.CheckResult = true
	t.CertifyInconsistency = false
	sub := &Solver[E]{field: s.field, traits: t, rng: s.rng, obs: s.obs}

	st, err := sub.FindNullspaceElement(ctx, u, blackbox.NewTranspose(a))
	if err != nil {
		return false, err
	}
	if st != StatusOK {
		return false, nil
	}
	if s.field.IsZero(ring.Dot(s.field, u, b)) {
		s.obs.Debug("left nullspace vector orthogonal to b")
		return false, nil
	}

	return true, nil
}
