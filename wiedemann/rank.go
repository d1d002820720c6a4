// SPDX-License-Identifier: MIT

package wiedemann

import (
	"context"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/krylov"
	"github.com/katalvlaran/exactla/report"
	"github.com/katalvlaran/exactla/ring"
)

// Rank computes the rank of A by Wiedemann's method.
//
// Implementation:
//   - Stage 1: draw non-zero diagonals D1 (order cols) and D2 (order rows)
//     and form the symmetric B = D1·Aᵀ·D2·A·D1, which has the rank of A
//     with high probability.
//   - Stage 2: the rank estimate is deg f minus the multiplicity of x in
//     the minimal polynomial f of uᵀBⁱu.
//   - Stage 3: when the entries of A are enumerable the estimate is
//     checked against trace(B) = -f[deg-1]; a failed check redraws the
//     diagonals, up to TrialsBeforeFailure times. Otherwise the largest of
//     DefaultRankEstimates estimates is returned.
//
// The result never exceeds the true rank; it can fall short with small
// probability over a small field.
//
// Complexity: per estimate about 2·min(m, n) applications of A and of Aᵀ
// plus O(min(m, n)²) for Berlekamp–Massey; the trace check adds O(nnz).
func (s *Solver[E]) Rank(ctx context.Context, a blackbox.Operator[E]) (int, error) {
	if a == nil {
		return 0, wiedemannErrorf("Rank", blackbox.ErrNilOperator)
	}
	if a.Rows() == 0 || a.Cols() == 0 {
		return 0, nil
	}
	ew, checkable := blackbox.AsEntrywise(a)
	rounds := DefaultRankEstimates
	if checkable {
		rounds = s.traits.TrialsBeforeFailure
	}
	done := report.Span(s.obs, "wiedemann.rank", "rows", a.Rows(), "cols", a.Cols(), "checked", checkable)

	best := -1
	for k := 0; k < rounds; k++ {
		if err := ctx.Err(); err != nil {
			done("cancelled")
			return 0, wiedemannErrorf("Rank", err)
		}
		d1 := blackbox.RandomDiagonal(s.field, s.rng, a.Cols())
		d2 := blackbox.RandomDiagonal(s.field, s.rng, a.Rows())
		b := blackbox.MustCompose[E](d1,
			blackbox.MustCompose[E](blackbox.NewTranspose(a),
				blackbox.MustCompose[E](d2,
					blackbox.MustCompose[E](a, d1))))

		u := ring.NonZeroRandomVector(s.field, s.rng, a.Cols())
		res, err := krylov.MinpolySymmetric[E](b, u, s.traits.EarlyTermThreshold)
		if err != nil {
			done("error")
			return 0, wiedemannErrorf("Rank", err)
		}
		observeSequence(res.Steps, res.EarlyTerminated)
		est := krylov.PseudoRank(s.field, res.Poly)

		if checkable {
			if s.traceMatches(ew, d1.Entries(), d2.Entries(), res.Poly) && est >= best {
				rankChecks.WithLabelValues("pass").Inc()
				done("ok")
				return est, nil
			}
			rankChecks.WithLabelValues("fail").Inc()
		}
		if est > best {
			best = est
		}
	}
	if checkable {
		s.obs.Warn("rank trace check never passed; returning best estimate", "rank", best, "trials", rounds)
	}
	done("estimate")

	return best, nil
}

// traceMatches compares trace(D1·Aᵀ·D2·A·D1) = Σ d1[j]²·d2[i]·a[i][j]²
// with the negated subleading coefficient of poly.
func (s *Solver[E]) traceMatches(a blackbox.Entrywise[E], d1, d2, poly []E) bool {
	f := s.field
	t := f.Zero()
	a.ForEachNonZero(func(i, j int, v E) {
		w := f.Mul(d1[j], v)
		t = f.Add(t, f.Mul(d2[i], f.Mul(w, w)))
	})
	sub := f.Zero()
	if deg := len(poly) - 1; deg >= 1 {
		sub = f.Neg(poly[deg-1])
	}

	return f.Equal(t, sub)
}

// Det computes det(A) for a square A.
//
// With a random non-zero diagonal D, the minimal polynomial f of A·D has
// degree n with high probability, in which case det(A·D) = (-1)ⁿ·f(0) and
// det(A) follows by dividing out Πd. A zero constant term proves A
// singular. ErrTrialsExhausted is returned when no trial reached degree n.
//
// Complexity: O(n·T(A) + n²) field operations per trial.
func (s *Solver[E]) Det(ctx context.Context, a blackbox.Operator[E]) (E, error) {
	f := s.field
	if a == nil {
		return f.Zero(), wiedemannErrorf("Det", blackbox.ErrNilOperator)
	}
	if err := blackbox.ValidateSquare(a); err != nil {
		return f.Zero(), wiedemannErrorf("Det", err)
	}
	n := a.Rows()
	if n == 0 {
		return f.One(), nil
	}
	done := report.Span(s.obs, "wiedemann.det", "n", n)

	for k := 0; k < s.traits.TrialsBeforeFailure; k++ {
		if err := ctx.Err(); err != nil {
			done("cancelled")
			return f.Zero(), wiedemannErrorf("Det", err)
		}
		d := blackbox.RandomDiagonal(f, s.rng, n)
		ad := blackbox.MustCompose[E](a, d)
		res, err := krylov.MinpolyRandom[E](ad, s.rng, s.traits.EarlyTermThreshold)
		if err != nil {
			done("error")
			return f.Zero(), wiedemannErrorf("Det", err)
		}
		observeSequence(res.Steps, res.EarlyTerminated)
		if res.Degree >= 1 && f.IsZero(res.Poly[0]) {
			done("ok")
			return f.Zero(), nil
		}
		if res.Degree != n {
			continue
		}

		det := res.Poly[0]
		if n%2 == 1 {
			det = f.Neg(det)
		}
		prod := f.One()
		for _, v := range d.Entries() {
			prod = f.Mul(prod, v)
		}
		if det, err = f.Div(det, prod); err != nil {
			done("error")
			return f.Zero(), wiedemannErrorf("Det", err)
		}
		done("ok")
		return det, nil
	}
	done("failed")

	return f.Zero(), wiedemannErrorf("Det", ErrTrialsExhausted)
}
