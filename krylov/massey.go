// SPDX-License-Identifier: MIT

package krylov

import (
	"math/rand"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/ring"
)

// DefaultEarlyTermThreshold is the number of consecutive samples a
// recurrence must predict correctly before extraction stops early.
const DefaultEarlyTermThreshold = 20

// Result is the outcome of a minimal polynomial extraction.
type Result[E any] struct {
	// Poly holds the monic generator, lowest degree first.
	Poly []E
	// Degree is len(Poly)-1.
	Degree int
	// Steps counts the sequence samples consumed.
	Steps int
	// EarlyTerminated is true when extraction stopped on the threshold
	// rather than on the sample bound.
	EarlyTerminated bool
}

// BerlekampMassey draws at most bound samples from gen and returns the
// minimal generating polynomial of the prefix seen.
//
// Implementation:
//   - Stage 1: classic Berlekamp–Massey on the connection polynomial C(x)
//     with linear complexity L; each sample costs O(L) ring operations.
//   - Stage 2: a run of threshold consecutive zero discrepancies ends the
//     loop early (threshold 0 disables early termination).
//   - Stage 3: the generator is the reversal xᴸ·C(1/x), which is monic.
//
// Errors: ErrNotField, ErrBadThreshold, and any error from gen.
func BerlekampMassey[E any](r ring.Ring[E], gen Generator[E], bound, threshold int) (Result[E], error) {
	if !r.IsField() {
		return Result[E]{}, krylovErrorf("BerlekampMassey", ErrNotField)
	}
	if threshold < 0 {
		return Result[E]{}, krylovErrorf("BerlekampMassey", ErrBadThreshold)
	}

	var (
		c       = []E{r.One()} // connection polynomial
		b       = []E{r.One()} // copy of c before the last length change
		l       int            // linear complexity
		m       = 1            // samples since the last length change
		bd      = r.One()      // discrepancy at the last length change
		seq     = make([]E, 0, bound)
		zeroRun int
		res     Result[E]
		n, i    int
	)
	for n = 0; n < bound; n++ {
		s, err := gen.Next()
		if err != nil {
			return Result[E]{}, krylovErrorf("BerlekampMassey", err)
		}
		seq = append(seq, s)
		res.Steps++

		d := s
		for i = 1; i <= l && i < len(c); i++ {
			d = r.Add(d, r.Mul(c[i], seq[n-i]))
		}
		if r.IsZero(d) {
			m++
			zeroRun++
			if threshold > 0 && zeroRun >= threshold {
				res.EarlyTerminated = n+1 < bound
				break
			}
			continue
		}
		zeroRun = 0

		coef, err := r.Div(d, bd)
		if err != nil {
			return Result[E]{}, krylovErrorf("BerlekampMassey", err)
		}
		prev := append([]E(nil), c...)
		for len(c) < len(b)+m {
			c = append(c, r.Zero())
		}
		for i = range b {
			c[i+m] = r.Sub(c[i+m], r.Mul(coef, b[i]))
		}
		if 2*l <= n {
			l = n + 1 - l
			b = prev
			bd = d
			m = 1
		} else {
			m++
		}
	}

	res.Poly = make([]E, l+1)
	for i = 0; i <= l; i++ {
		if k := l - i; k < len(c) {
			res.Poly[i] = c[k]
		} else {
			res.Poly[i] = r.Zero()
		}
	}
	res.Degree = l

	return res, nil
}

// Minpoly extracts the minimal polynomial of uᵀAⁱv for a square operator,
// drawing at most 2n samples.
func Minpoly[E any](a blackbox.Operator[E], u, v []E, threshold int) (Result[E], error) {
	seq, err := NewSequence(a, u, v)
	if err != nil {
		return Result[E]{}, err
	}

	return BerlekampMassey(a.Ring(), seq, 2*a.Rows(), threshold)
}

// MinpolyRandom draws non-zero random projections and calls Minpoly. The
// result divides the minimal polynomial of a and equals it with high
// probability over a large field.
func MinpolyRandom[E any](a blackbox.Operator[E], rng *rand.Rand, threshold int) (Result[E], error) {
	r := a.Ring()
	u := ring.NonZeroRandomVector(r, rng, a.Rows())
	v := ring.NonZeroRandomVector(r, rng, a.Cols())

	return Minpoly(a, u, v, threshold)
}

// MinpolySymmetric extracts the minimal polynomial of uᵀAⁱu for a symmetric
// operator, at half the applications of Minpoly.
func MinpolySymmetric[E any](a blackbox.Operator[E], u []E, threshold int) (Result[E], error) {
	seq, err := NewSymmetricSequence(a, u)
	if err != nil {
		return Result[E]{}, err
	}

	return BerlekampMassey(a.Ring(), seq, 2*a.Rows(), threshold)
}

// Valuation returns the multiplicity of x in poly, i.e. the number of
// leading zero coefficients.
func Valuation[E any](r ring.Ring[E], poly []E) int {
	var k int
	for k < len(poly) && r.IsZero(poly[k]) {
		k++
	}

	return k
}

// PseudoRank is deg(poly) minus the multiplicity of x. For the minimal
// polynomial of a suitably preconditioned operator it equals the rank.
func PseudoRank[E any](r ring.Ring[E], poly []E) int {
	if len(poly) == 0 {
		return 0
	}

	return len(poly) - 1 - Valuation(r, poly)
}
