// SPDX-License-Identifier: MIT

package blackbox

import (
	"math/rand"

	"github.com/katalvlaran/exactla/ring"
)

// Diagonal is diag(d[0], ..., d[n-1]).
type Diagonal[E any] struct {
	ring ring.Ring[E]
	d    []E
}

// NewDiagonal copies d into a diagonal operator.
func NewDiagonal[E any](r ring.Ring[E], d []E) *Diagonal[E] {
	cp := make([]E, len(d))
	copy(cp, d)

	return &Diagonal[E]{ring: r, d: cp}
}

// RandomDiagonal draws n non-zero diagonal entries; over a field the result
// is always invertible.
func RandomDiagonal[E any](r ring.Ring[E], rng *rand.Rand, n int) *Diagonal[E] {
	return &Diagonal[E]{ring: r, d: ring.NonZeroRandomVector(r, rng, n)}
}

func (d *Diagonal[E]) Rows() int          { return len(d.d) }
func (d *Diagonal[E]) Cols() int          { return len(d.d) }
func (d *Diagonal[E]) Ring() ring.Ring[E] { return d.ring }

// Entries returns a copy of the diagonal.
func (d *Diagonal[E]) Entries() []E {
	out := make([]E, len(d.d))
	copy(out, d.d)

	return out
}

func (d *Diagonal[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](d, y, x); err != nil {
		return blackboxErrorf("Diagonal.Apply", err)
	}
	var i int
	for i = range d.d {
		y[i] = d.ring.Mul(d.d[i], x[i])
	}

	return nil
}

func (d *Diagonal[E]) ApplyTranspose(y, x []E) error {
	if err := ValidateApplyTranspose[E](d, y, x); err != nil {
		return blackboxErrorf("Diagonal.ApplyTranspose", err)
	}

	return d.Apply(y, x)
}

func (d *Diagonal[E]) ForEachNonZero(fn func(i, j int, v E)) {
	var i int
	for i = range d.d {
		if !d.ring.IsZero(d.d[i]) {
			fn(i, i, d.d[i])
		}
	}
}

// Scalar is λ·I of order n.
type Scalar[E any] struct {
	ring   ring.Ring[E]
	n      int
	lambda E
}

// NewScalar returns λ·I_n. Panics if n < 0 (programmer error).
func NewScalar[E any](r ring.Ring[E], n int, lambda E) *Scalar[E] {
	if n < 0 {
		panic("blackbox: NewScalar: negative order")
	}

	return &Scalar[E]{ring: r, n: n, lambda: lambda}
}

func (s *Scalar[E]) Rows() int          { return s.n }
func (s *Scalar[E]) Cols() int          { return s.n }
func (s *Scalar[E]) Ring() ring.Ring[E] { return s.ring }

func (s *Scalar[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](s, y, x); err != nil {
		return blackboxErrorf("Scalar.Apply", err)
	}
	var i int
	for i = range x {
		y[i] = s.ring.Mul(s.lambda, x[i])
	}

	return nil
}

func (s *Scalar[E]) ApplyTranspose(y, x []E) error { return s.Apply(y, x) }

func (s *Scalar[E]) ForEachNonZero(fn func(i, j int, v E)) {
	if s.ring.IsZero(s.lambda) {
		return
	}
	var i int
	for i = 0; i < s.n; i++ {
		fn(i, i, s.lambda)
	}
}
