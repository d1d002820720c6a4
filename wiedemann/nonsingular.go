// SPDX-License-Identifier: MIT

package wiedemann

import (
	"context"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/krylov"
	"github.com/katalvlaran/exactla/ring"
)

// SolveNonsingular attempts one nonsingular solve of A·x = b using the
// traits' CheckResult flag.
//
// Complexity: at most 2n applications of A for the Krylov sequence, O(n²)
// for Berlekamp–Massey and deg f applications for the Horner evaluation.
func (s *Solver[E]) SolveNonsingular(ctx context.Context, a blackbox.Operator[E], x, b []E) (Status, error) {
	return s.solveNonsingular(ctx, a, x, b, s.traits.CheckResult)
}

// solveNonsingular computes the minimal polynomial f of the sequence
// uᵀAⁱb for a random u, then evaluates
//
//	x = -(1/f₀)·(f₁·b + f₂·A·b + … + f_d·Aᵈ⁻¹·b)
//
// by Horner's rule. A zero constant term reports StatusSingular; a
// degenerate polynomial or a failed check reports StatusFailed.
func (s *Solver[E]) solveNonsingular(ctx context.Context, a blackbox.Operator[E], x, b []E, check bool) (Status, error) {
	if err := checkSystem(a, x, b); err != nil {
		return StatusFailed, wiedemannErrorf("SolveNonsingular", err)
	}
	if err := blackbox.ValidateSquare(a); err != nil {
		return StatusFailed, wiedemannErrorf("SolveNonsingular", err)
	}
	if err := ctx.Err(); err != nil {
		return StatusFailed, wiedemannErrorf("SolveNonsingular", err)
	}
	f := s.field

	if ring.VectorIsZero(f, b) {
		for i := range x {
			x[i] = f.Zero()
		}
		observeAttempt("nonsingular", StatusOK)
		return StatusOK, nil
	}

	u := ring.NonZeroRandomVector(f, s.rng, a.Rows())
	res, err := krylov.Minpoly(a, u, b, s.traits.EarlyTermThreshold)
	if err != nil {
		return StatusFailed, wiedemannErrorf("SolveNonsingular", err)
	}
	observeSequence(res.Steps, res.EarlyTerminated)

	st, err := s.hornerSolve(a, x, b, res.Poly)
	if err != nil {
		return StatusFailed, wiedemannErrorf("SolveNonsingular", err)
	}
	if st == StatusOK && check {
		ok, err := verify(a, x, b)
		if err != nil {
			return StatusFailed, wiedemannErrorf("SolveNonsingular", err)
		}
		if !ok {
			s.obs.Debug("nonsingular solution failed check", "degree", res.Degree)
			st = StatusFailed
		}
	}
	observeAttempt("nonsingular", st)

	return st, nil
}

// hornerSolve writes -(1/f₀)·Σ_{i≥1} fᵢ·Aⁱ⁻¹·b into x.
func (s *Solver[E]) hornerSolve(a blackbox.Operator[E], x, b, poly []E) (Status, error) {
	f := s.field
	d := len(poly) - 1
	if d < 1 {
		return StatusFailed, nil
	}
	if f.IsZero(poly[0]) {
		return StatusSingular, nil
	}
	inv, err := f.Inv(poly[0])
	if err != nil {
		return StatusFailed, err
	}
	scale := f.Neg(inv)

	acc := ring.NewVector(f, len(b))
	tmp := ring.NewVector(f, len(b))
	for k := range acc {
		acc[k] = f.Mul(poly[d], b[k])
	}
	for i := d - 1; i >= 1; i-- {
		if err = a.Apply(tmp, acc); err != nil {
			return StatusFailed, err
		}
		ring.Axpy(f, tmp, poly[i], b)
		acc, tmp = tmp, acc
	}
	for k := range x {
		x[k] = f.Mul(scale, acc[k])
	}

	return StatusOK, nil
}

// verify reports whether A·x equals b.
func verify[E any](a blackbox.Operator[E], x, b []E) (bool, error) {
	y := ring.NewVector(a.Ring(), a.Rows())
	if err := a.Apply(y, x); err != nil {
		return false, err
	}

	return ring.VectorEqual(a.Ring(), y, b), nil
}
