// SPDX-License-Identifier: MIT

package elimination

import (
	"fmt"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/ring"
)

// Echelon is a row echelon form together with its pivot structure.
type Echelon[E any] struct {
	// Rows is the reduced working copy; rows [0, Rank) are non-zero.
	Rows [][]E
	// Pivots[k] is the pivot column of row k, strictly increasing.
	Pivots []int
	Rank   int
	// Swaps counts row interchanges (the determinant sign is (-1)^Swaps).
	Swaps int
}

// checkRows verifies a rectangular shape and returns the column count.
func checkRows[E any](rows [][]E) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n := len(rows[0])
	var i int
	for i = 1; i < len(rows); i++ {
		if len(rows[i]) != n {
			return 0, fmt.Errorf("%w: row %d has %d entries, want %d", ErrRagged, i, len(rows[i]), n)
		}
	}

	return n, nil
}

func copyRows[E any](rows [][]E) [][]E {
	out := make([][]E, len(rows))
	var i int
	for i = range rows {
		out[i] = make([]E, len(rows[i]))
		copy(out[i], rows[i])
	}

	return out
}

// RowEchelon reduces a copy of rows to row echelon form over the field f.
//
// Implementation:
//   - Stage 1: scan columns left to right; the first row at or below the
//     current pivot row with a non-zero entry becomes the pivot row.
//   - Stage 2: eliminate the column below the pivot with row operations
//     r_i ← r_i - (a_ic/a_pc)·r_p.
//
// Complexity: O(m·n·min(m, n)) ring operations.
func RowEchelon[E any](f ring.Ring[E], rows [][]E) (*Echelon[E], error) {
	if !f.IsField() {
		return nil, eliminationErrorf(opRowEchelon, ErrNotField)
	}
	n, err := checkRows(rows)
	if err != nil {
		return nil, eliminationErrorf(opRowEchelon, err)
	}
	var (
		a          = copyRows(rows)
		m          = len(a)
		res        = &Echelon[E]{Rows: a}
		i, j, p, c int
		inv, fac   E
	)
	for c = 0; c < n && p < m; c++ {
		i = p
		for i < m && f.IsZero(a[i][c]) {
			i++
		}
		if i == m {
			continue
		}
		if i != p {
			a[i], a[p] = a[p], a[i]
			res.Swaps++
		}
		if inv, err = f.Inv(a[p][c]); err != nil {
			return nil, eliminationErrorf(opRowEchelon, err)
		}
		for i = p + 1; i < m; i++ {
			if f.IsZero(a[i][c]) {
				continue
			}
			fac = f.Mul(a[i][c], inv)
			for j = c; j < n; j++ {
				a[i][j] = f.Sub(a[i][j], f.Mul(fac, a[p][j]))
			}
		}
		res.Pivots = append(res.Pivots, c)
		p++
	}
	res.Rank = p

	return res, nil
}

// ReducedRowEchelon returns the reduced row echelon form: every pivot is 1
// and is the only non-zero entry of its column.
func ReducedRowEchelon[E any](f ring.Ring[E], rows [][]E) (*Echelon[E], error) {
	res, err := RowEchelon(f, rows)
	if err != nil {
		return nil, eliminationErrorf(opReduced, err)
	}
	var (
		a       = res.Rows
		k, i, j int
		c       int
		inv     E
		fac     E
	)
	for k = res.Rank - 1; k >= 0; k-- {
		c = res.Pivots[k]
		if inv, err = f.Inv(a[k][c]); err != nil {
			return nil, eliminationErrorf(opReduced, err)
		}
		for j = c; j < len(a[k]); j++ {
			a[k][j] = f.Mul(a[k][j], inv)
		}
		for i = 0; i < k; i++ {
			if f.IsZero(a[i][c]) {
				continue
			}
			fac = a[i][c]
			for j = c; j < len(a[i]); j++ {
				a[i][j] = f.Sub(a[i][j], f.Mul(fac, a[k][j]))
			}
		}
	}

	return res, nil
}

// Rank returns the rank of a dense matrix over its field.
func Rank[E any](a *blackbox.Dense[E]) (int, error) {
	res, err := RowEchelon(a.Ring(), a.RowsCopy())
	if err != nil {
		return 0, eliminationErrorf(opRank, err)
	}

	return res.Rank, nil
}

// Det returns the determinant of a square dense matrix over its field.
func Det[E any](a *blackbox.Dense[E]) (E, error) {
	f := a.Ring()
	if a.Rows() != a.Cols() {
		return f.Zero(), eliminationErrorf(opDet, fmt.Errorf("%w: %dx%d", ErrNonSquare, a.Rows(), a.Cols()))
	}
	res, err := RowEchelon(f, a.RowsCopy())
	if err != nil {
		return f.Zero(), eliminationErrorf(opDet, err)
	}
	if res.Rank < a.Rows() {
		return f.Zero(), nil
	}
	det := f.One()
	var k int
	for k = 0; k < res.Rank; k++ {
		det = f.Mul(det, res.Rows[k][k])
	}
	if res.Swaps%2 == 1 {
		det = f.Neg(det)
	}

	return det, nil
}

// NullspaceBasis returns an n×(n-r) matrix whose columns span the right
// kernel of a. Row k of the identity sits on the k-th free column, so the
// basis is the canonical one of the reduced echelon form.
func NullspaceBasis[E any](a *blackbox.Dense[E]) (*blackbox.Dense[E], error) {
	f := a.Ring()
	res, err := ReducedRowEchelon(f, a.RowsCopy())
	if err != nil {
		return nil, eliminationErrorf(opNullspace, err)
	}
	n := a.Cols()
	free := freeColumns(n, res.Pivots)
	if len(free) == 0 {
		return blackbox.NewDense(f, n, 0)
	}
	out := make([][]E, n)
	var i, k int
	for i = range out {
		out[i] = ring.NewVector(f, len(free))
	}
	for k = range free {
		out[free[k]][k] = f.One()
		for i = 0; i < res.Rank; i++ {
			out[res.Pivots[i]][k] = f.Neg(res.Rows[i][free[k]])
		}
	}

	return blackbox.NewDenseFromRows(f, out)
}

// freeColumns lists the non-pivot columns of an n-column echelon form.
func freeColumns(n int, pivots []int) []int {
	free := make([]int, 0, n-len(pivots))
	var c, k int
	for c = 0; c < n; c++ {
		if k < len(pivots) && pivots[k] == c {
			k++
			continue
		}
		free = append(free, c)
	}

	return free
}

// Solve returns one solution of a·x = b, with free variables set to zero,
// or ErrInconsistent.
func Solve[E any](a *blackbox.Dense[E], b []E) ([]E, error) {
	f := a.Ring()
	if len(b) != a.Rows() {
		return nil, eliminationErrorf(opSolve, fmt.Errorf("%w: len(b)=%d, rows=%d", ErrDimensionMismatch, len(b), a.Rows()))
	}
	aug := a.RowsCopy()
	var i int
	for i = range aug {
		aug[i] = append(aug[i], b[i])
	}
	res, err := ReducedRowEchelon(f, aug)
	if err != nil {
		return nil, eliminationErrorf(opSolve, err)
	}
	n := a.Cols()
	if res.Rank > 0 && res.Pivots[res.Rank-1] == n {
		return nil, eliminationErrorf(opSolve, ErrInconsistent)
	}
	x := ring.NewVector(f, n)
	for i = 0; i < res.Rank; i++ {
		x[res.Pivots[i]] = res.Rows[i][n]
	}

	return x, nil
}
