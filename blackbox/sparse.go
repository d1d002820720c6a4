// SPDX-License-Identifier: MIT

package blackbox

import (
	"sort"

	"github.com/katalvlaran/exactla/ring"
)

// cell is one stored entry of a sparse row.
type cell[E any] struct {
	col int
	val E
}

// Sparse is a row-compressed matrix: each row keeps its non-zero entries
// sorted by column.
type Sparse[E any] struct {
	ring ring.Ring[E]
	r, c int
	rows [][]cell[E]
}

// NewSparse returns an empty rows×cols sparse matrix.
func NewSparse[E any](r ring.Ring[E], rows, cols int) (*Sparse[E], error) {
	if rows < 0 || cols < 0 {
		return nil, blackboxErrorf("NewSparse", ErrBadShape)
	}

	return &Sparse[E]{ring: r, r: rows, c: cols, rows: make([][]cell[E], rows)}, nil
}

func (s *Sparse[E]) Rows() int          { return s.r }
func (s *Sparse[E]) Cols() int          { return s.c }
func (s *Sparse[E]) Ring() ring.Ring[E] { return s.ring }

// NNZ returns the number of stored entries.
func (s *Sparse[E]) NNZ() int {
	n := 0
	var i int
	for i = range s.rows {
		n += len(s.rows[i])
	}

	return n
}

// find returns the position of col in row i and whether it is present.
func (s *Sparse[E]) find(i, col int) (int, bool) {
	row := s.rows[i]
	k := sort.Search(len(row), func(k int) bool { return row[k].col >= col })

	return k, k < len(row) && row[k].col == col
}

// SetEntry stores v at (i, j); storing zero removes the entry.
func (s *Sparse[E]) SetEntry(i, j int, v E) error {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		return blackboxErrorf("Sparse.SetEntry", ErrOutOfRange)
	}
	k, ok := s.find(i, j)
	switch {
	case ok && s.ring.IsZero(v):
		s.rows[i] = append(s.rows[i][:k], s.rows[i][k+1:]...)
	case ok:
		s.rows[i][k].val = v
	case !s.ring.IsZero(v):
		s.rows[i] = append(s.rows[i], cell[E]{})
		copy(s.rows[i][k+1:], s.rows[i][k:])
		s.rows[i][k] = cell[E]{col: j, val: v}
	}

	return nil
}

// Entry returns the value at (i, j), zero when absent.
func (s *Sparse[E]) Entry(i, j int) (E, error) {
	if i < 0 || i >= s.r || j < 0 || j >= s.c {
		var zero E
		return zero, blackboxErrorf("Sparse.Entry", ErrOutOfRange)
	}
	if k, ok := s.find(i, j); ok {
		return s.rows[i][k].val, nil
	}

	return s.ring.Zero(), nil
}

// Row returns copies of the column indices and values of row i.
func (s *Sparse[E]) Row(i int) ([]int, []E) {
	cols := make([]int, len(s.rows[i]))
	vals := make([]E, len(s.rows[i]))
	var k int
	for k = range s.rows[i] {
		cols[k] = s.rows[i][k].col
		vals[k] = s.rows[i][k].val
	}

	return cols, vals
}

// Apply sets y = S·x in O(nnz).
func (s *Sparse[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](s, y, x); err != nil {
		return blackboxErrorf("Sparse.Apply", err)
	}
	var i int
	var e cell[E]
	for i = range s.rows {
		acc := s.ring.Zero()
		for _, e = range s.rows[i] {
			if !s.ring.IsZero(x[e.col]) {
				acc = s.ring.Add(acc, s.ring.Mul(e.val, x[e.col]))
			}
		}
		y[i] = acc
	}

	return nil
}

// ApplyTranspose sets y = Sᵀ·x in O(nnz).
func (s *Sparse[E]) ApplyTranspose(y, x []E) error {
	if err := ValidateApplyTranspose[E](s, y, x); err != nil {
		return blackboxErrorf("Sparse.ApplyTranspose", err)
	}
	var i, j int
	for j = range y {
		y[j] = s.ring.Zero()
	}
	var e cell[E]
	for i = range s.rows {
		if s.ring.IsZero(x[i]) {
			continue
		}
		for _, e = range s.rows[i] {
			y[e.col] = s.ring.Add(y[e.col], s.ring.Mul(e.val, x[i]))
		}
	}

	return nil
}

// ForEachNonZero visits entries row by row in column order.
func (s *Sparse[E]) ForEachNonZero(fn func(i, j int, v E)) {
	var i int
	var e cell[E]
	for i = range s.rows {
		for _, e = range s.rows[i] {
			fn(i, e.col, e.val)
		}
	}
}
