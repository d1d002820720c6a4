// SPDX-License-Identifier: MIT

package blackbox

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/exactla/ring"
)

// denseErrorf wraps an underlying error with Dense method context.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a row-major matrix over a ring.
// r is rows, c is columns, and data holds r*c elements in row-major order.
type Dense[E any] struct {
	ring ring.Ring[E]
	r, c int // number of rows and columns
	data []E // flat backing storage, length == r*c
}

// NewDense creates an r×c Dense matrix initialized to zeros of the ring.
// Stage 1 (Validate): ensure rows and cols are non-negative.
// Stage 2 (Prepare): allocate flat backing slice filled with Zero().
// Complexity: O(r*c) time and memory.
func NewDense[E any](r ring.Ring[E], rows, cols int) (*Dense[E], error) {
	if rows < 0 || cols < 0 {
		return nil, blackboxErrorf("NewDense", ErrBadShape)
	}

	return &Dense[E]{ring: r, r: rows, c: cols, data: ring.NewVector(r, rows*cols)}, nil
}

// NewDenseFromRows copies a rectangular [][]E into a new Dense.
func NewDenseFromRows[E any](r ring.Ring[E], rows [][]E) (*Dense[E], error) {
	cols := 0
	if len(rows) > 0 {
		cols = len(rows[0])
	}
	m, err := NewDense(r, len(rows), cols)
	if err != nil {
		return nil, err
	}
	var i int
	for i = range rows {
		if len(rows[i]) != cols {
			return nil, blackboxErrorf("NewDenseFromRows", ErrDimensionMismatch)
		}
		copy(m.data[i*cols:(i+1)*cols], rows[i])
	}

	return m, nil
}

// NewDenseInt64 reduces small integer rows into the ring; handy in tests
// and literals.
func NewDenseInt64[E any](r ring.Ring[E], rows [][]int64) (*Dense[E], error) {
	conv := make([][]E, len(rows))
	var i, j int
	for i = range rows {
		conv[i] = make([]E, len(rows[i]))
		for j = range rows[i] {
			conv[i][j] = r.FromInt64(rows[i][j])
		}
	}

	return NewDenseFromRows(r, conv)
}

func (m *Dense[E]) Rows() int          { return m.r }
func (m *Dense[E]) Cols() int          { return m.c }
func (m *Dense[E]) Ring() ring.Ring[E] { return m.ring }

// indexOf computes the flat index for (row, col) or returns ErrOutOfRange.
func (m *Dense[E]) indexOf(method string, row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, denseErrorf(method, row, col, ErrOutOfRange)
	}

	return row*m.c + col, nil
}

// At retrieves the element at (row, col).
func (m *Dense[E]) At(row, col int) (E, error) {
	idx, err := m.indexOf("At", row, col)
	if err != nil {
		var zero E
		return zero, err
	}

	return m.data[idx], nil
}

// Set assigns value v at (row, col).
func (m *Dense[E]) Set(row, col int, v E) error {
	idx, err := m.indexOf("Set", row, col)
	if err != nil {
		return err
	}
	m.data[idx] = v

	return nil
}

// Row returns a copy of row i. Panics on a bad index (programmer error).
func (m *Dense[E]) Row(i int) []E {
	out := make([]E, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out
}

// RowsCopy returns all rows as independent slices.
func (m *Dense[E]) RowsCopy() [][]E {
	out := make([][]E, m.r)
	var i int
	for i = range out {
		out[i] = m.Row(i)
	}

	return out
}

// Clone returns a copy sharing no storage with m.
func (m *Dense[E]) Clone() *Dense[E] {
	data := make([]E, len(m.data))
	copy(data, m.data)

	return &Dense[E]{ring: m.ring, r: m.r, c: m.c, data: data}
}

// Apply sets y = M·x.
// Stage 1 (Validate): vector lengths.
// Stage 2 (Execute): row-by-row dot products skipping zero entries.
// Complexity: O(r*c).
func (m *Dense[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](m, y, x); err != nil {
		return blackboxErrorf("Dense.Apply", err)
	}
	var i, j int
	for i = 0; i < m.r; i++ {
		acc := m.ring.Zero()
		row := m.data[i*m.c : (i+1)*m.c]
		for j = range row {
			if m.ring.IsZero(row[j]) || m.ring.IsZero(x[j]) {
				continue
			}
			acc = m.ring.Add(acc, m.ring.Mul(row[j], x[j]))
		}
		y[i] = acc
	}

	return nil
}

// ApplyTranspose sets y = Mᵀ·x by accumulating scaled rows.
// Complexity: O(r*c).
func (m *Dense[E]) ApplyTranspose(y, x []E) error {
	if err := ValidateApplyTranspose[E](m, y, x); err != nil {
		return blackboxErrorf("Dense.ApplyTranspose", err)
	}
	var i, j int
	for j = range y {
		y[j] = m.ring.Zero()
	}
	for i = 0; i < m.r; i++ {
		if m.ring.IsZero(x[i]) {
			continue
		}
		row := m.data[i*m.c : (i+1)*m.c]
		for j = range row {
			if !m.ring.IsZero(row[j]) {
				y[j] = m.ring.Add(y[j], m.ring.Mul(row[j], x[i]))
			}
		}
	}

	return nil
}

// ForEachNonZero visits entries in row-major order.
func (m *Dense[E]) ForEachNonZero(fn func(i, j int, v E)) {
	var i, j int
	for i = 0; i < m.r; i++ {
		for j = 0; j < m.c; j++ {
			if v := m.data[i*m.c+j]; !m.ring.IsZero(v) {
				fn(i, j, v)
			}
		}
	}
}

// String renders one bracketed row per line.
func (m *Dense[E]) String() string {
	var sb strings.Builder
	var i int
	for i = 0; i < m.r; i++ {
		sb.WriteString(ring.VectorString(m.ring, m.data[i*m.c:(i+1)*m.c]))
		sb.WriteByte('\n')
	}

	return sb.String()
}
