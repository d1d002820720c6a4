// SPDX-License-Identifier: MIT

package blackbox

import (
	"fmt"

	"github.com/katalvlaran/exactla/ring"
)

// Transpose is the operator Aᵀ for an inner A.
type Transpose[E any] struct {
	inner Operator[E]
}

// NewTranspose wraps inner; Apply and ApplyTranspose swap roles.
func NewTranspose[E any](inner Operator[E]) *Transpose[E] {
	return &Transpose[E]{inner: inner}
}

func (t *Transpose[E]) Rows() int                     { return t.inner.Cols() }
func (t *Transpose[E]) Cols() int                     { return t.inner.Rows() }
func (t *Transpose[E]) Ring() ring.Ring[E]            { return t.inner.Ring() }
func (t *Transpose[E]) Inner() Operator[E]            { return t.inner }
func (t *Transpose[E]) Apply(y, x []E) error          { return t.inner.ApplyTranspose(y, x) }
func (t *Transpose[E]) ApplyTranspose(y, x []E) error { return t.inner.Apply(y, x) }

// Compose is the product Left·Right.
type Compose[E any] struct {
	left, right Operator[E]
}

// NewCompose returns left·right; left.Cols() must equal right.Rows().
func NewCompose[E any](left, right Operator[E]) (*Compose[E], error) {
	if left == nil || right == nil {
		return nil, blackboxErrorf("NewCompose", ErrNilOperator)
	}
	if left.Cols() != right.Rows() {
		return nil, blackboxErrorf("NewCompose", fmt.Errorf("%w: %dx%d · %dx%d",
			ErrDimensionMismatch, left.Rows(), left.Cols(), right.Rows(), right.Cols()))
	}

	return &Compose[E]{left: left, right: right}, nil
}

// MustCompose is NewCompose for operands whose shapes are known to agree.
func MustCompose[E any](left, right Operator[E]) *Compose[E] {
	c, err := NewCompose(left, right)
	if err != nil {
		panic(err)
	}

	return c
}

func (c *Compose[E]) Rows() int          { return c.left.Rows() }
func (c *Compose[E]) Cols() int          { return c.right.Cols() }
func (c *Compose[E]) Ring() ring.Ring[E] { return c.left.Ring() }

// Apply computes left·(right·x) through one intermediate vector.
func (c *Compose[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](c, y, x); err != nil {
		return blackboxErrorf("Compose.Apply", err)
	}
	tmp := make([]E, c.right.Rows())
	if err := c.right.Apply(tmp, x); err != nil {
		return err
	}

	return c.left.Apply(y, tmp)
}

// ApplyTranspose computes rightᵀ·(leftᵀ·x).
func (c *Compose[E]) ApplyTranspose(y, x []E) error {
	if err := ValidateApplyTranspose[E](c, y, x); err != nil {
		return blackboxErrorf("Compose.ApplyTranspose", err)
	}
	tmp := make([]E, c.left.Cols())
	if err := c.left.ApplyTranspose(tmp, x); err != nil {
		return err
	}

	return c.right.ApplyTranspose(y, tmp)
}

// Sum is A + B for operands of equal shape.
type Sum[E any] struct {
	a, b Operator[E]
}

// NewSum returns a + b.
func NewSum[E any](a, b Operator[E]) (*Sum[E], error) {
	if a == nil || b == nil {
		return nil, blackboxErrorf("NewSum", ErrNilOperator)
	}
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return nil, blackboxErrorf("NewSum", ErrDimensionMismatch)
	}

	return &Sum[E]{a: a, b: b}, nil
}

func (s *Sum[E]) Rows() int          { return s.a.Rows() }
func (s *Sum[E]) Cols() int          { return s.a.Cols() }
func (s *Sum[E]) Ring() ring.Ring[E] { return s.a.Ring() }

func (s *Sum[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](s, y, x); err != nil {
		return blackboxErrorf("Sum.Apply", err)
	}
	tmp := make([]E, len(y))
	if err := s.a.Apply(y, x); err != nil {
		return err
	}
	if err := s.b.Apply(tmp, x); err != nil {
		return err
	}
	ring.AddTo(s.Ring(), y, tmp)

	return nil
}

func (s *Sum[E]) ApplyTranspose(y, x []E) error {
	if err := ValidateApplyTranspose[E](s, y, x); err != nil {
		return blackboxErrorf("Sum.ApplyTranspose", err)
	}
	tmp := make([]E, len(y))
	if err := s.a.ApplyTranspose(y, x); err != nil {
		return err
	}
	if err := s.b.ApplyTranspose(tmp, x); err != nil {
		return err
	}
	ring.AddTo(s.Ring(), y, tmp)

	return nil
}

// Submatrix is the rows×cols window of inner starting at (row, col).
type Submatrix[E any] struct {
	inner      Operator[E]
	row, col   int
	rows, cols int
}

// NewSubmatrix returns the window; it must lie inside inner.
func NewSubmatrix[E any](inner Operator[E], row, col, rows, cols int) (*Submatrix[E], error) {
	if inner == nil {
		return nil, blackboxErrorf("NewSubmatrix", ErrNilOperator)
	}
	if row < 0 || col < 0 || rows < 0 || cols < 0 || row+rows > inner.Rows() || col+cols > inner.Cols() {
		return nil, blackboxErrorf("NewSubmatrix", fmt.Errorf("%w: window (%d,%d)+%dx%d in %dx%d",
			ErrOutOfRange, row, col, rows, cols, inner.Rows(), inner.Cols()))
	}

	return &Submatrix[E]{inner: inner, row: row, col: col, rows: rows, cols: cols}, nil
}

// Leading returns the leading r×r principal window of inner.
func Leading[E any](inner Operator[E], r int) (*Submatrix[E], error) {
	return NewSubmatrix(inner, 0, 0, r, r)
}

func (s *Submatrix[E]) Rows() int          { return s.rows }
func (s *Submatrix[E]) Cols() int          { return s.cols }
func (s *Submatrix[E]) Ring() ring.Ring[E] { return s.inner.Ring() }

// Apply embeds x at the window's columns, applies inner and restricts the
// result to the window's rows.
func (s *Submatrix[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](s, y, x); err != nil {
		return blackboxErrorf("Submatrix.Apply", err)
	}
	r := s.Ring()
	xf := ring.NewVector(r, s.inner.Cols())
	copy(xf[s.col:s.col+s.cols], x)
	yf := make([]E, s.inner.Rows())
	if err := s.inner.Apply(yf, xf); err != nil {
		return err
	}
	copy(y, yf[s.row:s.row+s.rows])

	return nil
}

func (s *Submatrix[E]) ApplyTranspose(y, x []E) error {
	if err := ValidateApplyTranspose[E](s, y, x); err != nil {
		return blackboxErrorf("Submatrix.ApplyTranspose", err)
	}
	r := s.Ring()
	xf := ring.NewVector(r, s.inner.Rows())
	copy(xf[s.row:s.row+s.rows], x)
	yf := make([]E, s.inner.Cols())
	if err := s.inner.ApplyTranspose(yf, xf); err != nil {
		return err
	}
	copy(y, yf[s.col:s.col+s.cols])

	return nil
}
