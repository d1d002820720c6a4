// SPDX-License-Identifier: MIT

package blackbox

import (
	"fmt"

	"github.com/katalvlaran/exactla/ring"
)

// Operator is a linear map over a ring, accessible through matrix-vector
// products only.
type Operator[E any] interface {
	Rows() int
	Cols() int
	Ring() ring.Ring[E]

	// Apply sets y = A·x; len(x) == Cols(), len(y) == Rows().
	Apply(y, x []E) error
	// ApplyTranspose sets y = Aᵀ·x; len(x) == Rows(), len(y) == Cols().
	ApplyTranspose(y, x []E) error
}

// Entrywise is implemented by operators that can enumerate their non-zero
// entries. The visiting order is unspecified.
type Entrywise[E any] interface {
	Operator[E]
	ForEachNonZero(fn func(i, j int, v E))
}

// ValidateApply checks vector lengths for y = A·x.
func ValidateApply[E any](op Operator[E], y, x []E) error {
	if len(x) != op.Cols() || len(y) != op.Rows() {
		return fmt.Errorf("%w: %dx%d operator, len(x)=%d, len(y)=%d",
			ErrDimensionMismatch, op.Rows(), op.Cols(), len(x), len(y))
	}

	return nil
}

// ValidateApplyTranspose checks vector lengths for y = Aᵀ·x.
func ValidateApplyTranspose[E any](op Operator[E], y, x []E) error {
	if len(x) != op.Rows() || len(y) != op.Cols() {
		return fmt.Errorf("%w: transpose of %dx%d operator, len(x)=%d, len(y)=%d",
			ErrDimensionMismatch, op.Rows(), op.Cols(), len(x), len(y))
	}

	return nil
}

// ValidateSquare returns ErrNonSquare unless Rows() == Cols().
func ValidateSquare[E any](op Operator[E]) error {
	if op == nil {
		return ErrNilOperator
	}
	if op.Rows() != op.Cols() {
		return fmt.Errorf("%w: %dx%d", ErrNonSquare, op.Rows(), op.Cols())
	}

	return nil
}

// IsSquare reports Rows() == Cols().
func IsSquare[E any](op Operator[E]) bool { return op.Rows() == op.Cols() }
