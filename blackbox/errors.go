// SPDX-License-Identifier: MIT

package blackbox

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned when requested dimensions are negative.
	ErrBadShape = errors.New("blackbox: invalid shape")

	// ErrOutOfRange indicates an index outside the operator's bounds.
	ErrOutOfRange = errors.New("blackbox: index out of range")

	// ErrDimensionMismatch indicates incompatible operand or vector lengths.
	ErrDimensionMismatch = errors.New("blackbox: dimension mismatch")

	// ErrNonSquare signals that a square operator was required.
	ErrNonSquare = errors.New("blackbox: operator is not square")

	// ErrNilOperator indicates a nil operand.
	ErrNilOperator = errors.New("blackbox: nil operator")

	// ErrBadPermutation indicates a slice that is not a permutation of 0..n-1.
	ErrBadPermutation = errors.New("blackbox: not a permutation")
)

// blackboxErrorf wraps err with the operation tag.
func blackboxErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
