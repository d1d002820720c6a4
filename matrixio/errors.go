// SPDX-License-Identifier: MIT

package matrixio

import (
	"errors"
	"fmt"
)

var (
	// ErrHeader reports a missing or malformed header line.
	ErrHeader = errors.New("matrixio: malformed header")

	// ErrEntry reports a value or index token that is not an integer.
	ErrEntry = errors.New("matrixio: malformed entry")

	// ErrIndex reports a 1-based index outside the declared shape.
	ErrIndex = errors.New("matrixio: index out of range")

	// ErrTruncated reports input that ended before the sentinel or before
	// rows*cols dense values were read.
	ErrTruncated = errors.New("matrixio: truncated input")
)

func ioErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
