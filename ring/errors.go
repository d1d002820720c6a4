// SPDX-License-Identifier: MIT

package ring

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInvertible is returned by Inv and Div when the divisor is not a unit.
	ErrNotInvertible = errors.New("ring: element is not invertible")

	// ErrModulus indicates a modulus that is < 2 or does not fit the storage width.
	ErrModulus = errors.New("ring: invalid modulus")

	// ErrParse indicates a textual element that could not be decoded.
	ErrParse = errors.New("ring: cannot parse element")

	// ErrNotPrime indicates that a prime was required but a composite was supplied.
	ErrNotPrime = errors.New("ring: modulus base is not prime")
)

// ringErrorf wraps err with the operation tag.
func ringErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
