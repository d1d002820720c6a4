// SPDX-License-Identifier: MIT

package smith

import (
	"errors"
	"fmt"
)

var (
	// ErrIncompleteFactorization is returned when the valence keeps a
	// composite cofactor once every factoring loop is spent.
	ErrIncompleteFactorization = errors.New("smith: valence not fully factored")

	// ErrNotCoprime is returned when a caller-supplied coprime prime divides
	// the valence or is not prime.
	ErrNotCoprime = errors.New("smith: coprime modulus shares a factor with the valence")

	// ErrBadValence reports a valence that is not a positive integer.
	ErrBadValence = errors.New("smith: valence must be positive")

	// ErrExponentBound is returned when a prime's rank sequence has not
	// reached the integer rank at MaxExponent.
	ErrExponentBound = errors.New("smith: exponent bound exceeded")
)

func smithErrorf(op string, err error) error {
	return fmt.Errorf("smith.%s: %w", op, err)
}
