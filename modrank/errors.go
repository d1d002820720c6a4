// SPDX-License-Identifier: MIT

package modrank

import (
	"errors"
	"fmt"
)

var (
	// ErrNotPrime is returned when a modulus argument is not prime.
	ErrNotPrime = errors.New("modrank: modulus is not prime")

	// ErrExponent is returned for exponents below 1.
	ErrExponent = errors.New("modrank: exponent must be >= 1")

	// ErrNilSource is returned by New.
	ErrNilSource = errors.New("modrank: nil source")
)

func modrankErrorf(op string, err error) error {
	return fmt.Errorf("modrank.%s: %w", op, err)
}
