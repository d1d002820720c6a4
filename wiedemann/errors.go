// SPDX-License-Identifier: MIT

package wiedemann

import (
	"errors"
	"fmt"
)

var (
	// ErrNotField is returned when the solver is built over a ring that is
	// not a field.
	ErrNotField = errors.New("wiedemann: domain is not a field")

	// ErrToeplitzNotImplemented is returned for the Toeplitz preconditioner;
	// there is no silent fallback to another preconditioner.
	ErrToeplitzNotImplemented = errors.New("wiedemann: Toeplitz preconditioner not implemented")

	// ErrBadTraits reports a nonsensical traits record.
	ErrBadTraits = errors.New("wiedemann: invalid traits")

	// ErrTrialsExhausted is returned by Det when no trial produced a
	// certified determinant.
	ErrTrialsExhausted = errors.New("wiedemann: trials exhausted")
)

func wiedemannErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
