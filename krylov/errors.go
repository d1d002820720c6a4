// SPDX-License-Identifier: MIT

package krylov

import (
	"errors"
	"fmt"
)

var (
	// ErrNotField is returned when Berlekamp–Massey is asked to run over a
	// ring with non-invertible non-zero elements.
	ErrNotField = errors.New("krylov: domain is not a field")

	// ErrBadThreshold indicates a negative early-termination threshold.
	ErrBadThreshold = errors.New("krylov: negative early termination threshold")
)

func krylovErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
