// SPDX-License-Identifier: MIT

package invariant

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/exactla/elimination"
)

var (
	// ErrUnknownMethod is returned by ParseMethod.
	ErrUnknownMethod = errors.New("invariant: unknown method")

	// ErrInconsistent is returned by Solve when b is outside the column
	// space. It is the elimination sentinel, so either kernel matches.
	ErrInconsistent = elimination.ErrInconsistent

	// ErrSolverFailed is returned when the Wiedemann solver exhausts its
	// trials or reports an unexpected status.
	ErrSolverFailed = errors.New("invariant: solver failed")
)

func invariantErrorf(op string, err error) error {
	return fmt.Errorf("invariant.%s: %w", op, err)
}
