// SPDX-License-Identifier: MIT

package elimination

import (
	"errors"
	"fmt"
)

const (
	opRowEchelon  = "RowEchelon"
	opReduced     = "ReducedRowEchelon"
	opRank        = "Rank"
	opDet         = "Det"
	opNullspace   = "NullspaceBasis"
	opSolve       = "Solve"
	opSparseRank  = "SparseRank"
	opLocalRanks  = "LocalRanks"
	opBareissDet  = "BareissDet"
	opBareissRank = "BareissRank"
	opIntNull     = "IntegerNullspaceBasis"
)

var (
	// ErrNotField is returned by field kernels over a ring with zero divisors.
	ErrNotField = errors.New("elimination: domain is not a field")

	// ErrNonSquare is returned by determinant kernels.
	ErrNonSquare = errors.New("elimination: matrix is not square")

	// ErrInconsistent is returned by Solve when b is outside the column space.
	ErrInconsistent = errors.New("elimination: inconsistent system")

	// ErrDimensionMismatch reports a right-hand side of the wrong length.
	ErrDimensionMismatch = errors.New("elimination: dimension mismatch")

	// ErrRagged reports rows of unequal length.
	ErrRagged = errors.New("elimination: ragged rows")

	// ErrNotLocal is returned by LocalRanks for a non prime-power ring.
	ErrNotLocal = errors.New("elimination: ring is not Z/p^e")
)

func eliminationErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
