// SPDX-License-Identifier: MIT

package invariant

import (
	"context"
	"math/big"

	"github.com/katalvlaran/exactla/elimination"
	"github.com/katalvlaran/exactla/matrixio"
)

// IntegerRank returns the rank of t over Q by fraction-free elimination.
func IntegerRank(ctx context.Context, t *matrixio.Triplets) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, invariantErrorf("IntegerRank", err)
	}
	r, err := elimination.BareissRank(t.Dense())
	if err != nil {
		return 0, invariantErrorf("IntegerRank", err)
	}

	return r, nil
}

// IntegerDet returns the determinant of a square integer matrix.
func IntegerDet(ctx context.Context, t *matrixio.Triplets) (*big.Int, error) {
	if err := ctx.Err(); err != nil {
		return nil, invariantErrorf("IntegerDet", err)
	}
	d, err := elimination.BareissDet(t.Dense())
	if err != nil {
		return nil, invariantErrorf("IntegerDet", err)
	}

	return d, nil
}

// IntegerNullspace returns a basis of the rational kernel of t as primitive
// integer columns of a cols×k matrix.
func IntegerNullspace(ctx context.Context, t *matrixio.Triplets) (*matrixio.Triplets, error) {
	if err := ctx.Err(); err != nil {
		return nil, invariantErrorf("IntegerNullspace", err)
	}
	basis, err := elimination.IntegerNullspaceBasis(t.Dense())
	if err != nil {
		return nil, invariantErrorf("IntegerNullspace", err)
	}
	k := 0
	if len(basis) > 0 {
		k = len(basis[0])
	}
	var entries []matrixio.Entry
	for i := range basis {
		for j, v := range basis[i] {
			if v.Sign() != 0 {
				entries = append(entries, matrixio.Entry{Row: i, Col: j, Val: v})
			}
		}
	}
	out, err := matrixio.NewTriplets(t.Cols, k, entries)
	if err != nil {
		return nil, invariantErrorf("IntegerNullspace", err)
	}

	return out, nil
}
