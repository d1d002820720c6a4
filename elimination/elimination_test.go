// SPDX-License-Identifier: MIT

package elimination_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/elimination"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/ring"
)

const testPrime = 65521

func gf(t *testing.T) *ring.Modular[uint32] {
	t.Helper()
	f, err := ring.NewModular[uint32](testPrime)
	require.NoError(t, err)

	return f
}

func dense(t *testing.T, f *ring.Modular[uint32], rows [][]int64) *blackbox.Dense[uint32] {
	t.Helper()
	a, err := blackbox.NewDenseInt64[uint32](f, rows)
	require.NoError(t, err)

	return a
}

func bigRows(rows [][]int64) [][]*big.Int {
	out := make([][]*big.Int, len(rows))
	for i := range rows {
		out[i] = make([]*big.Int, len(rows[i]))
		for j, v := range rows[i] {
			out[i][j] = big.NewInt(v)
		}
	}

	return out
}

var (
	rankTwo = [][]int64{{1, 2, 3}, {2, 4, 6}, {1, 0, 1}}
	full    = [][]int64{{2, 1, 0}, {1, 3, 1}, {0, 1, 4}}
)

func TestRankAndDet(t *testing.T) {
	f := gf(t)

	r, err := elimination.Rank(dense(t, f, rankTwo))
	require.NoError(t, err)
	require.Equal(t, 2, r)

	d, err := elimination.Det(dense(t, f, full))
	require.NoError(t, err)
	require.Equal(t, f.FromInt64(18), d)

	d, err = elimination.Det(dense(t, f, [][]int64{{0, 1}, {1, 0}}))
	require.NoError(t, err)
	require.Equal(t, f.FromInt64(-1), d)

	d, err = elimination.Det(dense(t, f, rankTwo))
	require.NoError(t, err)
	require.Zero(t, d)

	_, err = elimination.Det(dense(t, f, [][]int64{{1, 2}}))
	require.ErrorIs(t, err, elimination.ErrNonSquare)
}

func TestRowEchelonRejectsRing(t *testing.T) {
	z, err := ring.NewModular[uint32](12)
	require.NoError(t, err)
	_, err = elimination.RowEchelon[uint32](z, [][]uint32{{1, 2}})
	require.ErrorIs(t, err, elimination.ErrNotField)

	_, err = elimination.RowEchelon[uint32](gf(t), [][]uint32{{1, 2}, {3}})
	require.ErrorIs(t, err, elimination.ErrRagged)
}

func TestReducedRowEchelon(t *testing.T) {
	f := gf(t)
	res, err := elimination.ReducedRowEchelon[uint32](f, dense(t, f, rankTwo).RowsCopy())
	require.NoError(t, err)
	require.Equal(t, []int{0, 1}, res.Pivots)
	require.Equal(t, []uint32{1, 0, 1}, res.Rows[0])
	require.Equal(t, []uint32{0, 1, 1}, res.Rows[1])
}

func TestNullspaceBasis(t *testing.T) {
	f := gf(t)
	a := dense(t, f, rankTwo)
	ns, err := elimination.NullspaceBasis(a)
	require.NoError(t, err)
	require.Equal(t, 3, ns.Rows())
	require.Equal(t, 1, ns.Cols())

	col := []uint32{0, 0, 0}
	for i := 0; i < 3; i++ {
		col[i], err = ns.At(i, 0)
		require.NoError(t, err)
	}
	require.Equal(t, []uint32{f.FromInt64(-1), f.FromInt64(-1), 1}, col)
	y := make([]uint32, 3)
	require.NoError(t, a.Apply(y, col))
	require.True(t, ring.VectorIsZero[uint32](f, y))

	ns, err = elimination.NullspaceBasis(dense(t, f, full))
	require.NoError(t, err)
	require.Equal(t, 0, ns.Cols())
}

func TestSolve(t *testing.T) {
	f := gf(t)
	a := dense(t, f, rankTwo)
	b := []uint32{6, 12, 2}
	x, err := elimination.Solve(a, b)
	require.NoError(t, err)
	y := make([]uint32, 3)
	require.NoError(t, a.Apply(y, x))
	require.Equal(t, b, y)

	_, err = elimination.Solve(a, []uint32{1, 0, 0})
	require.ErrorIs(t, err, elimination.ErrInconsistent)

	_, err = elimination.Solve(a, []uint32{1})
	require.ErrorIs(t, err, elimination.ErrDimensionMismatch)
}

func TestSparseRankMatchesDense(t *testing.T) {
	f := gf(t)
	cases := [][][]int64{
		rankTwo,
		full,
		{{0, 0, 0}, {0, 0, 0}},
		{{1, 0, 0, 2}, {0, 0, 3, 0}, {1, 0, 3, 2}, {0, 5, 0, 0}},
		{{1, 2}, {3, 4}, {5, 6}, {7, 8}},
	}
	for _, rows := range cases {
		s := blackbox.FromTriplets[uint32](f, matrixio.FromRows(rows))
		got, err := elimination.SparseRank(s)
		require.NoError(t, err)
		want, err := elimination.Rank(dense(t, f, rows))
		require.NoError(t, err)
		require.Equal(t, want, got, "%v", rows)
	}
}

func TestLocalRanks(t *testing.T) {
	// Smith form of diag(2, 4, 6) is (2, 2, 12): valuations at 2 are 1, 1, 2.
	l, err := ring.NewModularPower[uint32](2, 4)
	require.NoError(t, err)
	tr := matrixio.FromRows([][]int64{{2, 0, 0}, {0, 4, 0}, {0, 0, 6}})

	ranks, err := elimination.LocalRanks[uint32](l, blackbox.FromTriplets[uint32](l, tr))
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 3, 3}, ranks)

	// det 3, Smith form (1, 3)
	l3, err := ring.NewModularPower[uint32](3, 3)
	require.NoError(t, err)
	tr = matrixio.FromRows([][]int64{{1, 1}, {1, 4}})
	ranks, err = elimination.LocalRanks[uint32](l3, blackbox.FromTriplets[uint32](l3, tr))
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 2}, ranks)
}

func TestLocalRanksRejectsComposite(t *testing.T) {
	z, err := ring.NewModular[uint32](12)
	require.NoError(t, err)
	s, err := blackbox.NewSparse[uint32](z, 1, 1)
	require.NoError(t, err)
	_, err = elimination.LocalRanks[uint32](z, s)
	require.ErrorIs(t, err, elimination.ErrNotLocal)
}

func TestBareiss(t *testing.T) {
	d, err := elimination.BareissDet(bigRows(full))
	require.NoError(t, err)
	require.Equal(t, "18", d.String())

	d, err = elimination.BareissDet(bigRows([][]int64{{0, 2}, {3, 0}}))
	require.NoError(t, err)
	require.Equal(t, "-6", d.String())

	d, err = elimination.BareissDet(bigRows(rankTwo))
	require.NoError(t, err)
	require.Zero(t, d.Sign())

	r, err := elimination.BareissRank(bigRows([][]int64{{1, 2, 3, 4}, {2, 4, 6, 8}, {0, 0, 1, 1}}))
	require.NoError(t, err)
	require.Equal(t, 2, r)

	_, err = elimination.BareissDet(bigRows([][]int64{{1, 2}}))
	require.ErrorIs(t, err, elimination.ErrNonSquare)
}

func TestIntegerNullspaceBasis(t *testing.T) {
	rows := [][]int64{{2, 4, 6}, {1, 3, 5}}
	basis, err := elimination.IntegerNullspaceBasis(bigRows(rows))
	require.NoError(t, err)
	require.Len(t, basis, 3)
	require.Len(t, basis[0], 1)
	require.Equal(t, []string{"1", "-2", "1"}, []string{basis[0][0].String(), basis[1][0].String(), basis[2][0].String()})

	// a kernel with fractional echelon entries gets scaled to integers
	basis, err = elimination.IntegerNullspaceBasis(bigRows([][]int64{{2, 3}}))
	require.NoError(t, err)
	require.Equal(t, "-3", basis[0][0].String())
	require.Equal(t, "2", basis[1][0].String())
}
