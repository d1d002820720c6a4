// SPDX-License-Identifier: MIT

package invariant_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/invariant"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/ring"
)

var rankTwo = [][]int64{{1, 2, 3}, {2, 4, 6}, {1, 0, 1}}

func gf(t *testing.T, p uint64) *ring.Modular[uint64] {
	t.Helper()
	f, err := ring.NewModular[uint64](p)
	require.NoError(t, err)

	return f
}

func TestResolve(t *testing.T) {
	small := big.NewInt(65521)
	large := new(big.Int).Lsh(big.NewInt(1), 61)
	cases := []struct {
		name       string
		m          invariant.Method
		rows, cols int
		card       *big.Int
		dense      bool
		want       invariant.Kernel
	}{
		{"auto small", invariant.Auto, 10, 10, small, false, invariant.KernelDense},
		{"auto huge sparse", invariant.Auto, 2000, 2000, small, false, invariant.KernelWiedemann},
		{"auto huge dense", invariant.Auto, 2000, 2000, small, true, invariant.KernelDense},
		{"auto one huge dim", invariant.Auto, 2000, 10, large, false, invariant.KernelSparse},
		{"elimination large field", invariant.Elimination, 10, 10, large, false, invariant.KernelSparse},
		{"elimination rationals", invariant.Elimination, 10, 10, big.NewInt(0), false, invariant.KernelSparse},
		{"elimination dense", invariant.Elimination, 10, 10, large, true, invariant.KernelDense},
		{"wiedemann", invariant.Wiedemann, 3, 3, small, true, invariant.KernelWiedemann},
		{"blas", invariant.BlasElimination, 3, 3, large, false, invariant.KernelDense},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, invariant.Resolve(tc.m, tc.rows, tc.cols, tc.card, tc.dense))
		})
	}
}

func TestParseMethod(t *testing.T) {
	m, err := invariant.ParseMethod("Wiedemann")
	require.NoError(t, err)
	require.Equal(t, invariant.Wiedemann, m)

	_, err = invariant.ParseMethod("magic")
	require.ErrorIs(t, err, invariant.ErrUnknownMethod)
}

func TestRankAgreesAcrossMethods(t *testing.T) {
	f := gf(t, 1_000_000_007)
	tr := matrixio.FromRows(rankTwo)
	ops := map[string]blackbox.Operator[uint64]{
		"dense":  blackbox.DenseFromTriplets[uint64](f, tr),
		"sparse": blackbox.FromTriplets[uint64](f, tr),
	}
	methods := []invariant.Method{invariant.Auto, invariant.Elimination, invariant.Wiedemann, invariant.BlasElimination}
	for name, op := range ops {
		for _, m := range methods {
			r, err := invariant.Rank(context.Background(), op, invariant.WithMethod(m))
			require.NoError(t, err, "%s/%s", name, m)
			require.Equal(t, 2, r, "%s/%s", name, m)
		}
	}
}

func TestDetAgreesAcrossMethods(t *testing.T) {
	f := gf(t, 1_000_000_007)
	op := blackbox.FromTriplets[uint64](f, matrixio.FromRows([][]int64{{2, 1, 0}, {1, 3, 1}, {0, 1, 4}}))
	for _, m := range []invariant.Method{invariant.Auto, invariant.Wiedemann, invariant.BlasElimination} {
		d, err := invariant.Det(context.Background(), op, invariant.WithMethod(m))
		require.NoError(t, err, m.String())
		require.Equal(t, f.FromInt64(18), d, m.String())
	}
}

func TestSolve(t *testing.T) {
	f := gf(t, 1_000_000_007)
	op := blackbox.DenseFromTriplets[uint64](f, matrixio.FromRows(rankTwo))
	b := []uint64{6, 12, 2}
	for _, m := range []invariant.Method{invariant.Auto, invariant.Wiedemann} {
		x, err := invariant.Solve(context.Background(), op, b, invariant.WithMethod(m))
		require.NoError(t, err, m.String())
		y := make([]uint64, 3)
		require.NoError(t, op.Apply(y, x))
		require.Equal(t, b, y, m.String())

		_, err = invariant.Solve(context.Background(), op, []uint64{1, 0, 0}, invariant.WithMethod(m))
		require.ErrorIs(t, err, invariant.ErrInconsistent, m.String())
	}
}

func TestNullspaceBasis(t *testing.T) {
	f := gf(t, 65521)
	op := blackbox.FromTriplets[uint64](f, matrixio.FromRows(rankTwo))
	ns, err := invariant.NullspaceBasis(context.Background(), op)
	require.NoError(t, err)
	require.Equal(t, 3, ns.Rows())
	require.Equal(t, 1, ns.Cols())
}

func TestIntegerEntryPoints(t *testing.T) {
	ctx := context.Background()
	tr := matrixio.FromRows([][]int64{{2, 4, 6}, {1, 3, 5}})

	r, err := invariant.IntegerRank(ctx, tr)
	require.NoError(t, err)
	require.Equal(t, 2, r)

	ns, err := invariant.IntegerNullspace(ctx, tr)
	require.NoError(t, err)
	require.Equal(t, 3, ns.Rows)
	require.Equal(t, 1, ns.Cols)
	require.Equal(t, 3, ns.NNZ())

	d, err := invariant.IntegerDet(ctx, matrixio.FromRows([][]int64{{2, 0, 0}, {0, 4, 0}, {0, 0, 6}}))
	require.NoError(t, err)
	require.Equal(t, "48", d.String())
}

func TestAllOnesKernel(t *testing.T) {
	ctx := context.Background()
	tr := matrixio.FromRows([][]int64{{1, 1}, {1, 1}})

	r, err := invariant.IntegerRank(ctx, tr)
	require.NoError(t, err)
	require.Equal(t, 1, r)

	f := gf(t, 65521)
	for _, m := range []invariant.Method{invariant.Elimination, invariant.Wiedemann, invariant.BlasElimination} {
		r, err = invariant.Rank(ctx, blackbox.FromTriplets[uint64](f, tr), invariant.WithMethod(m))
		require.NoError(t, err, m.String())
		require.Equal(t, 1, r, m.String())
	}

	ns, err := invariant.IntegerNullspace(ctx, tr)
	require.NoError(t, err)
	require.Equal(t, 2, ns.Rows)
	require.Equal(t, 1, ns.Cols)
	col := ns.Dense()
	// {[1, -1]} up to sign
	require.Equal(t, int64(1), new(big.Int).Abs(col[0][0]).Int64())
	require.Equal(t, new(big.Int).Neg(col[0][0]).String(), col[1][0].String())
}

func TestWithMethodPanicsOnGarbage(t *testing.T) {
	require.Panics(t, func() { invariant.WithMethod(invariant.Method(42)) })
}
