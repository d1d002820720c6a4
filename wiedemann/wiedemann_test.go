// SPDX-License-Identifier: MIT

package wiedemann_test

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/ring"
	"github.com/katalvlaran/exactla/wiedemann"
)

const testPrime = 1_000_000_007

func gf(t *testing.T) *ring.Modular[uint64] {
	t.Helper()
	f, err := ring.NewModular[uint64](testPrime)
	require.NoError(t, err)

	return f
}

func denseOf(t *testing.T, f *ring.Modular[uint64], rows [][]int64) *blackbox.Dense[uint64] {
	t.Helper()
	a, err := blackbox.NewDenseInt64[uint64](f, rows)
	require.NoError(t, err)

	return a
}

func vec(f *ring.Modular[uint64], vs ...int64) []uint64 {
	out := make([]uint64, len(vs))
	for i, v := range vs {
		out[i] = f.FromInt64(v)
	}

	return out
}

func newSolver(t *testing.T, f *ring.Modular[uint64], tr wiedemann.Traits) *wiedemann.Solver[uint64] {
	t.Helper()
	s, err := wiedemann.New[uint64](f, tr, wiedemann.WithSeed(42))
	require.NoError(t, err)

	return s
}

func requireSolves(t *testing.T, a blackbox.Operator[uint64], x, b []uint64) {
	t.Helper()
	y := make([]uint64, a.Rows())
	require.NoError(t, a.Apply(y, x))
	require.Equal(t, b, y)
}

var (
	nonsingular = [][]int64{{2, 1, 0}, {1, 3, 1}, {0, 1, 4}}
	rankTwo     = [][]int64{{1, 2, 3}, {2, 4, 6}, {1, 0, 1}}
	allOnes     = [][]int64{{1, 1}, {1, 1}}
)

func TestNewRejectsNonField(t *testing.T) {
	_, err := wiedemann.New[*big.Int](ring.NewIntegers(), wiedemann.DefaultTraits())
	require.ErrorIs(t, err, wiedemann.ErrNotField)

	tr := wiedemann.DefaultTraits()
	tr.TrialsBeforeFailure = 0
	_, err = wiedemann.New[uint64](gf(t), tr)
	require.ErrorIs(t, err, wiedemann.ErrBadTraits)
}

func TestSolveNonsingular(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, nonsingular)
	b := vec(f, 1, 2, 3)
	x := make([]uint64, 3)
	u := make([]uint64, 3)

	st, err := newSolver(t, f, wiedemann.DefaultTraits()).Solve(context.Background(), a, x, b, u)
	require.NoError(t, err)
	require.Equal(t, wiedemann.StatusOK, st)
	requireSolves(t, a, x, b)
}

func TestSolveZeroRightHandSide(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, rankTwo)
	x := vec(f, 5, 5, 5)
	b := make([]uint64, 3)
	u := make([]uint64, 3)

	st, err := newSolver(t, f, wiedemann.DefaultTraits()).Solve(context.Background(), a, x, b, u)
	require.NoError(t, err)
	require.Equal(t, wiedemann.StatusOK, st)
	requireSolves(t, a, x, b)
}

func TestSolveSingularConsistent(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, rankTwo)
	b := vec(f, 6, 12, 2) // A·(1,1,1)

	for _, p := range []wiedemann.Preconditioner{wiedemann.PrecondButterfly, wiedemann.PrecondSparse} {
		t.Run(p.String(), func(t *testing.T) {
			tr := wiedemann.DefaultTraits()
			tr.Preconditioner = p
			x := make([]uint64, 3)
			u := make([]uint64, 3)
			st, err := newSolver(t, f, tr).Solve(context.Background(), a, x, b, u)
			require.NoError(t, err)
			require.Equal(t, wiedemann.StatusOK, st)
			requireSolves(t, a, x, b)
		})
	}
}

func TestSolveRectangular(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, [][]int64{{1, 2, 3}, {4, 5, 6}})
	b := vec(f, 1, 1)
	x := make([]uint64, 3)
	u := make([]uint64, 2)

	st, err := newSolver(t, f, wiedemann.DefaultTraits()).Solve(context.Background(), a, x, b, u)
	require.NoError(t, err)
	require.Equal(t, wiedemann.StatusOK, st)
	requireSolves(t, a, x, b)
}

func TestSolveInconsistentCertificate(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, rankTwo)
	b := vec(f, 1, 0, 0)
	x := make([]uint64, 3)
	u := make([]uint64, 3)

	st, err := newSolver(t, f, wiedemann.DefaultTraits()).Solve(context.Background(), a, x, b, u)
	require.NoError(t, err)
	require.Equal(t, wiedemann.StatusInconsistent, st)

	uta := make([]uint64, 3)
	require.NoError(t, a.ApplyTranspose(uta, u))
	require.True(t, ring.VectorIsZero[uint64](f, uta))
	require.False(t, f.IsZero(ring.Dot[uint64](f, u, b)))
}

func TestSolveZeroOperatorInconsistent(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, [][]int64{{0, 0}, {0, 0}})
	b := vec(f, 0, 3)
	x := make([]uint64, 2)
	u := make([]uint64, 2)

	st, err := newSolver(t, f, wiedemann.DefaultTraits()).Solve(context.Background(), a, x, b, u)
	require.NoError(t, err)
	require.Equal(t, wiedemann.StatusInconsistent, st)
	require.Equal(t, vec(f, 0, 1), u)
}

func TestDeclaredNonsingularReportsSingular(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, rankTwo)
	tr := wiedemann.DefaultTraits()
	tr.Singularity = wiedemann.NonSingular
	x := make([]uint64, 3)
	u := make([]uint64, 3)

	st, err := newSolver(t, f, tr).Solve(context.Background(), a, x, vec(f, 1, 0, 0), u)
	require.NoError(t, err)
	require.Equal(t, wiedemann.StatusSingular, st)
}

func TestToeplitzIsRejected(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, rankTwo)
	tr := wiedemann.DefaultTraits()
	tr.Singularity = wiedemann.Singular
	tr.Preconditioner = wiedemann.PrecondToeplitz
	x := make([]uint64, 3)
	u := make([]uint64, 3)

	_, err := newSolver(t, f, tr).Solve(context.Background(), a, x, vec(f, 6, 12, 2), u)
	require.ErrorIs(t, err, wiedemann.ErrToeplitzNotImplemented)
}

func TestSolveHonoursCancellation(t *testing.T) {
	f := gf(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	x := make([]uint64, 3)
	u := make([]uint64, 3)

	_, err := newSolver(t, f, wiedemann.DefaultTraits()).Solve(ctx, denseOf(t, f, nonsingular), x, vec(f, 1, 2, 3), u)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindNullspaceElement(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, rankTwo)

	for _, p := range []wiedemann.Preconditioner{wiedemann.PrecondButterfly, wiedemann.PrecondSparse} {
		t.Run(p.String(), func(t *testing.T) {
			tr := wiedemann.DefaultTraits()
			tr.Preconditioner = p
			s := newSolver(t, f, tr)
			var (
				st  wiedemann.Status
				err error
				x   = make([]uint64, 3)
			)
			for k := 0; k < 10; k++ {
				if st, err = s.FindNullspaceElement(context.Background(), x, a); err != nil || st == wiedemann.StatusOK {
					break
				}
			}
			require.NoError(t, err)
			require.Equal(t, wiedemann.StatusOK, st)
			require.False(t, ring.VectorIsZero[uint64](f, x))
			requireSolves(t, a, x, make([]uint64, 3))
		})
	}
}

func TestFindNullspaceElementAllOnes(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, allOnes)
	s := newSolver(t, f, wiedemann.DefaultTraits())

	var (
		st  wiedemann.Status
		err error
		x   = make([]uint64, 2)
	)
	for k := 0; k < 10; k++ {
		if st, err = s.FindNullspaceElement(context.Background(), x, a); err != nil || st == wiedemann.StatusOK {
			break
		}
	}
	require.NoError(t, err)
	require.Equal(t, wiedemann.StatusOK, st)
	require.False(t, ring.VectorIsZero[uint64](f, x))
	requireSolves(t, a, x, make([]uint64, 2))
	// the kernel is spanned by [1, -1]
	require.Equal(t, f.Neg(x[0]), x[1])
}

func TestFindNullspaceElementFullRank(t *testing.T) {
	f := gf(t)
	st, err := newSolver(t, f, wiedemann.DefaultTraits()).
		FindNullspaceElement(context.Background(), make([]uint64, 3), denseOf(t, f, nonsingular))
	require.NoError(t, err)
	require.Equal(t, wiedemann.StatusFailed, st)
}

func TestRank(t *testing.T) {
	f := gf(t)
	cases := []struct {
		name string
		rows [][]int64
		want int
	}{
		{"nonsingular", nonsingular, 3},
		{"rank two", rankTwo, 2},
		{"all ones", allOnes, 1},
		{"zero", [][]int64{{0, 0, 0}, {0, 0, 0}}, 0},
		{"wide", [][]int64{{1, 0, 1, 0}, {0, 1, 0, 1}, {1, 1, 1, 1}}, 2},
		{"tall", [][]int64{{1, 2}, {3, 4}, {5, 6}, {7, 8}}, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newSolver(t, f, wiedemann.DefaultTraits())
			r, err := s.Rank(context.Background(), denseOf(t, f, tc.rows))
			require.NoError(t, err)
			require.Equal(t, tc.want, r)
		})
	}
}

func TestRankOfOpaqueOperator(t *testing.T) {
	f := gf(t)
	a := denseOf(t, f, rankTwo)
	op := blackbox.MustCompose[uint64](blackbox.NewScalar[uint64](f, 3, f.FromInt64(5)), a)

	r, err := newSolver(t, f, wiedemann.DefaultTraits()).Rank(context.Background(), op)
	require.NoError(t, err)
	require.Equal(t, 2, r)
}

func TestDet(t *testing.T) {
	f := gf(t)
	s := newSolver(t, f, wiedemann.DefaultTraits())

	d, err := s.Det(context.Background(), denseOf(t, f, nonsingular))
	require.NoError(t, err)
	require.Equal(t, f.FromInt64(18), d)

	d, err = s.Det(context.Background(), denseOf(t, f, [][]int64{{0, 1}, {1, 0}}))
	require.NoError(t, err)
	require.Equal(t, f.FromInt64(-1), d)

	d, err = s.Det(context.Background(), denseOf(t, f, rankTwo))
	require.NoError(t, err)
	require.True(t, f.IsZero(d))

	_, err = s.Det(context.Background(), denseOf(t, f, [][]int64{{1, 2}}))
	require.ErrorIs(t, err, blackbox.ErrNonSquare)
}

func TestParsePreconditioner(t *testing.T) {
	p, err := wiedemann.ParsePreconditioner("Sparse")
	require.NoError(t, err)
	require.Equal(t, wiedemann.PrecondSparse, p)

	_, err = wiedemann.ParsePreconditioner("hadamard")
	require.ErrorIs(t, err, wiedemann.ErrBadTraits)
}
