// SPDX-License-Identifier: MIT

package smith_test

import (
	"bytes"
	"context"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/modrank"
	"github.com/katalvlaran/exactla/rankcache"
	"github.com/katalvlaran/exactla/smith"
)

func ints(vs ...int64) []*big.Int {
	out := make([]*big.Int, len(vs))
	for i, v := range vs {
		out[i] = big.NewInt(v)
	}

	return out
}

func requireInts(t *testing.T, want []int64, got []*big.Int) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Zero(t, big.NewInt(want[i]).Cmp(got[i]), "entry %d: want %d got %s", i, want[i], got[i])
	}
}

func diag246() *matrixio.Triplets {
	return matrixio.FromRows([][]int64{{2, 0, 0}, {0, 4, 0}, {0, 0, 6}})
}

func TestValence(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		a    *matrixio.Triplets
		sq   smith.Squarization
		want int64
	}{
		// AAᵀ = diag(4,16,36)
		{"diag", diag246(), smith.SquarizeAuto, 2304},
		// x² − 30x + 4
		{"2x2", matrixio.FromRows([][]int64{{1, 2}, {3, 4}}), smith.SquarizeAAT, 4},
		{"2x2 ata", matrixio.FromRows([][]int64{{1, 2}, {3, 4}}), smith.SquarizeATA, 4},
		// x(x − 100)
		{"rank one", matrixio.FromRows([][]int64{{2, 4}, {4, 8}}), smith.SquarizeAuto, 100},
		{"zero", matrixio.FromRows([][]int64{{0, 0}, {0, 0}}), smith.SquarizeAuto, 1},
		{"empty", &matrixio.Triplets{}, smith.SquarizeAuto, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := smith.Valence(ctx, tc.a, tc.sq)
			require.NoError(t, err)
			require.Equal(t, tc.want, v.Int64())
		})
	}
}

func TestValenceWideMatrix(t *testing.T) {
	// 1×3 row: AAᵀ = [14], Aᵀ·A has minpoly x(x − 14)
	a := matrixio.FromRows([][]int64{{1, 2, 3}})
	for _, sq := range []smith.Squarization{smith.SquarizeAuto, smith.SquarizeAAT, smith.SquarizeATA} {
		v, err := smith.Valence(context.Background(), a, sq)
		require.NoError(t, err)
		require.Equal(t, int64(14), v.Int64(), sq.String())
	}
}

// randomSparse returns a rows×cols matrix with about perRow entries in
// [-9, 9] per row.
func randomSparse(rng *rand.Rand, rows, cols, perRow int) *matrixio.Triplets {
	var entries []matrixio.Entry
	for i := 0; i < rows; i++ {
		for k := 0; k < perRow; k++ {
			entries = append(entries, matrixio.Entry{Row: i, Col: rng.Intn(cols), Val: big.NewInt(rng.Int63n(19) - 9)})
		}
	}
	t, err := matrixio.NewTriplets(rows, cols, entries)
	if err != nil {
		panic(err)
	}

	return t
}

func TestValenceMatchesExactMinpoly(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(3))
	for trial := 0; trial < 8; trial++ {
		a := randomSparse(rng, 2+rng.Intn(5), 2+rng.Intn(5), 2)
		for _, sq := range []smith.Squarization{smith.SquarizeAAT, smith.SquarizeATA} {
			want, err := smith.ExportedExactValence(ctx, a, sq)
			require.NoError(t, err)
			got, err := smith.Valence(ctx, a, sq)
			require.NoError(t, err)
			require.Zero(t, want.Cmp(got), "trial %d %s: want %s got %s", trial, sq, want, got)
		}
	}
}

func TestValenceSquarizationsAgree(t *testing.T) {
	// AAᵀ and AᵀA share their non-zero eigenvalues, and x divides each
	// minimal polynomial at most once, so the trailing coefficients match.
	ctx := context.Background()
	a := randomSparse(rand.New(rand.NewSource(17)), 40, 70, 3)
	aat, err := smith.Valence(ctx, a, smith.SquarizeAAT)
	require.NoError(t, err)
	ata, err := smith.Valence(ctx, a, smith.SquarizeATA)
	require.NoError(t, err)
	require.Zero(t, aat.Cmp(ata), "aat %s ata %s", aat, ata)
	require.Positive(t, aat.Sign())
}

func TestValenceHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := smith.Valence(ctx, diag246(), smith.SquarizeAuto)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseSquarization(t *testing.T) {
	for in, want := range map[string]smith.Squarization{"": smith.SquarizeAuto, "AAT": smith.SquarizeAAT, "ata": smith.SquarizeATA} {
		got, err := smith.ParseSquarization(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	_, err := smith.ParseSquarization("gram")
	require.Error(t, err)
}

func TestFactor(t *testing.T) {
	f, err := smith.Factor(big.NewInt(2304), 0)
	require.NoError(t, err)
	require.True(t, f.Complete())
	requireInts(t, []int64{2, 3}, f.Primes)
	require.Equal(t, []int{8, 2}, f.Exponents)

	f, err = smith.Factor(big.NewInt(1), 0)
	require.NoError(t, err)
	require.True(t, f.Complete())
	require.Empty(t, f.Primes)

	// both factors lie beyond trial division
	n := new(big.Int).Mul(big.NewInt(1000003), big.NewInt(1000033))
	n.Mul(n, big.NewInt(12))
	f, err = smith.Factor(n, 0)
	require.NoError(t, err)
	require.True(t, f.Complete())
	requireInts(t, []int64{2, 3, 1000003, 1000033}, f.Primes)
	require.Equal(t, []int{2, 1, 1, 1}, f.Exponents)

	_, err = smith.Factor(big.NewInt(0), 0)
	require.ErrorIs(t, err, smith.ErrBadValence)
}

func mersenne(k uint) *big.Int {
	return new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), k), big.NewInt(1))
}

func TestFactorIncomplete(t *testing.T) {
	n := new(big.Int).Mul(mersenne(61), mersenne(89))
	f, err := smith.Factor(n, 10)
	require.NoError(t, err)
	require.False(t, f.Complete())
	require.Zero(t, n.Cmp(f.Cofactor))
}

func TestCoprimePrime(t *testing.T) {
	for v, want := range map[int64]int64{1: 2, 2304: 5, 30: 7, 15: 2} {
		p, err := smith.CoprimePrime(big.NewInt(v))
		require.NoError(t, err)
		require.Equal(t, want, p.Int64(), "v=%d", v)
	}
	_, err := smith.CoprimePrime(new(big.Int))
	require.ErrorIs(t, err, smith.ErrBadValence)
}

func TestPopulateSmithForm(t *testing.T) {
	diag := smith.PopulateSmithForm(nil, []int{0, 2, 3, 3}, big.NewInt(2), 0, 3)
	requireInts(t, []int64{2, 2, 4}, diag)
	diag = smith.PopulateSmithForm(diag, []int{2, 3}, big.NewInt(3), 2, 3)
	requireInts(t, []int64{2, 2, 12}, diag)
}

func TestPopulateSmithFormRankDeficient(t *testing.T) {
	// diag(1, 2, 0): rank 1 mod 2, rank 2 mod 4 and mod the coprime prime
	diag := smith.PopulateSmithForm(nil, []int{1, 2}, big.NewInt(2), 1, 2)
	requireInts(t, []int64{1, 2}, diag)

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteCompressedSmith(&buf, smith.Compressed(diag, 3, 3)))
	require.Equal(t, "([1,1] [2,1] [0,1])\n", buf.String())

	res, err := smith.Compute(context.Background(),
		modrank.NewMemorySource(matrixio.FromRows([][]int64{{1, 0, 0}, {0, 2, 0}, {0, 0, 0}})))
	require.NoError(t, err)
	require.Equal(t, int64(4), res.Valence.Int64())
	require.Equal(t, int64(3), res.CoprimePrime.Int64())
	requireInts(t, []int64{1, 2}, res.Diagonal)
	require.Equal(t, []int{1, 2}, res.PowerRanks[0])
}

func TestCompressed(t *testing.T) {
	pairs := smith.Compressed(ints(1, 1, 3), 3, 4)
	require.Len(t, pairs, 2)
	require.Equal(t, int64(1), pairs[0].Value.Int64())
	require.Equal(t, 2, pairs[0].Count)
	require.Equal(t, int64(3), pairs[1].Value.Int64())
	require.Equal(t, 1, pairs[1].Count)

	pairs = smith.Compressed(nil, 2, 5)
	require.Len(t, pairs, 1)
	require.Zero(t, pairs[0].Value.Sign())
	require.Equal(t, 2, pairs[0].Count)

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteCompressedSmith(&buf, smith.Compressed(ints(2, 2, 12), 4, 3)))
	require.Equal(t, "([2,2] [12,1])\n", buf.String())
}

func TestAllPowersRanks(t *testing.T) {
	pl, err := modrank.New(modrank.NewMemorySource(diag246()))
	require.NoError(t, err)

	ranks, err := smith.AllPowersRanks(context.Background(), pl, big.NewInt(2), 0, 2, 3, 0)
	require.NoError(t, err)
	require.Equal(t, []int{0, 2, 3, 3}, ranks)

	ranks, err = smith.AllPowersRanks(context.Background(), pl, big.NewInt(5), 3, 1, 3, 0)
	require.NoError(t, err)
	require.Nil(t, ranks)

	// the sequence for 2 plateaus at 3; asking for 4 never terminates
	_, err = smith.AllPowersRanks(context.Background(), pl, big.NewInt(2), 0, 2, 4, 8)
	require.ErrorIs(t, err, smith.ErrExponentBound)
}

func TestCompute(t *testing.T) {
	cases := []struct {
		name  string
		a     *matrixio.Triplets
		diag  []int64
		rank  int
		zeros int
	}{
		{"diag", diag246(), []int64{2, 2, 12}, 3, 0},
		{"2x2", matrixio.FromRows([][]int64{{1, 2}, {3, 4}}), []int64{1, 2}, 2, 0},
		{"rank one", matrixio.FromRows([][]int64{{2, 4}, {4, 8}}), []int64{2}, 1, 1},
		{"wide", matrixio.FromRows([][]int64{{2, 0, 0}, {0, 6, 0}}), []int64{2, 6}, 2, 0},
		{"zero", matrixio.FromRows([][]int64{{0, 0, 0}, {0, 0, 0}}), nil, 0, 2},
		{"diag with zero", matrixio.FromRows([][]int64{{1, 0, 0}, {0, 2, 0}, {0, 0, 0}}), []int64{1, 2}, 2, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := smith.Compute(context.Background(), modrank.NewMemorySource(tc.a), smith.WithWorkers(2))
			require.NoError(t, err)
			require.Equal(t, tc.rank, res.Rank)
			requireInts(t, tc.diag, res.Diagonal)

			pairs := res.Compressed()
			last := pairs[len(pairs)-1]
			if tc.zeros > 0 {
				require.Zero(t, last.Value.Sign())
				require.Equal(t, tc.zeros, last.Count)
			} else {
				require.NotZero(t, last.Value.Sign())
			}
		})
	}
}

func TestComputeDeterminantProduct(t *testing.T) {
	// det = 48 = 2·2·12
	res, err := smith.Compute(context.Background(), modrank.NewMemorySource(diag246()))
	require.NoError(t, err)
	prod := big.NewInt(1)
	for _, d := range res.Diagonal {
		prod.Mul(prod, d)
	}
	require.Equal(t, int64(48), prod.Int64())
	require.Equal(t, int64(2304), res.Valence.Int64())
	require.Equal(t, int64(5), res.CoprimePrime.Int64())
	requireInts(t, []int64{2, 3}, res.Primes)
}

func TestComputeOptions(t *testing.T) {
	ctx := context.Background()
	src := modrank.NewMemorySource(diag246())

	res, err := smith.Compute(ctx, src, smith.WithValence(big.NewInt(2304)), smith.WithCoprime(big.NewInt(7)))
	require.NoError(t, err)
	requireInts(t, []int64{2, 2, 12}, res.Diagonal)

	_, err = smith.Compute(ctx, src, smith.WithValence(big.NewInt(2304)), smith.WithCoprime(big.NewInt(3)))
	require.ErrorIs(t, err, smith.ErrNotCoprime)

	_, err = smith.Compute(ctx, src, smith.WithValence(new(big.Int).Mul(mersenne(61), mersenne(89))), smith.WithFactorLoops(10))
	require.ErrorIs(t, err, smith.ErrIncompleteFactorization)

	_, err = smith.Compute(ctx, nil)
	require.ErrorIs(t, err, modrank.ErrNilSource)

	require.Panics(t, func() { smith.WithWorkers(0) })
}

func TestComputeWithCache(t *testing.T) {
	c := rankcache.Memory()
	defer c.Close()
	src := modrank.NewMemorySource(diag246())
	for range 2 {
		res, err := smith.Compute(context.Background(), src, smith.WithCache(c))
		require.NoError(t, err)
		requireInts(t, []int64{2, 2, 12}, res.Diagonal)
	}
	ranks, ok, err := c.Get(rankcache.Key(diag246().Digest(), big.NewInt(3), 2))
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []int{2, 3}, ranks)
}
