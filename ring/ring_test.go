// SPDX-License-Identifier: MIT

package ring_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactla/ring"
)

// checkFieldAxioms exercises the arithmetic contract on random elements.
func checkFieldAxioms[E any](t *testing.T, r ring.Ring[E], rng *rand.Rand) {
	t.Helper()
	var i int
	for i = 0; i < 200; i++ {
		a, b, c := r.Random(rng), r.Random(rng), r.Random(rng)

		require.True(t, r.Equal(r.Add(a, b), r.Add(b, a)))                               // commutativity
		require.True(t, r.Equal(r.Mul(a, r.Add(b, c)), r.Add(r.Mul(a, b), r.Mul(a, c)))) // distributivity
		require.True(t, r.IsZero(r.Add(a, r.Neg(a))))                                    // additive inverse
		require.True(t, r.Equal(r.Sub(a, b), r.Add(a, r.Neg(b))))
		require.True(t, r.Equal(r.Mul(a, r.One()), a))

		if r.IsField() && !r.IsZero(b) {
			q, err := r.Div(a, b)
			require.NoError(t, err)
			require.True(t, r.Equal(r.Mul(q, b), a))
		}
	}
	_, err := r.Inv(r.Zero())
	require.ErrorIs(t, err, ring.ErrNotInvertible)
}

func TestModularWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	r16, err := ring.NewModular[uint16](65521)
	require.NoError(t, err)
	require.True(t, r16.IsField())
	checkFieldAxioms[uint16](t, r16, rng)

	r32, err := ring.NewModular[uint32](4294967291)
	require.NoError(t, err)
	checkFieldAxioms[uint32](t, r32, rng)

	// largest 64-bit prime: exercises the carry path of Add and the 128-bit Mul
	r64, err := ring.NewModular[uint64](18446744073709551557)
	require.NoError(t, err)
	checkFieldAxioms[uint64](t, r64, rng)
	x := r64.FromInt64(-1)
	require.Equal(t, uint64(18446744073709551556), x)
	require.True(t, r64.IsOne(r64.Mul(x, x)))
}

func TestModularRejectsBadModulus(t *testing.T) {
	_, err := ring.NewModular[uint16](1)
	require.ErrorIs(t, err, ring.ErrModulus)

	_, err = ring.NewModular[uint16](70000)
	require.ErrorIs(t, err, ring.ErrModulus)

	_, err = ring.NewModularPower[uint16](4, 2)
	require.ErrorIs(t, err, ring.ErrNotPrime)

	_, err = ring.NewModularPower[uint16](3, 11) // 177147 > 65535
	require.ErrorIs(t, err, ring.ErrModulus)
}

func TestModularParse(t *testing.T) {
	r, err := ring.NewModular[uint32](7)
	require.NoError(t, err)

	v, err := r.Parse("-3")
	require.NoError(t, err)
	require.Equal(t, uint32(4), v)

	v, err = r.Parse("1/2") // 2·4 = 8 ≡ 1
	require.NoError(t, err)
	require.Equal(t, uint32(4), v)

	_, err = r.Parse("1/7")
	require.ErrorIs(t, err, ring.ErrNotInvertible)

	_, err = r.Parse("x")
	require.ErrorIs(t, err, ring.ErrParse)
}

func TestWideMatchesModularBig(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	// 2^255 - 19
	p := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(19))

	w, err := ring.NewWide(p)
	require.NoError(t, err)
	b, err := ring.NewModularBig(p)
	require.NoError(t, err)
	require.True(t, w.IsField())
	checkFieldAxioms[uint256.Int](t, w, rng)

	var i int
	for i = 0; i < 100; i++ {
		x, y := b.Random(rng), b.Random(rng)
		wx, wy := w.FromBig(x), w.FromBig(y)
		require.Equal(t, 0, w.ToBig(w.Mul(wx, wy)).Cmp(b.Mul(x, y)))
		require.Equal(t, 0, w.ToBig(w.Sub(wx, wy)).Cmp(b.Sub(x, y)))
		require.Equal(t, 0, w.ToBig(w.Add(wx, wy)).Cmp(b.Add(x, y)))
	}

	_, err = ring.NewWide(new(big.Int).Lsh(big.NewInt(1), 256))
	require.ErrorIs(t, err, ring.ErrModulus)
}

func TestRationalsAndIntegers(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	q := ring.NewRationals()
	checkFieldAxioms[*big.Rat](t, q, rng)

	v, err := q.Parse("6/4")
	require.NoError(t, err)
	require.Equal(t, "3/2", q.String(v))

	z := ring.NewIntegers()
	require.False(t, z.IsField())
	d, err := z.Div(big.NewInt(12), big.NewInt(-4))
	require.NoError(t, err)
	require.Equal(t, int64(-3), d.Int64())
	_, err = z.Div(big.NewInt(7), big.NewInt(2))
	require.ErrorIs(t, err, ring.ErrNotInvertible)
	require.True(t, z.IsUnit(big.NewInt(-1)))
}

func TestLocalValuation(t *testing.T) {
	r, err := ring.NewModularPower[uint32](3, 4) // Z/81
	require.NoError(t, err)
	require.False(t, r.IsField())
	require.Equal(t, 4, r.Exponent())
	require.Equal(t, int64(3), r.Prime().Int64())

	require.Equal(t, 0, r.Valuation(5))
	require.Equal(t, 2, r.Valuation(18))
	require.Equal(t, 3, r.Valuation(54))
	require.Equal(t, 4, r.Valuation(0))
	require.Equal(t, uint32(2), r.DivPow(18, 2))
	require.False(t, r.IsUnit(6))
	require.True(t, r.IsUnit(5))

	w, err := ring.NewWidePower(big.NewInt(2), 200)
	require.NoError(t, err)
	require.Equal(t, 7, w.Valuation(w.FromInt64(384))) // 384 = 3·2^7

	m, err := ring.NewModularBigPower(big.NewInt(5), 3)
	require.NoError(t, err)
	require.Equal(t, 2, m.Valuation(big.NewInt(75)))
	require.Equal(t, int64(3), m.DivPow(big.NewInt(75), 2).Int64())
}

func TestVectorHelpers(t *testing.T) {
	r, err := ring.NewModular[uint16](11)
	require.NoError(t, err)

	a := []uint16{1, 2, 3}
	b := []uint16{4, 5, 6}
	require.Equal(t, uint16(32%11), ring.Dot[uint16](r, a, b))

	y := ring.NewVector[uint16](r, 3)
	ring.Axpy[uint16](r, y, 2, a)
	require.Equal(t, []uint16{2, 4, 6}, y)
	ring.SubFrom[uint16](r, y, y)
	require.True(t, ring.VectorIsZero[uint16](r, y))
	require.Equal(t, "[1, 2, 3]", ring.VectorString[uint16](r, a))
}

func TestNextPrime(t *testing.T) {
	require.Equal(t, int64(2), ring.NextPrime(big.NewInt(0)).Int64())
	require.Equal(t, int64(3), ring.NextPrime(big.NewInt(2)).Int64())
	require.Equal(t, int64(11), ring.NextPrime(big.NewInt(7)).Int64())
	require.Equal(t, int64(65537), ring.NextPrime(big.NewInt(65521)).Int64())
	require.True(t, ring.IsPrime(big.NewInt(65521)))
	require.False(t, ring.IsPrime(big.NewInt(1)))
}
