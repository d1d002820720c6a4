// SPDX-License-Identifier: MIT

package ring

import (
	"math/big"
	"math/rand"
	"strings"
)

// DefaultRandomBits bounds random integers drawn from Z and Q to
// [-2^DefaultRandomBits, 2^DefaultRandomBits).
const DefaultRandomBits = 32

// Integers is the ring Z on *big.Int elements.
type Integers struct {
	bits uint
}

// NewIntegers returns Z with the default random sampling bound.
func NewIntegers() *Integers { return &Integers{bits: DefaultRandomBits} }

// NewIntegersWithBits returns Z drawing random elements of at most bits bits.
// Panics if bits == 0 (programmer error).
func NewIntegersWithBits(bits uint) *Integers {
	if bits == 0 {
		panic("ring: NewIntegersWithBits: bits must be > 0")
	}

	return &Integers{bits: bits}
}

func (z *Integers) Zero() *big.Int { return new(big.Int) }
func (z *Integers) One() *big.Int  { return big.NewInt(1) }

func (z *Integers) Add(a, b *big.Int) *big.Int { return new(big.Int).Add(a, b) }
func (z *Integers) Sub(a, b *big.Int) *big.Int { return new(big.Int).Sub(a, b) }
func (z *Integers) Mul(a, b *big.Int) *big.Int { return new(big.Int).Mul(a, b) }
func (z *Integers) Neg(a *big.Int) *big.Int    { return new(big.Int).Neg(a) }

// Inv succeeds only for ±1.
func (z *Integers) Inv(a *big.Int) (*big.Int, error) {
	if !z.IsUnit(a) {
		return nil, ringErrorf("Integers.Inv", ErrNotInvertible)
	}

	return new(big.Int).Set(a), nil
}

// Div is exact division; a non-zero remainder reports ErrNotInvertible.
func (z *Integers) Div(a, b *big.Int) (*big.Int, error) {
	if b.Sign() == 0 {
		return nil, ringErrorf("Integers.Div", ErrNotInvertible)
	}
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 {
		return nil, ringErrorf("Integers.Div", ErrNotInvertible)
	}

	return q, nil
}

func (z *Integers) IsZero(a *big.Int) bool   { return a.Sign() == 0 }
func (z *Integers) IsOne(a *big.Int) bool    { return a.IsInt64() && a.Int64() == 1 }
func (z *Integers) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }

func (z *Integers) IsUnit(a *big.Int) bool {
	return a.IsInt64() && (a.Int64() == 1 || a.Int64() == -1)
}

func (z *Integers) Random(rng *rand.Rand) *big.Int {
	bound := new(big.Int).Lsh(big.NewInt(1), z.bits+1)
	v := new(big.Int).Rand(rng, bound)

	return v.Sub(v, new(big.Int).Lsh(big.NewInt(1), z.bits))
}

func (z *Integers) NonZeroRandom(rng *rand.Rand) *big.Int {
	for {
		if v := z.Random(rng); v.Sign() != 0 {
			return v
		}
	}
}

func (z *Integers) FromInt64(v int64) *big.Int  { return big.NewInt(v) }
func (z *Integers) FromBig(v *big.Int) *big.Int { return new(big.Int).Set(v) }
func (z *Integers) ToBig(a *big.Int) *big.Int   { return new(big.Int).Set(a) }

func (z *Integers) Parse(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, ringErrorf("Integers.Parse", ErrParse)
	}

	return v, nil
}

func (z *Integers) String(a *big.Int) string { return a.String() }

func (z *Integers) Characteristic() *big.Int { return new(big.Int) }
func (z *Integers) Cardinality() *big.Int    { return new(big.Int) }
func (z *Integers) IsField() bool            { return false }
func (z *Integers) Name() string             { return "Z" }
