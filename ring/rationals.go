// SPDX-License-Identifier: MIT

package ring

import (
	"math/big"
	"math/rand"
	"strings"
)

// Rationals is the field Q on *big.Rat elements.
type Rationals struct {
	z *Integers
}

// NewRationals returns Q; random elements are integers drawn as in NewIntegers.
func NewRationals() *Rationals { return &Rationals{z: NewIntegers()} }

func (q *Rationals) Zero() *big.Rat { return new(big.Rat) }
func (q *Rationals) One() *big.Rat  { return big.NewRat(1, 1) }

func (q *Rationals) Add(a, b *big.Rat) *big.Rat { return new(big.Rat).Add(a, b) }
func (q *Rationals) Sub(a, b *big.Rat) *big.Rat { return new(big.Rat).Sub(a, b) }
func (q *Rationals) Mul(a, b *big.Rat) *big.Rat { return new(big.Rat).Mul(a, b) }
func (q *Rationals) Neg(a *big.Rat) *big.Rat    { return new(big.Rat).Neg(a) }

func (q *Rationals) Inv(a *big.Rat) (*big.Rat, error) {
	if a.Sign() == 0 {
		return nil, ringErrorf("Rationals.Inv", ErrNotInvertible)
	}

	return new(big.Rat).Inv(a), nil
}

func (q *Rationals) Div(a, b *big.Rat) (*big.Rat, error) {
	if b.Sign() == 0 {
		return nil, ringErrorf("Rationals.Div", ErrNotInvertible)
	}

	return new(big.Rat).Quo(a, b), nil
}

func (q *Rationals) IsZero(a *big.Rat) bool   { return a.Sign() == 0 }
func (q *Rationals) IsOne(a *big.Rat) bool    { return a.IsInt() && a.Num().IsInt64() && a.Num().Int64() == 1 }
func (q *Rationals) Equal(a, b *big.Rat) bool { return a.Cmp(b) == 0 }
func (q *Rationals) IsUnit(a *big.Rat) bool   { return a.Sign() != 0 }

func (q *Rationals) Random(rng *rand.Rand) *big.Rat {
	return new(big.Rat).SetInt(q.z.Random(rng))
}

func (q *Rationals) NonZeroRandom(rng *rand.Rand) *big.Rat {
	return new(big.Rat).SetInt(q.z.NonZeroRandom(rng))
}

func (q *Rationals) FromInt64(v int64) *big.Rat  { return new(big.Rat).SetInt64(v) }
func (q *Rationals) FromBig(v *big.Int) *big.Rat { return new(big.Rat).SetInt(v) }

// ToBig truncates toward zero.
func (q *Rationals) ToBig(a *big.Rat) *big.Int {
	return new(big.Int).Quo(a.Num(), a.Denom())
}

// Parse accepts integers, fractions "a/b" and finite decimals.
func (q *Rationals) Parse(s string) (*big.Rat, error) {
	v, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return nil, ringErrorf("Rationals.Parse", ErrParse)
	}

	return v, nil
}

func (q *Rationals) String(a *big.Rat) string { return a.RatString() }

func (q *Rationals) Characteristic() *big.Int { return new(big.Int) }
func (q *Rationals) Cardinality() *big.Int    { return new(big.Int) }
func (q *Rationals) IsField() bool            { return true }
func (q *Rationals) Name() string             { return "Q" }
