// SPDX-License-Identifier: MIT

package ring

import (
	"math/big"
	"math/rand"
)

// Ring is the arithmetic contract of an exact commutative ring whose
// elements have type E.
//
// Contract:
//   - Every method returning E returns a value that does not alias its inputs.
//   - Zero()/One() return fresh values on each call.
//   - Cardinality() returns 0 for infinite domains.
//   - Inv/Div fail with ErrNotInvertible when the divisor is not a unit.
type Ring[E any] interface {
	Zero() E
	One() E

	Add(a, b E) E
	Sub(a, b E) E
	Mul(a, b E) E
	Neg(a E) E
	Inv(a E) (E, error)
	Div(a, b E) (E, error)

	IsZero(a E) bool
	IsOne(a E) bool
	Equal(a, b E) bool
	IsUnit(a E) bool

	// Random draws a uniformly distributed element (bounded for infinite rings).
	Random(rng *rand.Rand) E
	// NonZeroRandom draws a uniformly distributed non-zero element.
	NonZeroRandom(rng *rand.Rand) E

	FromInt64(v int64) E
	FromBig(v *big.Int) E
	// ToBig returns the canonical integer representative (non-negative for
	// modular domains, the exact value for Z; Q rounds toward zero).
	ToBig(a E) *big.Int
	Parse(s string) (E, error)
	String(a E) string

	Characteristic() *big.Int
	Cardinality() *big.Int
	IsField() bool
	Name() string
}

// Local is a ring Z/p^e that knows its prime structure.
//
// Valuation returns the largest k < e with p^k | a, and Exponent() for zero.
// DivPow(a, k) returns an element c with c·p^k = a; callers guarantee
// Valuation(a) ≥ k.
type Local[E any] interface {
	Ring[E]
	Prime() *big.Int
	Exponent() int
	Valuation(a E) int
	DivPow(a E, k int) E
}
