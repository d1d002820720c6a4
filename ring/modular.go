// SPDX-License-Identifier: MIT

package ring

import (
	"fmt"
	"math/big"
	"math/bits"
	"math/rand"
	"strconv"

	"golang.org/x/exp/constraints"
)

// Word is the set of storage types for word-size modular domains.
type Word interface {
	~uint16 | ~uint32 | ~uint64
}

// maxOf returns the largest value representable by T.
func maxOf[T constraints.Unsigned]() uint64 {
	return uint64(^T(0))
}

// Modular is Z/m with elements stored as T and every residue in [0, m).
//
// Implementation:
//   - Add/Sub stay in uint64 and use the carry of bits.Add64.
//   - Mul forms the 128-bit product with bits.Mul64 and reduces it with
//     bits.Div64; the high word is always < m, so Div64 never panics.
//   - Inv goes through big.Int.ModInverse; inversions are pivot-rate, not
//     inner-loop.
type Modular[T Word] struct {
	m     uint64
	field bool
	local power
}

// NewModular returns Z/m for 2 ≤ m ≤ max(T). A prime m yields a field and the
// local ring Z/m^1.
func NewModular[T Word](m uint64) (*Modular[T], error) {
	if m < 2 || m > maxOf[T]() {
		return nil, ringErrorf("NewModular", fmt.Errorf("%w: %d does not fit %d-bit storage", ErrModulus, m, bits.Len64(maxOf[T]())))
	}
	bm := new(big.Int).SetUint64(m)
	prime := bm.ProbablyPrime(20)
	r := &Modular[T]{m: m, field: prime}
	if prime {
		r.local = power{p: bm, e: 1}
	}

	return r, nil
}

// NewModularPower returns the local ring Z/p^e. Fails with ErrNotPrime when
// p is composite and ErrModulus when p^e does not fit T.
func NewModularPower[T Word](p uint64, e int) (*Modular[T], error) {
	q, err := primePower(new(big.Int).SetUint64(p), e)
	if err != nil {
		return nil, ringErrorf("NewModularPower", err)
	}
	if !q.IsUint64() || q.Uint64() > maxOf[T]() {
		return nil, ringErrorf("NewModularPower", fmt.Errorf("%w: %d^%d overflows storage", ErrModulus, p, e))
	}

	return &Modular[T]{
		m:     q.Uint64(),
		field: e == 1,
		local: power{p: new(big.Int).SetUint64(p), e: e},
	}, nil
}

// Modulus returns m.
func (r *Modular[T]) Modulus() uint64 { return r.m }

func (r *Modular[T]) Zero() T { return 0 }
func (r *Modular[T]) One() T  { return 1 }

func (r *Modular[T]) Add(a, b T) T {
	s, carry := bits.Add64(uint64(a), uint64(b), 0)
	if carry != 0 || s >= r.m {
		s -= r.m
	}

	return T(s)
}

func (r *Modular[T]) Sub(a, b T) T {
	if a >= b {
		return a - b
	}

	return T(uint64(a) + (r.m - uint64(b)))
}

func (r *Modular[T]) Mul(a, b T) T {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	_, rem := bits.Div64(hi, lo, r.m)

	return T(rem)
}

func (r *Modular[T]) Neg(a T) T {
	if a == 0 {
		return 0
	}

	return T(r.m - uint64(a))
}

func (r *Modular[T]) Inv(a T) (T, error) {
	inv := new(big.Int).ModInverse(new(big.Int).SetUint64(uint64(a)), new(big.Int).SetUint64(r.m))
	if inv == nil {
		return 0, ringErrorf("Modular.Inv", ErrNotInvertible)
	}

	return T(inv.Uint64()), nil
}

func (r *Modular[T]) Div(a, b T) (T, error) {
	inv, err := r.Inv(b)
	if err != nil {
		return 0, err
	}

	return r.Mul(a, inv), nil
}

func (r *Modular[T]) IsZero(a T) bool   { return a == 0 }
func (r *Modular[T]) IsOne(a T) bool    { return a == 1 }
func (r *Modular[T]) Equal(a, b T) bool { return a == b }

func (r *Modular[T]) IsUnit(a T) bool {
	if r.field {
		return a != 0
	}
	g := new(big.Int).GCD(nil, nil, new(big.Int).SetUint64(uint64(a)), new(big.Int).SetUint64(r.m))

	return g.IsInt64() && g.Int64() == 1
}

func (r *Modular[T]) Random(rng *rand.Rand) T {
	if r.m <= 1<<62 {
		return T(rng.Int63n(int64(r.m)))
	}
	for {
		if v := rng.Uint64(); v < r.m {
			return T(v)
		}
	}
}

func (r *Modular[T]) NonZeroRandom(rng *rand.Rand) T {
	for {
		if v := r.Random(rng); v != 0 {
			return v
		}
	}
}

func (r *Modular[T]) FromInt64(v int64) T {
	if v >= 0 {
		return T(uint64(v) % r.m)
	}
	// -v may overflow for MinInt64; reduce through uint64 arithmetic
	neg := (uint64(-(v + 1)) + 1) % r.m

	return r.Neg(T(neg))
}

func (r *Modular[T]) FromBig(v *big.Int) T {
	return T(new(big.Int).Mod(v, new(big.Int).SetUint64(r.m)).Uint64())
}

func (r *Modular[T]) ToBig(a T) *big.Int { return new(big.Int).SetUint64(uint64(a)) }

func (r *Modular[T]) Parse(s string) (T, error) {
	num, den, err := parseResidue(s)
	if err != nil {
		return 0, ringErrorf("Modular.Parse", err)
	}
	if den == nil {
		return r.FromBig(num), nil
	}
	v, err := r.Div(r.FromBig(num), r.FromBig(den))
	if err != nil {
		return 0, ringErrorf("Modular.Parse", err)
	}

	return v, nil
}

func (r *Modular[T]) String(a T) string { return strconv.FormatUint(uint64(a), 10) }

func (r *Modular[T]) Characteristic() *big.Int { return new(big.Int).SetUint64(r.m) }
func (r *Modular[T]) Cardinality() *big.Int    { return new(big.Int).SetUint64(r.m) }
func (r *Modular[T]) IsField() bool            { return r.field }

func (r *Modular[T]) Name() string {
	return fmt.Sprintf("Z/%d[%dbit]", r.m, bits.Len64(maxOf[T]()))
}

// Prime returns p for a local ring Z/p^e, nil otherwise.
func (r *Modular[T]) Prime() *big.Int { return r.local.prime() }

// Exponent returns e for a local ring Z/p^e, 0 otherwise.
func (r *Modular[T]) Exponent() int { return r.local.e }

func (r *Modular[T]) Valuation(a T) int {
	return r.local.valuation(new(big.Int).SetUint64(uint64(a)))
}

func (r *Modular[T]) DivPow(a T, k int) T {
	return T(r.local.divPow(new(big.Int).SetUint64(uint64(a)), k).Uint64())
}
