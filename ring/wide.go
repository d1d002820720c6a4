// SPDX-License-Identifier: MIT

package ring

import (
	"fmt"
	"math/big"
	"math/rand"

	"github.com/holiman/uint256"
)

// Wide is Z/m for moduli up to 2^256-1 on fixed-size uint256.Int values.
//
// It fills the gap between the word-size Modular domains and ModularBig:
// elements are 32-byte values (no heap allocation per operation) and
// AddMod/MulMod keep 512-bit intermediates internally.
type Wide struct {
	m     uint256.Int
	bm    *big.Int
	field bool
	local power
}

// NewWide returns Z/m; m must satisfy 2 ≤ m < 2^256.
func NewWide(m *big.Int) (*Wide, error) {
	w, err := newWide(m)
	if err != nil {
		return nil, ringErrorf("NewWide", err)
	}
	if w.field {
		w.local = power{p: new(big.Int).Set(m), e: 1}
	}

	return w, nil
}

// NewWidePower returns the local ring Z/p^e with p^e < 2^256.
func NewWidePower(p *big.Int, e int) (*Wide, error) {
	q, err := primePower(p, e)
	if err != nil {
		return nil, ringErrorf("NewWidePower", err)
	}
	w, err := newWide(q)
	if err != nil {
		return nil, ringErrorf("NewWidePower", err)
	}
	w.field = e == 1
	w.local = power{p: new(big.Int).Set(p), e: e}

	return w, nil
}

func newWide(m *big.Int) (*Wide, error) {
	if m.Cmp(big.NewInt(2)) < 0 {
		return nil, fmt.Errorf("%w: %s < 2", ErrModulus, m)
	}
	u, overflow := uint256.FromBig(m)
	if overflow {
		return nil, fmt.Errorf("%w: %s exceeds 256 bits", ErrModulus, m)
	}

	return &Wide{m: *u, bm: new(big.Int).Set(m), field: m.ProbablyPrime(20)}, nil
}

func (w *Wide) Zero() uint256.Int { return uint256.Int{} }
func (w *Wide) One() uint256.Int  { return *uint256.NewInt(1) }

func (w *Wide) Add(a, b uint256.Int) uint256.Int {
	var z uint256.Int
	z.AddMod(&a, &b, &w.m)

	return z
}

// Sub avoids a + m - b, which overflows 256 bits for large m.
func (w *Wide) Sub(a, b uint256.Int) uint256.Int {
	var z uint256.Int
	if !a.Lt(&b) {
		z.Sub(&a, &b)
		return z
	}
	var d uint256.Int
	d.Sub(&b, &a)
	z.Sub(&w.m, &d)

	return z
}

func (w *Wide) Mul(a, b uint256.Int) uint256.Int {
	var z uint256.Int
	z.MulMod(&a, &b, &w.m)

	return z
}

func (w *Wide) Neg(a uint256.Int) uint256.Int {
	var z uint256.Int
	if a.IsZero() {
		return z
	}
	z.Sub(&w.m, &a)

	return z
}

func (w *Wide) Inv(a uint256.Int) (uint256.Int, error) {
	inv := new(big.Int).ModInverse(a.ToBig(), w.bm)
	if inv == nil {
		return uint256.Int{}, ringErrorf("Wide.Inv", ErrNotInvertible)
	}

	return *uint256.MustFromBig(inv), nil
}

func (w *Wide) Div(a, b uint256.Int) (uint256.Int, error) {
	inv, err := w.Inv(b)
	if err != nil {
		return uint256.Int{}, err
	}

	return w.Mul(a, inv), nil
}

func (w *Wide) IsZero(a uint256.Int) bool { return a.IsZero() }

func (w *Wide) IsOne(a uint256.Int) bool {
	return a.IsUint64() && a.Uint64() == 1
}

func (w *Wide) Equal(a, b uint256.Int) bool { return a.Eq(&b) }

func (w *Wide) IsUnit(a uint256.Int) bool {
	if w.field {
		return !a.IsZero()
	}
	g := new(big.Int).GCD(nil, nil, a.ToBig(), w.bm)

	return g.IsInt64() && g.Int64() == 1
}

func (w *Wide) Random(rng *rand.Rand) uint256.Int {
	return *uint256.MustFromBig(new(big.Int).Rand(rng, w.bm))
}

func (w *Wide) NonZeroRandom(rng *rand.Rand) uint256.Int {
	for {
		if v := w.Random(rng); !v.IsZero() {
			return v
		}
	}
}

func (w *Wide) FromInt64(v int64) uint256.Int { return w.FromBig(big.NewInt(v)) }

func (w *Wide) FromBig(v *big.Int) uint256.Int {
	return *uint256.MustFromBig(new(big.Int).Mod(v, w.bm))
}

func (w *Wide) ToBig(a uint256.Int) *big.Int { return a.ToBig() }

func (w *Wide) Parse(s string) (uint256.Int, error) {
	num, den, err := parseResidue(s)
	if err != nil {
		return uint256.Int{}, ringErrorf("Wide.Parse", err)
	}
	if den == nil {
		return w.FromBig(num), nil
	}
	v, err := w.Div(w.FromBig(num), w.FromBig(den))
	if err != nil {
		return uint256.Int{}, ringErrorf("Wide.Parse", err)
	}

	return v, nil
}

func (w *Wide) String(a uint256.Int) string { return a.Dec() }

func (w *Wide) Characteristic() *big.Int { return new(big.Int).Set(w.bm) }
func (w *Wide) Cardinality() *big.Int    { return new(big.Int).Set(w.bm) }
func (w *Wide) IsField() bool            { return w.field }
func (w *Wide) Name() string             { return fmt.Sprintf("Z/%s[256bit]", w.bm) }

func (w *Wide) Prime() *big.Int { return w.local.prime() }
func (w *Wide) Exponent() int   { return w.local.e }

func (w *Wide) Valuation(a uint256.Int) int { return w.local.valuation(a.ToBig()) }

func (w *Wide) DivPow(a uint256.Int, k int) uint256.Int {
	return *uint256.MustFromBig(w.local.divPow(a.ToBig(), k))
}
