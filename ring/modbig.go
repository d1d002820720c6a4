// SPDX-License-Identifier: MIT

package ring

import (
	"fmt"
	"math/big"
	"math/rand"
)

// ModularBig is Z/m for an arbitrary modulus m ≥ 2 on *big.Int residues.
type ModularBig struct {
	m     *big.Int
	field bool
	local power
}

// NewModularBig returns Z/m.
func NewModularBig(m *big.Int) (*ModularBig, error) {
	if m.Cmp(big.NewInt(2)) < 0 {
		return nil, ringErrorf("NewModularBig", fmt.Errorf("%w: %s < 2", ErrModulus, m))
	}
	r := &ModularBig{m: new(big.Int).Set(m), field: m.ProbablyPrime(20)}
	if r.field {
		r.local = power{p: new(big.Int).Set(m), e: 1}
	}

	return r, nil
}

// NewModularBigPower returns the local ring Z/p^e.
func NewModularBigPower(p *big.Int, e int) (*ModularBig, error) {
	q, err := primePower(p, e)
	if err != nil {
		return nil, ringErrorf("NewModularBigPower", err)
	}

	return &ModularBig{m: q, field: e == 1, local: power{p: new(big.Int).Set(p), e: e}}, nil
}

// Modulus returns a copy of m.
func (r *ModularBig) Modulus() *big.Int { return new(big.Int).Set(r.m) }

func (r *ModularBig) reduce(v *big.Int) *big.Int { return v.Mod(v, r.m) }

func (r *ModularBig) Zero() *big.Int { return new(big.Int) }
func (r *ModularBig) One() *big.Int  { return big.NewInt(1) }

func (r *ModularBig) Add(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Add(a, b)) }
func (r *ModularBig) Sub(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Sub(a, b)) }
func (r *ModularBig) Mul(a, b *big.Int) *big.Int { return r.reduce(new(big.Int).Mul(a, b)) }
func (r *ModularBig) Neg(a *big.Int) *big.Int    { return r.reduce(new(big.Int).Neg(a)) }

func (r *ModularBig) Inv(a *big.Int) (*big.Int, error) {
	inv := new(big.Int).ModInverse(a, r.m)
	if inv == nil {
		return nil, ringErrorf("ModularBig.Inv", ErrNotInvertible)
	}

	return inv, nil
}

func (r *ModularBig) Div(a, b *big.Int) (*big.Int, error) {
	inv, err := r.Inv(b)
	if err != nil {
		return nil, err
	}

	return r.Mul(a, inv), nil
}

func (r *ModularBig) IsZero(a *big.Int) bool   { return a.Sign() == 0 }
func (r *ModularBig) IsOne(a *big.Int) bool    { return a.IsInt64() && a.Int64() == 1 }
func (r *ModularBig) Equal(a, b *big.Int) bool { return a.Cmp(b) == 0 }

func (r *ModularBig) IsUnit(a *big.Int) bool {
	if r.field {
		return a.Sign() != 0
	}
	g := new(big.Int).GCD(nil, nil, a, r.m)

	return g.IsInt64() && g.Int64() == 1
}

func (r *ModularBig) Random(rng *rand.Rand) *big.Int { return new(big.Int).Rand(rng, r.m) }

func (r *ModularBig) NonZeroRandom(rng *rand.Rand) *big.Int {
	for {
		if v := r.Random(rng); v.Sign() != 0 {
			return v
		}
	}
}

func (r *ModularBig) FromInt64(v int64) *big.Int  { return r.reduce(big.NewInt(v)) }
func (r *ModularBig) FromBig(v *big.Int) *big.Int { return r.reduce(new(big.Int).Set(v)) }
func (r *ModularBig) ToBig(a *big.Int) *big.Int   { return new(big.Int).Set(a) }

func (r *ModularBig) Parse(s string) (*big.Int, error) {
	num, den, err := parseResidue(s)
	if err != nil {
		return nil, ringErrorf("ModularBig.Parse", err)
	}
	if den == nil {
		return r.FromBig(num), nil
	}
	v, err := r.Div(r.FromBig(num), r.FromBig(den))
	if err != nil {
		return nil, ringErrorf("ModularBig.Parse", err)
	}

	return v, nil
}

func (r *ModularBig) String(a *big.Int) string { return a.String() }

func (r *ModularBig) Characteristic() *big.Int { return new(big.Int).Set(r.m) }
func (r *ModularBig) Cardinality() *big.Int    { return new(big.Int).Set(r.m) }
func (r *ModularBig) IsField() bool            { return r.field }
func (r *ModularBig) Name() string             { return fmt.Sprintf("Z/%s", r.m) }

func (r *ModularBig) Prime() *big.Int { return r.local.prime() }
func (r *ModularBig) Exponent() int   { return r.local.e }

func (r *ModularBig) Valuation(a *big.Int) int       { return r.local.valuation(a) }
func (r *ModularBig) DivPow(a *big.Int, k int) *big.Int { return r.local.divPow(a, k) }
