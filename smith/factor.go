// SPDX-License-Identifier: MIT

package smith

import (
	"math/big"
	"slices"
)

// DefaultFactorLoops bounds the Pollard–Brent iterations spent per split.
const DefaultFactorLoops = 50000

// trialBound limits trial division before switching to rho.
const trialBound = 1000

// primalityRounds is the Miller–Rabin round count passed to ProbablyPrime.
const primalityRounds = 20

// Factorization is n = Cofactor · Π Primes[i]^Exponents[i], primes ascending.
// Cofactor is 1 when the factorization is complete.
type Factorization struct {
	Primes    []*big.Int
	Exponents []int
	Cofactor  *big.Int
}

// Complete reports whether no unfactored part remains.
func (f Factorization) Complete() bool { return f.Cofactor.Cmp(one) == 0 }

var one = big.NewInt(1)

// Factor splits n > 0 into primes by trial division up to a small bound and
// Pollard–Brent rho beyond it. A composite part that resists loops rho
// iterations is left in Cofactor.
//
// Complexity: O(√q) expected rho iterations for the smallest prime factor q
// above the trial bound, each a few multiplications modulo n.
func Factor(n *big.Int, loops int) (Factorization, error) {
	if n == nil || n.Sign() <= 0 {
		return Factorization{}, smithErrorf("Factor", ErrBadValence)
	}
	if loops < 1 {
		loops = DefaultFactorLoops
	}
	counts := make(map[string]int)
	primes := make(map[string]*big.Int)
	add := func(p *big.Int) {
		k := p.String()
		if _, ok := primes[k]; !ok {
			primes[k] = new(big.Int).Set(p)
		}
		counts[k]++
	}

	m := new(big.Int).Set(n)
	q, r := new(big.Int), new(big.Int)
	for p := int64(2); p < trialBound; p++ {
		if !smallPrime(p) {
			continue
		}
		bp := big.NewInt(p)
		for {
			q.QuoRem(m, bp, r)
			if r.Sign() != 0 {
				break
			}
			m.Set(q)
			add(bp)
		}
	}

	cofactor := big.NewInt(1)
	var split func(x *big.Int)
	split = func(x *big.Int) {
		if x.Cmp(one) == 0 {
			return
		}
		if x.ProbablyPrime(primalityRounds) {
			add(x)
			return
		}
		d := brent(x, loops)
		if d == nil {
			cofactor.Mul(cofactor, x)
			return
		}
		split(d)
		split(new(big.Int).Quo(x, d))
	}
	split(m)

	out := Factorization{Cofactor: cofactor}
	for _, p := range primes {
		out.Primes = append(out.Primes, p)
	}
	slices.SortFunc(out.Primes, func(a, b *big.Int) int { return a.Cmp(b) })
	out.Exponents = make([]int, len(out.Primes))
	for i, p := range out.Primes {
		out.Exponents[i] = counts[p.String()]
	}

	return out, nil
}

func smallPrime(p int64) bool {
	if p < 2 {
		return false
	}
	for d := int64(2); d*d <= p; d++ {
		if p%d == 0 {
			return false
		}
	}

	return true
}

// brent returns a non-trivial factor of the odd composite n, or nil once
// loops iterations pass without one. It walks x ↦ x² + c (mod n) with
// Brent's cycle detection, batching gcds over products of differences.
func brent(n *big.Int, loops int) *big.Int {
	const batch = 128
	var (
		x, y, ys = new(big.Int), new(big.Int), new(big.Int)
		q, d, t  = new(big.Int), new(big.Int), new(big.Int)
		step     = func(v, c *big.Int) { v.Mul(v, v).Add(v, c).Mod(v, n) }
	)
	spent := 0
	for c := int64(1); spent < loops; c++ {
		bc := big.NewInt(c)
		y.SetInt64(2)
		q.SetInt64(1)
		d.SetInt64(1)
		for r := 1; d.Cmp(one) == 0 && spent < loops; r <<= 1 {
			x.Set(y)
			for i := 0; i < r; i++ {
				step(y, bc)
			}
			for k := 0; k < r && d.Cmp(one) == 0; k += batch {
				ys.Set(y)
				for i := 0; i < batch && i < r-k; i++ {
					step(y, bc)
					q.Mul(q, t.Sub(x, y).Abs(t)).Mod(q, n)
					spent++
				}
				d.GCD(nil, nil, q, n)
			}
		}
		if d.Cmp(n) == 0 {
			// batch overshot; replay one step at a time
			for {
				step(ys, bc)
				d.GCD(nil, nil, t.Sub(x, ys).Abs(t), n)
				if d.Cmp(one) != 0 {
					break
				}
			}
		}
		if d.Cmp(one) != 0 && d.Cmp(n) != 0 {
			return new(big.Int).Set(d)
		}
	}

	return nil
}

// CoprimePrime returns the smallest prime that does not divide v.
func CoprimePrime(v *big.Int) (*big.Int, error) {
	if v == nil || v.Sign() == 0 {
		return nil, smithErrorf("CoprimePrime", ErrBadValence)
	}
	p := big.NewInt(2)
	r := new(big.Int)
	for r.Mod(v, p).Sign() == 0 {
		p = nextPrime(p)
	}

	return p, nil
}

func nextPrime(p *big.Int) *big.Int {
	q := new(big.Int).Add(p, one)
	for !q.ProbablyPrime(primalityRounds) {
		q.Add(q, one)
	}

	return q
}
