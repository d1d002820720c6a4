// SPDX-License-Identifier: MIT

package ring

import (
	"fmt"
	"math/big"
	"strings"
)

// power records the prime structure of a local ring Z/p^e. The zero value
// describes a ring without one.
type power struct {
	p *big.Int
	e int
}

func (l power) prime() *big.Int {
	if l.p == nil {
		return nil
	}

	return new(big.Int).Set(l.p)
}

// valuation of a canonical residue a in [0, p^e).
func (l power) valuation(a *big.Int) int {
	if a.Sign() == 0 || l.p == nil {
		return l.e
	}
	var (
		k    int
		q    = new(big.Int).Set(a)
		rem  = new(big.Int)
		next = new(big.Int)
	)
	for k < l.e {
		next.QuoRem(q, l.p, rem)
		if rem.Sign() != 0 {
			break
		}
		q.Set(next)
		k++
	}

	return k
}

// divPow divides the representative a by p^k exactly.
func (l power) divPow(a *big.Int, k int) *big.Int {
	if k == 0 || l.p == nil {
		return new(big.Int).Set(a)
	}
	d := new(big.Int).Exp(l.p, big.NewInt(int64(k)), nil)

	return new(big.Int).Quo(a, d)
}

// primePower validates p and e and returns p^e.
func primePower(p *big.Int, e int) (*big.Int, error) {
	if e < 1 {
		return nil, fmt.Errorf("%w: exponent %d < 1", ErrModulus, e)
	}
	if p.Cmp(big.NewInt(2)) < 0 || !p.ProbablyPrime(20) {
		return nil, fmt.Errorf("%w: %s", ErrNotPrime, p)
	}

	return new(big.Int).Exp(p, big.NewInt(int64(e)), nil), nil
}

// Pow returns p^e as a fresh integer.
func Pow(p *big.Int, e int) *big.Int {
	return new(big.Int).Exp(p, big.NewInt(int64(e)), nil)
}

// parseResidue splits "a" or "a/b" into integers; den is nil without a slash.
func parseResidue(s string) (num, den *big.Int, err error) {
	s = strings.TrimSpace(s)
	numStr, denStr, frac := strings.Cut(s, "/")
	num, ok := new(big.Int).SetString(strings.TrimSpace(numStr), 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrParse, s)
	}
	if !frac {
		return num, nil, nil
	}
	den, ok = new(big.Int).SetString(strings.TrimSpace(denStr), 10)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %q", ErrParse, s)
	}

	return num, den, nil
}
