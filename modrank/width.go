// SPDX-License-Identifier: MIT

package modrank

import (
	"math"
	"math/big"
)

// Width is the storage tier used for residues.
type Width int

const (
	W16 Width = iota
	W32
	W64
	W256
	Arbitrary
)

func (w Width) String() string {
	switch w {
	case W16:
		return "16"
	case W32:
		return "32"
	case W64:
		return "64"
	case W256:
		return "256"
	default:
		return "arbitrary"
	}
}

var (
	max16  = big.NewInt(math.MaxUint16)
	max32  = big.NewInt(math.MaxUint32)
	max64  = new(big.Int).SetUint64(math.MaxUint64)
	max256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
)

// SelectWidth returns the narrowest tier whose words hold every residue
// modulo q. Products never overflow: word tiers multiply through 128-bit
// intermediates and the 256-bit tier through 512-bit ones.
func SelectWidth(q *big.Int) Width {
	switch {
	case q.Cmp(max16) <= 0:
		return W16
	case q.Cmp(max32) <= 0:
		return W32
	case q.Cmp(max64) <= 0:
		return W64
	case q.Cmp(max256) <= 0:
		return W256
	default:
		return Arbitrary
	}
}

// ClampExponent returns the largest e' ≤ e with p^e' in a fixed-width tier.
// It returns e itself when p^e already fits, and 0 when even p does not.
func ClampExponent(p *big.Int, e int) int {
	q := new(big.Int).Set(p)
	var k int
	for k = 1; k <= e; k++ {
		if q.Cmp(max256) > 0 {
			return k - 1
		}
		q.Mul(q, p)
	}

	return e
}
