// SPDX-License-Identifier: MIT

package main

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/katalvlaran/exactla/modrank"
	"github.com/katalvlaran/exactla/ring"
)

// fieldRunner holds one instantiation of a generic task per element
// representation; inPrimeField calls the one matching the modulus size.
type fieldRunner struct {
	word func(ring.Ring[uint64]) error
	wide func(ring.Ring[uint256.Int]) error
	arb  func(ring.Ring[*big.Int]) error
}

func parseModulus(s string) (*big.Int, error) {
	p, ok := new(big.Int).SetString(s, 10)
	if !ok || !ring.IsPrime(p) {
		return nil, usageErrorf("--modulus %q is not a prime", s)
	}

	return p, nil
}

// inPrimeField runs r in Z/p, stored in the narrowest representation that
// holds p.
func inPrimeField(p *big.Int, r fieldRunner) error {
	switch modrank.SelectWidth(p) {
	case modrank.W16, modrank.W32, modrank.W64:
		f, err := ring.NewModular[uint64](p.Uint64())
		if err != nil {
			return err
		}
		return r.word(f)
	case modrank.W256:
		f, err := ring.NewWide(p)
		if err != nil {
			return err
		}
		return r.wide(f)
	default:
		f, err := ring.NewModularBig(p)
		if err != nil {
			return err
		}
		return r.arb(f)
	}
}
