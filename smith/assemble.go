// SPDX-License-Identifier: MIT

package smith

import (
	"context"
	"math/big"

	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/modrank"
)

// DefaultMaxExponent caps the prime power climbed by AllPowersRanks.
const DefaultMaxExponent = 1 << 12

// AllPowersRanks returns the rank sequence of A modulo growing powers of p
// until it reaches coprimeRank, the integer rank. ranks[k] counts the Smith
// invariants whose p-valuation is at most k. It returns nil when
// sqfRank == coprimeRank (p divides no invariant).
//
// Implementation:
//   - Stage 1: start at max(exponentBound, 2) in fixed width.
//   - Stage 2: once the width clamps the exponent, continue with
//     arbitrary precision from twice the clamped exponent.
//   - Stage 3: double until the last rank equals coprimeRank, failing with
//     ErrExponentBound past maxExponent.
//
// Complexity: O(log(e*)) local eliminations, where e* is the largest
// p-valuation among the invariants; each costs O(r·(nnz + fill-in))
// operations modulo p^e on integers of e·log p bits.
func AllPowersRanks(ctx context.Context, pl *modrank.Pipeline, p *big.Int, sqfRank, exponentBound, coprimeRank, maxExponent int) ([]int, error) {
	if sqfRank == coprimeRank {
		return nil, nil
	}
	if maxExponent < 2 {
		maxExponent = DefaultMaxExponent
	}
	e := max(exponentBound, 2)
	arbitrary := false
	for {
		var (
			res modrank.PowerResult
			err error
		)
		if !arbitrary {
			res, err = pl.PowerRanks(ctx, p, e)
			if err == nil && (res.Clamped || !res.Done()) {
				arbitrary = true
				if !res.Done() {
					res, err = pl.PowerRanksArbitrary(ctx, p, e)
				}
			}
		} else {
			res, err = pl.PowerRanksArbitrary(ctx, p, e)
		}
		if err != nil {
			return nil, smithErrorf("AllPowersRanks", err)
		}
		if res.Ranks[len(res.Ranks)-1] >= coprimeRank {
			return res.Ranks, nil
		}
		if res.Exponent >= maxExponent {
			return nil, smithErrorf("AllPowersRanks", ErrExponentBound)
		}
		e = min(res.Exponent*2, maxExponent)
	}
}

// PopulateSmithForm multiplies p into diag according to ranks: positions
// [sqfRank, coprimeRank) get one factor, and each further ranks[k] below
// coprimeRank adds one more to [ranks[k], coprimeRank). diag is extended
// with ones to length coprimeRank and returned.
func PopulateSmithForm(diag []*big.Int, ranks []int, p *big.Int, sqfRank, coprimeRank int) []*big.Int {
	for len(diag) < coprimeRank {
		diag = append(diag, big.NewInt(1))
	}
	mulFrom := func(start int) {
		for i := start; i < coprimeRank; i++ {
			diag[i].Mul(diag[i], p)
		}
	}
	mulFrom(sqfRank)
	for k := 1; k < len(ranks); k++ {
		if ranks[k] >= coprimeRank {
			break
		}
		mulFrom(ranks[k])
	}

	return diag
}

// Compressed run-length encodes a Smith diagonal of an m×n matrix. The
// min(m, n) − len(diag) trailing zeros form the final pair; runs of length
// zero are omitted.
func Compressed(diag []*big.Int, m, n int) []matrixio.SmithPair {
	var out []matrixio.SmithPair
	for _, d := range diag {
		if k := len(out); k > 0 && out[k-1].Value.Cmp(d) == 0 {
			out[k-1].Count++
			continue
		}
		out = append(out, matrixio.SmithPair{Value: new(big.Int).Set(d), Count: 1})
	}
	if z := min(m, n) - len(diag); z > 0 {
		out = append(out, matrixio.SmithPair{Value: new(big.Int), Count: z})
	}

	return out
}
