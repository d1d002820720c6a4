// SPDX-License-Identifier: MIT

package elimination

import (
	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/ring"
)

// LocalRanks eliminates s over the local ring Z/pᵉ and returns the rank
// sequence ranks[k] = number of Smith invariants of s with p-valuation at
// most k, for k = 0..e-1. ranks[0] is the rank mod p; ranks[e-1] is the
// number of invariants that are non-zero mod pᵉ.
//
// Implementation:
//   - Stage 1: choose the stored entry of minimal valuation k across all
//     remaining rows (lightest row on ties). It divides every other entry.
//   - Stage 2: clear its column with r ← r - (b/pᵏ)·(a/pᵏ)⁻¹·pivotRow; a/pᵏ
//     is a unit, so the update is exact. Column operations would clear the
//     pivot row without touching other rows, so the row is simply retired.
//   - Stage 3: record k; stop when every remaining row is zero.
//
// Complexity: O(rank·(nnz + fill-in)) ring operations.
func LocalRanks[E any](l ring.Local[E], s *blackbox.Sparse[E]) ([]int, error) {
	e := l.Exponent()
	if l.Prime() == nil || e < 1 {
		return nil, eliminationErrorf(opLocalRanks, ErrNotLocal)
	}
	var (
		rows       = loadRows(s)
		counts     = make([]int, e) // counts[k] = pivots of valuation k
		k, i, best int
		bestPos    int
		bestVal    int
		val        int
		inv, fac   E
		v          E
		ok         bool
		err        error
	)
	for len(rows) > 0 {
		best, bestPos, bestVal = -1, 0, e
		for i = range rows {
			for k = range rows[i].vals {
				val = l.Valuation(rows[i].vals[k])
				if val < bestVal || (val == bestVal && best >= 0 && rows[i].weight() < rows[best].weight()) {
					best, bestPos, bestVal = i, k, val
				}
			}
		}
		if best < 0 {
			break
		}
		piv := rows[best]
		rows[best] = rows[len(rows)-1]
		rows = rows[:len(rows)-1]

		c := piv.cols[bestPos]
		if inv, err = l.Inv(l.DivPow(piv.vals[bestPos], bestVal)); err != nil {
			return nil, eliminationErrorf(opLocalRanks, err)
		}
		for i = range rows {
			if v, ok = rows[i].at(c); !ok {
				continue
			}
			fac = l.Mul(l.DivPow(v, bestVal), inv)
			rows[i].subScaled(l, fac, piv)
		}
		rows = compact(rows)
		counts[bestVal]++
	}

	ranks := make([]int, e)
	acc := 0
	for k = 0; k < e; k++ {
		acc += counts[k]
		ranks[k] = acc
	}

	return ranks, nil
}
