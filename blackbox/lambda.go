// SPDX-License-Identifier: MIT

package blackbox

import (
	"math"
	"math/big"
	"math/rand"

	"github.com/katalvlaran/exactla/ring"
)

// LambdaDensity is the λ of the sparse preconditioner: row i of an m×m
// matrix receives about λ·log₂(m)·m/(m-i+1) entries.
const LambdaDensity = 3.0

// NewLambdaSparse draws the m×m random sparse preconditioner.
//
// Row i (0-based) keeps each column independently with probability
// min(1 - 1/|F|, λ·log₂(m)/(m-i+1)), and kept entries are random non-zero
// elements. Later rows are denser, so the matrix is non-singular with high
// probability while staying O(m log m) in size. Infinite rings use 1 as the
// density cap.
func NewLambdaSparse[E any](r ring.Ring[E], rng *rand.Rand, m int) *Sparse[E] {
	s, _ := NewSparse(r, max(m, 0), max(m, 0))
	if m <= 0 {
		return s
	}
	initP := 1.0
	if card := r.Cardinality(); card.Sign() > 0 {
		f, _ := new(big.Float).SetInt(card).Float64()
		initP = 1 - 1/f
	}
	logM := LambdaDensity * math.Log2(float64(m))
	var i, j int
	for i = 0; i < m; i++ {
		p := initP
		if m > 1 {
			p = math.Min(initP, logM/float64(m-i+1))
		}
		row := make([]cell[E], 0, int(p*float64(m))+1)
		for j = 0; j < m; j++ {
			if rng.Float64() < p {
				row = append(row, cell[E]{col: j, val: r.NonZeroRandom(rng)})
			}
		}
		s.rows[i] = row
	}

	return s
}
