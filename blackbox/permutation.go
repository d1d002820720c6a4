// SPDX-License-Identifier: MIT

package blackbox

import (
	"math/rand"

	"github.com/katalvlaran/exactla/ring"
)

// Permutation is the 0/1 matrix with (P·x)[i] = x[perm[i]].
type Permutation[E any] struct {
	ring ring.Ring[E]
	perm []int
}

// NewPermutation validates perm and copies it.
func NewPermutation[E any](r ring.Ring[E], perm []int) (*Permutation[E], error) {
	seen := make([]bool, len(perm))
	var p int
	for _, p = range perm {
		if p < 0 || p >= len(perm) || seen[p] {
			return nil, blackboxErrorf("NewPermutation", ErrBadPermutation)
		}
		seen[p] = true
	}
	cp := make([]int, len(perm))
	copy(cp, perm)

	return &Permutation[E]{ring: r, perm: cp}, nil
}

// RandomPermutation draws a uniform permutation of order n.
func RandomPermutation[E any](r ring.Ring[E], rng *rand.Rand, n int) *Permutation[E] {
	return &Permutation[E]{ring: r, perm: rng.Perm(n)}
}

func (p *Permutation[E]) Rows() int          { return len(p.perm) }
func (p *Permutation[E]) Cols() int          { return len(p.perm) }
func (p *Permutation[E]) Ring() ring.Ring[E] { return p.ring }

// Swap exchanges rows i and j of the permutation matrix.
func (p *Permutation[E]) Swap(i, j int) error {
	if i < 0 || j < 0 || i >= len(p.perm) || j >= len(p.perm) {
		return blackboxErrorf("Permutation.Swap", ErrOutOfRange)
	}
	p.perm[i], p.perm[j] = p.perm[j], p.perm[i]

	return nil
}

func (p *Permutation[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](p, y, x); err != nil {
		return blackboxErrorf("Permutation.Apply", err)
	}
	var i int
	for i = range p.perm {
		y[i] = x[p.perm[i]]
	}

	return nil
}

func (p *Permutation[E]) ApplyTranspose(y, x []E) error {
	if err := ValidateApplyTranspose[E](p, y, x); err != nil {
		return blackboxErrorf("Permutation.ApplyTranspose", err)
	}
	var i int
	for i = range p.perm {
		y[p.perm[i]] = x[i]
	}

	return nil
}

func (p *Permutation[E]) ForEachNonZero(fn func(i, j int, v E)) {
	var i int
	for i = range p.perm {
		fn(i, p.perm[i], p.ring.One())
	}
}
