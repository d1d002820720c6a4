// SPDX-License-Identifier: MIT

package blackbox

import (
	"math/bits"
	"math/rand"

	"github.com/katalvlaran/exactla/ring"
)

// bswitch mixes positions i < j with the 2×2 block [[1, a], [1, a+1]],
// which has determinant 1 for every a.
type bswitch[E any] struct {
	i, j int
	a    E
}

// Butterfly is a random switching network of order n.
//
// Implementation:
//   - Stage 1: let s be the largest power of two ≤ n. A full butterfly of
//     log₂ s levels is laid over positions [0, s).
//   - Stage 2: if n is not a power of two, a second network covers
//     [n-s, n), so every position is reached by some level.
//   - Each switch carries an independent random coefficient; with
//     overwhelming probability over a large field, P·A·Q has generic rank
//     profile for butterflies P and Q.
//
// Complexity: O(n log n) ring operations per application.
type Butterfly[E any] struct {
	ring     ring.Ring[E]
	n        int
	switches []bswitch[E]
}

// NewButterfly draws a random butterfly network of order n.
func NewButterfly[E any](r ring.Ring[E], rng *rand.Rand, n int) *Butterfly[E] {
	b := &Butterfly[E]{ring: r, n: n}
	if n < 2 {
		return b
	}
	k := bits.Len(uint(n)) - 1
	s := 1 << k
	offsets := []int{0}
	if s != n {
		offsets = append(offsets, n-s)
	}
	var off, l, base, t int
	for _, off = range offsets {
		for l = 0; l < k; l++ {
			h := 1 << l
			for base = 0; base < s; base += 2 * h {
				for t = 0; t < h; t++ {
					b.switches = append(b.switches, bswitch[E]{
						i: off + base + t,
						j: off + base + t + h,
						a: r.Random(rng),
					})
				}
			}
		}
	}

	return b
}

func (b *Butterfly[E]) Rows() int          { return b.n }
func (b *Butterfly[E]) Cols() int          { return b.n }
func (b *Butterfly[E]) Ring() ring.Ring[E] { return b.ring }

// Apply runs the switches in order: x' = x + a·y, y' = x' + y.
func (b *Butterfly[E]) Apply(y, x []E) error {
	if err := ValidateApply[E](b, y, x); err != nil {
		return blackboxErrorf("Butterfly.Apply", err)
	}
	copy(y, x)
	var sw bswitch[E]
	for _, sw = range b.switches {
		xi := b.ring.Add(y[sw.i], b.ring.Mul(sw.a, y[sw.j]))
		y[sw.j] = b.ring.Add(xi, y[sw.j])
		y[sw.i] = xi
	}

	return nil
}

// ApplyTranspose runs the transposed switches in reverse order:
// x' = x + y, y' = a·x' + y.
func (b *Butterfly[E]) ApplyTranspose(y, x []E) error {
	if err := ValidateApplyTranspose[E](b, y, x); err != nil {
		return blackboxErrorf("Butterfly.ApplyTranspose", err)
	}
	copy(y, x)
	var k int
	for k = len(b.switches) - 1; k >= 0; k-- {
		sw := b.switches[k]
		xi := b.ring.Add(y[sw.i], y[sw.j])
		y[sw.j] = b.ring.Add(b.ring.Mul(sw.a, xi), y[sw.j])
		y[sw.i] = xi
	}

	return nil
}
