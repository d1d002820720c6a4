// SPDX-License-Identifier: MIT

package ring

import (
	"math/rand"
	"strings"
)

// Vector helpers. All of them take the ring explicitly; elements never know
// their domain.

// NewVector returns n zeros of r.
func NewVector[E any](r Ring[E], n int) []E {
	v := make([]E, n)
	var i int
	for i = range v {
		v[i] = r.Zero()
	}

	return v
}

// RandomVector returns n independent random elements.
func RandomVector[E any](r Ring[E], rng *rand.Rand, n int) []E {
	v := make([]E, n)
	var i int
	for i = range v {
		v[i] = r.Random(rng)
	}

	return v
}

// NonZeroRandomVector returns n random non-zero elements.
func NonZeroRandomVector[E any](r Ring[E], rng *rand.Rand, n int) []E {
	v := make([]E, n)
	var i int
	for i = range v {
		v[i] = r.NonZeroRandom(rng)
	}

	return v
}

// Dot returns Σ a[i]·b[i] over the common prefix of a and b.
func Dot[E any](r Ring[E], a, b []E) E {
	acc := r.Zero()
	n := min(len(a), len(b))
	var i int
	for i = 0; i < n; i++ {
		if r.IsZero(a[i]) || r.IsZero(b[i]) {
			continue
		}
		acc = r.Add(acc, r.Mul(a[i], b[i]))
	}

	return acc
}

// Axpy sets y[i] = y[i] + a·x[i].
func Axpy[E any](r Ring[E], y []E, a E, x []E) {
	var i int
	for i = range y {
		y[i] = r.Add(y[i], r.Mul(a, x[i]))
	}
}

// AddTo sets y[i] = y[i] + x[i].
func AddTo[E any](r Ring[E], y, x []E) {
	var i int
	for i = range y {
		y[i] = r.Add(y[i], x[i])
	}
}

// SubFrom sets y[i] = y[i] - x[i].
func SubFrom[E any](r Ring[E], y, x []E) {
	var i int
	for i = range y {
		y[i] = r.Sub(y[i], x[i])
	}
}

// Scale sets y[i] = a·y[i].
func Scale[E any](r Ring[E], y []E, a E) {
	var i int
	for i = range y {
		y[i] = r.Mul(a, y[i])
	}
}

// VectorEqual reports element-wise equality; lengths must match.
func VectorEqual[E any](r Ring[E], a, b []E) bool {
	if len(a) != len(b) {
		return false
	}
	var i int
	for i = range a {
		if !r.Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

// VectorIsZero reports whether every entry is zero.
func VectorIsZero[E any](r Ring[E], v []E) bool {
	var i int
	for i = range v {
		if !r.IsZero(v[i]) {
			return false
		}
	}

	return true
}

// VectorString renders v as "[a, b, c]".
func VectorString[E any](r Ring[E], v []E) string {
	var sb strings.Builder
	sb.WriteByte('[')
	var i int
	for i = range v {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(r.String(v[i]))
	}
	sb.WriteByte(']')

	return sb.String()
}
