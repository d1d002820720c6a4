// SPDX-License-Identifier: MIT

package krylov

import (
	"fmt"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/ring"
)

// Generator yields successive scalars of a sequence.
type Generator[E any] interface {
	Next() (E, error)
}

// Sequence yields s_i = uᵀ·Aⁱ·v for i = 0, 1, 2, ...
type Sequence[E any] struct {
	a       blackbox.Operator[E]
	u, w    []E
	next    []E
	started bool
	applies int
}

// NewSequence starts the sequence for a square operator a. u and v are
// copied.
func NewSequence[E any](a blackbox.Operator[E], u, v []E) (*Sequence[E], error) {
	if err := blackbox.ValidateSquare(a); err != nil {
		return nil, krylovErrorf("NewSequence", err)
	}
	if len(u) != a.Rows() || len(v) != a.Cols() {
		return nil, krylovErrorf("NewSequence", fmt.Errorf("%w: projections of length %d, %d for order %d",
			blackbox.ErrDimensionMismatch, len(u), len(v), a.Rows()))
	}

	return &Sequence[E]{
		a:    a,
		u:    append([]E(nil), u...),
		w:    append([]E(nil), v...),
		next: make([]E, a.Rows()),
	}, nil
}

// Next returns uᵀ·Aⁱ·v and advances i. The first call costs no application.
func (s *Sequence[E]) Next() (E, error) {
	if s.started {
		if err := s.a.Apply(s.next, s.w); err != nil {
			var zero E
			return zero, krylovErrorf("Sequence.Next", err)
		}
		s.w, s.next = s.next, s.w
		s.applies++
	}
	s.started = true

	return ring.Dot(s.a.Ring(), s.u, s.w), nil
}

// Applies reports how many operator applications were spent.
func (s *Sequence[E]) Applies() int { return s.applies }

// SymmetricSequence yields s_i = uᵀ·Aⁱ·u for a symmetric operator with one
// application per two samples:
//
//	s_2k   = w_kᵀ·w_k
//	s_2k+1 = w_kᵀ·(A·w_k),  w_k = Aᵏ·u
//
// The caller guarantees Aᵀ = A; nothing here checks it.
type SymmetricSequence[E any] struct {
	a       blackbox.Operator[E]
	w, aw   []E
	odd     bool
	applies int
}

// NewSymmetricSequence starts the sequence for the symmetric operator a.
func NewSymmetricSequence[E any](a blackbox.Operator[E], u []E) (*SymmetricSequence[E], error) {
	if err := blackbox.ValidateSquare(a); err != nil {
		return nil, krylovErrorf("NewSymmetricSequence", err)
	}
	if len(u) != a.Rows() {
		return nil, krylovErrorf("NewSymmetricSequence", blackbox.ErrDimensionMismatch)
	}

	return &SymmetricSequence[E]{
		a:  a,
		w:  append([]E(nil), u...),
		aw: make([]E, a.Rows()),
	}, nil
}

func (s *SymmetricSequence[E]) Next() (E, error) {
	r := s.a.Ring()
	if !s.odd {
		s.odd = true
		return ring.Dot(r, s.w, s.w), nil
	}
	if err := s.a.Apply(s.aw, s.w); err != nil {
		var zero E
		return zero, krylovErrorf("SymmetricSequence.Next", err)
	}
	s.applies++
	val := ring.Dot(r, s.w, s.aw)
	s.w, s.aw = s.aw, s.w
	s.odd = false

	return val, nil
}

// Applies reports how many operator applications were spent.
func (s *SymmetricSequence[E]) Applies() int { return s.applies }
