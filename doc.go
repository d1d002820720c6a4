// SPDX-License-Identifier: MIT

// Package exactla is exact linear algebra over the integers, the rationals
// and prime fields: black-box Wiedemann solving, modular rank pipelines and
// Smith normal forms by the valence method.
//
// What lives where:
//
//	ring        domains Z, Q, Z/m (16/32/64-bit words, 256-bit, arbitrary)
//	blackbox    linear operators known only through y = A·x and y = Aᵀ·x
//	krylov      projected Krylov sequences and Berlekamp–Massey
//	wiedemann   Solver: solve, rank, determinant, null-space vectors
//	elimination dense, sparse, local (Z/p^e) and fraction-free kernels
//	invariant   picks elimination or Wiedemann per call
//	modrank     ranks modulo p and rank sequences modulo p^e
//	smith       valence, factoring and Smith form assembly
//	matrixio    sparse triplet and dense formats, block decomposition
//	rankcache   pebble-backed memo of modular rank sequences
//	report      observer interface for progress and diagnostics
//
// Quick start:
//
//	f, _ := ring.NewModular[uint64](1_000_000_007)
//	a, _ := blackbox.NewDenseInt64[uint64](f, rows)
//	s, _ := wiedemann.New[uint64](f, wiedemann.DefaultTraits())
//	status, err := s.Solve(ctx, a, x, b, u)
//
// Every randomized algorithm takes its randomness from a seeded *rand.Rand
// and reports algebraic outcomes (singular, inconsistent, failed) as status
// values; errors are reserved for misuse, I/O and cancellation.
//
// The exactla command (cmd/exactla) exposes the same operations on matrix
// files.
package exactla
