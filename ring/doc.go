// SPDX-License-Identifier: MIT

// Package ring provides the exact algebraic domains every other package in
// exactla computes over.
//
// A domain is a value implementing Ring[E]: it owns the arithmetic, while the
// elements E are plain values handed around alongside it (never carrying a
// pointer back to their ring). Every operation returns a fresh element and
// leaves its operands untouched, so slices of elements may be shared freely
// between read-only consumers.
//
// Domains:
//   - Integers:      Z with *big.Int elements (not a field).
//   - Rationals:     Q with *big.Rat elements.
//   - Modular[T]:    Z/m for m fitting a machine word (uint16, uint32, uint64
//     storage) with 128-bit intermediate products from math/bits.
//   - Wide:          Z/m for m up to 2^256-1 on holiman/uint256 values.
//   - ModularBig:    Z/m for any m ≥ 2 on *big.Int.
//
// The modular domains double as local rings Z/p^e when built with the
// ...Power constructors; they then implement Local[E], exposing the
// p-adic valuation and exact division by powers of p that local elimination
// needs.
//
// Randomness is never global: every random draw takes the caller's
// *rand.Rand, so a seeded generator reproduces a whole computation.
package ring
