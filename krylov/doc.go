// SPDX-License-Identifier: MIT

// Package krylov produces projected Krylov sequences uᵀAⁱv of a black-box
// operator and recovers their minimal generating polynomial with
// Berlekamp–Massey.
//
// The extractor stops either at the 2n-sample bound, where the recovered
// polynomial is exact for the projected sequence, or earlier once the
// recurrence has predicted EarlyTermThreshold further samples correctly.
// Polynomials are coefficient slices from low to high degree, always monic.
//
// Nothing in this package keeps state between calls; randomness comes from
// the caller's *rand.Rand.
package krylov
