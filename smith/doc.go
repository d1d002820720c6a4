// SPDX-License-Identifier: MIT

// Package smith computes the Smith normal form of an integer matrix by the
// valence method.
//
// The valence v (trailing non-zero coefficient of the minimal polynomial of
// A·Aᵀ or Aᵀ·A) is divisible by every prime that divides a non-zero Smith
// invariant. Compute factors v, takes the rank modulo each prime factor and
// modulo a prime coprime to v (the integer rank), and then, for each prime
// whose rank falls short, climbs prime powers p^e until the rank sequence
// reaches the integer rank. Rank sequence positions below the integer rank
// mark the diagonal entries receiving one more factor of p.
//
// Work runs in three stages: a bounded pool computing ranks modulo the
// primes, a barrier, a bounded pool computing power rank sequences (each
// task writing only its own slot), and a sequential assembly.
package smith
