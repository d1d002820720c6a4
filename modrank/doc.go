// SPDX-License-Identifier: MIT

// Package modrank computes ranks of integer matrices modulo primes and prime
// powers.
//
// A Pipeline picks the narrowest storage width that holds the modulus
// without overflow (16, 32 or 64-bit words, 256-bit fixed size, or
// arbitrary precision) and runs sparse elimination in that domain. For
// prime powers too large for fixed-width storage the exponent is clamped
// and the clamp is reported in the result; callers that need more
// precision continue with PowerRanksArbitrary.
//
// Every call loads its own copy of the matrix through a Source and keeps
// all working state local, so a Pipeline is safe for concurrent use and
// RanksAt fans out across primes.
package modrank
