// SPDX-License-Identifier: MIT

// Package elimination holds the exact Gaussian elimination kernels that back
// the invariant dispatchers and serve as reference results for the
// black-box algorithms.
//
// Three families live here:
//
//   - Field kernels on *blackbox.Dense and *blackbox.Sparse: echelon forms,
//     rank, determinant, nullspace basis and solving, in O(n³) ring
//     operations (sparse rank picks minimum-weight pivot rows).
//   - Fraction-free integer kernels (Bareiss) whose intermediate values are
//     minors of the input, so every division is exact.
//   - Local elimination over Z/pᵉ choosing pivots of minimal p-adic
//     valuation. Its rank-per-valuation sequence is exactly what the Smith
//     form assembler consumes.
//
// All kernels copy their input; callers' operators are never modified.
package elimination
