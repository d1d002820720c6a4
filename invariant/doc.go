// SPDX-License-Identifier: MIT

// Package invariant computes rank, determinant, nullspace and solutions of
// operators over exact domains, choosing between elimination and black-box
// (Wiedemann) kernels.
//
// The strategy is resolved exactly once per call by Resolve, from the
// requested Method, the operator's shape and representation, and the size
// of its field; the chosen Kernel is reported to the observer. There are no
// per-type overload tables: every entry point is one generic function.
package invariant
