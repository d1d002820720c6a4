// SPDX-License-Identifier: MIT

// Package blackbox models matrices as linear operators known only through
// their products with vectors.
//
// An Operator exposes y = A·x (Apply) and y = Aᵀ·x (ApplyTranspose) together
// with its shape and the ring it computes over. Literal storage (Dense,
// Sparse, Diagonal, Scalar, Permutation) and structural combinators
// (Transpose, Compose, Sum, Submatrix) are all Operators, so a preconditioned
// system such as P·A·Q is built by plain composition:
//
//	aq, _ := blackbox.NewCompose(a, q)
//	paq, _ := blackbox.NewCompose(p, aq)
//
// Combinators hold non-owning references: the caller keeps operands alive and
// unmodified while a composite built from them is in use.
//
// Contract for every Apply/ApplyTranspose:
//   - len(x) and len(y) must match the operator's shape, otherwise
//     ErrDimensionMismatch is returned and y is left untouched.
//   - y and x must not alias.
//   - Every entry of y is overwritten.
//
// Operators whose entries can be listed cheaply also implement Entrywise;
// AsEntrywise recovers that capability through Transpose wrappers.
package blackbox
