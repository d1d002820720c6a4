// SPDX-License-Identifier: MIT

// Package wiedemann solves exact linear systems A·x = b using only
// matrix-vector products.
//
// A Solver runs a small state machine over the singularity of A:
//
//	Unknown     --SolveNonsingular--> ok | singular (reclassify, reset trials)
//	NonSingular --SolveNonsingular--> ok | singular (terminal)
//	Singular    --rank, precondition, leading-minor solve--> ok | inconsistent
//
// Every attempt draws fresh randomness (projections, preconditioners,
// perturbations) from the solver's generator, so independent trials fail
// independently and the overall failure probability shrinks geometrically
// with TrialsBeforeFailure.
//
// Algebraic outcomes are reported as a Status, never as an error:
//   - StatusOK:                x solves the system (verified when CheckResult).
//   - StatusFailed:            this attempt was unlucky; the only retried status.
//   - StatusSingular:          A was found singular on a path that forbids it.
//   - StatusInconsistent:      b ∉ col(A), certified by u with uᵀA = 0, u·b ≠ 0.
//   - StatusBadPreconditioner: the preconditioned operator lacked a generic
//     rank profile; Solve counts it as a failed trial.
//
// Errors are reserved for misuse (shapes, non-field domains), unimplemented
// configurations (ErrToeplitzNotImplemented) and context cancellation.
package wiedemann
