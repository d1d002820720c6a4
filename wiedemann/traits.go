// SPDX-License-Identifier: MIT

package wiedemann

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/exactla/krylov"
)

// Singularity is what the caller knows about A.
type Singularity int

const (
	Unknown Singularity = iota
	Singular
	NonSingular
)

func (s Singularity) String() string {
	switch s {
	case Singular:
		return "singular"
	case NonSingular:
		return "nonsingular"
	default:
		return "unknown"
	}
}

// Preconditioner selects the random transforms P, Q of P·A·Q.
type Preconditioner int

const (
	PrecondNone Preconditioner = iota
	PrecondButterfly
	PrecondSparse
	PrecondToeplitz
)

func (p Preconditioner) String() string {
	switch p {
	case PrecondButterfly:
		return "butterfly"
	case PrecondSparse:
		return "sparse"
	case PrecondToeplitz:
		return "toeplitz"
	default:
		return "none"
	}
}

// ParsePreconditioner maps a name (case-insensitive) to a Preconditioner.
func ParsePreconditioner(s string) (Preconditioner, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none", "":
		return PrecondNone, nil
	case "butterfly":
		return PrecondButterfly, nil
	case "sparse":
		return PrecondSparse, nil
	case "toeplitz":
		return PrecondToeplitz, nil
	default:
		return PrecondNone, fmt.Errorf("%w: unknown preconditioner %q", ErrBadTraits, s)
	}
}

// Status is the outcome of a solver method.
type Status int

const (
	StatusOK Status = iota
	StatusFailed
	StatusSingular
	StatusInconsistent
	StatusBadPreconditioner
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusFailed:
		return "failed"
	case StatusSingular:
		return "singular"
	case StatusInconsistent:
		return "inconsistent"
	case StatusBadPreconditioner:
		return "bad_preconditioner"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// RankUnknown marks a Traits.Rank the solver must compute itself.
const RankUnknown = 0

// Defaults (single source of truth for DefaultTraits).
const (
	DefaultTrialsBeforeFailure  = 100
	DefaultPreconditioner       = PrecondButterfly
	DefaultCheckResult          = true
	DefaultCertifyInconsistency = true
	DefaultEarlyTermThreshold   = krylov.DefaultEarlyTermThreshold

	// DefaultRankEstimates is the number of independent estimates whose
	// maximum is taken when the rank cannot be trace-checked.
	DefaultRankEstimates = 2
)

// Traits configures one Solve call. The solver copies it; its own working
// copy of the trial count, singularity and rank evolves across trials.
type Traits struct {
	Singularity          Singularity
	Preconditioner       Preconditioner
	TrialsBeforeFailure  int
	Rank                 int // RankUnknown lets the solver compute it
	CheckResult          bool
	CertifyInconsistency bool
	EarlyTermThreshold   int
}

// DefaultTraits returns the recommended configuration.
func DefaultTraits() Traits {
	return Traits{
		Singularity:          Unknown,
		Preconditioner:       DefaultPreconditioner,
		TrialsBeforeFailure:  DefaultTrialsBeforeFailure,
		Rank:                 RankUnknown,
		CheckResult:          DefaultCheckResult,
		CertifyInconsistency: DefaultCertifyInconsistency,
		EarlyTermThreshold:   DefaultEarlyTermThreshold,
	}
}

// Validate reports ErrBadTraits for out-of-range fields.
func (t Traits) Validate() error {
	switch {
	case t.TrialsBeforeFailure < 1:
		return fmt.Errorf("%w: TrialsBeforeFailure=%d", ErrBadTraits, t.TrialsBeforeFailure)
	case t.Rank < 0:
		return fmt.Errorf("%w: Rank=%d", ErrBadTraits, t.Rank)
	case t.EarlyTermThreshold < 0:
		return fmt.Errorf("%w: EarlyTermThreshold=%d", ErrBadTraits, t.EarlyTermThreshold)
	case t.Preconditioner < PrecondNone || t.Preconditioner > PrecondToeplitz:
		return fmt.Errorf("%w: Preconditioner=%d", ErrBadTraits, t.Preconditioner)
	}

	return nil
}
