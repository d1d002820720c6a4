// SPDX-License-Identifier: MIT

package invariant

import (
	"fmt"
	"math/big"
	"strings"
)

// Method is the caller's strategy request.
type Method int

const (
	Auto Method = iota
	Elimination
	Wiedemann
	BlasElimination
)

func (m Method) String() string {
	switch m {
	case Elimination:
		return "elimination"
	case Wiedemann:
		return "wiedemann"
	case BlasElimination:
		return "blas"
	default:
		return "auto"
	}
}

// ParseMethod maps auto|elimination|wiedemann|blas to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return Auto, nil
	case "elimination", "sparse":
		return Elimination, nil
	case "wiedemann", "blackbox":
		return Wiedemann, nil
	case "blas", "blaselimination", "dense":
		return BlasElimination, nil
	default:
		return Auto, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Kernel is the algorithm a call actually runs.
type Kernel int

const (
	KernelDense Kernel = iota
	KernelSparse
	KernelWiedemann
)

func (k Kernel) String() string {
	switch k {
	case KernelSparse:
		return "sparse-elimination"
	case KernelWiedemann:
		return "wiedemann"
	default:
		return "dense-elimination"
	}
}

const (
	// BlackboxThreshold is the dimension above which Auto prefers the
	// black-box method for operators that are not stored densely.
	BlackboxThreshold = 1000

	// BlasBound is the field size below which elimination runs on the
	// dense kernel.
	BlasBound = 1 << 26
)

// Resolve picks the kernel for an operator of the given shape over a
// domain of cardinality card (0 for infinite), stored densely or not.
//
//   - Auto: Wiedemann when both dimensions exceed BlackboxThreshold and the
//     operator is not dense, Elimination otherwise.
//   - Elimination: the dense kernel for dense operators or fields smaller
//     than BlasBound, sparse elimination otherwise.
//   - Wiedemann, BlasElimination: as named.
func Resolve(m Method, rows, cols int, card *big.Int, dense bool) Kernel {
	if m == Auto {
		if rows > BlackboxThreshold && cols > BlackboxThreshold && !dense {
			return KernelWiedemann
		}
		m = Elimination
	}
	switch m {
	case Wiedemann:
		return KernelWiedemann
	case BlasElimination:
		return KernelDense
	}
	if dense {
		return KernelDense
	}
	if card != nil && card.Sign() > 0 && card.Cmp(big.NewInt(BlasBound)) < 0 {
		return KernelDense
	}

	return KernelSparse
}
