// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/internal/config"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/ring"
	"github.com/katalvlaran/exactla/wiedemann"
)

// errInconsistent is reported with exit code 5 after the certificate u
// (uᵀ·A = 0, u·b ≠ 0) has been printed.
var errInconsistent = errors.New("system is inconsistent; certificate printed")

func newSolveCommand(a *app) *cobra.Command {
	var (
		modulus     string
		singularity string
	)
	cmd := &cobra.Command{
		Use:   "solve FILE RHS",
		Short: "Solve A·x = b modulo a prime with the Wiedemann solver",
		Long: `Solve A·x = b over Z/p. RHS is a rows×1 matrix in either input format.
On success x is printed. When the system has no solution a vector u with
uᵀ·A = 0 and u·b ≠ 0 is printed instead and the exit status is 5.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readMatrix(args[0])
			if err != nil {
				return err
			}
			rhs, err := readMatrix(args[1])
			if err != nil {
				return err
			}
			if rhs.Cols != 1 || rhs.Rows != t.Rows {
				return usageErrorf("RHS is %d×%d, want %d×1", rhs.Rows, rhs.Cols, t.Rows)
			}
			p, err := parseModulus(modulus)
			if err != nil {
				return err
			}
			tr, err := a.cfg.Traits()
			if err != nil {
				return classify(err)
			}
			switch singularity {
			case "singular":
				tr.Singularity = wiedemann.Singular
			case "nonsingular":
				tr.Singularity = wiedemann.NonSingular
			case "", "unknown":
			default:
				return usageErrorf("--singularity %q: want unknown|singular|nonsingular", singularity)
			}

			ctx, out := cmd.Context(), cmd.OutOrStdout()
			return classify(inPrimeField(p, fieldRunner{
				word: func(f ring.Ring[uint64]) error { return solveIn(ctx, a, f, t, rhs, tr, out) },
				wide: func(f ring.Ring[uint256.Int]) error { return solveIn(ctx, a, f, t, rhs, tr, out) },
				arb:  func(f ring.Ring[*big.Int]) error { return solveIn(ctx, a, f, t, rhs, tr, out) },
			}))
		},
	}

	f := cmd.Flags()
	f.StringVar(&modulus, "modulus", "", "prime modulus")
	_ = cmd.MarkFlagRequired("modulus")
	f.String(config.FlagName(config.KeyPreconditioner), wiedemann.DefaultPreconditioner.String(), "none|butterfly|sparse|toeplitz")
	f.Int(config.FlagName(config.KeyTrials), wiedemann.DefaultTrialsBeforeFailure, "trials before giving up")
	f.StringVar(&singularity, "singularity", "unknown", "what is known about A: unknown|singular|nonsingular")

	return cmd
}

func solveIn[E any](ctx context.Context, a *app, f ring.Ring[E], t, rhs *matrixio.Triplets, tr wiedemann.Traits, w io.Writer) error {
	s, err := wiedemann.New(f, tr, wiedemann.WithSeed(a.cfg.Solver.Seed), wiedemann.WithObserver(a.logger))
	if err != nil {
		return err
	}
	op := blackbox.FromTriplets(f, t)
	b := ring.NewVector(f, t.Rows)
	for _, e := range rhs.Entries {
		b[e.Row] = f.FromBig(e.Val)
	}
	x := ring.NewVector(f, t.Cols)
	u := ring.NewVector(f, t.Rows)

	st, err := s.Solve(ctx, op, x, b, u)
	if err != nil {
		return err
	}
	a.logger.Info("solve finished", "status", st, "rows", t.Rows, "cols", t.Cols, "domain", f.Name())
	switch st {
	case wiedemann.StatusOK:
		_, err = fmt.Fprintln(w, ring.VectorString(f, x))
		return err
	case wiedemann.StatusInconsistent:
		if _, err = fmt.Fprintln(w, ring.VectorString(f, u)); err != nil {
			return err
		}
		return &ExitError{Code: ExitInconsistent, Err: errInconsistent}
	default:
		return &ExitError{Code: ExitSolver, Err: fmt.Errorf("wiedemann solver: %s", st)}
	}
}
