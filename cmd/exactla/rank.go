// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/invariant"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/ring"
)

// invariantOptions builds the options shared by rank and det.
func (a *app) invariantOptions(method string) ([]invariant.Option, error) {
	m, err := invariant.ParseMethod(method)
	if err != nil {
		return nil, usageErrorf("%v", err)
	}
	tr, err := a.cfg.Traits()
	if err != nil {
		return nil, classify(err)
	}

	return []invariant.Option{
		invariant.WithMethod(m),
		invariant.WithTraits(tr),
		invariant.WithSeed(a.cfg.Solver.Seed),
		invariant.WithObserver(a.logger),
	}, nil
}

func newRankCommand(a *app) *cobra.Command {
	var modulus, method string
	cmd := &cobra.Command{
		Use:   "rank FILE",
		Short: "Print the rank over Q, or modulo a prime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readMatrix(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if modulus == "" {
				r, err := invariant.IntegerRank(ctx, t)
				if err != nil {
					return classify(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), r)
				return nil
			}
			p, err := parseModulus(modulus)
			if err != nil {
				return err
			}
			opts, err := a.invariantOptions(method)
			if err != nil {
				return err
			}
			var r int
			err = inPrimeField(p, fieldRunner{
				word: func(f ring.Ring[uint64]) (err error) {
					r, err = rankIn(ctx, f, t, opts)
					return err
				},
				wide: func(f ring.Ring[uint256.Int]) (err error) {
					r, err = rankIn(ctx, f, t, opts)
					return err
				},
				arb: func(f ring.Ring[*big.Int]) (err error) {
					r, err = rankIn(ctx, f, t, opts)
					return err
				},
			})
			if err != nil {
				return classify(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), r)

			return nil
		},
	}
	cmd.Flags().StringVar(&modulus, "modulus", "", "prime modulus (default: rank over Q)")
	cmd.Flags().StringVar(&method, "method", "auto", "auto|elimination|wiedemann|blas")

	return cmd
}

func rankIn[E any](ctx context.Context, f ring.Ring[E], t *matrixio.Triplets, opts []invariant.Option) (int, error) {
	return invariant.Rank[E](ctx, blackbox.FromTriplets(f, t), opts...)
}
