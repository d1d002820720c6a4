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

func newDetCommand(a *app) *cobra.Command {
	var modulus, method string
	cmd := &cobra.Command{
		Use:   "det FILE",
		Short: "Print the determinant over Z, or modulo a prime",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readMatrix(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if modulus == "" {
				d, err := invariant.IntegerDet(ctx, t)
				if err != nil {
					return classify(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), d)
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
			var d string
			err = inPrimeField(p, fieldRunner{
				word: func(f ring.Ring[uint64]) (err error) {
					d, err = detIn(ctx, f, t, opts)
					return err
				},
				wide: func(f ring.Ring[uint256.Int]) (err error) {
					d, err = detIn(ctx, f, t, opts)
					return err
				},
				arb: func(f ring.Ring[*big.Int]) (err error) {
					d, err = detIn(ctx, f, t, opts)
					return err
				},
			})
			if err != nil {
				return classify(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)

			return nil
		},
	}
	cmd.Flags().StringVar(&modulus, "modulus", "", "prime modulus (default: determinant over Z)")
	cmd.Flags().StringVar(&method, "method", "auto", "auto|elimination|wiedemann|blas")

	return cmd
}

func detIn[E any](ctx context.Context, f ring.Ring[E], t *matrixio.Triplets, opts []invariant.Option) (string, error) {
	d, err := invariant.Det[E](ctx, blackbox.FromTriplets(f, t), opts...)
	if err != nil {
		return "", err
	}

	return f.String(d), nil
}
