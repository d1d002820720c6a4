// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/exactla/internal/config"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/modrank"
	"github.com/katalvlaran/exactla/smith"
)

func newSmithCommand(a *app) *cobra.Command {
	var valence, coprime string
	var maxExponent int
	cmd := &cobra.Command{
		Use:   "smith FILE",
		Short: "Print the Smith normal form, compressed",
		Long: `Compute the Smith normal form of an integer matrix by the valence method
and print it as "([v,k] [v,k] ...)": invariant v repeated k times, trailing
zeros last.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sq, err := smith.ParseSquarization(a.cfg.Smith.Squarization)
			if err != nil {
				return usageErrorf("%v", err)
			}
			opts := []smith.Option{
				smith.WithObserver(a.logger),
				smith.WithSquarization(sq),
				smith.WithFactorLoops(a.cfg.Smith.FactorLoops),
				smith.WithMaxExponent(maxExponent),
			}
			if a.cfg.Smith.Workers > 0 {
				opts = append(opts, smith.WithWorkers(a.cfg.Smith.Workers))
			}
			if valence != "" {
				v, ok := new(big.Int).SetString(valence, 10)
				if !ok || v.Sign() <= 0 {
					return usageErrorf("--valence %q is not a positive integer", valence)
				}
				opts = append(opts, smith.WithValence(v))
			}
			if coprime != "" {
				c, ok := new(big.Int).SetString(coprime, 10)
				if !ok {
					return usageErrorf("--coprime %q is not an integer", coprime)
				}
				opts = append(opts, smith.WithCoprime(c))
			}
			c, err := a.rankCache()
			if err != nil {
				return err
			}
			if c != nil {
				opts = append(opts, smith.WithCache(c))
			}

			res, err := smith.Compute(cmd.Context(), modrank.FileSource{Path: args[0]}, opts...)
			if err != nil {
				return classify(err)
			}
			fmt.Fprintln(a.errOut, summaryLine("rank", res.Rank))
			fmt.Fprintln(a.errOut, summaryLine("valence", res.Valence))

			return classify(matrixio.WriteCompressedSmith(cmd.OutOrStdout(), res.Compressed()))
		},
	}

	f := cmd.Flags()
	f.StringVar(&valence, "valence", "", "use this valence instead of computing it")
	f.StringVar(&coprime, "coprime", "", "prime coprime to the valence (default: smallest such prime)")
	f.String(config.FlagName(config.KeySquarization), "auto", "product for the valence: auto|aat|ata")
	f.Int(config.FlagName(config.KeyWorkers), 0, "concurrent modular computations (0 = GOMAXPROCS)")
	f.Int(config.FlagName(config.KeyFactorLoops), smith.DefaultFactorLoops, "Pollard-Brent iterations per split")
	f.IntVar(&maxExponent, "max-exponent", smith.DefaultMaxExponent, "largest prime power exponent to try")

	return cmd
}
