// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newConfigCommand(a *app) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect exactla configuration",
		Long: `Inspect exactla configuration.

Values come from built-in defaults, the --config file, EXACTLA_* environment
variables (EXACTLA_SOLVER_TRIALS for solver.trials) and flags, in that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if a.cfgFile != "" {
				fmt.Fprintln(a.errOut, summaryLine("config file", a.cfgFile))
			} else {
				fmt.Fprintln(a.errOut, SubtitleStyle.Render("(no config file)"))
			}
			for _, kv := range a.cfg.Pairs() {
				fmt.Fprintf(out, "%s = %s\n", kv[0], kv[1])
			}
			return nil
		},
	})

	return cfgCmd
}
