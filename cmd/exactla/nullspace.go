// SPDX-License-Identifier: MIT

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/exactla/invariant"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/report"
)

func newNullspaceCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "nullspace FILE",
		Short: "Print an integer basis of the right null space",
		Long: `Print a basis of {x : A·x = 0} over Q as primitive integer columns of a
cols×k matrix, in the nested-list form "[rows,cols,[[i,j,v],...]];".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readMatrix(args[0])
			if err != nil {
				return err
			}
			done := report.Span(a.logger, "nullspace", "file", args[0], "rows", t.Rows, "cols", t.Cols)
			ns, err := invariant.IntegerNullspace(cmd.Context(), t)
			if err != nil {
				done("error")
				return classify(err)
			}
			done("ok")
			fmt.Fprintln(a.errOut, summaryLine("null space dimension", ns.Cols))

			return classify(matrixio.WriteNestedList(cmd.OutOrStdout(), ns))
		},
	}
}
