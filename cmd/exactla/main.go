// SPDX-License-Identifier: MIT

// Command exactla runs exact linear algebra on integer matrices: Smith
// forms, null spaces, ranks, determinants and Wiedemann solves modulo a
// prime.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
)

func main() {
	a := newApp()
	root := newRootCommand(a)
	err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(Version+" ("+Commit+")"),
		fang.WithNotifySignal(os.Interrupt),
	)
	a.shutdown()
	if err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(ExitGeneric)
	}
}
