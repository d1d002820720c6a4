// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/elimination"
	"github.com/katalvlaran/exactla/internal/config"
	"github.com/katalvlaran/exactla/invariant"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/modrank"
	"github.com/katalvlaran/exactla/smith"
	"github.com/katalvlaran/exactla/wiedemann"
)

// Exit codes.
const (
	ExitGeneric      = 1
	ExitUsage        = 2
	ExitIO           = 3
	ExitSolver       = 4
	ExitInconsistent = 5
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code int
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Err: fmt.Errorf(format, args...)}
}

// classify attaches an exit code to err based on the sentinel it wraps.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *ExitError
	if errors.As(err, &ee) {
		return err
	}
	code := ExitGeneric
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, fs.ErrPermission),
		errors.Is(err, matrixio.ErrHeader), errors.Is(err, matrixio.ErrEntry),
		errors.Is(err, matrixio.ErrIndex), errors.Is(err, matrixio.ErrTruncated):
		code = ExitIO
	case errors.Is(err, blackbox.ErrDimensionMismatch), errors.Is(err, blackbox.ErrNonSquare),
		errors.Is(err, elimination.ErrNonSquare), errors.Is(err, elimination.ErrDimensionMismatch),
		errors.Is(err, wiedemann.ErrBadTraits), errors.Is(err, wiedemann.ErrToeplitzNotImplemented),
		errors.Is(err, invariant.ErrUnknownMethod), errors.Is(err, modrank.ErrNotPrime),
		errors.Is(err, smith.ErrNotCoprime), errors.Is(err, smith.ErrBadValence),
		errors.Is(err, config.ErrInvalid):
		code = ExitUsage
	case errors.Is(err, invariant.ErrInconsistent):
		code = ExitInconsistent
	case errors.Is(err, invariant.ErrSolverFailed), errors.Is(err, wiedemann.ErrTrialsExhausted),
		errors.Is(err, smith.ErrIncompleteFactorization), errors.Is(err, smith.ErrExponentBound):
		code = ExitSolver
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		code = ExitGeneric
	}

	return &ExitError{Code: code, Err: err}
}
