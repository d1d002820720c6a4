// SPDX-License-Identifier: MIT

package invariant

import (
	"context"
	"fmt"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/elimination"
	"github.com/katalvlaran/exactla/wiedemann"
)

const (
	opRank      = "Rank"
	opDet       = "Det"
	opNullspace = "NullspaceBasis"
	opSolve     = "Solve"
)

// resolve picks the kernel for op once and logs the choice.
func resolve[E any](o options, op blackbox.Operator[E], activity string) Kernel {
	_, isDense := op.(*blackbox.Dense[E])
	k := Resolve(o.method, op.Rows(), op.Cols(), op.Ring().Cardinality(), isDense)
	o.obs.Debug("kernel resolved", "op", activity, "method", o.method, "kernel", k,
		"rows", op.Rows(), "cols", op.Cols(), "domain", op.Ring().Name())

	return k
}

func newSolver[E any](o options, op blackbox.Operator[E]) (*wiedemann.Solver[E], error) {
	return wiedemann.New(op.Ring(), o.traits, wiedemann.WithSeed(o.seed), wiedemann.WithObserver(o.obs))
}

// asDense returns op itself when it is dense, else a densified copy.
func asDense[E any](op blackbox.Operator[E]) (*blackbox.Dense[E], error) {
	if d, ok := op.(*blackbox.Dense[E]); ok {
		return d, nil
	}

	return blackbox.ToDense(op)
}

// asSparse returns op itself when it is sparse, else an entrywise copy.
func asSparse[E any](op blackbox.Operator[E]) (*blackbox.Sparse[E], error) {
	if s, ok := op.(*blackbox.Sparse[E]); ok {
		return s, nil
	}
	d, err := blackbox.ToDense(op)
	if err != nil {
		return nil, err
	}
	s, err := blackbox.NewSparse(op.Ring(), op.Rows(), op.Cols())
	if err != nil {
		return nil, err
	}
	var i, j int
	for i = 0; i < d.Rows(); i++ {
		row := d.Row(i)
		for j = range row {
			if err = s.SetEntry(i, j, row[j]); err != nil {
				return nil, err
			}
		}
	}

	return s, nil
}

// Rank returns the rank of op over its field.
func Rank[E any](ctx context.Context, op blackbox.Operator[E], opts ...Option) (int, error) {
	if op == nil {
		return 0, invariantErrorf(opRank, blackbox.ErrNilOperator)
	}
	o := gatherOptions(opts)
	switch resolve(o, op, opRank) {
	case KernelWiedemann:
		s, err := newSolver(o, op)
		if err != nil {
			return 0, invariantErrorf(opRank, err)
		}
		r, err := s.Rank(ctx, op)
		if err != nil {
			return 0, invariantErrorf(opRank, err)
		}
		return r, nil
	case KernelSparse:
		sp, err := asSparse(op)
		if err != nil {
			return 0, invariantErrorf(opRank, err)
		}
		r, err := elimination.SparseRank(sp)
		if err != nil {
			return 0, invariantErrorf(opRank, err)
		}
		return r, nil
	default:
		d, err := asDense(op)
		if err != nil {
			return 0, invariantErrorf(opRank, err)
		}
		r, err := elimination.Rank(d)
		if err != nil {
			return 0, invariantErrorf(opRank, err)
		}
		return r, nil
	}
}

// Det returns the determinant of a square op over its field. Sparse
// elimination has no determinant kernel; it falls back to the dense one.
func Det[E any](ctx context.Context, op blackbox.Operator[E], opts ...Option) (E, error) {
	var zero E
	if op == nil {
		return zero, invariantErrorf(opDet, blackbox.ErrNilOperator)
	}
	o := gatherOptions(opts)
	if resolve(o, op, opDet) == KernelWiedemann {
		s, err := newSolver(o, op)
		if err != nil {
			return zero, invariantErrorf(opDet, err)
		}
		d, err := s.Det(ctx, op)
		if err != nil {
			return zero, invariantErrorf(opDet, err)
		}
		return d, nil
	}
	d, err := asDense(op)
	if err != nil {
		return zero, invariantErrorf(opDet, err)
	}
	det, err := elimination.Det(d)
	if err != nil {
		return zero, invariantErrorf(opDet, err)
	}

	return det, nil
}

// NullspaceBasis returns a cols×(cols−rank) matrix whose columns span the
// right kernel of op. The basis is always produced by dense elimination;
// the Method only affects how op is materialized.
func NullspaceBasis[E any](ctx context.Context, op blackbox.Operator[E], opts ...Option) (*blackbox.Dense[E], error) {
	if op == nil {
		return nil, invariantErrorf(opNullspace, blackbox.ErrNilOperator)
	}
	if err := ctx.Err(); err != nil {
		return nil, invariantErrorf(opNullspace, err)
	}
	o := gatherOptions(opts)
	resolve(o, op, opNullspace)
	d, err := asDense(op)
	if err != nil {
		return nil, invariantErrorf(opNullspace, err)
	}
	ns, err := elimination.NullspaceBasis(d)
	if err != nil {
		return nil, invariantErrorf(opNullspace, err)
	}

	return ns, nil
}

// Solve returns some x with op·x = b. ErrInconsistent reports b outside
// the column space; with the Wiedemann kernel that verdict is certified.
func Solve[E any](ctx context.Context, op blackbox.Operator[E], b []E, opts ...Option) ([]E, error) {
	if op == nil {
		return nil, invariantErrorf(opSolve, blackbox.ErrNilOperator)
	}
	o := gatherOptions(opts)
	if resolve(o, op, opSolve) != KernelWiedemann {
		d, err := asDense(op)
		if err != nil {
			return nil, invariantErrorf(opSolve, err)
		}
		x, err := elimination.Solve(d, b)
		if err != nil {
			return nil, invariantErrorf(opSolve, err)
		}
		return x, nil
	}

	s, err := newSolver(o, op)
	if err != nil {
		return nil, invariantErrorf(opSolve, err)
	}
	f := op.Ring()
	x := make([]E, op.Cols())
	u := make([]E, op.Rows())
	for i := range x {
		x[i] = f.Zero()
	}
	for i := range u {
		u[i] = f.Zero()
	}
	st, err := s.Solve(ctx, op, x, b, u)
	if err != nil {
		return nil, invariantErrorf(opSolve, err)
	}
	switch st {
	case wiedemann.StatusOK:
		return x, nil
	case wiedemann.StatusInconsistent:
		return nil, invariantErrorf(opSolve, ErrInconsistent)
	default:
		return nil, invariantErrorf(opSolve, fmt.Errorf("%w: %s", ErrSolverFailed, st))
	}
}
