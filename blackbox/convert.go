// SPDX-License-Identifier: MIT

package blackbox

import (
	"sort"

	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/ring"
)

// transposedEntries lists the entries of an Entrywise inner with swapped
// coordinates.
type transposedEntries[E any] struct {
	*Transpose[E]
	inner Entrywise[E]
}

func (t transposedEntries[E]) ForEachNonZero(fn func(i, j int, v E)) {
	t.inner.ForEachNonZero(func(i, j int, v E) { fn(j, i, v) })
}

// AsEntrywise returns op as an Entrywise operator when its entries can be
// enumerated, looking through Transpose wrappers.
func AsEntrywise[E any](op Operator[E]) (Entrywise[E], bool) {
	switch v := op.(type) {
	case Entrywise[E]:
		return v, true
	case *Transpose[E]:
		inner, ok := AsEntrywise(v.inner)
		if !ok {
			return nil, false
		}
		return transposedEntries[E]{Transpose: v, inner: inner}, true
	default:
		return nil, false
	}
}

// ToDense materializes op. Entrywise operators are copied entry by entry;
// anything else is probed with unit vectors, one Apply per column.
func ToDense[E any](op Operator[E]) (*Dense[E], error) {
	r := op.Ring()
	d, err := NewDense(r, op.Rows(), op.Cols())
	if err != nil {
		return nil, err
	}
	if ew, ok := AsEntrywise(op); ok {
		ew.ForEachNonZero(func(i, j int, v E) {
			d.data[i*d.c+j] = r.Add(d.data[i*d.c+j], v)
		})
		return d, nil
	}
	e := ring.NewVector(r, op.Cols())
	col := make([]E, op.Rows())
	var i, j int
	for j = 0; j < op.Cols(); j++ {
		e[j] = r.One()
		if err = op.Apply(col, e); err != nil {
			return nil, blackboxErrorf("ToDense", err)
		}
		e[j] = r.Zero()
		for i = range col {
			d.data[i*d.c+j] = col[i]
		}
	}

	return d, nil
}

// Trace returns Σ A[i][i] of a square operator, probing with unit vectors
// when op is not Entrywise.
func Trace[E any](op Operator[E]) (E, error) {
	r := op.Ring()
	if err := ValidateSquare(op); err != nil {
		var zero E
		return zero, blackboxErrorf("Trace", err)
	}
	acc := r.Zero()
	if ew, ok := AsEntrywise(op); ok {
		ew.ForEachNonZero(func(i, j int, v E) {
			if i == j {
				acc = r.Add(acc, v)
			}
		})
		return acc, nil
	}
	e := ring.NewVector(r, op.Cols())
	col := make([]E, op.Rows())
	var j int
	for j = 0; j < op.Cols(); j++ {
		e[j] = r.One()
		if err := op.Apply(col, e); err != nil {
			var zero E
			return zero, blackboxErrorf("Trace", err)
		}
		e[j] = r.Zero()
		acc = r.Add(acc, col[j])
	}

	return acc, nil
}

// FromTriplets reduces an integer matrix into r as a Sparse operator.
// Entries may arrive in any order; duplicates at one position are summed
// and entries that vanish in r are dropped.
func FromTriplets[E any](r ring.Ring[E], t *matrixio.Triplets) *Sparse[E] {
	s := &Sparse[E]{ring: r, r: t.Rows, c: t.Cols, rows: make([][]cell[E], t.Rows)}
	var e matrixio.Entry
	for _, e = range t.Entries {
		v := r.FromBig(e.Val)
		if r.IsZero(v) {
			continue
		}
		s.rows[e.Row] = append(s.rows[e.Row], cell[E]{col: e.Col, val: v})
	}
	var i int
	for i = range s.rows {
		s.rows[i] = mergeCells(r, s.rows[i])
	}

	return s
}

// mergeCells sorts row by column, sums cells sharing a column and drops
// the ones that cancel. Rows that are already strictly increasing are
// returned untouched.
func mergeCells[E any](r ring.Ring[E], row []cell[E]) []cell[E] {
	ordered := true
	var k int
	for k = 1; k < len(row); k++ {
		if row[k-1].col >= row[k].col {
			ordered = false
			break
		}
	}
	if ordered {
		return row
	}
	sort.SliceStable(row, func(a, b int) bool { return row[a].col < row[b].col })
	out := row[:0]
	for _, c := range row {
		if n := len(out); n > 0 && out[n-1].col == c.col {
			out[n-1].val = r.Add(out[n-1].val, c.val)
			continue
		}
		out = append(out, c)
	}
	kept := out[:0]
	for _, c := range out {
		if !r.IsZero(c.val) {
			kept = append(kept, c)
		}
	}

	return kept
}

// DenseFromTriplets reduces an integer matrix into r as a Dense operator.
// Duplicate entries are summed.
func DenseFromTriplets[E any](r ring.Ring[E], t *matrixio.Triplets) *Dense[E] {
	d := &Dense[E]{ring: r, r: t.Rows, c: t.Cols, data: ring.NewVector(r, t.Rows*t.Cols)}
	var e matrixio.Entry
	for _, e = range t.Entries {
		k := e.Row*t.Cols + e.Col
		d.data[k] = r.Add(d.data[k], r.FromBig(e.Val))
	}

	return d
}
