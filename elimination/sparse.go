// SPDX-License-Identifier: MIT

package elimination

import (
	"sort"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/ring"
)

// sparseRow is a row of non-zero entries sorted by column.
type sparseRow[E any] struct {
	cols []int
	vals []E
}

func (r *sparseRow[E]) weight() int { return len(r.cols) }

// at returns the entry in column c, if stored.
func (r *sparseRow[E]) at(c int) (E, bool) {
	k := sort.SearchInts(r.cols, c)
	if k < len(r.cols) && r.cols[k] == c {
		return r.vals[k], true
	}
	var zero E

	return zero, false
}

// subScaled sets r ← r - fac·p, dropping entries that vanish.
func (r *sparseRow[E]) subScaled(f ring.Ring[E], fac E, p *sparseRow[E]) {
	cols := make([]int, 0, len(r.cols)+len(p.cols))
	vals := make([]E, 0, len(r.cols)+len(p.cols))
	var (
		i, j int
		v    E
	)
	for i < len(r.cols) || j < len(p.cols) {
		switch {
		case j == len(p.cols) || (i < len(r.cols) && r.cols[i] < p.cols[j]):
			cols, vals = append(cols, r.cols[i]), append(vals, r.vals[i])
			i++
			continue
		case i == len(r.cols) || p.cols[j] < r.cols[i]:
			v = f.Neg(f.Mul(fac, p.vals[j]))
			cols = append(cols, p.cols[j])
			j++
		default:
			v = f.Sub(r.vals[i], f.Mul(fac, p.vals[j]))
			cols = append(cols, r.cols[i])
			i++
			j++
		}
		if f.IsZero(v) {
			cols = cols[:len(cols)-1]
			continue
		}
		vals = append(vals, v)
	}
	r.cols, r.vals = cols, vals
}

// loadRows copies the rows of s, skipping empty ones.
func loadRows[E any](s *blackbox.Sparse[E]) []*sparseRow[E] {
	rows := make([]*sparseRow[E], 0, s.Rows())
	var i int
	for i = 0; i < s.Rows(); i++ {
		cols, vals := s.Row(i)
		if len(cols) == 0 {
			continue
		}
		rows = append(rows, &sparseRow[E]{cols: cols, vals: vals})
	}

	return rows
}

// SparseRank returns the rank of s over its field by sparse row elimination.
//
// Implementation:
//   - Stage 1: pick the remaining row of minimum weight; its first column is
//     the pivot, which keeps fill-in low on typical sparse inputs.
//   - Stage 2: eliminate the pivot column from every other remaining row and
//     retire the pivot row.
//   - Stage 3: repeat until no non-empty row remains; the pivot count is
//     the rank.
//
// Complexity: O(r·(nnz + fill-in)) field operations; O(m·n·r) in the
// dense worst case.
func SparseRank[E any](s *blackbox.Sparse[E]) (int, error) {
	f := s.Ring()
	if !f.IsField() {
		return 0, eliminationErrorf(opSparseRank, ErrNotField)
	}
	var (
		rows     = loadRows(s)
		rank     int
		k, best  int
		c        int
		inv, fac E
		v        E
		ok       bool
		err      error
	)
	for len(rows) > 0 {
		best = 0
		for k = 1; k < len(rows); k++ {
			if rows[k].weight() < rows[best].weight() {
				best = k
			}
		}
		piv := rows[best]
		rows[best] = rows[len(rows)-1]
		rows = rows[:len(rows)-1]

		c = piv.cols[0]
		if inv, err = f.Inv(piv.vals[0]); err != nil {
			return 0, eliminationErrorf(opSparseRank, err)
		}
		for k = 0; k < len(rows); k++ {
			if v, ok = rows[k].at(c); !ok {
				continue
			}
			fac = f.Mul(v, inv)
			rows[k].subScaled(f, fac, piv)
		}
		rows = compact(rows)
		rank++
	}

	return rank, nil
}

// compact drops rows that became empty.
func compact[E any](rows []*sparseRow[E]) []*sparseRow[E] {
	out := rows[:0]
	for _, r := range rows {
		if r.weight() > 0 {
			out = append(out, r)
		}
	}

	return out
}
