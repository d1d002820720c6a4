// SPDX-License-Identifier: MIT

package matrixio

import (
	"encoding/binary"
	"math/big"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// Entry is one non-zero value at 0-based (Row, Col).
type Entry struct {
	Row, Col int
	Val      *big.Int
}

// Triplets is an integer matrix in coordinate form.
type Triplets struct {
	Rows, Cols int
	Entries    []Entry
}

// NewTriplets builds a normalized matrix from the given entries. Indices are
// 0-based and must lie inside rows×cols.
func NewTriplets(rows, cols int, entries []Entry) (*Triplets, error) {
	if rows < 0 || cols < 0 {
		return nil, ioErrorf("NewTriplets", ErrHeader)
	}
	var e Entry
	for _, e = range entries {
		if e.Row < 0 || e.Row >= rows || e.Col < 0 || e.Col >= cols {
			return nil, ioErrorf("NewTriplets", ErrIndex)
		}
	}
	t := &Triplets{Rows: rows, Cols: cols, Entries: slices.Clone(entries)}
	t.normalize()

	return t, nil
}

// FromRows builds a matrix from small int64 rows; handy for literals.
// Panics on ragged input (programmer error).
func FromRows(rows [][]int64) *Triplets {
	t := &Triplets{Rows: len(rows)}
	if len(rows) > 0 {
		t.Cols = len(rows[0])
	}
	var i, j int
	for i = range rows {
		if len(rows[i]) != t.Cols {
			panic("matrixio: FromRows: ragged rows")
		}
		for j = range rows[i] {
			if rows[i][j] != 0 {
				t.Entries = append(t.Entries, Entry{Row: i, Col: j, Val: big.NewInt(rows[i][j])})
			}
		}
	}
	t.normalize()

	return t
}

// normalize sorts entries by (row, col), sums duplicates and drops zeros.
func (t *Triplets) normalize() {
	slices.SortStableFunc(t.Entries, func(a, b Entry) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})
	out := t.Entries[:0]
	var e Entry
	for _, e = range t.Entries {
		if n := len(out); n > 0 && out[n-1].Row == e.Row && out[n-1].Col == e.Col {
			out[n-1].Val = new(big.Int).Add(out[n-1].Val, e.Val)
			continue
		}
		out = append(out, Entry{Row: e.Row, Col: e.Col, Val: new(big.Int).Set(e.Val)})
	}
	kept := out[:0]
	for _, e = range out {
		if e.Val.Sign() != 0 {
			kept = append(kept, e)
		}
	}
	t.Entries = kept
}

// NNZ returns the number of stored non-zero entries.
func (t *Triplets) NNZ() int { return len(t.Entries) }

// Dense expands the matrix into rows of fresh integers.
func (t *Triplets) Dense() [][]*big.Int {
	out := make([][]*big.Int, t.Rows)
	var i, j int
	for i = range out {
		out[i] = make([]*big.Int, t.Cols)
		for j = range out[i] {
			out[i][j] = new(big.Int)
		}
	}
	var e Entry
	for _, e = range t.Entries {
		out[e.Row][e.Col] = new(big.Int).Set(e.Val)
	}

	return out
}

// Transpose returns Aᵀ as a new normalized matrix.
func (t *Triplets) Transpose() *Triplets {
	tr := &Triplets{Rows: t.Cols, Cols: t.Rows, Entries: make([]Entry, len(t.Entries))}
	var i int
	for i = range t.Entries {
		tr.Entries[i] = Entry{Row: t.Entries[i].Col, Col: t.Entries[i].Row, Val: t.Entries[i].Val}
	}
	tr.normalize()

	return tr
}

// Digest is a 64-bit content hash of the normalized matrix. Equal matrices
// have equal digests regardless of the order their entries were read in.
func (t *Triplets) Digest() uint64 {
	h := xxhash.New()
	var buf [binary.MaxVarintLen64]byte
	put := func(v int64) {
		n := binary.PutVarint(buf[:], v)
		_, _ = h.Write(buf[:n])
	}
	put(int64(t.Rows))
	put(int64(t.Cols))
	var e Entry
	for _, e = range t.Entries {
		put(int64(e.Row))
		put(int64(e.Col))
		b := e.Val.Bytes()
		put(int64(e.Val.Sign()))
		put(int64(len(b)))
		_, _ = h.Write(b)
	}

	return h.Sum64()
}
