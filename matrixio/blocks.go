// SPDX-License-Identifier: MIT

package matrixio

import (
	"context"
	"slices"
)

// Blocks splits t into its block-diagonal components: the connected
// components of the bipartite graph joining row i to column j whenever
// t[i][j] ≠ 0. Rows and columns of each block are renumbered from 0 in
// their original order. Empty rows and columns belong to no block.
//
// Rank and the Smith invariants of t are the union of those of its
// blocks, so modular eliminations can run block by block.
//
// Implementation:
//   - Stage 1: index entries by row and by column.
//   - Stage 2: breadth-first walk from every unvisited non-empty row,
//     alternating row and column vertices.
//   - Stage 3: gather each component's entries and renumber them.
//
// Complexity: O(nnz + rows + cols) plus sorting the renumbering maps.
func Blocks(ctx context.Context, t *Triplets) ([]*Triplets, error) {
	byRow := make([][]int, t.Rows)
	byCol := make([][]int, t.Cols)
	var k int
	for k = range t.Entries {
		byRow[t.Entries[k].Row] = append(byRow[t.Entries[k].Row], k)
		byCol[t.Entries[k].Col] = append(byCol[t.Entries[k].Col], k)
	}

	w := &blockWalker{
		t:       t,
		byRow:   byRow,
		byCol:   byCol,
		rowSeen: make([]bool, t.Rows),
		colSeen: make([]bool, t.Cols),
	}
	var out []*Triplets
	for i := 0; i < t.Rows; i++ {
		if w.rowSeen[i] || len(byRow[i]) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, ioErrorf("Blocks", err)
		}
		out = append(out, w.component(i))
	}

	return out, nil
}

// vertex is a row (col == false) or a column of the bipartite graph.
type vertex struct {
	id  int
	col bool
}

// blockWalker holds the state shared by successive component walks.
type blockWalker struct {
	t       *Triplets
	byRow   [][]int
	byCol   [][]int
	rowSeen []bool
	colSeen []bool
	queue   []vertex
}

// component walks the component of row start and returns it as a block.
func (w *blockWalker) component(start int) *Triplets {
	var rows, cols, entries []int
	w.rowSeen[start] = true
	w.queue = append(w.queue[:0], vertex{id: start})
	for len(w.queue) > 0 {
		v := w.queue[0]
		w.queue = w.queue[1:]
		if !v.col {
			rows = append(rows, v.id)
			for _, k := range w.byRow[v.id] {
				entries = append(entries, k)
				if c := w.t.Entries[k].Col; !w.colSeen[c] {
					w.colSeen[c] = true
					w.queue = append(w.queue, vertex{id: c, col: true})
				}
			}
			continue
		}
		cols = append(cols, v.id)
		for _, k := range w.byCol[v.id] {
			if r := w.t.Entries[k].Row; !w.rowSeen[r] {
				w.rowSeen[r] = true
				w.queue = append(w.queue, vertex{id: r})
			}
		}
	}

	slices.Sort(rows)
	slices.Sort(cols)
	slices.Sort(entries)
	b := &Triplets{Rows: len(rows), Cols: len(cols), Entries: make([]Entry, 0, len(entries))}
	for _, k := range entries {
		e := w.t.Entries[k]
		i, _ := slices.BinarySearch(rows, e.Row)
		j, _ := slices.BinarySearch(cols, e.Col)
		b.Entries = append(b.Entries, Entry{Row: i, Col: j, Val: e.Val})
	}

	return b
}
