// SPDX-License-Identifier: MIT

// Package matrixio reads and writes integer matrices and the textual results
// derived from them.
//
// Formats:
//   - SMS sparse triplets: a "rows cols TYPE" header, then "i j v" lines with
//     1-based indices, terminated by "0 0 0".
//   - Dense: a "rows cols" header followed by rows*cols values in row-major
//     order.
//   - Null-space listing: "[rows,cols,[[i,j,v],...]];" with 1-based indices
//     and only the non-zero entries.
//   - Compressed Smith form: "([v,k] [v,k] ... [0,z])".
//
// In memory every matrix is a Triplets value with 0-based indices, entries
// sorted by (row, col), duplicates summed and zeros removed. Values are
// integers; rings reduce them on ingestion.
package matrixio
