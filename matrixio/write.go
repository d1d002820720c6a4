// SPDX-License-Identifier: MIT

package matrixio

import (
	"bufio"
	"io"
	"math/big"
	"strconv"
)

// SmithPair is one run of the compressed Smith diagonal: Value repeated
// Count times.
type SmithPair struct {
	Value *big.Int
	Count int
}

// WriteSMS encodes t in the sparse triplet format with type marker M.
func WriteSMS(w io.Writer, t *Triplets) error {
	bw := bufio.NewWriter(w)
	writeInts(bw, ' ', t.Rows, t.Cols)
	_, _ = bw.WriteString(" M\n")
	var e Entry
	for _, e = range t.Entries {
		writeInts(bw, ' ', e.Row+1, e.Col+1)
		_ = bw.WriteByte(' ')
		_, _ = bw.WriteString(e.Val.String())
		_ = bw.WriteByte('\n')
	}
	_, _ = bw.WriteString("0 0 0\n")

	if err := bw.Flush(); err != nil {
		return ioErrorf("WriteSMS", err)
	}

	return nil
}

// WriteNestedList encodes t as "[rows,cols,[[i,j,v],...]];" followed by a
// newline; indices are 1-based.
func WriteNestedList(w io.Writer, t *Triplets) error {
	bw := bufio.NewWriter(w)
	_ = bw.WriteByte('[')
	writeInts(bw, ',', t.Rows, t.Cols)
	_, _ = bw.WriteString(",[")
	var k int
	for k = range t.Entries {
		if k > 0 {
			_ = bw.WriteByte(',')
		}
		_ = bw.WriteByte('[')
		writeInts(bw, ',', t.Entries[k].Row+1, t.Entries[k].Col+1)
		_ = bw.WriteByte(',')
		_, _ = bw.WriteString(t.Entries[k].Val.String())
		_ = bw.WriteByte(']')
	}
	_, _ = bw.WriteString("]];\n")

	if err := bw.Flush(); err != nil {
		return ioErrorf("WriteNestedList", err)
	}

	return nil
}

// WriteCompressedSmith encodes pairs as "([v,k] [v,k] ...)" and a newline.
func WriteCompressedSmith(w io.Writer, pairs []SmithPair) error {
	bw := bufio.NewWriter(w)
	_ = bw.WriteByte('(')
	var k int
	for k = range pairs {
		if k > 0 {
			_ = bw.WriteByte(' ')
		}
		_ = bw.WriteByte('[')
		_, _ = bw.WriteString(pairs[k].Value.String())
		_ = bw.WriteByte(',')
		_, _ = bw.WriteString(strconv.Itoa(pairs[k].Count))
		_ = bw.WriteByte(']')
	}
	_, _ = bw.WriteString(")\n")

	if err := bw.Flush(); err != nil {
		return ioErrorf("WriteCompressedSmith", err)
	}

	return nil
}

func writeInts(bw *bufio.Writer, sep byte, vs ...int) {
	var i int
	for i = range vs {
		if i > 0 {
			_ = bw.WriteByte(sep)
		}
		_, _ = bw.WriteString(strconv.Itoa(vs[i]))
	}
}
