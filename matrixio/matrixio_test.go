// SPDX-License-Identifier: MIT

package matrixio_test

import (
	"bytes"
	"context"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/exactla/matrixio"
)

func TestReadSMS(t *testing.T) {
	in := `% comment line
3 3 M
1 1 2
2 2 4
3 3 6
1 1 -2
3 1 5
0 0 0
`
	m, err := matrixio.ReadSMS(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 3, m.Rows)
	require.Equal(t, 3, m.Cols)
	require.Equal(t, 3, m.NNZ()) // (1,1) cancels out

	d := m.Dense()
	require.Equal(t, int64(4), d[1][1].Int64())
	require.Equal(t, int64(5), d[2][0].Int64())
	require.Equal(t, int64(0), d[0][0].Int64())
}

func TestReadSMSErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want error
	}{
		{"empty", "", matrixio.ErrHeader},
		{"bad header", "3 x M\n0 0 0\n", matrixio.ErrHeader},
		{"no sentinel", "2 2 M\n1 1 3\n", matrixio.ErrTruncated},
		{"index", "2 2 M\n3 1 3\n0 0 0\n", matrixio.ErrIndex},
		{"value", "2 2 M\n1 1 abc\n0 0 0\n", matrixio.ErrEntry},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrixio.ReadSMS(strings.NewReader(tc.in))
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestReadAutoDetectsDense(t *testing.T) {
	m, err := matrixio.Read(strings.NewReader("2 3\n1 0 2\n0 -3 0\n"))
	require.NoError(t, err)
	require.Equal(t, 2, m.Rows)
	require.Equal(t, 3, m.Cols)
	require.Equal(t, 3, m.NNZ())

	_, err = matrixio.Read(strings.NewReader("2 2\n1 2 3\n"))
	require.ErrorIs(t, err, matrixio.ErrTruncated)
}

func TestSMSRoundTrip(t *testing.T) {
	src := matrixio.FromRows([][]int64{{1, 0, -7}, {0, 0, 0}, {3, 12345678901, 0}})

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteSMS(&buf, src))
	require.True(t, strings.HasPrefix(buf.String(), "3 3 M\n"))
	require.True(t, strings.HasSuffix(buf.String(), "0 0 0\n"))

	back, err := matrixio.Read(&buf)
	require.NoError(t, err)
	require.Equal(t, src.Digest(), back.Digest())
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.sms")
	require.NoError(t, os.WriteFile(path, []byte("1 2 M\n1 2 9\n0 0 0\n"), 0o600))

	m, err := matrixio.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, m.NNZ())

	_, err = matrixio.ReadFile(filepath.Join(t.TempDir(), "missing.sms"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDigestIgnoresEntryOrder(t *testing.T) {
	a, err := matrixio.NewTriplets(2, 2, []matrixio.Entry{
		{Row: 0, Col: 1, Val: big.NewInt(3)},
		{Row: 1, Col: 0, Val: big.NewInt(-1)},
	})
	require.NoError(t, err)
	b, err := matrixio.NewTriplets(2, 2, []matrixio.Entry{
		{Row: 1, Col: 0, Val: big.NewInt(-1)},
		{Row: 0, Col: 1, Val: big.NewInt(3)},
	})
	require.NoError(t, err)
	require.Equal(t, a.Digest(), b.Digest())
	require.NotEqual(t, a.Digest(), a.Transpose().Digest())

	_, err = matrixio.NewTriplets(2, 2, []matrixio.Entry{{Row: 2, Col: 0, Val: big.NewInt(1)}})
	require.ErrorIs(t, err, matrixio.ErrIndex)
}

func TestWriteNestedList(t *testing.T) {
	basis := matrixio.FromRows([][]int64{{-1}, {1}})

	var buf bytes.Buffer
	require.NoError(t, matrixio.WriteNestedList(&buf, basis))
	require.Equal(t, "[2,1,[[1,1,-1],[2,1,1]]];\n", buf.String())
}

func TestWriteCompressedSmith(t *testing.T) {
	var buf bytes.Buffer
	err := matrixio.WriteCompressedSmith(&buf, []matrixio.SmithPair{
		{Value: big.NewInt(1), Count: 2},
		{Value: big.NewInt(12), Count: 1},
		{Value: big.NewInt(0), Count: 3},
	})
	require.NoError(t, err)
	require.Equal(t, "([1,2] [12,1] [0,3])\n", buf.String())
}

func TestBlocks(t *testing.T) {
	a := matrixio.FromRows([][]int64{
		{1, 0, 2, 0},
		{0, 3, 0, 0},
		{4, 0, 0, 0},
		{0, 0, 0, 0},
	})
	blocks, err := matrixio.Blocks(context.Background(), a)
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	require.Equal(t, 2, blocks[0].Rows)
	require.Equal(t, 2, blocks[0].Cols)
	want := [][]int64{{1, 2}, {4, 0}}
	for i, row := range blocks[0].Dense() {
		for j, v := range row {
			require.Equal(t, want[i][j], v.Int64())
		}
	}

	require.Equal(t, 1, blocks[1].Rows)
	require.Equal(t, 1, blocks[1].Cols)
	require.Equal(t, int64(3), blocks[1].Entries[0].Val.Int64())

	blocks, err = matrixio.Blocks(context.Background(), matrixio.FromRows([][]int64{{0, 0}}))
	require.NoError(t, err)
	require.Empty(t, blocks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = matrixio.Blocks(ctx, a)
	require.ErrorIs(t, err, context.Canceled)
}
