// SPDX-License-Identifier: MIT

package matrixio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strconv"
	"strings"
)

// Read decodes either format, dispatching on the header: three tokens select
// SMS, two select dense.
func Read(r io.Reader) (*Triplets, error) {
	br := bufio.NewReader(r)
	hdr, err := headerTokens(br)
	if err != nil {
		return nil, ioErrorf("Read", err)
	}
	switch len(hdr) {
	case 3:
		return readSMSBody(br, hdr)
	case 2:
		return readDenseBody(br, hdr)
	default:
		return nil, ioErrorf("Read", fmt.Errorf("%w: %d header tokens", ErrHeader, len(hdr)))
	}
}

// ReadFile opens path and decodes it with Read.
func ReadFile(path string) (*Triplets, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open matrix: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// ReadSMS decodes the sparse triplet format.
func ReadSMS(r io.Reader) (*Triplets, error) {
	br := bufio.NewReader(r)
	hdr, err := headerTokens(br)
	if err != nil {
		return nil, ioErrorf("ReadSMS", err)
	}
	if len(hdr) != 3 {
		return nil, ioErrorf("ReadSMS", fmt.Errorf("%w: want \"rows cols TYPE\"", ErrHeader))
	}

	return readSMSBody(br, hdr)
}

// ReadDense decodes the dense row-major format.
func ReadDense(r io.Reader) (*Triplets, error) {
	br := bufio.NewReader(r)
	hdr, err := headerTokens(br)
	if err != nil {
		return nil, ioErrorf("ReadDense", err)
	}
	if len(hdr) != 2 {
		return nil, ioErrorf("ReadDense", fmt.Errorf("%w: want \"rows cols\"", ErrHeader))
	}

	return readDenseBody(br, hdr)
}

// headerTokens returns the tokens of the first line that is neither blank
// nor a '%' comment.
func headerTokens(br *bufio.Reader) ([]string, error) {
	for {
		line, err := br.ReadString('\n')
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "%") {
			return strings.Fields(trimmed), nil
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, ErrHeader
			}
			return nil, err
		}
	}
}

func parseShape(hdr []string) (rows, cols int, err error) {
	rows, err = strconv.Atoi(hdr[0])
	if err != nil || rows < 0 {
		return 0, 0, fmt.Errorf("%w: rows %q", ErrHeader, hdr[0])
	}
	cols, err = strconv.Atoi(hdr[1])
	if err != nil || cols < 0 {
		return 0, 0, fmt.Errorf("%w: cols %q", ErrHeader, hdr[1])
	}

	return rows, cols, nil
}

func readSMSBody(br *bufio.Reader, hdr []string) (*Triplets, error) {
	rows, cols, err := parseShape(hdr)
	if err != nil {
		return nil, ioErrorf("ReadSMS", err)
	}
	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	t := &Triplets{Rows: rows, Cols: cols}
	var tok [3]string
	var k, i, j int
	for {
		for k = range tok {
			if !sc.Scan() {
				if err = sc.Err(); err != nil {
					return nil, ioErrorf("ReadSMS", err)
				}
				return nil, ioErrorf("ReadSMS", ErrTruncated)
			}
			tok[k] = sc.Text()
		}
		i, err = strconv.Atoi(tok[0])
		if err != nil {
			return nil, ioErrorf("ReadSMS", fmt.Errorf("%w: row %q", ErrEntry, tok[0]))
		}
		j, err = strconv.Atoi(tok[1])
		if err != nil {
			return nil, ioErrorf("ReadSMS", fmt.Errorf("%w: col %q", ErrEntry, tok[1]))
		}
		if i == 0 && j == 0 {
			break
		}
		if i < 1 || i > rows || j < 1 || j > cols {
			return nil, ioErrorf("ReadSMS", fmt.Errorf("%w: (%d,%d) in %dx%d", ErrIndex, i, j, rows, cols))
		}
		v, ok := new(big.Int).SetString(tok[2], 10)
		if !ok {
			return nil, ioErrorf("ReadSMS", fmt.Errorf("%w: value %q", ErrEntry, tok[2]))
		}
		t.Entries = append(t.Entries, Entry{Row: i - 1, Col: j - 1, Val: v})
	}
	t.normalize()

	return t, nil
}

func readDenseBody(br *bufio.Reader, hdr []string) (*Triplets, error) {
	rows, cols, err := parseShape(hdr)
	if err != nil {
		return nil, ioErrorf("ReadDense", err)
	}
	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	t := &Triplets{Rows: rows, Cols: cols}
	var i, j int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if !sc.Scan() {
				if err = sc.Err(); err != nil {
					return nil, ioErrorf("ReadDense", err)
				}
				return nil, ioErrorf("ReadDense", ErrTruncated)
			}
			v, ok := new(big.Int).SetString(sc.Text(), 10)
			if !ok {
				return nil, ioErrorf("ReadDense", fmt.Errorf("%w: value %q", ErrEntry, sc.Text()))
			}
			if v.Sign() != 0 {
				t.Entries = append(t.Entries, Entry{Row: i, Col: j, Val: v})
			}
		}
	}

	return t, nil
}
