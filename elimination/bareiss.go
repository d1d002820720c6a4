// SPDX-License-Identifier: MIT

package elimination

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/exactla/ring"
)

func copyBig(rows [][]*big.Int) [][]*big.Int {
	out := make([][]*big.Int, len(rows))
	var i, j int
	for i = range rows {
		out[i] = make([]*big.Int, len(rows[i]))
		for j = range rows[i] {
			out[i][j] = new(big.Int).Set(rows[i][j])
		}
	}

	return out
}

// bareiss runs fraction-free elimination in place and returns the rank and
// the number of row swaps. After step k every active entry is a
// (k+1)×(k+1) minor of the input, so the division by the previous pivot is
// exact. The last pivot is the determinant up to sign when a is square
// and non-singular.
func bareiss(a [][]*big.Int, n int) (rank, swaps int, last *big.Int) {
	var (
		m       = len(a)
		prev    = big.NewInt(1)
		i, j, c int
		t       = new(big.Int)
	)
	for c = 0; c < n && rank < m; c++ {
		i = rank
		for i < m && a[i][c].Sign() == 0 {
			i++
		}
		if i == m {
			continue
		}
		if i != rank {
			a[i], a[rank] = a[rank], a[i]
			swaps++
		}
		p := a[rank][c]
		for i = rank + 1; i < m; i++ {
			for j = c + 1; j < n; j++ {
				// a[i][j] = (p·a[i][j] - a[i][c]·a[rank][j]) / prev
				t.Mul(a[i][c], a[rank][j])
				a[i][j].Mul(p, a[i][j])
				a[i][j].Sub(a[i][j], t)
				a[i][j].Quo(a[i][j], prev)
			}
			a[i][c].SetInt64(0)
		}
		prev = p
		rank++
	}

	return rank, swaps, prev
}

// BareissDet returns the determinant of a square integer matrix.
//
// Complexity: O(n³) exact divisions on integers no larger than the
// Hadamard bound of the leading minors.
func BareissDet(rows [][]*big.Int) (*big.Int, error) {
	n, err := checkRows(rows)
	if err != nil {
		return nil, eliminationErrorf(opBareissDet, err)
	}
	if n != len(rows) {
		return nil, eliminationErrorf(opBareissDet, fmt.Errorf("%w: %dx%d", ErrNonSquare, len(rows), n))
	}
	if n == 0 {
		return big.NewInt(1), nil
	}
	rank, swaps, last := bareiss(copyBig(rows), n)
	if rank < n {
		return new(big.Int), nil
	}
	det := new(big.Int).Set(last)
	if swaps%2 == 1 {
		det.Neg(det)
	}

	return det, nil
}

// BareissRank returns the rank over Q of an integer matrix.
func BareissRank(rows [][]*big.Int) (int, error) {
	n, err := checkRows(rows)
	if err != nil {
		return 0, eliminationErrorf(opBareissRank, err)
	}
	rank, _, _ := bareiss(copyBig(rows), n)

	return rank, nil
}

// IntegerNullspaceBasis returns an n×k integer matrix (as rows) whose k
// columns form a basis of the rational kernel of the m×n input. Each column
// is the reduced-echelon basis vector scaled to a primitive integer vector
// (content 1, positive on its free coordinate).
func IntegerNullspaceBasis(rows [][]*big.Int) ([][]*big.Int, error) {
	n, err := checkRows(rows)
	if err != nil {
		return nil, eliminationErrorf(opIntNull, err)
	}
	q := ring.NewRationals()
	rat := make([][]*big.Rat, len(rows))
	var i, j, k int
	for i = range rows {
		rat[i] = make([]*big.Rat, n)
		for j = range rows[i] {
			rat[i][j] = new(big.Rat).SetInt(rows[i][j])
		}
	}
	res, err := ReducedRowEchelon[*big.Rat](q, rat)
	if err != nil {
		return nil, eliminationErrorf(opIntNull, err)
	}
	free := freeColumns(n, res.Pivots)
	out := make([][]*big.Int, n)
	for i = range out {
		out[i] = make([]*big.Int, len(free))
		for k = range out[i] {
			out[i][k] = new(big.Int)
		}
	}

	col := make([]*big.Rat, n)
	for k = range free {
		for i = range col {
			col[i] = new(big.Rat)
		}
		col[free[k]].SetInt64(1)
		for i = 0; i < res.Rank; i++ {
			col[res.Pivots[i]].Neg(res.Rows[i][free[k]])
		}
		prim := primitive(col)
		for i = range prim {
			out[i][k] = prim[i]
		}
	}

	return out, nil
}

// primitive scales a rational vector by the lcm of its denominators and
// divides out the gcd of the resulting numerators.
func primitive(v []*big.Rat) []*big.Int {
	lcm := big.NewInt(1)
	g := new(big.Int)
	for _, x := range v {
		d := x.Denom()
		g.GCD(nil, nil, lcm, d)
		lcm.Mul(lcm, new(big.Int).Quo(d, g))
	}
	out := make([]*big.Int, len(v))
	content := new(big.Int)
	for i, x := range v {
		out[i] = new(big.Int).Mul(x.Num(), new(big.Int).Quo(lcm, x.Denom()))
		content.GCD(nil, nil, content, new(big.Int).Abs(out[i]))
	}
	if content.Sign() > 0 && content.Cmp(big.NewInt(1)) != 0 {
		for i := range out {
			out[i].Quo(out[i], content)
		}
	}

	return out
}
