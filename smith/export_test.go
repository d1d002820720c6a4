// SPDX-License-Identifier: MIT

package smith

import (
	"context"
	"fmt"
	"math/big"

	"github.com/katalvlaran/exactla/matrixio"
)

// ExportedExactValence computes the valence from the exact minimal
// polynomial over Q, without modular reduction. Small inputs only.
var ExportedExactValence = exactValence

func exactValence(ctx context.Context, t *matrixio.Triplets, sq Squarization) (*big.Int, error) {
	poly, err := minpolyExact(ctx, denseGram(squarized(t, sq)))
	if err != nil {
		return nil, err
	}

	return trailing(poly), nil
}

// denseGram returns a·aᵀ as a dense integer matrix.
func denseGram(a *matrixio.Triplets) [][]*big.Int {
	d := a.Dense()
	k := len(d)
	out := make([][]*big.Int, k)
	for i := range out {
		out[i] = make([]*big.Int, k)
	}
	t := new(big.Int)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			s := new(big.Int)
			for c := range d[i] {
				s.Add(s, t.Mul(d[i][c], d[j][c]))
			}
			out[i][j], out[j][i] = s, s
		}
	}

	return out
}

// minpolyExact finds the first linear relation among vec(I), vec(b),
// vec(b²), ... over Q, tracking the combination behind each reduced power.
func minpolyExact(ctx context.Context, b [][]*big.Int) ([]*big.Int, error) {
	k := len(b)
	if k == 0 {
		return []*big.Int{big.NewInt(1)}, nil
	}
	type relation struct {
		vec   []*big.Rat
		comb  []*big.Rat
		pivot int
	}
	var (
		basis []relation
		power = identity(k)
		f     = new(big.Rat)
		t     = new(big.Rat)
	)
	for d := 0; d <= k; d++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		vec := flatten(power)
		comb := make([]*big.Rat, d+1)
		for i := range comb {
			comb[i] = new(big.Rat)
		}
		comb[d].SetInt64(1)

		for _, r := range basis {
			if vec[r.pivot].Sign() == 0 {
				continue
			}
			f.Quo(vec[r.pivot], r.vec[r.pivot])
			for i := range vec {
				if r.vec[i].Sign() != 0 {
					vec[i].Sub(vec[i], t.Mul(f, r.vec[i]))
				}
			}
			for i := range r.comb {
				comb[i].Sub(comb[i], t.Mul(f, r.comb[i]))
			}
		}

		pivot := -1
		for i := range vec {
			if vec[i].Sign() != 0 {
				pivot = i
				break
			}
		}
		if pivot < 0 {
			poly := make([]*big.Int, d+1)
			for i, c := range comb {
				if !c.IsInt() {
					return nil, fmt.Errorf("smith: non-integral coefficient %s", c)
				}
				poly[i] = new(big.Int).Set(c.Num())
			}
			return poly, nil
		}
		basis = append(basis, relation{vec: vec, comb: comb, pivot: pivot})
		power = mul(power, b)
	}

	return nil, fmt.Errorf("smith: no relation among %d powers", k+1)
}

func identity(k int) [][]*big.Int {
	out := make([][]*big.Int, k)
	for i := range out {
		out[i] = make([]*big.Int, k)
		for j := range out[i] {
			out[i][j] = new(big.Int)
		}
		out[i][i].SetInt64(1)
	}

	return out
}

func flatten(m [][]*big.Int) []*big.Rat {
	out := make([]*big.Rat, 0, len(m)*len(m))
	for _, row := range m {
		for _, v := range row {
			out = append(out, new(big.Rat).SetInt(v))
		}
	}

	return out
}

func mul(a, b [][]*big.Int) [][]*big.Int {
	k := len(a)
	out := make([][]*big.Int, k)
	t := new(big.Int)
	for i := 0; i < k; i++ {
		out[i] = make([]*big.Int, k)
		for j := 0; j < k; j++ {
			s := new(big.Int)
			for l := 0; l < k; l++ {
				if a[i][l].Sign() != 0 && b[l][j].Sign() != 0 {
					s.Add(s, t.Mul(a[i][l], b[l][j]))
				}
			}
			out[i][j] = s
		}
	}

	return out
}
