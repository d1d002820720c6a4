// SPDX-License-Identifier: MIT

package smith

import (
	"context"
	"fmt"
	"math/big"
	"math/rand"
	"slices"
	"strings"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/krylov"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/ring"
)

// Squarization selects the symmetric product whose minimal polynomial
// defines the valence.
type Squarization int

const (
	// SquarizeAuto uses the smaller of A·Aᵀ and Aᵀ·A.
	SquarizeAuto Squarization = iota
	SquarizeAAT
	SquarizeATA
)

func (s Squarization) String() string {
	switch s {
	case SquarizeAAT:
		return "aat"
	case SquarizeATA:
		return "ata"
	default:
		return "auto"
	}
}

// ParseSquarization maps auto|aat|ata.
func ParseSquarization(s string) (Squarization, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return SquarizeAuto, nil
	case "aat":
		return SquarizeAAT, nil
	case "ata":
		return SquarizeATA, nil
	default:
		return SquarizeAuto, fmt.Errorf("smith: unknown squarization %q", s)
	}
}

const (
	// valenceConfirmations primes must agree on the degree of the minimal
	// polynomial before the coefficient bound may end reconstruction.
	valenceConfirmations = 2
	// valenceStable further primes leaving the reconstruction unchanged end
	// it before the bound is reached.
	valenceStable = 3
)

// valencePrimeStart is where the search for word-size primes begins.
var valencePrimeStart = new(big.Int).Lsh(big.NewInt(1), 62)

// Valence returns |c| for the trailing non-zero coefficient c of the
// minimal polynomial over Q of the chosen product of t with its transpose.
// The empty matrix has valence 1.
//
// Implementation:
//   - Stage 1: B = a·aᵀ with a = t or tᵀ, kept as a composed black box.
//   - Stage 2: minimal polynomial of B modulo primes near 2^62 from a
//     symmetric Krylov sequence; images of lower degree than the largest
//     seen come from unlucky primes or projections and are discarded.
//   - Stage 3: Chinese remaindering of the coefficients until the modulus
//     exceeds 2·(1+trace B)^d, or the symmetric reconstruction is unchanged
//     for several further primes.
//
// Complexity: O(d·nnz(t) + d²) word operations per prime for a minimal
// polynomial of degree d, over O(d·log(trace B)/62) primes.
func Valence(ctx context.Context, t *matrixio.Triplets, sq Squarization) (*big.Int, error) {
	a := squarized(t, sq)
	if a.Rows == 0 {
		return big.NewInt(1), nil
	}
	poly, err := minpolyCRT(ctx, a)
	if err != nil {
		return nil, smithErrorf("Valence", err)
	}

	return trailing(poly), nil
}

// squarized returns a with B = a·aᵀ the requested product; Auto keeps the
// smaller dimension.
func squarized(t *matrixio.Triplets, sq Squarization) *matrixio.Triplets {
	if sq == SquarizeAuto {
		sq = SquarizeAAT
		if t.Cols < t.Rows {
			sq = SquarizeATA
		}
	}
	if sq == SquarizeATA {
		return t.Transpose()
	}

	return t
}

// trailing returns |c| for the lowest non-zero coefficient, 1 if none.
func trailing(poly []*big.Int) *big.Int {
	for _, c := range poly {
		if c.Sign() != 0 {
			return new(big.Int).Abs(c)
		}
	}

	return big.NewInt(1)
}

// minpolyCRT returns the minimal polynomial over Q of B = a·aᵀ, lowest
// degree first. B is positive semidefinite, so its eigenvalues lie in
// [0, trace B] and a monic factor of degree d has coefficients bounded by
// (1+trace B)^d.
func minpolyCRT(ctx context.Context, a *matrixio.Triplets) ([]*big.Int, error) {
	tr, sq := big.NewInt(1), new(big.Int)
	var e matrixio.Entry
	for _, e = range a.Entries {
		tr.Add(tr, sq.Mul(e.Val, e.Val))
	}
	height := tr.BitLen()

	var (
		deg    = -1
		agree  int
		stable int
		res    []*big.Int
		rec    []*big.Int
		m      = new(big.Int)
		p      = new(big.Int).Set(valencePrimeStart)
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p = ring.NextPrime(p)
		image, err := minpolyModP(a, p)
		if err != nil {
			return nil, err
		}
		d := len(image) - 1
		switch {
		case d < deg:
			continue
		case d > deg:
			deg, agree, stable = d, 1, 0
			res = image
			m.Set(p)
			rec = symmetric(res, m)
		default:
			crtCombine(res, m, image, p)
			agree++
			next := symmetric(res, m)
			if slices.EqualFunc(next, rec, func(x, y *big.Int) bool { return x.Cmp(y) == 0 }) {
				stable++
			} else {
				stable = 0
			}
			rec = next
		}
		if agree >= valenceConfirmations && (m.BitLen() > deg*height+1 || stable >= valenceStable) {
			return rec, nil
		}
	}
}

// minpolyModP returns the minimal polynomial of a·aᵀ over Z/p with
// coefficients in [0, p).
func minpolyModP(a *matrixio.Triplets, p *big.Int) ([]*big.Int, error) {
	f, err := ring.NewModular[uint64](p.Uint64())
	if err != nil {
		return nil, err
	}
	op := blackbox.FromTriplets[uint64](f, a)
	b := blackbox.MustCompose[uint64](op, blackbox.NewTranspose[uint64](op))
	rng := rand.New(rand.NewSource(p.Int64()))
	u := ring.NonZeroRandomVector[uint64](f, rng, a.Rows)
	mp, err := krylov.MinpolySymmetric[uint64](b, u, krylov.DefaultEarlyTermThreshold)
	if err != nil {
		return nil, err
	}
	out := make([]*big.Int, len(mp.Poly))
	for i, c := range mp.Poly {
		out[i] = f.ToBig(c)
	}

	return out, nil
}

// crtCombine lifts res from residues mod m to residues mod m·p agreeing
// with image mod p, and multiplies m by p.
func crtCombine(res []*big.Int, m *big.Int, image []*big.Int, p *big.Int) {
	inv := new(big.Int).ModInverse(new(big.Int).Mod(m, p), p)
	t := new(big.Int)
	for i := range res {
		t.Sub(image[i], res[i])
		t.Mul(t, inv).Mod(t, p)
		res[i].Add(res[i], t.Mul(t, m))
	}
	m.Mul(m, p)
}

// symmetric maps residues in [0, m) to (-m/2, m/2].
func symmetric(res []*big.Int, m *big.Int) []*big.Int {
	half := new(big.Int).Rsh(m, 1)
	out := make([]*big.Int, len(res))
	for i, c := range res {
		out[i] = new(big.Int).Set(c)
		if c.Cmp(half) > 0 {
			out[i].Sub(out[i], m)
		}
	}

	return out
}
