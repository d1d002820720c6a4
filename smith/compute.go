// SPDX-License-Identifier: MIT

package smith

import (
	"context"
	"math/big"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/modrank"
	"github.com/katalvlaran/exactla/rankcache"
	"github.com/katalvlaran/exactla/report"
)

// Option configures Compute.
type Option func(*options)

type options struct {
	workers     int
	loops       int
	maxExponent int
	valence     *big.Int
	coprime     *big.Int
	squarize    Squarization
	obs         report.Observer
	cache       rankcache.Cache
}

// WithWorkers bounds both worker pools. Panics on n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("smith: WithWorkers: n must be >= 1")
	}
	return func(o *options) { o.workers = n }
}

// WithFactorLoops sets the number of Pollard–Brent iterations.
func WithFactorLoops(n int) Option {
	return func(o *options) { o.loops = n }
}

// WithMaxExponent caps the prime power climbed per prime.
func WithMaxExponent(e int) Option {
	return func(o *options) { o.maxExponent = e }
}

// WithValence skips the valence computation and uses v.
func WithValence(v *big.Int) Option {
	return func(o *options) { o.valence = v }
}

// WithCoprime uses c as the prime coprime to the valence.
func WithCoprime(c *big.Int) Option {
	return func(o *options) { o.coprime = c }
}

// WithSquarization picks the product used for the valence.
func WithSquarization(s Squarization) Option {
	return func(o *options) { o.squarize = s }
}

func WithObserver(obs report.Observer) Option {
	return func(o *options) { o.obs = report.OrNop(obs) }
}

// WithCache memoizes every modular rank computation in c.
func WithCache(c rankcache.Cache) Option {
	return func(o *options) { o.cache = c }
}

// Result is the Smith form of a rows×cols integer matrix. Diagonal holds
// the Rank non-zero invariants; the remaining min(Rows, Cols) − Rank are 0.
type Result struct {
	Diagonal     []*big.Int
	Rank         int
	Rows, Cols   int
	Valence      *big.Int
	Primes       []*big.Int
	Exponents    []int
	CoprimePrime *big.Int
	// PowerRanks[i] is the rank sequence for Primes[i], nil when skipped.
	PowerRanks [][]int
}

// Compressed returns the run-length form of the full diagonal.
func (r *Result) Compressed() []matrixio.SmithPair {
	return Compressed(r.Diagonal, r.Rows, r.Cols)
}

// Compute returns the Smith normal form of the matrix behind src.
//
// Implementation:
//   - Stage 1: valence, its factorization and a coprime prime.
//   - Stage 2: ranks modulo every valence prime and the coprime prime on a
//     bounded pool; the pool's Wait is the barrier.
//   - Stage 3: AllPowersRanks per prime on a bounded pool, each task writing
//     its own slot.
//   - Stage 4: sequential assembly with PopulateSmithForm.
//
// Complexity: dominated by the valence (see Valence) and by one local
// elimination sequence per valence prime whose rank mod p is below the
// integer rank; the stage 2 ranks are O(r·(nnz + fill-in)) word operations
// each.
func Compute(ctx context.Context, src modrank.Source, opts ...Option) (*Result, error) {
	o := options{
		workers:     runtime.GOMAXPROCS(0),
		loops:       DefaultFactorLoops,
		maxExponent: DefaultMaxExponent,
		obs:         report.Nop,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if src == nil {
		return nil, smithErrorf("Compute", modrank.ErrNilSource)
	}
	t, err := src.Load(ctx)
	if err != nil {
		return nil, smithErrorf("Compute", err)
	}
	done := report.Span(o.obs, "smith.Compute", "rows", t.Rows, "cols", t.Cols, "nnz", t.NNZ())
	status := "failed"
	defer func() { done(status) }()

	// Stage 1
	v := o.valence
	if v == nil {
		if v, err = Valence(ctx, t, o.squarize); err != nil {
			return nil, err
		}
	}
	if v.Sign() <= 0 {
		return nil, smithErrorf("Compute", ErrBadValence)
	}
	o.obs.Info("valence", "value", v)
	fz, err := Factor(v, o.loops)
	if err != nil {
		return nil, err
	}
	if !fz.Complete() {
		o.obs.Error("valence factorization incomplete", "cofactor", fz.Cofactor)
		return nil, smithErrorf("Compute", ErrIncompleteFactorization)
	}
	c := o.coprime
	if c == nil {
		if c, err = CoprimePrime(v); err != nil {
			return nil, err
		}
	} else if !c.ProbablyPrime(primalityRounds) || new(big.Int).Mod(v, c).Sign() == 0 {
		return nil, smithErrorf("Compute", ErrNotCoprime)
	}
	o.obs.Debug("valence factored", "primes", fz.Primes, "exponents", fz.Exponents, "coprime", c)

	pl, err := modrank.New(modrank.NewMemorySource(t),
		modrank.WithObserver(o.obs), modrank.WithWorkers(o.workers), modrank.WithCache(o.cache))
	if err != nil {
		return nil, smithErrorf("Compute", err)
	}

	// Stage 2
	moduli := append(append([]*big.Int(nil), fz.Primes...), c)
	ranks, err := pl.RanksAt(ctx, moduli)
	if err != nil {
		return nil, smithErrorf("Compute", err)
	}
	coprimeRank := ranks[len(ranks)-1]
	o.obs.Info("integer rank", "rank", coprimeRank, "modulus", c)

	// Stage 3
	power := make([][]int, len(fz.Primes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i := range fz.Primes {
		g.Go(func() error {
			seq, err := AllPowersRanks(gctx, pl, fz.Primes[i], ranks[i], fz.Exponents[i], coprimeRank, o.maxExponent)
			if err != nil {
				return err
			}
			power[i] = seq
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	// Stage 4
	diag := make([]*big.Int, coprimeRank)
	for i := range diag {
		diag[i] = big.NewInt(1)
	}
	for i, p := range fz.Primes {
		if ranks[i] == coprimeRank {
			continue
		}
		diag = PopulateSmithForm(diag, power[i], p, ranks[i], coprimeRank)
	}
	status = "ok"

	return &Result{
		Diagonal:     diag,
		Rank:         coprimeRank,
		Rows:         t.Rows,
		Cols:         t.Cols,
		Valence:      v,
		Primes:       fz.Primes,
		Exponents:    fz.Exponents,
		CoprimePrime: c,
		PowerRanks:   power,
	}, nil
}
