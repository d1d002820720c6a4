// SPDX-License-Identifier: MIT

package modrank

import (
	"context"
	"fmt"
	"math/big"
	"runtime"

	"github.com/holiman/uint256"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/exactla/blackbox"
	"github.com/katalvlaran/exactla/elimination"
	"github.com/katalvlaran/exactla/matrixio"
	"github.com/katalvlaran/exactla/rankcache"
	"github.com/katalvlaran/exactla/report"
	"github.com/katalvlaran/exactla/ring"
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver routes progress reporting to obs.
func WithObserver(obs report.Observer) Option {
	return func(p *Pipeline) { p.obs = report.OrNop(obs) }
}

// WithCache consults c before every computation and fills it afterwards.
func WithCache(c rankcache.Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithWorkers bounds the concurrency of RanksAt. Panics on n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("modrank: WithWorkers: n must be >= 1")
	}
	return func(p *Pipeline) { p.workers = n }
}

// Pipeline computes modular ranks of the matrix behind a Source.
type Pipeline struct {
	src     Source
	obs     report.Observer
	cache   rankcache.Cache
	workers int
}

// New returns a pipeline over src.
func New(src Source, opts ...Option) (*Pipeline, error) {
	if src == nil {
		return nil, modrankErrorf("New", ErrNilSource)
	}
	p := &Pipeline{src: src, obs: report.Nop, workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// PowerResult is the rank sequence of A modulo p^Exponent.
type PowerResult struct {
	// Ranks[k] is the number of Smith invariants of A with p-valuation at
	// most k, for k < Exponent. Nil when nothing was computed.
	Ranks []int
	// Exponent is the exponent actually used.
	Exponent int
	// Clamped is true when Exponent is below the requested one.
	Clamped bool
	Width   Width
}

// Done reports whether a rank sequence was computed.
func (r PowerResult) Done() bool { return r.Ranks != nil }

// Rank returns the rank of A modulo the prime p.
func (pl *Pipeline) Rank(ctx context.Context, p *big.Int) (int, error) {
	if !ring.IsPrime(p) {
		return 0, modrankErrorf("Rank", fmt.Errorf("%w: %s", ErrNotPrime, p))
	}
	t, err := pl.src.Load(ctx)
	if err != nil {
		return 0, modrankErrorf("Rank", err)
	}
	key := rankcache.Key(t.Digest(), p, 0)
	if ranks, ok := pl.lookup(key); ok && len(ranks) == 1 {
		return ranks[0], nil
	}

	w := SelectWidth(p)
	done := report.Span(pl.obs, "modrank.rank", "p", p, "width", w, "source", pl.src.Name())
	r, err := blockRank(ctx, t, p, w)
	if err != nil {
		done("error")
		return 0, modrankErrorf("Rank", err)
	}
	computations.WithLabelValues("rank", w.String()).Inc()
	done("ok")
	pl.obs.Info("rank", "p", p, "rank", r, "width", w)
	pl.store(key, []int{r})

	return r, nil
}

// PowerRanks returns the rank sequence of A modulo p^e in fixed-width
// storage. When p^e does not fit 256 bits the exponent is clamped to the
// largest that does; a clamp down to 1 or below computes nothing and
// returns a result with nil Ranks and Exponent 1.
//
// Complexity: one local elimination per diagonal block, O(r·(nnz +
// fill-in)) operations in Z/p^e each.
func (pl *Pipeline) PowerRanks(ctx context.Context, p *big.Int, e int) (PowerResult, error) {
	if e < 1 {
		return PowerResult{}, modrankErrorf("PowerRanks", ErrExponent)
	}
	if !ring.IsPrime(p) {
		return PowerResult{}, modrankErrorf("PowerRanks", fmt.Errorf("%w: %s", ErrNotPrime, p))
	}
	eff := ClampExponent(p, e)
	res := PowerResult{Exponent: eff, Clamped: eff < e}
	if res.Clamped {
		clamps.Inc()
		if eff <= 1 {
			pl.obs.Warn("prime power exceeds fixed-width storage even for the prime, nothing done", "p", p, "e", e)
			return PowerResult{Exponent: 1, Clamped: true, Width: Arbitrary}, nil
		}
		pl.obs.Info("prime power clamped to fixed-width storage", "p", p, "requested", e, "exponent", eff)
	}
	res.Width = SelectWidth(ring.Pow(p, eff))

	ranks, err := pl.powerRanks(ctx, p, eff, res.Width)
	if err != nil {
		return PowerResult{}, modrankErrorf("PowerRanks", err)
	}
	res.Ranks = ranks

	return res, nil
}

// PowerRanksArbitrary returns the rank sequence of A modulo p^e in
// arbitrary precision; it never clamps.
func (pl *Pipeline) PowerRanksArbitrary(ctx context.Context, p *big.Int, e int) (PowerResult, error) {
	if e < 1 {
		return PowerResult{}, modrankErrorf("PowerRanksArbitrary", ErrExponent)
	}
	if !ring.IsPrime(p) {
		return PowerResult{}, modrankErrorf("PowerRanksArbitrary", fmt.Errorf("%w: %s", ErrNotPrime, p))
	}
	ranks, err := pl.powerRanks(ctx, p, e, Arbitrary)
	if err != nil {
		return PowerResult{}, modrankErrorf("PowerRanksArbitrary", err)
	}

	return PowerResult{Ranks: ranks, Exponent: e, Width: Arbitrary}, nil
}

func (pl *Pipeline) powerRanks(ctx context.Context, p *big.Int, e int, w Width) ([]int, error) {
	t, err := pl.src.Load(ctx)
	if err != nil {
		return nil, err
	}
	key := rankcache.Key(t.Digest(), p, e)
	if ranks, ok := pl.lookup(key); ok && len(ranks) == e {
		return ranks, nil
	}

	done := report.Span(pl.obs, "modrank.powerRanks", "p", p, "e", e, "width", w, "source", pl.src.Name())
	ranks, err := blockPowerRanks(ctx, t, p, e, w)
	if err != nil {
		done("error")
		return nil, err
	}
	computations.WithLabelValues("power", w.String()).Inc()
	done("ok")
	pl.obs.Info("power ranks", "p", p, "e", e, "ranks", ranks, "width", w)
	pl.store(key, ranks)

	return ranks, nil
}

// RanksAt computes the rank modulo each prime concurrently, at most
// WithWorkers at a time. out[i] belongs to primes[i].
//
// Complexity: len(primes) sparse eliminations, O(r·(nnz + fill-in)) each.
func (pl *Pipeline) RanksAt(ctx context.Context, primes []*big.Int) ([]int, error) {
	out := make([]int, len(primes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pl.workers)
	for i := range primes {
		g.Go(func() error {
			r, err := pl.Rank(gctx, primes[i])
			if err != nil {
				return err
			}
			out[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (pl *Pipeline) lookup(key []byte) ([]int, bool) {
	if pl.cache == nil {
		return nil, false
	}
	ranks, ok, err := pl.cache.Get(key)
	if err != nil {
		pl.obs.Warn("rank cache read failed", "err", err)
		return nil, false
	}
	if ok {
		cacheLookups.WithLabelValues("hit").Inc()
	} else {
		cacheLookups.WithLabelValues("miss").Inc()
	}

	return ranks, ok
}

func (pl *Pipeline) store(key []byte, ranks []int) {
	if pl.cache == nil {
		return
	}
	if err := pl.cache.Put(key, ranks); err != nil {
		pl.obs.Warn("rank cache write failed", "err", err)
	}
}

// blockRank sums the ranks of the diagonal blocks of t.
func blockRank(ctx context.Context, t *matrixio.Triplets, p *big.Int, w Width) (int, error) {
	blocks, err := matrixio.Blocks(ctx, t)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, b := range blocks {
		r, err := rankAt(b, p, w)
		if err != nil {
			return 0, err
		}
		total += r
	}

	return total, nil
}

// blockPowerRanks adds up the rank sequences of the diagonal blocks of t;
// invariant counts per valuation are additive over a direct sum.
func blockPowerRanks(ctx context.Context, t *matrixio.Triplets, p *big.Int, e int, w Width) ([]int, error) {
	blocks, err := matrixio.Blocks(ctx, t)
	if err != nil {
		return nil, err
	}
	out := make([]int, e)
	for _, b := range blocks {
		if err = ctx.Err(); err != nil {
			return nil, err
		}
		seq, err := powerRanksAt(b, p, e, w)
		if err != nil {
			return nil, err
		}
		for k := range out {
			out[k] += seq[k]
		}
	}

	return out, nil
}

// rankAt runs sparse elimination over Z/p in width w.
func rankAt(t *matrixio.Triplets, p *big.Int, w Width) (int, error) {
	switch w {
	case W16:
		f, err := ring.NewModular[uint16](p.Uint64())
		if err != nil {
			return 0, err
		}
		return rankIn[uint16](f, t)
	case W32:
		f, err := ring.NewModular[uint32](p.Uint64())
		if err != nil {
			return 0, err
		}
		return rankIn[uint32](f, t)
	case W64:
		f, err := ring.NewModular[uint64](p.Uint64())
		if err != nil {
			return 0, err
		}
		return rankIn[uint64](f, t)
	case W256:
		f, err := ring.NewWide(p)
		if err != nil {
			return 0, err
		}
		return rankIn[uint256.Int](f, t)
	default:
		f, err := ring.NewModularBig(p)
		if err != nil {
			return 0, err
		}
		return rankIn[*big.Int](f, t)
	}
}

func rankIn[E any](f ring.Ring[E], t *matrixio.Triplets) (int, error) {
	return elimination.SparseRank(blackbox.FromTriplets(f, t))
}

// powerRanksAt runs local elimination over Z/p^e in width w.
func powerRanksAt(t *matrixio.Triplets, p *big.Int, e int, w Width) ([]int, error) {
	switch w {
	case W16:
		l, err := ring.NewModularPower[uint16](p.Uint64(), e)
		if err != nil {
			return nil, err
		}
		return powerRanksIn[uint16](l, t)
	case W32:
		l, err := ring.NewModularPower[uint32](p.Uint64(), e)
		if err != nil {
			return nil, err
		}
		return powerRanksIn[uint32](l, t)
	case W64:
		l, err := ring.NewModularPower[uint64](p.Uint64(), e)
		if err != nil {
			return nil, err
		}
		return powerRanksIn[uint64](l, t)
	case W256:
		l, err := ring.NewWidePower(p, e)
		if err != nil {
			return nil, err
		}
		return powerRanksIn[uint256.Int](l, t)
	default:
		l, err := ring.NewModularBigPower(p, e)
		if err != nil {
			return nil, err
		}
		return powerRanksIn[*big.Int](l, t)
	}
}

func powerRanksIn[E any](l ring.Local[E], t *matrixio.Triplets) ([]int, error) {
	return elimination.LocalRanks(l, blackbox.FromTriplets[E](l, t))
}
