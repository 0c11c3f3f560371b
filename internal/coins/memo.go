package coins

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// NameMemoized identifies the recursive strategy with memoization.
const NameMemoized = "memoized"

// MemoCache maps a remaining amount to its minimum count for one denomination
// set. A cache remembers which set filled it and empties itself when used with
// a different one. It is not safe for concurrent use.
type MemoCache struct {
	fingerprint uint64
	entries     map[int]Result
}

// NewMemoCache returns an empty cache.
func NewMemoCache() *MemoCache {
	return &MemoCache{entries: make(map[int]Result)}
}

// Len returns the number of distinct sub-amounts stored.
func (c *MemoCache) Len() int {
	return len(c.entries)
}

// Reset drops every entry.
func (c *MemoCache) Reset() {
	c.fingerprint = 0
	clear(c.entries)
}

func (c *MemoCache) bind(set Denominations) {
	fp := fingerprint(set)
	if c.entries == nil {
		c.entries = make(map[int]Result)
	}
	if fp != c.fingerprint {
		clear(c.entries)
		c.fingerprint = fp
	}
}

func (c *MemoCache) lookup(amount int) (Result, bool) {
	r, ok := c.entries[amount]
	return r, ok
}

func (c *MemoCache) store(amount int, r Result) {
	c.entries[amount] = r
}

// fingerprint hashes a normalized set. Zero is reserved for an unbound cache.
func fingerprint(set Denominations) uint64 {
	buf := make([]byte, 0, len(set)*8)
	for _, value := range set {
		buf = binary.LittleEndian.AppendUint64(buf, uint64(value))
	}
	fp := xxhash.Sum64(buf)
	if fp == 0 {
		fp = 1
	}
	return fp
}

type memoizedSolver struct {
	progress ProgressFunc
	shared   *MemoCache
}

// NewMemoized returns a Solver using the brute-force recurrence but solving
// each remaining amount at most once per call. A fresh cache is used for every
// Solve unless WithCache supplies one.
func NewMemoized(opts ...Option) Solver {
	o := buildOptions(opts)
	return &memoizedSolver{progress: o.progress, shared: o.cache}
}

// Memoized runs the memoized strategy without diagnostics.
func Memoized(amount int, denominations []int) (Result, error) {
	sol, err := NewMemoized().Solve(context.Background(), amount, denominations)
	return sol.Result, err
}

func (s *memoizedSolver) Name() string  { return NameMemoized }
func (s *memoizedSolver) Optimal() bool { return true }

func (s *memoizedSolver) Solve(ctx context.Context, amount int, denominations []int) (Solution, error) {
	set, err := validate(amount, denominations)
	if err != nil {
		return Solution{}, err
	}
	if err := ctx.Err(); err != nil {
		return Solution{}, fmt.Errorf("%s: %w", NameMemoized, err)
	}

	cache := s.shared
	if cache == nil {
		cache = NewMemoCache()
	}
	cache.bind(set)

	cp := newCheckpoint(ctx, NameMemoized, recursionCheckpoint, s.progress)
	result := memoized(cp, cache, amount, set)
	if cp.err != nil {
		// Entries written after cancellation may be incomplete.
		cache.Reset()
		return Solution{Calls: cp.done}, fmt.Errorf("%s: %w", NameMemoized, cp.err)
	}
	return Solution{Result: result, Calls: cp.done, CacheEntries: cache.Len()}, nil
}

func memoized(cp *checkpoint, cache *MemoCache, amount int, set Denominations) Result {
	if cp.tick() {
		return Unreachable
	}
	if amount == 0 {
		return Coins(0)
	}
	if r, ok := cache.lookup(amount); ok {
		return r
	}

	best := Unreachable
	for _, value := range set {
		if value > amount {
			break
		}
		best = best.min(memoized(cp, cache, amount-value, set).plusOne())
	}
	if cp.err != nil {
		return Unreachable
	}
	cache.store(amount, best)
	return best
}
