package coins

import (
	"context"
	"strconv"
)

// Result is the outcome of a minimum-coins computation: a count of
// denominations, or Unreachable when no combination sums to the amount.
type Result struct {
	Count     int  `json:"count" yaml:"count"`
	Reachable bool `json:"reachable" yaml:"reachable"`
}

// Unreachable marks an amount that cannot be formed exactly.
var Unreachable = Result{}

// Coins returns a reachable Result holding n denominations.
func Coins(n int) Result {
	return Result{Count: n, Reachable: true}
}

// Value returns the count and whether it is meaningful.
func (r Result) Value() (int, bool) {
	return r.Count, r.Reachable
}

func (r Result) String() string {
	if !r.Reachable {
		return "unreachable"
	}
	return strconv.Itoa(r.Count)
}

// plusOne adds the denomination used on this step. Unreachable stays unreachable.
func (r Result) plusOne() Result {
	if !r.Reachable {
		return r
	}
	return Coins(r.Count + 1)
}

// min returns the smaller of two results; any reachable result beats Unreachable.
func (r Result) min(other Result) Result {
	switch {
	case !other.Reachable:
		return r
	case !r.Reachable:
		return other
	case other.Count < r.Count:
		return other
	default:
		return r
	}
}

// Solution carries a Result together with diagnostics collected while
// computing it. Fields a strategy does not produce are left zero.
type Solution struct {
	Result

	// Breakdown maps a denomination to how many times it was used.
	Breakdown map[int]int
	// Calls counts recursive invocations (recursors only).
	Calls int64
	// CacheEntries is the number of distinct sub-amounts memoized.
	CacheEntries int
	// TableSize is the length of the DP table.
	TableSize int
}

// Solver describes one strategy for the minimum coin count problem.
type Solver interface {
	// Name is the strategy's stable identifier, as accepted by Lookup.
	Name() string
	// Optimal reports whether the strategy guarantees a minimum count for
	// every denomination set.
	Optimal() bool
	// Solve computes the minimum count for amount using denominations. The
	// caller's slice is never modified.
	Solve(ctx context.Context, amount int, denominations []int) (Solution, error)
}
