package coins

import (
	"context"
	"fmt"
)

// NameBruteForce identifies the plain recursive strategy.
const NameBruteForce = "brute-force"

type bruteForceSolver struct {
	progress ProgressFunc
}

// NewBruteForce returns a Solver that tries every denomination as the last one
// used and recurses on the remainder without caching. Running time grows
// exponentially with the amount; amounts in the mid thirties with small
// denominations already take noticeable time. Pass a context with a deadline
// to bound it.
func NewBruteForce(opts ...Option) Solver {
	o := buildOptions(opts)
	return &bruteForceSolver{progress: o.progress}
}

// BruteForce runs the plain recursive strategy without diagnostics.
func BruteForce(amount int, denominations []int) (Result, error) {
	sol, err := NewBruteForce().Solve(context.Background(), amount, denominations)
	return sol.Result, err
}

func (s *bruteForceSolver) Name() string  { return NameBruteForce }
func (s *bruteForceSolver) Optimal() bool { return true }

func (s *bruteForceSolver) Solve(ctx context.Context, amount int, denominations []int) (Solution, error) {
	set, err := validate(amount, denominations)
	if err != nil {
		return Solution{}, err
	}
	if err := ctx.Err(); err != nil {
		return Solution{}, fmt.Errorf("%s: %w", NameBruteForce, err)
	}

	cp := newCheckpoint(ctx, NameBruteForce, recursionCheckpoint, s.progress)
	result := bruteForce(cp, amount, set)
	if cp.err != nil {
		return Solution{Calls: cp.done}, fmt.Errorf("%s: %w", NameBruteForce, cp.err)
	}
	return Solution{Result: result, Calls: cp.done}, nil
}

func bruteForce(cp *checkpoint, amount int, set Denominations) Result {
	if cp.tick() {
		return Unreachable
	}
	if amount == 0 {
		return Coins(0)
	}

	best := Unreachable
	for _, value := range set {
		if value > amount {
			break
		}
		best = best.min(bruteForce(cp, amount-value, set).plusOne())
	}
	return best
}
