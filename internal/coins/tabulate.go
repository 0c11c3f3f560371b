package coins

import (
	"context"
	"fmt"
)

// NameBottomUp identifies the iterative dynamic programming strategy.
const NameBottomUp = "bottom-up"

// unreachable marks a table cell no combination has reached yet.
const unreachable = -1

type bottomUpSolver struct {
	progress ProgressFunc
}

// NewBottomUp returns a Solver that fills a table of minimum counts for every
// amount from 0 up to the target.
func NewBottomUp(opts ...Option) Solver {
	o := buildOptions(opts)
	return &bottomUpSolver{progress: o.progress}
}

// BottomUp runs the tabulating strategy without diagnostics.
func BottomUp(amount int, denominations []int) (Result, error) {
	sol, err := NewBottomUp().Solve(context.Background(), amount, denominations)
	return sol.Result, err
}

func (s *bottomUpSolver) Name() string  { return NameBottomUp }
func (s *bottomUpSolver) Optimal() bool { return true }

func (s *bottomUpSolver) Solve(ctx context.Context, amount int, denominations []int) (Solution, error) {
	set, err := validate(amount, denominations)
	if err != nil {
		return Solution{}, err
	}
	if err := ctx.Err(); err != nil {
		return Solution{}, fmt.Errorf("%s: %w", NameBottomUp, err)
	}

	table := make([]int, amount+1)
	choice := make([]int, amount+1)
	for i := 1; i <= amount; i++ {
		table[i] = unreachable
	}

	cp := newCheckpoint(ctx, NameBottomUp, rowCheckpoint, s.progress)
	for i := 1; i <= amount; i++ {
		if cp.tick() {
			return Solution{TableSize: len(table)}, fmt.Errorf("%s: %w", NameBottomUp, cp.err)
		}
		for _, value := range set {
			if value > i {
				break
			}
			prev := table[i-value]
			if prev == unreachable {
				continue
			}
			if table[i] == unreachable || prev+1 < table[i] {
				table[i] = prev + 1
				choice[i] = value
			}
		}
	}

	sol := Solution{TableSize: len(table)}
	if table[amount] == unreachable {
		sol.Result = Unreachable
		return sol, nil
	}

	sol.Result = Coins(table[amount])
	sol.Breakdown = make(map[int]int, len(set))
	for remaining := amount; remaining > 0; remaining -= choice[remaining] {
		sol.Breakdown[choice[remaining]]++
	}
	return sol, nil
}
