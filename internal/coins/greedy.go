package coins

import "context"

// NameGreedy identifies the greedy strategy.
const NameGreedy = "greedy"

type greedySolver struct{}

// NewGreedy returns a Solver that repeatedly takes the largest denomination
// that still fits.
//
// The count is minimal only for canonical systems such as {1, 5, 10, 25}. For
// {1, 3, 4} and amount 6 it answers 3 (4+1+1) where 2 (3+3) exists. When the
// remainder cannot be brought to exactly zero the result is Unreachable, even
// if some other combination would have worked (6 with {3, 4}).
func NewGreedy(...Option) Solver {
	return greedySolver{}
}

// Greedy runs the greedy strategy without diagnostics.
func Greedy(amount int, denominations []int) (Result, error) {
	sol, err := NewGreedy().Solve(context.Background(), amount, denominations)
	return sol.Result, err
}

func (greedySolver) Name() string  { return NameGreedy }
func (greedySolver) Optimal() bool { return false }

func (greedySolver) Solve(_ context.Context, amount int, denominations []int) (Solution, error) {
	set, err := validate(amount, denominations)
	if err != nil {
		return Solution{}, err
	}

	breakdown := make(map[int]int, len(set))
	count := 0
	remaining := amount
	for _, value := range set.Descending() {
		if remaining == 0 {
			break
		}
		if value > remaining {
			continue
		}
		used := remaining / value
		breakdown[value] = used
		count += used
		remaining -= used * value
	}

	if remaining != 0 {
		return Solution{Result: Unreachable}, nil
	}
	return Solution{Result: Coins(count), Breakdown: breakdown}, nil
}
