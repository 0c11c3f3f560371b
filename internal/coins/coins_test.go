package coins

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"testing"
	"time"
)

func TestScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		amount        int
		denominations []int
		want          Result
		wantGreedy    Result
		skipBrute     bool
	}{
		{
			name:          "SeventeenWithFiveTwoOne",
			amount:        17,
			denominations: []int{5, 2, 1},
			want:          Coins(4),
			wantGreedy:    Coins(4),
		},
		{
			name:          "SixWithNonCanonicalSet",
			amount:        6,
			denominations: []int{1, 3, 4},
			want:          Coins(2),
			wantGreedy:    Coins(3),
		},
		{
			name:          "ElevenWithOneFiveSix",
			amount:        11,
			denominations: []int{1, 5, 6},
			want:          Coins(2),
			wantGreedy:    Coins(2),
		},
		{
			name:          "HundredWithUSCoins",
			amount:        100,
			denominations: []int{1, 5, 10, 25},
			want:          Coins(4),
			wantGreedy:    Coins(4),
			skipBrute:     true,
		},
		{
			name:          "CoprimeDenominations",
			amount:        100,
			denominations: []int{7, 13},
			want:          Coins(10),
			wantGreedy:    Unreachable,
		},
		{
			name:          "ZeroAmount",
			amount:        0,
			denominations: []int{4, 9},
			want:          Coins(0),
			wantGreedy:    Coins(0),
		},
		{
			name:          "AmountBelowSmallestDenomination",
			amount:        1,
			denominations: []int{4},
			want:          Unreachable,
			wantGreedy:    Unreachable,
		},
		{
			name:          "ImpossibleToFormExactly",
			amount:        6,
			denominations: []int{4},
			want:          Unreachable,
			wantGreedy:    Unreachable,
		},
		{
			name:          "GreedyStrandedRemainder",
			amount:        6,
			denominations: []int{4, 3},
			want:          Coins(2),
			wantGreedy:    Unreachable,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			for _, solver := range All() {
				if tc.skipBrute && solver.Name() == NameBruteForce {
					continue
				}
				want := tc.want
				if !solver.Optimal() {
					want = tc.wantGreedy
				}

				got, err := solver.Solve(context.Background(), tc.amount, tc.denominations)
				if err != nil {
					t.Fatalf("%s: unexpected error: %v", solver.Name(), err)
				}
				if got.Result != want {
					t.Fatalf("%s: got %s want %s", solver.Name(), got.Result, want)
				}
				if got.Breakdown != nil {
					assertBreakdown(t, solver.Name(), tc.amount, got)
				}
			}
		})
	}
}

func TestThirtyFiveWithNonCanonicalSet(t *testing.T) {
	if testing.Short() {
		t.Skip("brute force on 35 is slow")
	}
	t.Parallel()

	for _, solver := range All() {
		got, err := solver.Solve(context.Background(), 35, []int{1, 3, 4})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", solver.Name(), err)
		}
		if got.Result != Coins(9) {
			t.Fatalf("%s: got %s want 9", solver.Name(), got.Result)
		}
	}
}

func TestOptimalStrategiesAgree(t *testing.T) {
	t.Parallel()

	sets := [][]int{
		{1, 3, 4},
		{2, 5},
		{3, 7},
		{5, 2, 1},
		{4},
		{6, 9, 20},
		{1},
	}

	for _, set := range sets {
		set := set
		t.Run(fmt.Sprintf("%v", set), func(t *testing.T) {
			t.Parallel()

			for amount := 0; amount <= 22; amount++ {
				brute, err := BruteForce(amount, set)
				if err != nil {
					t.Fatalf("brute force %d: %v", amount, err)
				}
				memo, err := Memoized(amount, set)
				if err != nil {
					t.Fatalf("memoized %d: %v", amount, err)
				}
				table, err := BottomUp(amount, set)
				if err != nil {
					t.Fatalf("bottom-up %d: %v", amount, err)
				}
				if brute != memo || memo != table {
					t.Fatalf("amount %d: brute=%s memo=%s table=%s", amount, brute, memo, table)
				}

				greedy, err := Greedy(amount, set)
				if err != nil {
					t.Fatalf("greedy %d: %v", amount, err)
				}
				if greedy.Reachable && (!table.Reachable || greedy.Count < table.Count) {
					t.Fatalf("amount %d: greedy %s beats optimal %s", amount, greedy, table)
				}
				if table.Reachable {
					assertBounds(t, amount, set, table.Count)
				}
			}
		})
	}
}

func TestGreedyOptimalForCanonicalSet(t *testing.T) {
	t.Parallel()

	set := []int{25, 10, 5, 1}
	for amount := 0; amount <= 300; amount++ {
		greedy, err := Greedy(amount, set)
		if err != nil {
			t.Fatalf("greedy %d: %v", amount, err)
		}
		optimal, err := BottomUp(amount, set)
		if err != nil {
			t.Fatalf("bottom-up %d: %v", amount, err)
		}
		if greedy != optimal {
			t.Fatalf("amount %d: greedy %s, optimal %s", amount, greedy, optimal)
		}
	}
}

func TestSolveIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, solver := range All() {
		first, err := solver.Solve(context.Background(), 17, []int{5, 2, 1})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", solver.Name(), err)
		}
		second, err := solver.Solve(context.Background(), 17, []int{5, 2, 1})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", solver.Name(), err)
		}
		if first.Result != second.Result || first.CacheEntries != second.CacheEntries {
			t.Fatalf("%s: first %+v second %+v", solver.Name(), first, second)
		}
	}
}

func TestSolveDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	for _, solver := range All() {
		input := []int{1, 5, 2, 5, 10}
		snapshot := slices.Clone(input)
		if _, err := solver.Solve(context.Background(), 18, input); err != nil {
			t.Fatalf("%s: unexpected error: %v", solver.Name(), err)
		}
		if !slices.Equal(input, snapshot) {
			t.Fatalf("%s: input mutated to %v", solver.Name(), input)
		}
	}
}

func TestSolveRejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		amount        int
		denominations []int
		wantErr       error
	}{
		{name: "NegativeAmount", amount: -1, denominations: []int{1}, wantErr: ErrNegativeAmount},
		{name: "NilDenominations", amount: 5, denominations: nil, wantErr: ErrNoDenominations},
		{name: "EmptyDenominations", amount: 5, denominations: []int{}, wantErr: ErrNoDenominations},
		{name: "ZeroDenomination", amount: 5, denominations: []int{0, 1}, wantErr: ErrInvalidDenomination},
		{name: "NegativeDenomination", amount: 5, denominations: []int{3, -2}, wantErr: ErrInvalidDenomination},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			for _, solver := range All() {
				_, err := solver.Solve(context.Background(), tc.amount, tc.denominations)
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("%s: expected %v, got %v", solver.Name(), tc.wantErr, err)
				}
			}
		})
	}
}

func TestMemoizedReportsCacheEntries(t *testing.T) {
	t.Parallel()

	got, err := NewMemoized().Solve(context.Background(), 100, []int{1, 5, 10, 25})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CacheEntries != 100 {
		t.Fatalf("expected 100 cached sub-amounts, got %d", got.CacheEntries)
	}
}

func TestMemoizedSharedCacheFollowsDenominations(t *testing.T) {
	t.Parallel()

	cache := NewMemoCache()
	solver := NewMemoized(WithCache(cache))

	first, err := solver.Solve(context.Background(), 6, []int{1, 3, 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Result != Coins(2) || cache.Len() != 6 {
		t.Fatalf("unexpected first run: %+v, cache %d", first, cache.Len())
	}

	other, err := solver.Solve(context.Background(), 6, []int{4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.Result != Unreachable {
		t.Fatalf("expected unreachable after switching denominations, got %s", other.Result)
	}

	again, err := solver.Solve(context.Background(), 6, []int{4, 3, 1, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.Result != Coins(2) {
		t.Fatalf("expected 2 after switching back, got %s", again.Result)
	}
}

func TestMemoizedCachesUnreachableSubAmounts(t *testing.T) {
	t.Parallel()

	cache := NewMemoCache()
	if _, err := NewMemoized(WithCache(cache)).Solve(context.Background(), 7, []int{4, 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r, ok := cache.lookup(3)
	if !ok {
		t.Fatalf("expected sub-amount 3 to be cached")
	}
	if r != Unreachable {
		t.Fatalf("expected sub-amount 3 cached as unreachable, got %s", r)
	}
}

func TestRecursorsHonourCancellation(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	for _, solver := range []Solver{NewBruteForce(), NewMemoized(), NewBottomUp()} {
		if _, err := solver.Solve(cancelled, 10, []int{1, 2}); !errors.Is(err, context.Canceled) {
			t.Fatalf("%s: expected context.Canceled, got %v", solver.Name(), err)
		}
	}

	ctx, stop := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer stop()
	if _, err := NewBruteForce().Solve(ctx, 200, []int{1, 2, 3}); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestProgressHook(t *testing.T) {
	t.Parallel()

	var calls []int64
	solver := NewBruteForce(WithProgress(func(strategy string, done int64) {
		if strategy != NameBruteForce {
			t.Errorf("unexpected strategy %q", strategy)
		}
		calls = append(calls, done)
	}))

	sol, err := solver.Solve(context.Background(), 25, []int{1, 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) == 0 {
		t.Fatalf("expected progress callbacks for %d calls", sol.Calls)
	}
	for _, done := range calls {
		if done%recursionCheckpoint != 0 {
			t.Fatalf("progress reported off checkpoint: %d", done)
		}
	}
}

func TestSolversAreSafeForConcurrentUse(t *testing.T) {
	t.Parallel()

	var wg sync.WaitGroup
	for _, solver := range All() {
		for amount := 1; amount <= 16; amount++ {
			wg.Add(1)
			go func(s Solver, amount int) {
				defer wg.Done()
				got, err := s.Solve(context.Background(), amount, []int{1, 5, 10, 25})
				if err != nil {
					t.Errorf("%s: %v", s.Name(), err)
					return
				}
				want, _ := BottomUp(amount, []int{1, 5, 10, 25})
				if got.Result != want {
					t.Errorf("%s amount %d: got %s want %s", s.Name(), amount, got.Result, want)
				}
			}(solver, amount)
		}
	}
	wg.Wait()
}

func TestLookup(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		solver, err := Lookup(name)
		if err != nil {
			t.Fatalf("Lookup(%q): %v", name, err)
		}
		if solver.Name() != name {
			t.Fatalf("Lookup(%q) returned %q", name, solver.Name())
		}
	}

	if _, err := Lookup("quantum"); !errors.Is(err, ErrUnknownStrategy) {
		t.Fatalf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestNewDenominationsSortsAndDeduplicates(t *testing.T) {
	t.Parallel()

	input := []int{53, 23, 31, 23, 53}
	got, err := NewDenominations(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []int{23, 31, 53}; !slices.Equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if want := []int{53, 31, 23}; !slices.Equal(got.Descending(), want) {
		t.Fatalf("expected descending %v, got %v", want, got.Descending())
	}
	if got.Smallest() != 23 || got.Largest() != 53 {
		t.Fatalf("unexpected bounds %d..%d", got.Smallest(), got.Largest())
	}
}

func TestResultArithmetic(t *testing.T) {
	t.Parallel()

	if got := Unreachable.plusOne(); got != Unreachable {
		t.Fatalf("plusOne on unreachable produced %s", got)
	}
	if got := Coins(2).min(Unreachable); got != Coins(2) {
		t.Fatalf("expected reachable to win, got %s", got)
	}
	if got := Unreachable.min(Coins(5)); got != Coins(5) {
		t.Fatalf("expected reachable to win, got %s", got)
	}
	if got := Coins(5).min(Coins(3)); got != Coins(3) {
		t.Fatalf("expected 3, got %s", got)
	}
	if Unreachable.String() != "unreachable" || Coins(7).String() != "7" {
		t.Fatalf("unexpected String output")
	}
}

func assertBreakdown(t *testing.T, name string, amount int, sol Solution) {
	t.Helper()

	total, count := 0, 0
	for value, used := range sol.Breakdown {
		total += value * used
		count += used
	}
	if total != amount || count != sol.Count {
		t.Fatalf("%s: breakdown %v sums to %d in %d coins, want %d in %d", name, sol.Breakdown, total, count, amount, sol.Count)
	}
}

func assertBounds(t *testing.T, amount int, raw []int, count int) {
	t.Helper()

	set, err := NewDenominations(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lower := (amount + set.Largest() - 1) / set.Largest()
	upper := amount / set.Smallest()
	if count < lower || count > upper {
		t.Fatalf("amount %d with %v: count %d outside [%d, %d]", amount, raw, count, lower, upper)
	}
}

func BenchmarkGreedy(b *testing.B) {
	solver := NewGreedy()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Solve(context.Background(), 999, []int{1, 5, 10, 25}); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkBruteForce(b *testing.B) {
	solver := NewBruteForce()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Solve(context.Background(), 20, []int{1, 3, 4}); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkMemoized(b *testing.B) {
	solver := NewMemoized()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Solve(context.Background(), 10_000, []int{1, 5, 10, 25}); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}

func BenchmarkBottomUp(b *testing.B) {
	solver := NewBottomUp()
	for i := 0; i < b.N; i++ {
		if _, err := solver.Solve(context.Background(), 50_000, []int{23, 31, 53}); err != nil {
			b.Fatalf("unexpected error: %v", err)
		}
	}
}
