package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/eugenenazirov/min-coins/internal/coins"
)

// ErrInconsistent is returned when strategies that guarantee an optimal count
// disagree on the same input.
var ErrInconsistent = errors.New("optimal strategies returned different results")

const defaultProgressInterval = 2 * time.Second

// Row is the outcome of one strategy on one input.
type Row struct {
	Strategy     string
	Optimal      bool
	Result       coins.Result
	Breakdown    map[int]int
	Elapsed      time.Duration
	Calls        int64
	CacheEntries int
	TableSize    int
	TimedOut     bool
	Err          error
}

// Comparison collects the rows produced for a single amount and denomination set.
type Comparison struct {
	RunID         string
	Amount        int
	Denominations []int
	Rows          []Row
}

// Optimum returns the result agreed on by the optimal strategies that finished.
// ok is false when none finished.
func (c Comparison) Optimum() (coins.Result, bool) {
	for _, row := range c.Rows {
		if row.Optimal && row.Err == nil {
			return row.Result, true
		}
	}
	return coins.Unreachable, false
}

// Row returns the row for strategy, if present.
func (c Comparison) Row(strategy string) (Row, bool) {
	for _, row := range c.Rows {
		if row.Strategy == strategy {
			return row, true
		}
	}
	return Row{}, false
}

// Option configures a Runner.
type Option func(*Runner)

// WithTimeout bounds each strategy's run. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithProgressInterval sets how often a long-running strategy is reported.
func WithProgressInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.progress.Interval = d
		}
	}
}

// WithStrategies restricts the runner to the named strategies, in that order.
func WithStrategies(names ...string) Option {
	return func(r *Runner) {
		r.names = names
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(r *Runner) {
		r.clock = clock
	}
}

// Runner executes strategies side by side on identical input.
type Runner struct {
	logger   *zap.Logger
	solvers  []coins.Solver
	names    []string
	timeout  time.Duration
	progress *rate.Sometimes
	clock    func() time.Time
}

// NewRunner builds a Runner. With no WithStrategies option every strategy runs.
func NewRunner(logger *zap.Logger, opts ...Option) (*Runner, error) {
	r := &Runner{
		logger:   logger,
		progress: &rate.Sometimes{Interval: defaultProgressInterval},
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if len(r.names) == 0 {
		r.names = coins.Names()
	}

	for _, name := range r.names {
		solver, err := coins.Lookup(name, coins.WithProgress(r.reportProgress))
		if err != nil {
			return nil, err
		}
		r.solvers = append(r.solvers, solver)
	}
	return r, nil
}

// Compare runs every configured strategy on amount and denominations. Invalid
// input is rejected before any strategy starts. A strategy that times out is
// recorded as such and does not stop the others; cancellation of ctx does.
func (r *Runner) Compare(ctx context.Context, amount int, denominations []int) (Comparison, error) {
	if amount < 0 {
		return Comparison{}, fmt.Errorf("%w: got %d", coins.ErrNegativeAmount, amount)
	}
	if _, err := coins.NewDenominations(denominations); err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{
		RunID:         uuid.NewString(),
		Amount:        amount,
		Denominations: append([]int(nil), denominations...),
		Rows:          make([]Row, 0, len(r.solvers)),
	}
	logger := r.logger.With(
		zap.String("run_id", cmp.RunID),
		zap.Int("amount", amount),
		zap.Ints("denominations", denominations),
	)

	for _, solver := range r.solvers {
		if err := ctx.Err(); err != nil {
			return cmp, err
		}
		row := r.run(ctx, solver, amount, denominations)
		if row.TimedOut {
			logger.Warn("strategy timed out",
				zap.String("strategy", row.Strategy),
				zap.Duration("timeout", r.timeout),
				zap.Int64("calls", row.Calls),
			)
		} else if row.Err != nil {
			if errors.Is(row.Err, context.Canceled) {
				return cmp, row.Err
			}
			logger.Error("strategy failed", zap.String("strategy", row.Strategy), zap.Error(row.Err))
		} else {
			logger.Debug("strategy finished",
				zap.String("strategy", row.Strategy),
				zap.Stringer("result", row.Result),
				zap.Duration("elapsed", row.Elapsed),
			)
		}
		cmp.Rows = append(cmp.Rows, row)
	}

	if err := checkConsistent(cmp); err != nil {
		logger.Error("inconsistent results", zap.Error(err))
		return cmp, err
	}
	return cmp, nil
}

func (r *Runner) run(ctx context.Context, solver coins.Solver, amount int, denominations []int) Row {
	runCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := r.clock()
	sol, err := solver.Solve(runCtx, amount, denominations)
	elapsed := r.clock().Sub(start)

	return Row{
		Strategy:     solver.Name(),
		Optimal:      solver.Optimal(),
		Result:       sol.Result,
		Breakdown:    sol.Breakdown,
		Elapsed:      elapsed,
		Calls:        sol.Calls,
		CacheEntries: sol.CacheEntries,
		TableSize:    sol.TableSize,
		TimedOut:     errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil,
		Err:          err,
	}
}

func (r *Runner) reportProgress(strategy string, done int64) {
	r.progress.Do(func() {
		r.logger.Info("strategy still running",
			zap.String("strategy", strategy),
			zap.Int64("work_done", done),
		)
	})
}

func checkConsistent(cmp Comparison) error {
	want, ok := cmp.Optimum()
	if !ok {
		return nil
	}
	for _, row := range cmp.Rows {
		if row.Optimal && row.Err == nil && row.Result != want {
			return fmt.Errorf("%w: %s returned %s, expected %s", ErrInconsistent, row.Strategy, row.Result, want)
		}
	}
	return nil
}
