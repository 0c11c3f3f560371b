package application

import (
	"context"
	"fmt"
	"io"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/eugenenazirov/min-coins/internal/coins"
	"github.com/eugenenazirov/min-coins/internal/config"
	"github.com/eugenenazirov/min-coins/internal/harness"
	"github.com/eugenenazirov/min-coins/internal/report"
)

// App encapsulates the configured comparison runner and its output.
type App struct {
	cfg    config.Config
	runner *harness.Runner
	logger *zap.Logger
	out    io.Writer
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, out io.Writer) (*App, error) {
	runner, err := harness.NewRunner(logger,
		harness.WithStrategies(cfg.Strategies...),
		harness.WithTimeout(cfg.SolverTimeout),
		harness.WithProgressInterval(cfg.ProgressInterval),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build runner: %w", err)
	}

	return &App{
		cfg:    cfg,
		runner: runner,
		logger: logger,
		out:    out,
	}, nil
}

// Compare runs every configured case through the harness and writes a report
// per case. A failing case does not prevent the remaining ones from running,
// unless ctx is cancelled.
func (a *App) Compare(ctx context.Context) (err error) {
	w, err := report.NewWriter(a.out, a.cfg.Format)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, w.Close())
	}()

	for _, c := range a.cfg.Cases {
		cmp, cmpErr := a.runner.Compare(ctx, c.Amount, c.Denominations)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return multierr.Append(err, ctxErr)
		}
		if len(cmp.Rows) > 0 {
			err = multierr.Append(err, w.Write(cmp))
		}
		if cmpErr != nil {
			err = multierr.Append(err, fmt.Errorf("amount %d, denominations %v: %w", c.Amount, c.Denominations, cmpErr))
		}
	}
	return err
}

// Solve runs a single strategy on the first configured case and prints its
// count and, when available, the denominations it used.
func (a *App) Solve(ctx context.Context, strategy string) error {
	solver, err := coins.Lookup(strategy)
	if err != nil {
		return err
	}
	c := a.cfg.Cases[0]

	if a.cfg.SolverTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.cfg.SolverTimeout)
		defer cancel()
	}

	sol, err := solver.Solve(ctx, c.Amount, c.Denominations)
	if err != nil {
		return fmt.Errorf("solve amount %d: %w", c.Amount, err)
	}
	a.logger.Debug("solved",
		zap.String("strategy", strategy),
		zap.Int("amount", c.Amount),
		zap.Int64("calls", sol.Calls),
		zap.Int("cache_entries", sol.CacheEntries),
	)

	if _, err := fmt.Fprintln(a.out, sol.Result); err != nil {
		return err
	}
	if len(sol.Breakdown) == 0 {
		return nil
	}

	values := make([]int, 0, len(sol.Breakdown))
	for value := range sol.Breakdown {
		values = append(values, value)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))
	for _, value := range values {
		if _, err := fmt.Fprintf(a.out, "  %d x %d\n", sol.Breakdown[value], value); err != nil {
			return err
		}
	}
	return nil
}
