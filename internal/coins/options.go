package coins

import "context"

const (
	// recursionCheckpoint is how many recursive calls pass between context checks.
	recursionCheckpoint = 1 << 12
	// rowCheckpoint is how many DP rows pass between context checks.
	rowCheckpoint = 1 << 10
)

// ProgressFunc receives the strategy name and the work done so far (recursive
// calls or table rows). It is invoked from the solving goroutine.
type ProgressFunc func(strategy string, done int64)

// Option configures a Solver.
type Option func(*options)

type options struct {
	progress ProgressFunc
	cache    *MemoCache
}

// WithProgress installs a hook called at every cancellation checkpoint.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithCache makes the memoized strategy reuse a caller-owned cache instead of
// allocating one per call. Other strategies ignore it.
func WithCache(cache *MemoCache) Option {
	return func(o *options) {
		o.cache = cache
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// checkpoint tracks work and polls the context while a strategy runs.
type checkpoint struct {
	ctx      context.Context
	strategy string
	every    int64
	progress ProgressFunc

	done int64
	err  error
}

func newCheckpoint(ctx context.Context, strategy string, every int64, progress ProgressFunc) *checkpoint {
	return &checkpoint{ctx: ctx, strategy: strategy, every: every, progress: progress}
}

// tick records one unit of work and reports whether the caller should stop.
func (c *checkpoint) tick() bool {
	if c.err != nil {
		return true
	}
	c.done++
	if c.done%c.every != 0 {
		return false
	}
	if c.progress != nil {
		c.progress(c.strategy, c.done)
	}
	if err := c.ctx.Err(); err != nil {
		c.err = err
		return true
	}
	return false
}
