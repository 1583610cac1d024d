package runner

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Ticker is what the Runner drives. *fsmgraph.Machine and *supervisor.Handle satisfy it.
type Ticker interface {
	Tick(ctx context.Context, dt float64)
	FixedTick(ctx context.Context)
}

// TickSource produces wall-clock ticks every interval. stop releases it.
type TickSource func(interval time.Duration) (ticks <-chan time.Time, stop func())

// Runner drives a Ticker at a fixed interval until cancelled or a tick budget is spent.
//
// Each wall tick advances the machine by Interval. Fixed-step hooks run from an
// accumulator, once per elapsed FixedStep, before the variable tick.
type Runner struct {
	Interval  time.Duration
	FixedStep time.Duration

	// MaxTicks stops the loop after that many ticks. Zero means no limit.
	MaxTicks int

	// HandleSignals makes SIGINT/SIGTERM stop the loop.
	HandleSignals bool

	// OnTick is called after every tick with the running tick count.
	OnTick func(n int)

	Logger *slog.Logger
	Source TickSource

	accumulator time.Duration
	ticks       int
}

// NewRunner creates a Runner ticking every 100ms with a 20ms fixed step.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		Interval:  100 * time.Millisecond,
		FixedStep: 20 * time.Millisecond,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Source:    wallClock,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func wallClock(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}

// Ticks reports how many ticks have run.
func (r *Runner) Ticks() int { return r.ticks }

// Run blocks until ctx is done, a signal arrives (with HandleSignals), or MaxTicks is reached.
// It returns nil when the tick budget was spent and the context error otherwise.
func (r *Runner) Run(ctx context.Context, t Ticker) error {
	if r.HandleSignals {
		signals := NewSignalManager(ctx)
		defer signals.Stop()
		ctx = signals.Context()
	}

	ticks, stop := r.Source(r.Interval)
	defer stop()

	r.Logger.Debug("runner started", "interval", r.Interval, "fixed_step", r.FixedStep, "max_ticks", r.MaxTicks)

	for {
		if r.MaxTicks > 0 && r.ticks >= r.MaxTicks {
			r.Logger.Debug("tick budget reached", "ticks", r.ticks)
			return nil
		}

		select {
		case <-ctx.Done():
			r.Logger.Debug("runner stopped", "ticks", r.ticks, "err", ctx.Err())
			return ctx.Err()
		case <-ticks:
			r.Step(ctx, t)
		}
	}
}

// Step runs one wall tick: the due fixed steps, then Tick(Interval).
func (r *Runner) Step(ctx context.Context, t Ticker) {
	if r.FixedStep > 0 {
		r.accumulator += r.Interval
		for r.accumulator >= r.FixedStep {
			t.FixedTick(ctx)
			r.accumulator -= r.FixedStep
		}
	}

	t.Tick(ctx, r.Interval.Seconds())
	r.ticks++

	if r.OnTick != nil {
		r.OnTick(r.ticks)
	}
}
