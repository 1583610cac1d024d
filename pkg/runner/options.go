package runner

import (
	"log/slog"
	"time"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithInterval sets the wall-clock tick period, also used as dt.
func WithInterval(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.Interval = d
		}
	}
}

// WithFixedStep sets the fixed-step period. Zero disables fixed ticks.
func WithFixedStep(d time.Duration) Option {
	return func(r *Runner) {
		if d >= 0 {
			r.FixedStep = d
		}
	}
}

// WithMaxTicks stops the runner after n ticks.
func WithMaxTicks(n int) Option {
	return func(r *Runner) {
		r.MaxTicks = n
	}
}

// WithSignals stops the runner on SIGINT/SIGTERM.
func WithSignals(enabled bool) Option {
	return func(r *Runner) {
		r.HandleSignals = enabled
	}
}

// WithOnTick registers a callback run after each tick.
func WithOnTick(fn func(n int)) Option {
	return func(r *Runner) {
		r.OnTick = fn
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.Logger = logger
		}
	}
}

// WithTickSource replaces the wall clock, mostly for tests.
func WithTickSource(src TickSource) Option {
	return func(r *Runner) {
		if src != nil {
			r.Source = src
		}
	}
}
