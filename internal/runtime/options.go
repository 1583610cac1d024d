package runtime

import (
	"log/slog"
	"time"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger used for diagnostics.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithGateCarryOver keeps partially filled gate buffers between propagation passes.
// By default every pass starts with empty buffers.
func WithGateCarryOver(enabled bool) EngineOption {
	return func(e *Engine) {
		e.carryOver = enabled
	}
}

// WithClock overrides the time source used for event timestamps.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}
