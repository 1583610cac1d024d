package tui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/muesli/termenv"
)

// TransitionPrinter writes one colored line per state change.
type TransitionPrinter struct {
	mu    sync.Mutex
	out   *termenv.Output
	start time.Time
}

// NewTransitionPrinter prints to out, timing lines relative to start.
func NewTransitionPrinter(out *termenv.Output, start time.Time) *TransitionPrinter {
	return &TransitionPrinter{out: out, start: start}
}

// Print writes the line for ev.
func (p *TransitionPrinter) Print(ev *domain.TransitionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	from := ev.From
	if from == "" {
		from = domain.EntryNodeID
	}
	stamp := p.out.String(fmt.Sprintf("[%7.2fs]", ev.Timestamp.Sub(p.start).Seconds())).Faint()
	to := p.out.String(ev.To).Bold().Foreground(p.out.Color("#a78bfa"))
	trigger := p.out.String(ev.Trigger.String()).Foreground(triggerColor(p.out, ev.Trigger))

	fmt.Fprintf(p.out, "%s %s -> %s (%s)\n", stamp, from, to, trigger)
}

// Hooks exposes the printer as lifecycle hooks.
func (p *TransitionPrinter) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, ev *domain.TransitionEvent) { p.Print(ev) },
	}
}

func triggerColor(out *termenv.Output, k domain.TransitionKind) termenv.Color {
	switch k {
	case domain.TransitionCompleted:
		return out.Color("#4ade80")
	case domain.TransitionContinued:
		return out.Color("#60a5fa")
	default:
		return out.Color("#fbbf24")
	}
}
