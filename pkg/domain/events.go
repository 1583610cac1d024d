package domain

import (
	"context"
	"time"
)

// StateEvent reports a State entering or leaving the current slot.
type StateEvent struct {
	Timestamp time.Time `json:"timestamp"`
	StateID   string    `json:"state_id"`
}

// TransitionEvent reports a change of the current State.
// From is empty for the first activation. Trigger is TransitionManual for host calls.
type TransitionEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	From      string         `json:"from,omitempty"`
	To        string         `json:"to"`
	Trigger   TransitionKind `json:"trigger"`
}

// PropagationEvent summarizes one propagation pass.
type PropagationEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Origin    string         `json:"origin"`
	Filter    TransitionKind `json:"filter"`
	Visited   int            `json:"visited"`
	Target    string         `json:"target,omitempty"` // empty when no state was reached
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously inside the tick and must not call back into the engine.
type LifecycleHooks struct {
	OnStateEnter func(context.Context, *StateEvent)
	OnStateExit  func(context.Context, *StateEvent)
	OnTransition func(context.Context, *TransitionEvent)
	OnPropagate  func(context.Context, *PropagationEvent)
}
