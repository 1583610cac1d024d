package domain

import (
	"fmt"
	"strings"
)

// TransitionKind selects when an edge leaving a State is traversable.
type TransitionKind int

const (
	// TransitionManual marks state changes requested by the host through SetState.
	// It is never a valid edge kind.
	TransitionManual TransitionKind = iota
	// TransitionCompleted edges fire only once the source State is done.
	TransitionCompleted
	// TransitionContinued edges fire on every tick the source State is current.
	TransitionContinued
)

func (k TransitionKind) String() string {
	switch k {
	case TransitionCompleted:
		return "Completed"
	case TransitionContinued:
		return "Continued"
	default:
		return "Manual"
	}
}

// MarshalText renders the kind as its name.
func (k TransitionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// ParseTransitionKind accepts "Completed" and "Continued" in any case.
// An empty string defaults to Continued.
func ParseTransitionKind(s string) (TransitionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "completed":
		return TransitionCompleted, nil
	case "continued", "":
		return TransitionContinued, nil
	}
	return TransitionManual, fmt.Errorf("%w: %q", ErrInvalidTransition, s)
}
