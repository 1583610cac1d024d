package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is returned when an identifier is not part of the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrNotAState is returned when SetState targets a condition or a gate.
	ErrNotAState = errors.New("node is not a state")

	// ErrUnknownKind is returned when no factory is registered for a node kind.
	ErrUnknownKind = errors.New("unknown node kind")

	// ErrUnknownField is returned when a descriptor field has no typed setting.
	ErrUnknownField = errors.New("unknown field")

	// ErrInvalidField is returned when a descriptor field value cannot be parsed.
	ErrInvalidField = errors.New("invalid field value")

	// ErrInvalidTransition is returned for unknown transition kinds.
	ErrInvalidTransition = errors.New("invalid transition kind")

	// ErrNilDescription is returned when the loader is handed no graph at all.
	ErrNilDescription = errors.New("nil graph description")

	// ErrGraphNotFound is returned by loaders when the backing source holds no graph.
	ErrGraphNotFound = errors.New("graph description not found")
)

// Severity grades a Diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Diagnostic is a non-fatal problem found while loading or validating a graph.
// The offending element is skipped and the rest of the graph stays usable.
type Diagnostic struct {
	Severity Severity `json:"severity"`
	NodeID   string   `json:"node_id,omitempty"`
	Message  string   `json:"message"`
	Err      error    `json:"-"`
}

func (d Diagnostic) String() string {
	if d.NodeID == "" {
		return fmt.Sprintf("%s: %s", d.Severity, d.Message)
	}
	return fmt.Sprintf("%s: %s: %s", d.Severity, d.NodeID, d.Message)
}
