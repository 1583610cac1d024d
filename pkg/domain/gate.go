package domain

import (
	"fmt"
	"strings"
)

// GateKind selects the boolean reduction of a Gate.
type GateKind string

const (
	GateAnd GateKind = "and"
	GateOr  GateKind = "or"
	GateNot GateKind = "not"
)

// ParseGateKind accepts "and", "or" and "not" in any case.
func ParseGateKind(s string) (GateKind, error) {
	switch k := GateKind(strings.ToLower(strings.TrimSpace(s))); k {
	case GateAnd, GateOr, GateNot:
		return k, nil
	}
	return "", fmt.Errorf("unknown gate kind %q", s)
}

// Reduce folds the inputs: AND is true when all inputs are true, OR when any is,
// and NOT when none is.
func (k GateKind) Reduce(inputs []bool) bool {
	switch k {
	case GateAnd:
		for _, v := range inputs {
			if !v {
				return false
			}
		}
		return true
	case GateOr:
		for _, v := range inputs {
			if v {
				return true
			}
		}
		return false
	case GateNot:
		for _, v := range inputs {
			if v {
				return false
			}
		}
		return true
	}
	return false
}

// Gate combines the signals of its incoming edges once all of them have arrived.
type Gate struct {
	id         string
	kind       GateKind
	expected   int
	buffer     []bool
	lastSignal bool
}

// NewGate creates a Gate with no expected inputs.
func NewGate(id string, kind GateKind) *Gate {
	return &Gate{id: id, kind: kind}
}

func (g *Gate) ID() string         { return g.id }
func (g *Gate) Kind() NodeKind     { return NodeGate }
func (g *Gate) node()              {}
func (g *Gate) Operator() GateKind { return g.kind }

// ExpectedInputs is the fan-in derived from the incoming edges.
func (g *Gate) ExpectedInputs() int { return g.expected }

// AddExpectedInput records one more incoming edge. Only the graph calls this at load time.
func (g *Gate) AddExpectedInput() { g.expected++ }

// Buffered is the number of inputs received since the last output.
func (g *Gate) Buffered() int { return len(g.buffer) }

// LastSignal is the most recent output (false before the first one).
func (g *Gate) LastSignal() bool { return g.lastSignal }

// Offer buffers one input. Once the buffer holds at least ExpectedInputs values
// it is reduced and cleared, and fired is true.
func (g *Gate) Offer(signal bool) (result bool, fired bool) {
	g.buffer = append(g.buffer, signal)
	if len(g.buffer) < g.expected {
		return false, false
	}
	g.lastSignal = g.kind.Reduce(g.buffer)
	g.buffer = g.buffer[:0]
	return g.lastSignal, true
}

// Reset drops any partially buffered inputs.
func (g *Gate) Reset() { g.buffer = g.buffer[:0] }
