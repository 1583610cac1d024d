package domain

// Predicate is the pure boolean function behind a Condition.
type Predicate interface {
	Evaluate() bool
}

// PredicateFunc adapts a function to the Predicate interface.
type PredicateFunc func() bool

func (f PredicateFunc) Evaluate() bool { return f() }

// Condition is a boolean node re-evaluated every time a propagation pass reaches it.
type Condition struct {
	id         string
	predicate  Predicate
	lastSignal bool
}

// NewCondition creates a Condition. A nil predicate always evaluates to false.
func NewCondition(id string, p Predicate) *Condition {
	return &Condition{id: id, predicate: p}
}

func (c *Condition) ID() string     { return c.id }
func (c *Condition) Kind() NodeKind { return NodeCondition }
func (c *Condition) node()          {}

// Predicate returns the evaluator attached at construction.
func (c *Condition) Predicate() Predicate { return c.predicate }

// LastSignal is the result of the most recent evaluation (false before the first one).
func (c *Condition) LastSignal() bool { return c.lastSignal }

// Propagate evaluates the predicate and records the result.
func (c *Condition) Propagate() bool {
	c.lastSignal = c.predicate != nil && c.predicate.Evaluate()
	return c.lastSignal
}
