package domain

// NodeKind is the closed set of runtime node categories.
type NodeKind int

const (
	NodeState NodeKind = iota + 1
	NodeCondition
	NodeGate
)

func (k NodeKind) String() string {
	switch k {
	case NodeState:
		return "state"
	case NodeCondition:
		return "condition"
	case NodeGate:
		return "gate"
	default:
		return "unknown"
	}
}

// Node is an addressable unit of the graph.
// The set of implementations is closed: *State, *Condition and *Gate.
type Node interface {
	ID() string
	Kind() NodeKind
	node()
}

// Configurable is implemented by nodes and behaviours that accept descriptor fields.
// Settings returns a pointer to a struct whose fields carry `mapstructure` tags.
type Configurable interface {
	Settings() any
}

// Validator is implemented by settings structs that constrain their own values.
type Validator interface {
	Validate() error
}
