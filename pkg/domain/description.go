package domain

// NodeDescriptor declares one node of an externally authored graph.
// Fields are raw strings parsed into the node's typed settings by name.
type NodeDescriptor struct {
	ID     string            `json:"id" yaml:"id"`
	Kind   string            `json:"kind" yaml:"kind"`
	Fields map[string]string `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// TransitionDescriptor declares one edge. Kind is "Completed" or "Continued".
type TransitionDescriptor struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// GraphDescription is the static graph handed to the loader.
// Order matters: transitions are evaluated in declaration order.
type GraphDescription struct {
	Name        string                 `json:"name,omitempty" yaml:"name,omitempty"`
	Nodes       []NodeDescriptor       `json:"nodes" yaml:"nodes"`
	Transitions []TransitionDescriptor `json:"transitions" yaml:"transitions"`
}

// Clone returns a deep copy so loaders can hand out descriptions safely.
func (d *GraphDescription) Clone() *GraphDescription {
	if d == nil {
		return nil
	}
	out := &GraphDescription{
		Name:        d.Name,
		Nodes:       make([]NodeDescriptor, len(d.Nodes)),
		Transitions: make([]TransitionDescriptor, len(d.Transitions)),
	}
	for i, n := range d.Nodes {
		out.Nodes[i] = n
		if n.Fields != nil {
			out.Nodes[i].Fields = make(map[string]string, len(n.Fields))
			for k, v := range n.Fields {
				out.Nodes[i].Fields[k] = v
			}
		}
	}
	copy(out.Transitions, d.Transitions)
	return out
}

// EntryTarget returns the target of the first transition leaving entryID.
func (d *GraphDescription) EntryTarget(entryID string) (string, bool) {
	for _, t := range d.Transitions {
		if t.From == entryID {
			return t.To, true
		}
	}
	return "", false
}
