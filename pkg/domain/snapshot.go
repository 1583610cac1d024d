package domain

// NodeStatus is the read-only view of one node for host tooling.
type NodeStatus struct {
	ID             string   `json:"id"`
	Kind           string   `json:"kind"`
	Current        bool     `json:"current,omitempty"`
	Duration       float64  `json:"duration,omitempty"`
	Elapsed        float64  `json:"elapsed,omitempty"`
	Progress       float64  `json:"progress,omitempty"`
	Done           bool     `json:"done,omitempty"`
	Paused         bool     `json:"paused,omitempty"`
	LastSignal     bool     `json:"last_signal,omitempty"`
	Operator       GateKind `json:"operator,omitempty"`
	ExpectedInputs int      `json:"expected_inputs,omitempty"`
	Buffered       int      `json:"buffered,omitempty"`
}

// Snapshot captures the observable state of a machine between ticks.
type Snapshot struct {
	Name    string       `json:"name,omitempty"`
	Current string       `json:"current,omitempty"`
	Nodes   []NodeStatus `json:"nodes"`
}

// StatusOf describes a single node.
func StatusOf(n Node) NodeStatus {
	st := NodeStatus{ID: n.ID(), Kind: n.Kind().String()}
	switch v := n.(type) {
	case *State:
		st.Duration = v.Duration()
		st.Elapsed = v.Elapsed()
		st.Progress = v.Progress()
		st.Done = v.IsDone()
		st.Paused = v.Paused()
	case *Condition:
		st.LastSignal = v.LastSignal()
	case *Gate:
		st.LastSignal = v.LastSignal()
		st.Operator = v.Operator()
		st.ExpectedInputs = v.ExpectedInputs()
		st.Buffered = v.Buffered()
	}
	return st
}
