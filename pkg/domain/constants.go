package domain

// EntryNodeID is the reserved identifier of the synthetic start marker.
// Its single outgoing transition designates the initial state.
const EntryNodeID = "ENTRY"

// Kind tags understood by the default registry.
const (
	KindEntry    = "entry"
	KindState    = "state"
	KindAnd      = "and"
	KindOr       = "or"
	KindNot      = "not"
	KindConstant = "constant"
	KindEvery    = "every"
)
