package compiler_test

import (
	"errors"
	"testing"

	"github.com/aretw0/fsmgraph/internal/compiler"
	"github.com/aretw0/fsmgraph/internal/runtime"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, desc *domain.GraphDescription) *compiler.Result {
	t.Helper()
	res, err := compiler.Compile(desc, registry.Default())
	require.NoError(t, err)
	return res
}

func hasDiagnostic(res *compiler.Result, nodeID string, target error) bool {
	for _, d := range res.Diagnostics {
		if d.NodeID == nodeID && (target == nil || errors.Is(d.Err, target)) {
			return true
		}
	}
	return false
}

func TestCompile_NilDescription(t *testing.T) {
	_, err := compiler.Compile(nil, registry.Default())
	assert.ErrorIs(t, err, domain.ErrNilDescription)
}

func TestCompile_Basic(t *testing.T) {
	desc := &domain.GraphDescription{
		Nodes: []domain.NodeDescriptor{
			{ID: "ENTRY", Kind: "entry"},
			{ID: "A", Kind: "state", Fields: map[string]string{"duration": "1.5"}},
			{ID: "B", Kind: "state"},
			{ID: "c", Kind: "constant", Fields: map[string]string{"value": "true"}},
		},
		Transitions: []domain.TransitionDescriptor{
			{From: "ENTRY", To: "A"},
			{From: "A", To: "c", Kind: "Completed"},
			{From: "c", To: "B"},
		},
	}

	res := compile(t, desc)
	assert.Empty(t, res.Diagnostics)
	assert.Equal(t, "A", res.Entry)
	assert.Equal(t, 3, res.Graph.Len())

	a, ok := runtime.Lookup[*domain.State](res.Graph, "A")
	require.True(t, ok)
	assert.Equal(t, 1.5, a.Duration())

	c, ok := runtime.Lookup[*domain.Condition](res.Graph, "c")
	require.True(t, ok)
	assert.True(t, c.Propagate())

	assert.Equal(t, []runtime.Edge{{To: "c", Kind: domain.TransitionCompleted}}, res.Graph.Edges("A"))
	assert.Equal(t, []runtime.Edge{{To: "B", Kind: domain.TransitionContinued}}, res.Graph.Edges("c"))
}

func TestCompile_DuplicateIDKeepsFirst(t *testing.T) {
	desc := &domain.GraphDescription{
		Nodes: []domain.NodeDescriptor{
			{ID: "A", Kind: "state", Fields: map[string]string{"duration": "2"}},
			{ID: "A", Kind: "state", Fields: map[string]string{"duration": "9"}},
		},
		Transitions: []domain.TransitionDescriptor{{From: "ENTRY", To: "A"}},
	}

	res := compile(t, desc)
	assert.True(t, hasDiagnostic(res, "A", nil))
	a, ok := runtime.Lookup[*domain.State](res.Graph, "A")
	require.True(t, ok)
	assert.Equal(t, 2.0, a.Duration())
}

func TestCompile_UnknownKindSkipped(t *testing.T) {
	desc := &domain.GraphDescription{
		Nodes: []domain.NodeDescriptor{
			{ID: "A", Kind: "state"},
			{ID: "X", Kind: "teleporter"},
		},
		Transitions: []domain.TransitionDescriptor{
			{From: "ENTRY", To: "A"},
			{From: "A", To: "X"},
		},
	}

	res := compile(t, desc)
	assert.True(t, hasDiagnostic(res, "X", domain.ErrUnknownKind))
	assert.True(t, hasDiagnostic(res, "A", domain.ErrUnknownNode), "edge to the skipped node is reported")
	_, ok := res.Graph.Node("X")
	assert.False(t, ok)
	assert.Empty(t, res.Graph.Edges("A"))
}

func TestCompile_EmptyID(t *testing.T) {
	res := compile(t, &domain.GraphDescription{
		Nodes: []domain.NodeDescriptor{{ID: "  ", Kind: "state"}},
	})
	assert.True(t, hasDiagnostic(res, "", nil))
	assert.Equal(t, 0, res.Graph.Len())
}

func TestCompile_FieldProblemsAreSkipped(t *testing.T) {
	desc := &domain.GraphDescription{
		Nodes: []domain.NodeDescriptor{
			{ID: "A", Kind: "state", Fields: map[string]string{
				"duration": "abc",
				"colour":   "blue",
			}},
			{ID: "B", Kind: "state", Fields: map[string]string{"duration": "-1"}},
			{ID: "e", Kind: "every", Fields: map[string]string{"period": "3"}},
			{ID: "C", Kind: "state", Fields: map[string]string{"duration": ""}},
			{ID: "hex", Kind: "every", Fields: map[string]string{"period": "0x10"}},
			{ID: "one", Kind: "constant", Fields: map[string]string{"value": "1"}},
			{ID: "blank", Kind: "constant", Fields: map[string]string{"value": ""}},
		},
		Transitions: []domain.TransitionDescriptor{{From: "ENTRY", To: "A"}},
	}

	res := compile(t, desc)
	assert.True(t, hasDiagnostic(res, "A", domain.ErrInvalidField))
	assert.True(t, hasDiagnostic(res, "A", domain.ErrUnknownField))
	assert.True(t, hasDiagnostic(res, "B", domain.ErrInvalidField))
	assert.False(t, hasDiagnostic(res, "e", nil))
	for _, id := range []string{"C", "hex", "one", "blank"} {
		assert.True(t, hasDiagnostic(res, id, domain.ErrInvalidField), id)
	}

	a, _ := runtime.Lookup[*domain.State](res.Graph, "A")
	assert.Equal(t, 0.0, a.Duration(), "unparsable value leaves the default")
	b, _ := runtime.Lookup[*domain.State](res.Graph, "B")
	assert.Equal(t, 0.0, b.Duration(), "rejected value is rolled back")

	var fe *compiler.FieldError
	for _, d := range res.Diagnostics {
		if d.NodeID == "A" && errors.As(d.Err, &fe) && fe.Key == "colour" {
			break
		}
	}
	require.NotNil(t, fe)
	assert.Equal(t, "blue", fe.Value)
}

func TestCompile_GateArityFromEdges(t *testing.T) {
	desc := &domain.GraphDescription{
		Nodes: []domain.NodeDescriptor{
			{ID: "A", Kind: "state"},
			{ID: "B", Kind: "state"},
			{ID: "c1", Kind: "constant"},
			{ID: "c2", Kind: "constant"},
			{ID: "g", Kind: "and"},
		},
		Transitions: []domain.TransitionDescriptor{
			{From: "ENTRY", To: "A"},
			{From: "A", To: "c1"},
			{From: "A", To: "c2"},
			{From: "c1", To: "g"},
			{From: "c2", To: "g"},
			{From: "g", To: "B"},
		},
	}

	res := compile(t, desc)
	g, ok := runtime.Lookup[*domain.Gate](res.Graph, "g")
	require.True(t, ok)
	assert.Equal(t, 2, g.ExpectedInputs())
	assert.Equal(t, domain.GateAnd, g.Operator())
}

func TestCompile_UnknownTransitionKind(t *testing.T) {
	desc := &domain.GraphDescription{
		Nodes: []domain.NodeDescriptor{
			{ID: "A", Kind: "state"},
			{ID: "B", Kind: "state"},
		},
		Transitions: []domain.TransitionDescriptor{
			{From: "ENTRY", To: "A"},
			{From: "A", To: "B", Kind: "Sideways"},
		},
	}

	res := compile(t, desc)
	assert.True(t, hasDiagnostic(res, "A", domain.ErrInvalidTransition))
	assert.Empty(t, res.Graph.Edges("A"))
}

func TestCompile_EntryResolution(t *testing.T) {
	tests := []struct {
		name      string
		desc      *domain.GraphDescription
		wantEntry string
		wantDiag  bool
	}{
		{
			name: "missing entry",
			desc: &domain.GraphDescription{
				Nodes: []domain.NodeDescriptor{{ID: "A", Kind: "state"}},
			},
			wantDiag: true,
		},
		{
			name: "entry into condition",
			desc: &domain.GraphDescription{
				Nodes:       []domain.NodeDescriptor{{ID: "c", Kind: "constant"}},
				Transitions: []domain.TransitionDescriptor{{From: "ENTRY", To: "c"}},
			},
			wantDiag: true,
		},
		{
			name: "two entries, first wins",
			desc: &domain.GraphDescription{
				Nodes: []domain.NodeDescriptor{{ID: "A", Kind: "state"}, {ID: "B", Kind: "state"}},
				Transitions: []domain.TransitionDescriptor{
					{From: "ENTRY", To: "B"},
					{From: "ENTRY", To: "A"},
				},
			},
			wantEntry: "B",
			wantDiag:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := compile(t, tt.desc)
			assert.Equal(t, tt.wantEntry, res.Entry)
			assert.Equal(t, tt.wantDiag, hasDiagnostic(res, domain.EntryNodeID, nil))
		})
	}
}

func TestCompile_CustomEntryNode(t *testing.T) {
	desc := &domain.GraphDescription{
		Nodes:       []domain.NodeDescriptor{{ID: "Idle", Kind: "state"}},
		Transitions: []domain.TransitionDescriptor{{From: "START", To: "Idle"}},
	}
	res, err := compiler.Compile(desc, nil, compiler.WithEntryNode("START"))
	require.NoError(t, err)
	assert.Equal(t, "Idle", res.Entry)
}

type lamp struct {
	Watts      int  `mapstructure:"watts"`
	Dimmable   bool `mapstructure:"dimmable"`
	Brightness float64
}

func (l *lamp) Settings() any { return l }

func TestInjectFields_BehaviorSettings(t *testing.T) {
	l := &lamp{}
	s := domain.NewState("lamp", l)

	errs := compiler.InjectFields(s, map[string]string{
		"duration":   "4",
		"watts":      "60",
		"dimmable":   "True",
		"brightness": "0.5",
	})

	assert.Empty(t, errs)
	assert.Equal(t, 4.0, s.Duration())
	assert.Equal(t, 60, l.Watts)
	assert.True(t, l.Dimmable)
	assert.Equal(t, 0.5, l.Brightness)
}

func TestInjectFields_UnparsableKeepsConfiguredValue(t *testing.T) {
	s := domain.NewState("A", nil)
	require.Empty(t, compiler.InjectFields(s, map[string]string{"duration": " 5 "}))
	require.Equal(t, 5.0, s.Duration())

	for _, raw := range []string{"", "  ", "5s", "0x10", "1e"} {
		errs := compiler.InjectFields(s, map[string]string{"duration": raw})
		require.Len(t, errs, 1, "%q", raw)
		assert.ErrorIs(t, errs[0], domain.ErrInvalidField, "%q", raw)
		assert.Equal(t, 5.0, s.Duration(), "%q", raw)
	}

	c := &registry.Constant{Value: true}
	cond := domain.NewCondition("c", c)
	for _, raw := range []string{"", "1", "t", "yes"} {
		errs := compiler.InjectFields(cond, map[string]string{"value": raw})
		require.Len(t, errs, 1, "%q", raw)
		assert.True(t, c.Value, "%q", raw)
	}
	require.Empty(t, compiler.InjectFields(cond, map[string]string{"value": "FALSE"}))
	assert.False(t, c.Value)

	e := &registry.Every{Period: 4}
	every := domain.NewCondition("e", e)
	for _, raw := range []string{"", "0x10", "2.5", "010a"} {
		errs := compiler.InjectFields(every, map[string]string{"period": raw})
		require.Len(t, errs, 1, "%q", raw)
		assert.Equal(t, 4, e.Period, "%q", raw)
	}
	require.Empty(t, compiler.InjectFields(every, map[string]string{"period": "010"}))
	assert.Equal(t, 10, e.Period)
}
