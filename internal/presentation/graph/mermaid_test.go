package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/fsmgraph/internal/presentation/graph"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/dsl"
	"github.com/aretw0/fsmgraph/pkg/registry"
)

func sample() *domain.GraphDescription {
	b := dsl.New("sample").Entry("Idle")
	b.State("Idle").Duration(2).Then("ready").Go("stop")
	b.Condition("ready", domain.KindConstant).Go("both")
	b.Condition("stop", domain.KindEvery).Go("both")
	b.Gate("both", domain.GateAnd).Go("my-state.v2")
	b.State("my-state.v2")
	return b.Build()
}

func TestGenerateMermaid(t *testing.T) {
	out := graph.GenerateMermaid(sample(), registry.Default().NodeKindOf, nil)

	contains := []string{
		"graph TD\n",
		"ENTRY((\"ENTRY\"))",
		"Idle[\"Idle <br/> ⏱️ 2s\"]",
		"ready{\"ready <br/> constant\"}",
		"both{{\"both <br/> AND\"}}",
		"my_state_v2[\"my-state.v2\"]",
		"ENTRY --> Idle",
		"Idle == done ==> ready",
		"Idle --> stop",
		"both --> my_state_v2",
	}
	for _, want := range contains {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q\nGot:\n%s", want, out)
		}
	}
	if strings.Contains(out, "classDef") {
		t.Error("no overlay requested, but styles were emitted")
	}
}

func TestGenerateMermaid_WithoutResolver(t *testing.T) {
	out := graph.GenerateMermaid(sample(), nil, nil)
	if !strings.Contains(out, "ready[\"ready\"]") {
		t.Errorf("unresolved kinds should render as states\nGot:\n%s", out)
	}
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	snap := domain.Snapshot{
		Current: "Idle",
		Nodes: []domain.NodeStatus{
			{ID: "Idle", Kind: "state", Current: true},
			{ID: "ready", Kind: "condition", LastSignal: true},
			{ID: "stop", Kind: "condition"},
		},
	}
	out := graph.GenerateMermaid(sample(), registry.Default().NodeKindOf, graph.OverlayFromSnapshot(snap))

	for _, want := range []string{
		"class ready signalTrue;",
		"class stop signalFalse;",
		"class Idle current;",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected overlay line %q\nGot:\n%s", want, out)
		}
	}
	if strings.Index(out, "class ready") > strings.Index(out, "class stop") {
		t.Error("overlay classes should follow node order")
	}
}
