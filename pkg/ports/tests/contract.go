package tests

import (
	"context"
	"testing"

	"github.com/aretw0/fsmgraph/internal/compiler"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/ports"
	"github.com/aretw0/fsmgraph/pkg/registry"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// GraphLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.GraphLoader.
func GraphLoaderContractTest(t *testing.T, loader ports.GraphLoader, want *domain.GraphDescription) {
	t.Helper()
	ctx := context.Background()

	// 1. Load returns the expected description, order included
	t.Run("Load_Matches", func(t *testing.T) {
		got, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("description mismatch (-want +got):\n%s", diff)
		}
	})

	// 2. Callers own the result
	t.Run("Load_Isolated", func(t *testing.T) {
		first, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		first.Name = "mutated"
		first.Nodes = append(first.Nodes, domain.NodeDescriptor{ID: "intruder", Kind: "state"})
		if len(first.Transitions) > 0 {
			first.Transitions[0].To = "intruder"
		}

		second, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error reloading graph: %v", err)
		}
		if diff := cmp.Diff(want, second, cmpopts.EquateEmpty()); diff != "" {
			t.Errorf("loader leaked caller mutations (-want +got):\n%s", diff)
		}
	})

	// 3. The description is compilable
	t.Run("Load_Compiles", func(t *testing.T) {
		desc, err := loader.Load(ctx)
		if err != nil {
			t.Fatalf("unexpected error loading graph: %v", err)
		}
		res, err := compiler.Compile(desc, registry.Default())
		if err != nil {
			t.Fatalf("compile failed: %v", err)
		}
		if res.Graph.Len() == 0 && len(want.Nodes) > 0 {
			t.Error("expected compiled nodes, got none")
		}
	})
}
