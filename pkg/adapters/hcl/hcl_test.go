package hcl_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/fsmgraph/pkg/adapters/hcl"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trafficHCL = `
name  = "traffic"
entry = "Red"

node "Red" {
  fields = { duration = 3 }
}

node "Green" {
  kind   = "state"
  fields = { duration = 2.5 }
}

node "both" {
  kind = "and"
}

transition {
  from = "Red"
  to   = "Green"
  kind = "Completed"
}

transition {
  from = "Green"
  to   = "Red"
}
`

func trafficWant() *domain.GraphDescription {
	return &domain.GraphDescription{
		Name: "traffic",
		Nodes: []domain.NodeDescriptor{
			{ID: "Red", Kind: "state", Fields: map[string]string{"duration": "3"}},
			{ID: "Green", Kind: "state", Fields: map[string]string{"duration": "2.5"}},
			{ID: "both", Kind: "and"},
		},
		Transitions: []domain.TransitionDescriptor{
			{From: "ENTRY", To: "Red"},
			{From: "Red", To: "Green", Kind: "Completed"},
			{From: "Green", To: "Red"},
		},
	}
}

func writeHCL(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestLoader_Contract(t *testing.T) {
	tests.GraphLoaderContractTest(t, hcl.New(writeHCL(t, "traffic.hcl", trafficHCL)), trafficWant())
}

func TestLoader_NameFromFile(t *testing.T) {
	path := writeHCL(t, "door.hcl", `node "Closed" {}`)
	desc, err := hcl.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "door", desc.Name)
	assert.Empty(t, desc.Transitions)
}

func TestDecode_Errors(t *testing.T) {
	_, err := hcl.Decode([]byte(`node "A" {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file broken.hcl")

	_, err = hcl.Decode([]byte(`transition { from = "A" }`), "missing.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL file missing.hcl")

	_, err = hcl.Decode([]byte(`colour = "blue"`), "unknown.hcl")
	assert.Error(t, err)
}

func TestLoader_NotFound(t *testing.T) {
	_, err := hcl.New(filepath.Join(t.TempDir(), "nope.hcl")).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
}
