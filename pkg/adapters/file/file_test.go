package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/fsmgraph/pkg/adapters/file"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trafficYAML = `name: traffic
nodes:
  - id: Red
    kind: state
    fields:
      duration: "3"
  - id: Green
    kind: state
    fields:
      duration: 2.5
  - id: car
    kind: constant
    fields:
      value: true
transitions:
  - from: ENTRY
    to: Red
  - from: Red
    to: Green
    kind: Completed
  - from: Green
    to: car
  - from: car
    to: Red
`

func trafficWant() *domain.GraphDescription {
	return &domain.GraphDescription{
		Name: "traffic",
		Nodes: []domain.NodeDescriptor{
			{ID: "Red", Kind: "state", Fields: map[string]string{"duration": "3"}},
			{ID: "Green", Kind: "state", Fields: map[string]string{"duration": "2.5"}},
			{ID: "car", Kind: "constant", Fields: map[string]string{"value": "true"}},
		},
		Transitions: []domain.TransitionDescriptor{
			{From: "ENTRY", To: "Red"},
			{From: "Red", To: "Green", Kind: "Completed"},
			{From: "Green", To: "car"},
			{From: "car", To: "Red"},
		},
	}
}

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoader_YAMLContract(t *testing.T) {
	tests.GraphLoaderContractTest(t, file.New(write(t, "traffic.yaml", trafficYAML)), trafficWant())
}

func TestLoader_JSON(t *testing.T) {
	path := write(t, "blink.json", `{
  "nodes": [{"id": "On", "fields": {"duration": "1"}}],
  "transitions": [{"from": "ENTRY", "to": "On"}]
}`)

	desc, err := file.New(path).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "blink", desc.Name, "unnamed graphs take the file name")
	assert.Equal(t, "1", desc.Nodes[0].Fields["duration"])
	assert.Equal(t, domain.KindState, desc.Nodes[0].Kind, "kind defaults to a plain state")
}

func TestLoader_NotFound(t *testing.T) {
	_, err := file.New(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrGraphNotFound)
}

func TestLoader_Malformed(t *testing.T) {
	_, err := file.New(write(t, "bad.yaml", "nodes: [oops")).Load(context.Background())
	assert.ErrorContains(t, err, "failed to unmarshal graph")
}

func TestLoader_StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for _, name := range []string{"out/graph.yaml", "out/graph.json"} {
		t.Run(name, func(t *testing.T) {
			loader := file.New(filepath.Join(t.TempDir(), name))
			require.NoError(t, loader.Store(ctx, trafficWant()))

			got, err := loader.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, trafficWant(), got)
		})
	}
}

func TestFormatOf(t *testing.T) {
	assert.Equal(t, file.FormatJSON, file.FormatOf("a/b.JSON"))
	assert.Equal(t, file.FormatYAML, file.FormatOf("a/b.yml"))
	assert.Equal(t, file.FormatYAML, file.FormatOf("graph"))
}
