package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/dsl"
	"github.com/aretw0/fsmgraph/pkg/supervisor"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *supervisor.Manager) {
	t.Helper()
	b := dsl.New("gated").Entry("A")
	b.State("A").Duration(1).Go("yes").Go("no")
	b.Condition("yes", domain.KindConstant).Field("value", "true").Go("both")
	b.Condition("no", domain.KindConstant).Field("value", "false").Go("both")
	b.Gate("both", domain.GateOr).Go("B")
	b.State("B")

	m, err := fsmgraph.New(b.Build())
	require.NoError(t, err)

	mgr := supervisor.NewManager()
	require.NoError(t, mgr.Register("gated", m))
	return NewServer(mgr, opts...), mgr
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: name, Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Content[0])
	return text.Text
}

func TestServer_ListMachines(t *testing.T) {
	s, _ := newTestServer(t)

	result, err := mcp.NewStructuredToolHandler(s.listMachines)(context.Background(), call("list_machines", nil))
	require.NoError(t, err)
	require.False(t, result.IsError)

	list, ok := result.StructuredContent.(MachineList)
	require.True(t, ok, "expected MachineList, got %T", result.StructuredContent)
	assert.Equal(t, []string{"gated"}, list.Machines)
}

func TestServer_GetSnapshot(t *testing.T) {
	s, mgr := newTestServer(t)
	require.NoError(t, mgr.Tick(context.Background(), "gated", 1))

	result, err := mcp.NewStructuredToolHandler(s.getSnapshot)(context.Background(), call("get_snapshot", map[string]any{"machine": "gated"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	snap, ok := result.StructuredContent.(domain.Snapshot)
	require.True(t, ok, "expected Snapshot, got %T", result.StructuredContent)
	assert.Equal(t, "gated", snap.Name)
	assert.Equal(t, "B", snap.Current)
	assert.Len(t, snap.Nodes, 5)
}

func TestServer_GetNode(t *testing.T) {
	s, mgr := newTestServer(t)
	require.NoError(t, mgr.Tick(context.Background(), "gated", 1))
	handler := mcp.NewStructuredToolHandler(s.getNode)

	result, err := handler(context.Background(), call("get_node", map[string]any{"machine": "gated", "node_id": "yes"}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	st, ok := result.StructuredContent.(domain.NodeStatus)
	require.True(t, ok, "expected NodeStatus, got %T", result.StructuredContent)
	assert.Equal(t, "yes", st.ID)
	assert.True(t, st.LastSignal)

	_, err = s.getNode(context.Background(), mcp.CallToolRequest{}, nodeArgs{Machine: "gated", NodeID: "missing"})
	assert.ErrorIs(t, err, domain.ErrUnknownNode)

	result, err = handler(context.Background(), call("get_node", map[string]any{"machine": "gated", "node_id": "missing"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestServer_UnknownMachine(t *testing.T) {
	s, _ := newTestServer(t)
	ctx := context.Background()
	args := map[string]any{"machine": "nope"}

	_, err := s.getSnapshot(ctx, mcp.CallToolRequest{}, machineArgs{Machine: "nope"})
	assert.ErrorIs(t, err, supervisor.ErrMachineNotFound)
	_, err = s.getDescription(ctx, mcp.CallToolRequest{}, machineArgs{Machine: "nope"})
	assert.ErrorIs(t, err, supervisor.ErrMachineNotFound)

	result, err := mcp.NewStructuredToolHandler(s.getSnapshot)(ctx, call("get_snapshot", args))
	require.NoError(t, err)
	assert.True(t, result.IsError)

	result, err = s.getGraph(ctx, call("get_graph", args))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "machine not found")
}

func TestServer_GetDescription(t *testing.T) {
	s, _ := newTestServer(t)

	desc, err := s.getDescription(context.Background(), mcp.CallToolRequest{}, machineArgs{Machine: "gated"})
	require.NoError(t, err)
	assert.Equal(t, "gated", desc.Name)
	assert.Len(t, desc.Nodes, 5)
}

func TestServer_GetGraph(t *testing.T) {
	s, mgr := newTestServer(t)
	ctx := context.Background()

	result, err := s.getGraph(ctx, call("get_graph", map[string]any{"machine": "gated"}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	body := resultText(t, result)
	assert.Contains(t, body, "graph TD\n")
	assert.Contains(t, body, `both{{"both <br/> OR"}}`)
	assert.NotContains(t, body, "classDef")

	require.NoError(t, mgr.Tick(ctx, "gated", 1))
	result, err = s.getGraph(ctx, call("get_graph", map[string]any{"machine": "gated", "overlay": true}))
	require.NoError(t, err)
	body = resultText(t, result)
	assert.Contains(t, body, "class yes signalTrue;")
	assert.Contains(t, body, "class no signalFalse;")
	assert.Contains(t, body, "class B current;")
}

func TestServer_ReadMachinesResource(t *testing.T) {
	s, _ := newTestServer(t)

	contents, err := s.readMachines(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, MachinesURI, text.URI)

	var snaps []domain.Snapshot
	require.NoError(t, json.Unmarshal([]byte(text.Text), &snaps))
	require.Len(t, snaps, 1)
	assert.Equal(t, "gated", snaps[0].Name)
}

func TestServer_ToolsAreRegistered(t *testing.T) {
	s, _ := newTestServer(t)

	resp := s.mcpServer.HandleMessage(context.Background(), json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	data, err := json.Marshal(resp)
	require.NoError(t, err)

	for _, name := range []string{"list_machines", "get_snapshot", "get_node", "get_description", "get_graph"} {
		assert.Contains(t, string(data), `"name":"`+name+`"`)
	}
}

func TestServer_NilOptionsKeepDefaults(t *testing.T) {
	s, _ := newTestServer(t, WithLogger(nil), WithRegistry(nil))

	assert.NotNil(t, s.logger)
	result, err := s.getGraph(context.Background(), call("get_graph", map[string]any{"machine": "gated"}))
	require.NoError(t, err)
	assert.Contains(t, resultText(t, result), `both{{"both <br/> OR"}}`)
}
