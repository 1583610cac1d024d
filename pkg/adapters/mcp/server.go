package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/logging"
	"github.com/aretw0/fsmgraph/internal/presentation/graph"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/registry"
	"github.com/aretw0/fsmgraph/pkg/supervisor"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MachinesURI is the resource listing every supervised machine.
const MachinesURI = "fsmgraph://machines"

// MachineList is the result of the list_machines tool.
type MachineList struct {
	Machines []string `json:"machines" jsonschema_description:"Names of the supervised machines"`
}

type machineArgs struct {
	Machine string `json:"machine"`
}

type nodeArgs struct {
	Machine string `json:"machine"`
	NodeID  string `json:"node_id"`
}

type graphArgs struct {
	Machine string `json:"machine"`
	Overlay bool   `json:"overlay"`
}

// Server exposes the machines of a supervisor as MCP tools.
type Server struct {
	machines  *supervisor.Manager
	resolve   graph.KindResolver
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for transport errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry resolves node kinds for get_graph through reg.
// A nil registry keeps the built-in kinds.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.resolve = reg.NodeKindOf
		}
	}
}

// NewServer creates a new MCP Server over the supervised machines.
func NewServer(machines *supervisor.Manager, opts ...Option) *Server {
	s := &Server{
		machines:  machines,
		resolve:   registry.Default().NodeKindOf,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("fsmgraph-mcp", strings.TrimSpace(fsmgraph.Version), server.WithToolCapabilities(false)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio speaks JSON-RPC over in and out until in is exhausted or ctx is done.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelError))
	return stdio.Listen(ctx, in, out)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", addr, err)
	}
	if host == "" {
		host = "localhost"
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL("http://"+net.JoinHostPort(host, port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "addr", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the names of the supervised machines."),
		mcp.WithOutputSchema[MachineList](),
	), mcp.NewStructuredToolHandler(s.listMachines))

	s.mcpServer.AddTool(mcp.NewTool("get_snapshot",
		mcp.WithDescription("Get the current state and the status of every node of a machine."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithOutputSchema[domain.Snapshot](),
	), mcp.NewStructuredToolHandler(s.getSnapshot))

	s.mcpServer.AddTool(mcp.NewTool("get_node",
		mcp.WithDescription("Get the status of a single node: progress, pause flag, last signal or buffered inputs."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Node ID")),
		mcp.WithOutputSchema[domain.NodeStatus](),
	), mcp.NewStructuredToolHandler(s.getNode))

	s.mcpServer.AddTool(mcp.NewTool("get_description",
		mcp.WithDescription("Get the graph description a machine was built from."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
	), mcp.NewStructuredToolHandler(s.getDescription))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render a machine as a Mermaid flowchart."),
		mcp.WithString("machine", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithBoolean("overlay", mcp.Description("Mark the current state and the last condition signals")),
	), s.getGraph)
}

func (s *Server) listMachines(ctx context.Context, request mcp.CallToolRequest, _ struct{}) (MachineList, error) {
	return MachineList{Machines: s.machines.Names()}, nil
}

func (s *Server) getSnapshot(ctx context.Context, request mcp.CallToolRequest, args machineArgs) (domain.Snapshot, error) {
	return s.machines.Snapshot(ctx, args.Machine)
}

func (s *Server) getNode(ctx context.Context, request mcp.CallToolRequest, args nodeArgs) (domain.NodeStatus, error) {
	snap, err := s.machines.Snapshot(ctx, args.Machine)
	if err != nil {
		return domain.NodeStatus{}, err
	}
	for _, n := range snap.Nodes {
		if n.ID == args.NodeID {
			return n, nil
		}
	}
	return domain.NodeStatus{}, fmt.Errorf("%w: %q", domain.ErrUnknownNode, args.NodeID)
}

func (s *Server) getDescription(ctx context.Context, request mcp.CallToolRequest, args machineArgs) (*domain.GraphDescription, error) {
	return s.machines.Describe(ctx, args.Machine)
}

func (s *Server) getGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args graphArgs
	if err := request.BindArguments(&args); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}

	desc, err := s.machines.Describe(ctx, args.Machine)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("describe failed", err), nil
	}

	var overlay *graph.GraphOverlay
	if args.Overlay {
		snap, err := s.machines.Snapshot(ctx, args.Machine)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("snapshot failed", err), nil
		}
		overlay = graph.OverlayFromSnapshot(snap)
	}
	return mcp.NewToolResultText(graph.GenerateMermaid(desc, s.resolve, overlay)), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MachinesURI, "Supervised machines",
		mcp.WithMIMEType("application/json"),
	), s.readMachines)
}

func (s *Server) readMachines(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	snaps := make([]domain.Snapshot, 0)
	for _, name := range s.machines.Names() {
		snap, err := s.machines.Snapshot(ctx, name)
		if errors.Is(err, supervisor.ErrMachineNotFound) {
			// Removed between Names and Snapshot.
			continue
		}
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, snap)
	}
	data, err := json.Marshal(snaps)
	if err != nil {
		return nil, fmt.Errorf("failed to encode machines: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      MachinesURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
