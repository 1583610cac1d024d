package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/logging"
	"github.com/aretw0/fsmgraph/internal/presentation/graph"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/registry"
	"github.com/aretw0/fsmgraph/pkg/supervisor"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes the machines of a supervisor as a read-only JSON API.
type Server struct {
	Machines *supervisor.Manager
	Resolve  graph.KindResolver

	logger *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a logger for request errors.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRegistry resolves node kinds for the graph endpoint through reg.
// A nil registry keeps the built-in kinds.
func WithRegistry(reg *registry.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.Resolve = reg.NodeKindOf
		}
	}
}

// NewHandler creates a new HTTP handler over the supervised machines.
func NewHandler(machines *supervisor.Manager, opts ...Option) http.Handler {
	server := &Server{
		Machines: machines,
		Resolve:  registry.Default().NodeKindOf,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Route("/machines", func(r chi.Router) {
		r.Get("/", server.ListMachines)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", server.GetMachine)
			r.Get("/description", server.GetDescription)
			r.Get("/graph", server.GetGraph)
			r.Get("/nodes/{id}", server.GetNode)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"app":     "fsmgraph-http",
		"version": strings.TrimSpace(fsmgraph.Version),
	})
}

// ListMachines handles the GET /machines request.
func (s *Server) ListMachines(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string][]string{"machines": s.Machines.Names()})
}

// GetMachine handles the GET /machines/{name} request.
func (s *Server) GetMachine(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Machines.Snapshot(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, snap)
}

// GetDescription handles the GET /machines/{name}/description request.
func (s *Server) GetDescription(w http.ResponseWriter, r *http.Request) {
	desc, err := s.Machines.Describe(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, desc)
}

// GetNode handles the GET /machines/{name}/nodes/{id} request.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	snap, err := s.Machines.Snapshot(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	for _, n := range snap.Nodes {
		if n.ID == id {
			s.writeJSON(w, n)
			return
		}
	}
	s.fail(w, domain.ErrUnknownNode)
}

// GetGraph handles the GET /machines/{name}/graph request.
// The response is a Mermaid flowchart; ?overlay=true marks the current state and last signals.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	desc, err := s.Machines.Describe(r.Context(), name)
	if err != nil {
		s.fail(w, err)
		return
	}

	var overlay *graph.GraphOverlay
	if r.URL.Query().Get("overlay") == "true" {
		snap, err := s.Machines.Snapshot(r.Context(), name)
		if err != nil {
			s.fail(w, err)
			return
		}
		overlay = graph.OverlayFromSnapshot(snap)
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(graph.GenerateMermaid(desc, s.Resolve, overlay))); err != nil {
		s.logger.Error("GetGraph write failed", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, supervisor.ErrMachineNotFound), errors.Is(err, domain.ErrUnknownNode):
		status = http.StatusNotFound
	default:
		s.logger.Error("request failed", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(map[string]string{"error": err.Error()}); encErr != nil {
		s.logger.Error("error response encode failed", "err", encErr)
	}
}
