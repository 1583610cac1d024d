package ports

import (
	"context"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// GraphLoader retrieves a graph description from a backing source.
// This allows the storage layer (Memory, File, HCL, Loam, Redis) to be decoupled from the compiler.
type GraphLoader interface {
	// Load returns a description owned by the caller: mutating it must not
	// affect later calls.
	Load(ctx context.Context) (*domain.GraphDescription, error)
}

// GraphStore is implemented by loaders that can also persist a description.
type GraphStore interface {
	GraphLoader
	Store(ctx context.Context, desc *domain.GraphDescription) error
}
