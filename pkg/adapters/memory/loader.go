package memory

import (
	"context"
	"sync"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// Loader implements ports.GraphStore over a description held in memory.
// Safe for concurrent use.
type Loader struct {
	mu   sync.RWMutex
	desc *domain.GraphDescription
}

// NewLoader creates a Loader serving a copy of desc.
func NewLoader(desc *domain.GraphDescription) *Loader {
	if desc == nil {
		desc = &domain.GraphDescription{}
	}
	return &Loader{desc: desc.Clone()}
}

// Load returns a deep copy of the held description.
func (l *Loader) Load(ctx context.Context) (*domain.GraphDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.desc.Clone(), nil
}

// Store replaces the held description.
func (l *Loader) Store(ctx context.Context, desc *domain.GraphDescription) error {
	if desc == nil {
		return domain.ErrNilDescription
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.desc = desc.Clone()
	return nil
}
