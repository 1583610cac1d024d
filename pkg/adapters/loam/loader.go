package loam

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/loam"
)

// Loader adapts a Loam repository, one document per node, to the GraphLoader interface.
type Loader struct {
	Repo *loam.TypedRepository[NodeMetadata]
	Name string
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[NodeMetadata], name string) *Loader {
	return &Loader{
		Repo: repo,
		Name: name,
	}
}

// Open initializes a read-only Loam repository at path and wraps it.
// The graph is named after the directory.
func Open(path string) (*Loader, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	// Strict mode keeps numeric frontmatter as json.Number; the engine never writes back.
	repo, err := loam.Init(absPath,
		loam.WithStrict(true),
		loam.WithReadOnly(true),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize loam: %w", err)
	}

	typedRepo := loam.NewTypedRepository[NodeMetadata](repo)
	return New(typedRepo, filepath.Base(absPath)), nil
}

type entry struct {
	id   string
	meta NodeMetadata
}

// Load lists every document and assembles them into a description.
// Nodes are ordered by id; a node's transitions keep their declared order.
func (l *Loader) Load(ctx context.Context) (*domain.GraphDescription, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	entries := make([]entry, 0, len(docs))
	for _, doc := range docs {
		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID
		entries = append(entries, entry{id: id, meta: doc.Data})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].id < entries[j].id })

	desc := &domain.GraphDescription{Name: l.Name}
	for _, e := range entries {
		if e.meta.Entry {
			desc.Transitions = append(desc.Transitions, domain.TransitionDescriptor{From: domain.EntryNodeID, To: e.id})
		}
	}
	for _, e := range entries {
		desc.Nodes = append(desc.Nodes, domain.NodeDescriptor{
			ID:     e.id,
			Kind:   kindOrDefault(e.meta.Kind),
			Fields: stringify(e.meta.Fields),
		})
		desc.Transitions = append(desc.Transitions, buildTransitions(e.id, e.meta)...)
	}
	return desc, nil
}

func buildTransitions(from string, meta NodeMetadata) []domain.TransitionDescriptor {
	out := make([]domain.TransitionDescriptor, 0, len(meta.Transitions)+2)
	for _, lt := range meta.Transitions {
		out = append(out, domain.TransitionDescriptor{From: from, To: trimExtension(lt.To), Kind: lt.Kind})
	}
	if meta.Then != "" {
		out = append(out, domain.TransitionDescriptor{From: from, To: trimExtension(meta.Then), Kind: domain.TransitionCompleted.String()})
	}
	if meta.To != "" {
		out = append(out, domain.TransitionDescriptor{From: from, To: trimExtension(meta.To), Kind: domain.TransitionContinued.String()})
	}
	return out
}

func kindOrDefault(kind string) string {
	if kind == "" {
		return domain.KindState
	}
	return kind
}

func stringify(fields map[string]any) map[string]string {
	if len(fields) == 0 {
		return nil
	}
	out := make(map[string]string, len(fields))
	for k, v := range fields {
		if v == nil {
			out[k] = ""
			continue
		}
		out[k] = fmt.Sprint(v)
	}
	return out
}

// trimExtension strips document extensions so "red.md" and "red" name the same node.
func trimExtension(id string) string {
	switch ext := filepath.Ext(id); ext {
	case ".md", ".json", ".yaml", ".yml":
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}
