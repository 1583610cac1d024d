// Package file loads graph descriptions from YAML or JSON files.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a description file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatOf picks the format from the file extension. Unknown extensions are read as YAML,
// which also accepts JSON.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// Loader implements ports.GraphStore over a single file.
type Loader struct {
	Path string
}

// New creates a Loader for path.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// Load reads and decodes the file. A missing file yields domain.ErrGraphNotFound.
// Graphs without a name are named after the file.
func (l *Loader) Load(ctx context.Context) (*domain.GraphDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(l.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, l.Path)
		}
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}

	desc, err := Decode(data, FormatOf(l.Path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", l.Path, err)
	}
	if desc.Name == "" {
		base := filepath.Base(l.Path)
		desc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return desc, nil
}

// Store encodes desc in the file's format, creating parent directories as needed.
func (l *Loader) Store(ctx context.Context, desc *domain.GraphDescription) error {
	if desc == nil {
		return domain.ErrNilDescription
	}
	data, err := Encode(desc, FormatOf(l.Path))
	if err != nil {
		return err
	}

	if dir := filepath.Dir(l.Path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to ensure graph directory: %w", err)
		}
	}
	if err := os.WriteFile(l.Path, data, 0644); err != nil {
		return fmt.Errorf("failed to write graph file: %w", err)
	}
	return nil
}

// Decode parses data in format f. Nodes without a kind are plain states.
func Decode(data []byte, f Format) (*domain.GraphDescription, error) {
	var desc domain.GraphDescription
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &desc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &desc); err != nil {
			return nil, fmt.Errorf("failed to unmarshal graph: %w", err)
		}
	}
	for i := range desc.Nodes {
		if desc.Nodes[i].Kind == "" {
			desc.Nodes[i].Kind = domain.KindState
		}
	}
	return &desc, nil
}

// Encode renders desc in format f.
func Encode(desc *domain.GraphDescription, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(desc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal graph: %w", err)
		}
		return append(data, '\n'), nil
	default:
		data, err := yaml.Marshal(desc)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal graph: %w", err)
		}
		return data, nil
	}
}
