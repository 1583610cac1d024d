// Package hcl loads graph descriptions written in HCL.
//
//	name  = "traffic"
//	entry = "Red"
//
//	node "Red" {
//	  kind   = "state"
//	  fields = { duration = 3 }
//	}
//
//	transition {
//	  from = "Red"
//	  to   = "Green"
//	  kind = "Completed"
//	}
package hcl

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclGraphFile represents the top-level structure of a graph file for decoding.
type hclGraphFile struct {
	Name        string          `hcl:"name,optional"`
	Entry       string          `hcl:"entry,optional"`
	Nodes       []hclNode       `hcl:"node,block"`
	Transitions []hclTransition `hcl:"transition,block"`
}

type hclNode struct {
	ID     string            `hcl:"id,label"`
	Kind   string            `hcl:"kind,optional"`
	Fields map[string]string `hcl:"fields,optional"`
}

type hclTransition struct {
	From string `hcl:"from"`
	To   string `hcl:"to"`
	Kind string `hcl:"kind,optional"`
}

// Loader implements ports.GraphLoader over a single .hcl file.
type Loader struct {
	Path string
}

// New creates a Loader for path.
func New(path string) *Loader {
	return &Loader{Path: path}
}

// Load parses the file. A missing file yields domain.ErrGraphNotFound.
func (l *Loader) Load(ctx context.Context) (*domain.GraphDescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	src, err := os.ReadFile(l.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, l.Path)
		}
		return nil, fmt.Errorf("failed to read HCL file: %w", err)
	}

	desc, err := Decode(src, l.Path)
	if err != nil {
		return nil, err
	}
	if desc.Name == "" {
		base := filepath.Base(l.Path)
		desc.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return desc, nil
}

// Decode parses HCL source. filename is only used in error messages.
func Decode(src []byte, filename string) (*domain.GraphDescription, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclGraphFile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	desc := &domain.GraphDescription{
		Name:        parsed.Name,
		Nodes:       make([]domain.NodeDescriptor, 0, len(parsed.Nodes)),
		Transitions: make([]domain.TransitionDescriptor, 0, len(parsed.Transitions)+1),
	}
	if parsed.Entry != "" {
		desc.Transitions = append(desc.Transitions, domain.TransitionDescriptor{From: domain.EntryNodeID, To: parsed.Entry})
	}
	for _, n := range parsed.Nodes {
		kind := n.Kind
		if kind == "" {
			kind = domain.KindState
		}
		desc.Nodes = append(desc.Nodes, domain.NodeDescriptor{ID: n.ID, Kind: kind, Fields: n.Fields})
	}
	for _, t := range parsed.Transitions {
		desc.Transitions = append(desc.Transitions, domain.TransitionDescriptor{From: t.From, To: t.To, Kind: t.Kind})
	}
	return desc, nil
}
