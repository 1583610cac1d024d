package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
)

// GraphOverlay contains dynamic state data to visualize on the graph.
type GraphOverlay struct {
	CurrentNode string
	// Signals holds the last signal of conditions and gates that have been evaluated.
	Signals map[string]bool
}

// OverlayFromSnapshot builds an overlay from a machine snapshot.
func OverlayFromSnapshot(snap domain.Snapshot) *GraphOverlay {
	o := &GraphOverlay{CurrentNode: snap.Current, Signals: make(map[string]bool)}
	for _, n := range snap.Nodes {
		if n.Kind != domain.NodeState.String() {
			o.Signals[n.ID] = n.LastSignal
		}
	}
	return o
}

// KindResolver maps a descriptor kind tag to its node variant.
type KindResolver func(kind string) (domain.NodeKind, bool)

// GenerateMermaid produces a Mermaid flowchart from a graph description.
// It applies semantic styling:
// - Entry: ((Circle))
// - State: [Rectangle], annotated with its duration
// - Condition: {Rhombus}
// - Gate: {{Hexagon}} labelled with its operator
// Completed transitions are drawn thick and labelled "done".
func GenerateMermaid(desc *domain.GraphDescription, resolve KindResolver, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")
	if desc == nil {
		return sb.String()
	}

	entryUsed := false
	for _, t := range desc.Transitions {
		if t.From == domain.EntryNodeID {
			entryUsed = true
			break
		}
	}
	if entryUsed {
		sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", sanitizeMermaidID(domain.EntryNodeID), domain.EntryNodeID))
	}

	for _, node := range desc.Nodes {
		if node.ID == domain.EntryNodeID {
			continue
		}
		safeID := sanitizeMermaidID(node.ID)

		variant := domain.NodeState
		if resolve != nil {
			if k, ok := resolve(node.Kind); ok {
				variant = k
			}
		}

		label := escapeLabel(node.ID)
		opener, closer := "[", "]"
		switch variant {
		case domain.NodeCondition:
			opener, closer = "{", "}"
			label = fmt.Sprintf("%s <br/> %s", label, escapeLabel(node.Kind))
		case domain.NodeGate:
			opener, closer = "{{", "}}"
			label = fmt.Sprintf("%s <br/> %s", label, strings.ToUpper(node.Kind))
		default:
			if d := node.Fields["duration"]; d != "" && d != "0" {
				label = fmt.Sprintf("%s <br/> ⏱️ %ss", label, escapeLabel(d))
			}
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, label, closer))
	}

	for _, t := range desc.Transitions {
		arrow := "-->"
		if kind, err := domain.ParseTransitionKind(t.Kind); err == nil && kind == domain.TransitionCompleted {
			arrow = "== done ==>"
		}
		sb.WriteString(fmt.Sprintf("    %s %s %s\n", sanitizeMermaidID(t.From), arrow, sanitizeMermaidID(t.To)))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef signalTrue fill:#c8e6c9,stroke:#2e7d32,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef signalFalse fill:#ffcdd2,stroke:#c62828,stroke-width:1px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		// Iterate in node order so the output is stable.
		for _, node := range desc.Nodes {
			signal, ok := overlay.Signals[node.ID]
			if !ok {
				continue
			}
			class := "signalFalse"
			if signal {
				class = "signalTrue"
			}
			sb.WriteString(fmt.Sprintf("    class %s %s;\n", sanitizeMermaidID(node.ID), class))
		}

		if overlay.CurrentNode != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentNode)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
