package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without a terminal the markdown is returned unchanged.
func NewRenderer(terminal bool) func(string) (string, error) {
	if !terminal {
		return func(markdown string) (string, error) { return markdown, nil }
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// DescribeMarkdown renders a machine as a markdown report: nodes, transitions
// and load diagnostics.
func DescribeMarkdown(snap domain.Snapshot, desc *domain.GraphDescription, diags []domain.Diagnostic) string {
	var sb strings.Builder

	title := snap.Name
	if title == "" {
		title = "graph"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if snap.Current != "" {
		fmt.Fprintf(&sb, "Current state: **%s**\n\n", snap.Current)
	} else {
		sb.WriteString("Current state: _none_ (idle)\n\n")
	}

	sb.WriteString("## Nodes\n\n")
	sb.WriteString("| id | kind | details |\n|---|---|---|\n")
	for _, n := range snap.Nodes {
		fmt.Fprintf(&sb, "| %s | %s | %s |\n", n.ID, n.Kind, details(n))
	}

	if desc != nil && len(desc.Transitions) > 0 {
		sb.WriteString("\n## Transitions\n\n")
		sb.WriteString("| from | to | kind |\n|---|---|---|\n")
		for _, t := range desc.Transitions {
			kind := t.Kind
			if kind == "" {
				kind = domain.TransitionContinued.String()
			}
			fmt.Fprintf(&sb, "| %s | %s | %s |\n", t.From, t.To, kind)
		}
	}

	if len(diags) > 0 {
		sb.WriteString("\n## Diagnostics\n\n")
		for _, d := range diags {
			fmt.Fprintf(&sb, "- %s\n", d.String())
		}
	}
	return sb.String()
}

func details(n domain.NodeStatus) string {
	switch n.Kind {
	case domain.NodeState.String():
		return fmt.Sprintf("duration %gs, progress %.0f%%", n.Duration, n.Progress*100)
	case domain.NodeGate.String():
		return fmt.Sprintf("%s of %d inputs, last signal %t", strings.ToUpper(string(n.Operator)), n.ExpectedInputs, n.LastSignal)
	default:
		return fmt.Sprintf("last signal %t", n.LastSignal)
	}
}
