package main

import (
	"fmt"

	"github.com/aretw0/fsmgraph/internal/presentation/graph"
	"github.com/aretw0/fsmgraph/pkg/registry"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <source>",
	Short: "Export the graph as a Mermaid diagram",
	Long: `Outputs a Mermaid diagram (graph TD) of the machine. With --overlay the machine is
ticked --ticks times by --dt seconds and the current state and last signals are highlighted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		overlay, _ := cmd.Flags().GetBool("overlay")
		ticks, _ := cmd.Flags().GetInt("ticks")
		dt, _ := cmd.Flags().GetFloat64("dt")

		m, err := loadMachine(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		var o *graph.GraphOverlay
		if overlay {
			for i := 0; i < ticks; i++ {
				m.Tick(cmd.Context(), dt)
			}
			o = graph.OverlayFromSnapshot(m.Snapshot())
		}

		fmt.Fprint(cmd.OutOrStdout(), graph.GenerateMermaid(m.Description(), registry.Default().NodeKindOf, o))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().Bool("overlay", false, "Highlight the current state and evaluated signals")
	graphCmd.Flags().Int("ticks", 0, "Ticks to simulate before drawing the overlay")
	graphCmd.Flags().Float64("dt", 0.1, "Seconds per simulated tick")
}
