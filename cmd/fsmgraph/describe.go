package main

import (
	"fmt"

	"github.com/aretw0/fsmgraph/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe <source>",
	Short: "Print a report of the machine's nodes, transitions and load diagnostics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticks, _ := cmd.Flags().GetInt("ticks")
		dt, _ := cmd.Flags().GetFloat64("dt")

		m, err := loadMachine(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		for i := 0; i < ticks; i++ {
			m.Tick(cmd.Context(), dt)
		}

		render := tui.NewRenderer(cli.color)
		out, err := render(tui.DescribeMarkdown(m.Snapshot(), m.Description(), m.Diagnostics()))
		if err != nil {
			return fmt.Errorf("render: %w", err)
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)

	describeCmd.Flags().Int("ticks", 0, "Ticks to simulate before describing")
	describeCmd.Flags().Float64("dt", 0.1, "Seconds per simulated tick")
}
