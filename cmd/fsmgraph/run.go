package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/presentation/tui"
	"github.com/aretw0/fsmgraph/pkg/runner"
	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run <source>",
	Short: "Tick a machine and print its transitions",
	Long: `Loads the graph, enters the entry state and ticks the machine at a fixed interval
until interrupted or until --ticks ticks have run.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ticks, _ := cmd.Flags().GetInt("ticks")
		interval, _ := cmd.Flags().GetDuration("interval")
		fixedStep, _ := cmd.Flags().GetDuration("fixed-step")
		if !cmd.Flags().Changed("interval") {
			interval = cli.cfg.TickInterval
		}
		if !cmd.Flags().Changed("fixed-step") {
			fixedStep = cli.cfg.FixedStep
		}

		out := tui.NewOutput(cmd.OutOrStdout(), cli.color)
		if cli.color {
			tui.PrintBanner(out, strings.TrimSpace(fsmgraph.Version))
		}

		printer := tui.NewTransitionPrinter(out, time.Now())
		m, err := loadMachine(cmd.Context(), args[0], fsmgraph.WithLifecycleHooks(printer.Hooks()))
		if err != nil {
			return err
		}
		for _, d := range m.Diagnostics() {
			fmt.Fprintln(cmd.ErrOrStderr(), d.String())
		}
		if _, ok := m.CurrentState(); !ok {
			return fmt.Errorf("graph %q has no usable entry state", m.Name())
		}

		r := runner.NewRunner(
			runner.WithInterval(interval),
			runner.WithFixedStep(fixedStep),
			runner.WithMaxTicks(ticks),
			runner.WithSignals(true),
			runner.WithLogger(cli.logger),
		)
		err = r.Run(cmd.Context(), m)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		current, _ := m.CurrentState()
		fmt.Fprintf(out, "stopped after %d ticks in %s\n", r.Ticks(), current)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("ticks", 0, "Stop after this many ticks (0 runs until interrupted)")
	runCmd.Flags().Duration("interval", 100*time.Millisecond, "Wall time between ticks (env FSMGRAPH_TICK_INTERVAL)")
	runCmd.Flags().Duration("fixed-step", 20*time.Millisecond, "Fixed update step, 0 disables it (env FSMGRAPH_FIXED_STEP)")
}
