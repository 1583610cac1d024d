package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/fsmgraph/internal/config"
	"github.com/aretw0/fsmgraph/internal/logging"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var rootCmd = &cobra.Command{
	Use:   "fsmgraph",
	Short: "fsmgraph runs finite state machines described as graphs",
	Long: `fsmgraph loads a graph of states, conditions and logical gates from YAML, JSON,
HCL, a directory of Markdown/JSON node documents or a Redis key, and ticks it.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// cli holds what setup resolved from the environment and the persistent flags.
var cli struct {
	cfg    config.Config
	logger *slog.Logger
	entry  string
	color  bool
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error (env FSMGRAPH_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("redis-addr", "", "Redis address for redis:// sources (env FSMGRAPH_REDIS_ADDR)")
	rootCmd.PersistentFlags().String("entry", "", "Id of the entry marker node")
	rootCmd.PersistentFlags().Bool("carry-over", false, "Keep gate buffers between propagation passes (env FSMGRAPH_GATE_CARRY_OVER)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("redis-addr") {
		cfg.RedisAddr, _ = flags.GetString("redis-addr")
	}
	if flags.Changed("carry-over") {
		cfg.GateCarryOver, _ = flags.GetBool("carry-over")
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}

	noColor, _ := flags.GetBool("no-color")
	cli.cfg = cfg
	cli.logger = logging.New(level)
	cli.entry, _ = flags.GetString("entry")
	cli.color = !noColor && term.IsTerminal(int(os.Stdout.Fd()))
	return nil
}
