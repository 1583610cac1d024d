package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aretw0/fsmgraph"
	mcpAdapter "github.com/aretw0/fsmgraph/pkg/adapters/mcp"
	"github.com/aretw0/fsmgraph/pkg/observability"
	"github.com/aretw0/fsmgraph/pkg/runner"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp <source>...",
	Short: "Tick machines in the background and expose them as MCP tools",
	Long: `Starts a Model Context Protocol server over the loaded machines so agents can
list them, read snapshots and node status, and render their graphs.

Supported Transports:
- stdio (default): JSON-RPC on standard input/output. Logs go to stderr.
- sse: Server-Sent Events over HTTP on --addr.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			addr = cli.cfg.ListenAddr
		}
		if transport != "stdio" && transport != "sse" {
			return fmt.Errorf("unknown transport %q, supported: stdio, sse", transport)
		}

		signals := runner.NewSignalManager(cmd.Context())
		defer signals.Stop()
		ctx, cancel := context.WithCancel(signals.Context())
		defer cancel()

		mgr, err := superviseSources(ctx, args, fsmgraph.WithLifecycleHooks(observability.LogHooks(cli.logger)))
		if err != nil {
			return err
		}
		wg := tickMachines(ctx, mgr)
		defer wg.Wait()
		// Runners stop before wg.Wait when the transport returns on its own.
		defer cancel()

		srv := mcpAdapter.NewServer(mgr, mcpAdapter.WithLogger(cli.logger))
		switch transport {
		case "sse":
			cli.logger.Info("starting MCP server (SSE)", "addr", addr, "machines", mgr.Names())
			err = srv.ServeSSE(ctx, addr)
			if errors.Is(err, http.ErrServerClosed) {
				err = nil
			}
		default:
			cli.logger.Info("starting MCP server (stdio)", "machines", mgr.Names())
			err = srv.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			if errors.Is(err, context.Canceled) {
				err = nil
			}
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().String("transport", "stdio", "Transport protocol to use: stdio or sse")
	mcpCmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on for sse (env FSMGRAPH_LISTEN_ADDR)")
}
