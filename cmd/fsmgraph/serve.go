package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/fsmgraph"
	httpAdapter "github.com/aretw0/fsmgraph/pkg/adapters/http"
	"github.com/aretw0/fsmgraph/pkg/observability"
	"github.com/aretw0/fsmgraph/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
)

var serveCmd = &cobra.Command{
	Use:   "serve <source>...",
	Short: "Tick machines in the background and serve their state over HTTP",
	Long: `Loads every source as an independent machine, ticks each one from its own loop and
exposes a read-only JSON API plus Prometheus metrics on /metrics.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		if !cmd.Flags().Changed("addr") {
			addr = cli.cfg.ListenAddr
		}

		signals := runner.NewSignalManager(cmd.Context())
		defer signals.Stop()
		ctx := signals.Context()

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg, "fsm")
		hooks := observability.Chain(
			observability.LogHooks(cli.logger),
			metrics.Hooks(),
			observability.NewTracer(otel.GetTracerProvider()).Hooks(),
		)

		mgr, err := superviseSources(ctx, args, fsmgraph.WithLifecycleHooks(hooks))
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		mux.Handle("/", httpAdapter.NewHandler(mgr, httpAdapter.WithLogger(cli.logger)))

		srv := &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		wg := tickMachines(ctx, mgr)

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			cli.logger.Info("serving machines", "addr", srv.Addr, "machines", mgr.Names())
			serverErrors <- srv.ListenAndServe()
		}()

		var serveErr error
		select {
		case err := <-serverErrors:
			serveErr = fmt.Errorf("server error: %w", err)
			signals.Stop()
		case <-ctx.Done():
			cli.logger.Info("shutting down, signal again to force")

			// Give outstanding requests a deadline for completion; a second signal cuts it short.
			shutdownCtx, cancel := context.WithTimeout(signals.Rearm(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				cli.logger.Warn("graceful shutdown did not complete", "err", err)
				if err := srv.Close(); err != nil {
					cli.logger.Error("failed to close server", "err", err)
				}
			}
		}

		wg.Wait()
		return serveErr
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "127.0.0.1:8080", "Address to listen on (env FSMGRAPH_LISTEN_ADDR)")
}
