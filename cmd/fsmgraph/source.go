package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/internal/config"
	"github.com/aretw0/fsmgraph/pkg/adapters/file"
	"github.com/aretw0/fsmgraph/pkg/adapters/hcl"
	loamAdapter "github.com/aretw0/fsmgraph/pkg/adapters/loam"
	"github.com/aretw0/fsmgraph/pkg/adapters/redis"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/ports"
)

const redisScheme = "redis://"

// openSource picks a loader from the shape of src:
//
//	redis://<name>            graph stored under <name> in Redis
//	<dir>                     one Loam document per node
//	*.hcl                     HCL description
//	*.yaml, *.yml, *.json     YAML or JSON description
//
// The returned closer releases whatever the loader holds.
func openSource(src string, cfg config.Config) (ports.GraphLoader, func() error, error) {
	noop := func() error { return nil }

	if name, ok := strings.CutPrefix(src, redisScheme); ok {
		if name == "" {
			return nil, nil, fmt.Errorf("redis source needs a graph name: %s<name>", redisScheme)
		}
		if cfg.RedisAddr == "" {
			return nil, nil, fmt.Errorf("redis source %q needs --redis-addr or FSMGRAPH_REDIS_ADDR", src)
		}
		store := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		return store.Graph(name), store.Close, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, nil, fmt.Errorf("open source: %w", err)
	}
	if info.IsDir() {
		loader, err := loamAdapter.Open(src)
		if err != nil {
			return nil, nil, err
		}
		return loader, noop, nil
	}

	switch strings.ToLower(filepath.Ext(src)) {
	case ".hcl":
		return hcl.New(src), noop, nil
	case ".yaml", ".yml", ".json":
		return file.New(src), noop, nil
	}
	return nil, nil, fmt.Errorf("unsupported source %q: expected a directory, .hcl, .yaml, .yml, .json or %s<name>", src, redisScheme)
}

// machineOptions turns the CLI settings into machine options.
func machineOptions(extra ...fsmgraph.Option) []fsmgraph.Option {
	opts := []fsmgraph.Option{
		fsmgraph.WithLogger(cli.logger),
		fsmgraph.WithGateCarryOver(cli.cfg.GateCarryOver),
	}
	if cli.entry != "" {
		opts = append(opts, fsmgraph.WithEntryNode(cli.entry))
	}
	return append(opts, extra...)
}

// loadMachine opens src and builds a machine from it.
func loadMachine(ctx context.Context, src string, extra ...fsmgraph.Option) (*fsmgraph.Machine, error) {
	loader, closeFn, err := openSource(src, cli.cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			cli.logger.Warn("failed to close source", "source", src, "err", err)
		}
	}()

	return fsmgraph.Load(ctx, loader, machineOptions(extra...)...)
}

// loadDescription opens src and returns its raw description.
func loadDescription(ctx context.Context, src string) (*domain.GraphDescription, error) {
	loader, closeFn, err := openSource(src, cli.cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			cli.logger.Warn("failed to close source", "source", src, "err", err)
		}
	}()
	return loader.Load(ctx)
}
