package main

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/pkg/runner"
	"github.com/aretw0/fsmgraph/pkg/supervisor"
)

// superviseSources loads every source as an independent machine.
// Machines without a name are registered as machine-<index>.
func superviseSources(ctx context.Context, sources []string, opts ...fsmgraph.Option) (*supervisor.Manager, error) {
	mgr := supervisor.NewManager(supervisor.WithLogger(cli.logger))
	for i, src := range sources {
		m, err := loadMachine(ctx, src, opts...)
		if err != nil {
			return nil, err
		}
		name := m.Name()
		if name == "" {
			name = "machine-" + strconv.Itoa(i)
		}
		for _, d := range m.Diagnostics() {
			cli.logger.Warn("graph diagnostic", "machine", name, "diagnostic", d.String())
		}
		if err := mgr.Register(name, m); err != nil {
			return nil, err
		}
	}
	return mgr, nil
}

// tickMachines drives each machine from its own runner until ctx is done.
func tickMachines(ctx context.Context, mgr *supervisor.Manager) *sync.WaitGroup {
	var wg sync.WaitGroup
	for _, name := range mgr.Names() {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			r := runner.NewRunner(
				runner.WithInterval(cli.cfg.TickInterval),
				runner.WithFixedStep(cli.cfg.FixedStep),
				runner.WithLogger(cli.logger.With("machine", name)),
			)
			if err := r.Run(ctx, mgr.Handle(name)); err != nil && !errors.Is(err, context.Canceled) {
				cli.logger.Error("runner stopped", "machine", name, "err", err)
			}
		}(name)
	}
	return &wg
}
