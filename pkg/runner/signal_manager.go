package runner

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals are the signals a SignalManager reacts to.
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// SignalManager derives a context that is cancelled on the first SIGINT or SIGTERM.
//
// Hosts that shut down in stages call Rearm once the first signal has been handled:
// the next signal then cancels the new context, which typically aborts a graceful
// shutdown in progress.
type SignalManager struct {
	parent context.Context
	ctx    context.Context
	stop   context.CancelFunc
}

// NewSignalManager starts listening immediately.
func NewSignalManager(parent context.Context) *SignalManager {
	sm := &SignalManager{parent: parent}
	sm.ctx, sm.stop = signal.NotifyContext(parent, ShutdownSignals...)
	return sm
}

// Context is cancelled by the next signal, by Stop or by the parent.
func (sm *SignalManager) Context() context.Context {
	return sm.ctx
}

// Rearm releases the current listener and returns a fresh context waiting for the next signal.
func (sm *SignalManager) Rearm() context.Context {
	sm.stop()
	sm.ctx, sm.stop = signal.NotifyContext(sm.parent, ShutdownSignals...)
	return sm.ctx
}

// Stop releases the listener and cancels the current context.
func (sm *SignalManager) Stop() {
	sm.stop()
}
