/*
Package runner implements the execution loop for fsmgraph machines.

The engine itself never owns a clock: hosts call Tick with the elapsed time. The Runner is the
ready-made host loop for CLIs and services. It ticks at a fixed wall-clock interval, runs
fixed-step hooks from an accumulator and stops on cancellation, on SIGINT/SIGTERM or once a tick
budget is spent.

# Usage

	r := runner.NewRunner(
		runner.WithInterval(50*time.Millisecond),
		runner.WithFixedStep(20*time.Millisecond),
		runner.WithSignals(true),
	)

	if err := r.Run(ctx, machine); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatal(err)
	}
*/
package runner
