package runtime_test

import (
	"context"
	"testing"

	"github.com/aretw0/fsmgraph/internal/runtime"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestPropagate_FilterSemantics(t *testing.T) {
	ctx := context.Background()

	t.Run("Completed edge is dead under the Continued filter", func(t *testing.T) {
		f := newFixture(t)
		f.state("A", 0)
		f.state("B", 1)
		f.completed("A", "B")
		eng, _ := f.start("A")

		assert.False(t, eng.Propagate(ctx, "A", domain.TransitionContinued))
		assert.Equal(t, "A", currentID(t, eng))
	})

	t.Run("Completed edge is live under the Completed filter", func(t *testing.T) {
		f := newFixture(t)
		f.state("A", 0)
		f.state("B", 1)
		f.completed("A", "B")
		eng, _ := f.start("A")

		assert.True(t, eng.Propagate(ctx, "A", domain.TransitionCompleted))
		assert.Equal(t, "B", currentID(t, eng))
	})

	t.Run("Continued edge is live under either filter", func(t *testing.T) {
		for _, filter := range []domain.TransitionKind{domain.TransitionCompleted, domain.TransitionContinued} {
			f := newFixture(t)
			f.state("A", 10)
			f.state("B", 1)
			f.continued("A", "B")
			eng, _ := f.start("A")

			assert.True(t, eng.Propagate(ctx, "A", filter), filter.String())
			assert.Equal(t, "B", currentID(t, eng))
		}
	})

	t.Run("Edges leaving conditions ignore the filter", func(t *testing.T) {
		f := newFixture(t)
		f.state("A", 10)
		f.condition("C", true)
		f.state("B", 1)
		f.continued("A", "C")
		f.completed("C", "B")
		eng, _ := f.start("A")

		assert.True(t, eng.Propagate(ctx, "A", domain.TransitionContinued))
		assert.Equal(t, "B", currentID(t, eng))
	})
}

func TestPropagate_FalseSignalIsDroppedAtStates(t *testing.T) {
	f := newFixture(t)
	f.state("A", 10)
	f.condition("C", false)
	f.state("B", 1)
	f.continued("A", "C")
	f.continued("C", "B")
	eng, _ := f.start("A")

	assert.False(t, eng.Propagate(context.Background(), "A", domain.TransitionContinued))
	assert.Equal(t, "A", currentID(t, eng))
	assert.Equal(t, 1, f.evals["C"])
}

func TestPropagate_FirstStateInEdgeOrderWins(t *testing.T) {
	f := newFixture(t)
	f.state("A", 10)
	f.condition("C1", true)
	f.condition("C2", true)
	f.state("X", 1)
	f.state("Y", 1)
	f.continued("A", "C1")
	f.continued("A", "C2")
	f.continued("C2", "Y")
	f.continued("C1", "X")
	eng, _ := f.start("A")

	eng.Tick(context.Background(), 0.1)
	assert.Equal(t, "X", currentID(t, eng))
}

func TestPropagate_CyclesTerminate(t *testing.T) {
	f := newFixture(t)
	f.state("A", 10)
	f.condition("C1", true)
	f.condition("C2", true)
	f.gate("OR", domain.GateOr)
	f.continued("A", "C1")
	f.continued("C1", "C2")
	f.continued("C2", "C1")
	f.continued("C2", "OR")
	f.continued("OR", "C1")
	f.continued("OR", "C2")
	eng, _ := f.start("A")

	assert.False(t, eng.Propagate(context.Background(), "A", domain.TransitionContinued))
	assert.Equal(t, 1, f.evals["C1"], "each node is visited at most once per pass")
	assert.Equal(t, 1, f.evals["C2"])
}

func TestPropagate_AndGate(t *testing.T) {
	f := newFixture(t)
	f.state("A", 10)
	f.condition("C1", true)
	f.condition("C2", false)
	and := f.gate("AND", domain.GateAnd)
	f.state("X", 1)
	f.continued("A", "C1")
	f.continued("A", "C2")
	f.continued("C1", "AND")
	f.continued("C2", "AND")
	f.continued("AND", "X")
	eng, _ := f.start("A")
	ctx := context.Background()

	eng.Tick(ctx, 0.1)
	assert.Equal(t, "A", currentID(t, eng))
	assert.False(t, and.LastSignal())

	f.flags["C2"] = true
	eng.Tick(ctx, 0.1)
	assert.Equal(t, "X", currentID(t, eng))
	assert.True(t, and.LastSignal())
}

func TestPropagate_NotGate(t *testing.T) {
	f := newFixture(t)
	f.state("A", 10)
	f.condition("C", true)
	not := f.gate("NOT", domain.GateNot)
	f.state("X", 1)
	f.continued("A", "C")
	f.continued("C", "NOT")
	f.continued("NOT", "X")
	eng, _ := f.start("A")
	ctx := context.Background()

	eng.Tick(ctx, 0.1)
	assert.Equal(t, "A", currentID(t, eng))
	assert.Equal(t, 1, not.ExpectedInputs())

	f.flags["C"] = false
	eng.Tick(ctx, 0.1)
	assert.Equal(t, "X", currentID(t, eng))
}

// partialGate wires an AND gate with two inputs where only one is reachable from A.
func partialGate(t *testing.T) (*graphFixture, *domain.Gate) {
	f := newFixture(t)
	f.state("A", 10)
	f.state("Z", 10)
	f.condition("C1", true)
	f.condition("C2", true)
	and := f.gate("AND", domain.GateAnd)
	f.state("X", 1)
	f.continued("A", "C1")
	f.continued("Z", "C2")
	f.continued("C1", "AND")
	f.continued("C2", "AND")
	f.continued("AND", "X")
	return f, and
}

func TestPropagate_GateStaysSilentWithMissingInputs(t *testing.T) {
	f, and := partialGate(t)
	eng, _ := f.start("A")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		eng.Tick(ctx, 0.1)
		assert.Equal(t, "A", currentID(t, eng))
	}
	assert.False(t, and.LastSignal())
	assert.Equal(t, 1, and.Buffered(), "only the current pass's input is buffered")
}

func TestPropagate_GateCarryOver(t *testing.T) {
	f, _ := partialGate(t)
	eng, _ := f.start("A", runtime.WithGateCarryOver(true))
	ctx := context.Background()

	eng.Tick(ctx, 0.1)
	assert.Equal(t, "A", currentID(t, eng))

	eng.Tick(ctx, 0.1)
	assert.Equal(t, "X", currentID(t, eng), "inputs from the previous pass complete the gate")
}

func TestPropagate_UnknownOrigin(t *testing.T) {
	f := newFixture(t)
	f.condition("C", true)
	eng := runtime.NewEngine(f.graph)
	assert.False(t, eng.Propagate(context.Background(), "C", domain.TransitionContinued))
	assert.False(t, eng.Propagate(context.Background(), "nope", domain.TransitionContinued))
}
