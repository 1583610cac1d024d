package fsmgraph_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/fsmgraph"
	"github.com/aretw0/fsmgraph/pkg/domain"
	"github.com/aretw0/fsmgraph/pkg/dsl"
	"github.com/aretw0/fsmgraph/pkg/registry"
)

// ExampleNew builds a traffic light in Go and drives it with fixed ticks.
func ExampleNew() {
	b := dsl.New("traffic-light").Entry("Red")
	b.State("Red").Duration(1).Then("Green")
	b.State("Green").Duration(1).Then("Yellow")
	b.State("Yellow").Duration(0.5).Then("Red")

	m, err := fsmgraph.New(b.Build(), fsmgraph.WithLifecycleHooks(domain.LifecycleHooks{
		OnTransition: func(_ context.Context, ev *domain.TransitionEvent) {
			fmt.Printf("%s (%s)\n", ev.To, ev.Trigger)
		},
	}))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	for i := 0; i < 6; i++ {
		m.Tick(ctx, 0.5)
	}
	// Output:
	// Red (Manual)
	// Green (Completed)
	// Yellow (Completed)
	// Red (Completed)
}

type doorSensor struct {
	Open bool `mapstructure:"open"`
}

func (d *doorSensor) Evaluate() bool { return d.Open }
func (d *doorSensor) Settings() any  { return d }

// ExampleWithRegistry registers a custom condition kind with typed settings.
func ExampleWithRegistry() {
	reg := registry.Default()
	sensor := &doorSensor{}
	reg.RegisterCondition("door", func(string) domain.Predicate { return sensor })

	b := dsl.New("alarm").Entry("Armed")
	b.State("Armed").Go("door")
	b.Condition("door", "door").Field("open", "false").Go("Ringing")
	b.State("Ringing")

	m, err := fsmgraph.New(b.Build(), fsmgraph.WithRegistry(reg))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	m.Tick(ctx, 0.1)
	current, _ := m.CurrentState()
	fmt.Println(current)

	sensor.Open = true
	m.Tick(ctx, 0.1)
	current, _ = m.CurrentState()
	fmt.Println(current)
	// Output:
	// Armed
	// Ringing
}
