/*
Package fsmgraph is a runtime engine for hierarchical finite state machines described as graphs.

A graph is made of four kinds of node: timed states, boolean conditions, logical gates (AND, OR,
NOT) and a reserved "ENTRY" marker that names the initial state. Transitions are either Completed
(followed once a state has run for its duration) or Continued (followed on every tick).

# Concept

The host owns the loop. Each call to Tick advances the current state and then propagates a boolean
signal breadth-first from it through conditions and gates. The first state reached by a true signal
becomes the new current state. Edges are evaluated in declaration order, so the same graph and the
same tick sequence always produce the same transitions.

# Key Features

  - Deterministic Execution: propagation order is the declaration order of transitions.
  - Pluggable Kinds: hosts register their own state behaviours and predicates in a registry.
  - Many Sources: descriptions load from Go code (pkg/dsl), YAML/JSON, HCL, Loam directories or Redis.
  - Tolerant Loading: malformed elements are reported as diagnostics and skipped.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/fsmgraph"
		"github.com/aretw0/fsmgraph/pkg/dsl"
	)

	func main() {
		b := dsl.New("traffic-light").Entry("Red")
		b.State("Red").Duration(3).Then("Green")
		b.State("Green").Duration(2.5).Then("Yellow")
		b.State("Yellow").Duration(0.5).Then("Red")

		m, err := fsmgraph.New(b.Build())
		if err != nil {
			log.Fatal(err)
		}

		ctx := context.Background()
		for i := 0; i < 100; i++ {
			m.Tick(ctx, 0.1)
		}
		current, _ := m.CurrentState()
		log.Println("current:", current)
	}
*/
package fsmgraph
