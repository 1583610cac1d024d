/*
Package dsl provides a Go DSL (Domain Specific Language) for programmatically constructing fsmgraph descriptions.

It allows developers to define state machines using a fluent builder pattern instead of relying on
external YAML, HCL or JSON files. This is particularly useful for unit testing and for graphs
generated at run time.

Example usage:

	b := dsl.New("traffic-light").Entry("Red")

	b.State("Red").Duration(3).Then("Green")
	b.State("Green").Duration(2.5).Then("Yellow")
	b.State("Yellow").Duration(0.5).Then("Red")

	m, err := fsmgraph.New(b.Build())
*/
package dsl
