/*
Package domain contains the core entities of the fsmgraph engine.

It defines the node kinds that make up a machine graph, the typed transitions that
connect them, the declarative graph description produced by external tooling, and the
lifecycle events emitted while the engine runs. The package has no I/O and no
dependencies beyond the standard library.

# Key Entities

  - State: a timed node with enter/update/fixed-update/exit hooks and a completion predicate.
  - Condition: a boolean predicate re-evaluated every time a propagation pass reaches it.
  - Gate: an AND/OR/NOT combinator that buffers its inputs until its fan-in is satisfied.
  - Transition: a Completed or Continued edge between two nodes.
  - GraphDescription: the ordered node and transition lists consumed once at load time.
*/
package domain
