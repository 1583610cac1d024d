/*
Package ports defines the driven ports (interfaces) for the fsmgraph engine.

These interfaces decouple the machine facade from the sources graph descriptions
are read from.

# Key Interfaces

  - GraphLoader: Responsible for producing a GraphDescription (e.g., from a YAML file, Loam or Redis).
  - GraphStore: A GraphLoader that can also write descriptions back (e.g., Redis).
*/
package ports
