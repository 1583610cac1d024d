// Package mcp exposes supervised machines over the Model Context Protocol.
//
// Tools:
//
//	list_machines                    names of the supervised machines
//	get_snapshot    machine          current state and per-node status
//	get_node        machine node_id  status of one node
//	get_description machine          the graph description the machine was built from
//	get_graph       machine overlay  Mermaid flowchart, optionally with the runtime overlay
//
// The fsmgraph://machines resource returns every snapshot as JSON.
// Both stdio and SSE transports are supported.
package mcp
