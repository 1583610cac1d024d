// Package http serves a read-only JSON view of supervised machines.
//
// Routes:
//
//	GET /health
//	GET /info
//	GET /machines
//	GET /machines/{name}
//	GET /machines/{name}/description
//	GET /machines/{name}/graph[?overlay=true]
//	GET /machines/{name}/nodes/{id}
package http
