// Package service wires protocol transport to domain handlers.
//
// It is the transport adapter layer: it dials the trial service, registers the
// trial tools and runs MCP over stdio. Business meaning stays in the domain
// handlers.
package service
