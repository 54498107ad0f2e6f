// Package timeouts defines shared timeout constants used across processes.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing and health-checking a gRPC peer.
const GRPCDial = 5 * time.Second

// GRPCRequest caps a single read-only request from the CLI or MCP bridge.
const GRPCRequest = 10 * time.Second

// Adjudication caps a single call to the adjudication provider.
const Adjudication = 60 * time.Second

// AdjudicationRequest caps client calls that may wait on the provider.
const AdjudicationRequest = 2 * time.Minute

// Shutdown limits how long a server waits for in-flight requests during
// graceful shutdown.
const Shutdown = 5 * time.Second
