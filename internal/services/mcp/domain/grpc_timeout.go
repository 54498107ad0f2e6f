package domain

import "github.com/louisbranch/mocktrial/internal/platform/timeouts"

// grpcCallTimeout caps the time for a single read or bookkeeping call.
const grpcCallTimeout = timeouts.GRPCRequest

// grpcAdjudicationTimeout caps calls that may wait on verdict generation.
const grpcAdjudicationTimeout = timeouts.AdjudicationRequest
