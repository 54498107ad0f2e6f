package domain

import (
	"context"
	"strings"

	"github.com/louisbranch/mocktrial/internal/platform/grpc/callmeta"
	"github.com/louisbranch/mocktrial/internal/platform/id"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"google.golang.org/grpc/metadata"
)

// ToolCallMetadata carries correlation identifiers for MCP tool calls.
type ToolCallMetadata struct {
	RequestID    string
	InvocationID string
}

// NewInvocationID generates an invocation identifier for a tool call.
func NewInvocationID() (string, error) {
	return id.NewID()
}

// NewOutgoingContext attaches request metadata to a context.
func NewOutgoingContext(ctx context.Context, invocationID string) (context.Context, ToolCallMetadata, error) {
	callCtx, requestID, err := callmeta.OutgoingContext(ctx, invocationID)
	if err != nil {
		return nil, ToolCallMetadata{}, err
	}
	return callCtx, ToolCallMetadata{RequestID: requestID, InvocationID: invocationID}, nil
}

// MergeResponseMetadata overlays response headers on top of sent metadata.
func MergeResponseMetadata(sent ToolCallMetadata, header metadata.MD) ToolCallMetadata {
	requestID := callmeta.FirstMetadataValue(header, callmeta.RequestIDHeader)
	if requestID == "" {
		requestID = sent.RequestID
	}
	invocationID := callmeta.FirstMetadataValue(header, callmeta.InvocationIDHeader)
	if invocationID == "" {
		invocationID = sent.InvocationID
	}
	return ToolCallMetadata{RequestID: requestID, InvocationID: invocationID}
}

// CallToolResultWithMetadata builds a tool result with correlation metadata.
func CallToolResultWithMetadata(meta ToolCallMetadata) *mcp.CallToolResult {
	result := &mcp.CallToolResult{
		Meta: map[string]any{
			callmeta.RequestIDHeader: meta.RequestID,
		},
	}
	if strings.TrimSpace(meta.InvocationID) != "" {
		result.Meta[callmeta.InvocationIDHeader] = meta.InvocationID
	}
	return result
}
