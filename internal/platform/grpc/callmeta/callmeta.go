// Package callmeta carries request and invocation correlation ids across
// gRPC hops.
package callmeta

import (
	"context"
	"strings"

	"github.com/louisbranch/mocktrial/internal/platform/id"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// RequestIDHeader is the gRPC metadata key for request correlation ids.
const RequestIDHeader = "x-mocktrial-request-id"

// InvocationIDHeader is the gRPC metadata key for MCP tool invocation ids.
const InvocationIDHeader = "x-mocktrial-invocation-id"

type contextKey string

const (
	requestIDContextKey    contextKey = "mocktrial-request-id"
	invocationIDContextKey contextKey = "mocktrial-invocation-id"
)

// RequestIDFromContext returns the request id stored in context.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDContextKey).(string)
	return value
}

// InvocationIDFromContext returns the invocation id stored in context.
func InvocationIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(invocationIDContextKey).(string)
	return value
}

// WithRequestID stores the request id in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, requestIDContextKey, requestID)
}

// WithInvocationID stores the invocation id in context.
func WithInvocationID(ctx context.Context, invocationID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, invocationIDContextKey, invocationID)
}

// IsPrintableASCII reports whether a string contains only printable ASCII characters.
func IsPrintableASCII(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < 0x20 || value[i] > 0x7e {
			return false
		}
	}
	return true
}

// FirstMetadataValue returns the first printable ASCII metadata value for a key.
func FirstMetadataValue(md metadata.MD, key string) string {
	for mdKey, values := range md {
		if !strings.EqualFold(mdKey, key) {
			continue
		}
		for _, value := range values {
			if IsPrintableASCII(value) {
				return value
			}
		}
	}
	return ""
}

// OutgoingContext attaches a fresh request id, and the invocation id when
// set, to an outgoing call.
func OutgoingContext(ctx context.Context, invocationID string) (context.Context, string, error) {
	requestID, err := id.NewID()
	if err != nil {
		return nil, "", err
	}
	callCtx := metadata.AppendToOutgoingContext(ctx, RequestIDHeader, requestID)
	if invocationID != "" {
		callCtx = metadata.AppendToOutgoingContext(callCtx, InvocationIDHeader, invocationID)
	}
	return callCtx, requestID, nil
}

// UnaryServerInterceptor ensures every call has a request id, echoes the ids
// as response headers and tags the active span with them.
func UnaryServerInterceptor(idGenerator func() (string, error)) grpc.UnaryServerInterceptor {
	if idGenerator == nil {
		idGenerator = id.NewID
	}
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		md, _ := metadata.FromIncomingContext(ctx)
		requestID := FirstMetadataValue(md, RequestIDHeader)
		invocationID := FirstMetadataValue(md, InvocationIDHeader)
		if requestID == "" {
			generated, err := idGenerator()
			if err != nil {
				return nil, status.Errorf(codes.Internal, "ensure request metadata: %v", err)
			}
			requestID = generated
		}

		ctx = WithRequestID(ctx, requestID)
		headers := metadata.Pairs(RequestIDHeader, requestID)
		attrs := []attribute.KeyValue{attribute.String("request.id", requestID)}
		if invocationID != "" {
			ctx = WithInvocationID(ctx, invocationID)
			headers.Append(InvocationIDHeader, invocationID)
			attrs = append(attrs, attribute.String("mcp.invocation_id", invocationID))
		}
		if err := grpc.SetHeader(ctx, headers); err != nil {
			return nil, status.Errorf(codes.Internal, "set response metadata: %v", err)
		}
		trace.SpanFromContext(ctx).SetAttributes(attrs...)
		return handler(ctx, req)
	}
}
