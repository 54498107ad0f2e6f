package authtoken

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// AuthorizationHeader carries "Bearer <token>" on gRPC calls.
const AuthorizationHeader = "authorization"

const bearerPrefix = "bearer "

// WithBearer returns a context that sends token on outgoing calls.
func WithBearer(ctx context.Context, token string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, AuthorizationHeader, "Bearer "+token)
}

// BearerUnaryClientInterceptor attaches token to every unary call.
func BearerUnaryClientInterceptor(token string) grpc.UnaryClientInterceptor {
	token = strings.TrimSpace(token)
	return func(
		ctx context.Context,
		method string,
		req any,
		reply any,
		cc *grpc.ClientConn,
		invoker grpc.UnaryInvoker,
		opts ...grpc.CallOption,
	) error {
		return invoker(WithBearer(ctx, token), method, req, reply, cc, opts...)
	}
}

// BearerFromIncoming extracts the bearer token of an incoming call.
func BearerFromIncoming(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	for _, value := range md.Get(AuthorizationHeader) {
		value = strings.TrimSpace(value)
		if len(value) > len(bearerPrefix) && strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
			return strings.TrimSpace(value[len(bearerPrefix):])
		}
	}
	return ""
}
