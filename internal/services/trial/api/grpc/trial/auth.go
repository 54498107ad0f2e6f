package trial

import (
	"context"
	"strings"

	"github.com/louisbranch/mocktrial/internal/platform/authtoken"
	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/platform/requestctx"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health/grpc_health_v1"
)

// AuthUnaryServerInterceptor verifies the bearer token of every call except
// health checks and stores the caller in the request context.
func AuthUnaryServerInterceptor(cfg authtoken.Config) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if strings.HasPrefix(info.FullMethod, "/"+grpc_health_v1.Health_ServiceDesc.ServiceName+"/") {
			return handler(ctx, req)
		}
		principal, err := authtoken.Verify(authtoken.BearerFromIncoming(ctx), cfg)
		if err != nil {
			if !apperrors.IsCode(err, apperrors.CodeUnauthenticated) {
				err = apperrors.Wrap(apperrors.CodeUnauthenticated, "token verifier is not configured", err)
			}
			return nil, handleError(ctx, err)
		}
		return handler(requestctx.WithPrincipal(ctx, principal), req)
	}
}
