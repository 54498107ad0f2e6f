// Package grpc holds client-side helpers shared by processes that dial the
// trial service.
package grpc

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	healthInitialInterval = 200 * time.Millisecond
	healthMaxInterval     = time.Second
	healthCheckTimeout    = time.Second
)

// WaitForHealth blocks until the gRPC health check reports SERVING or the context ends.
func WaitForHealth(ctx context.Context, conn gogrpc.ClientConnInterface, service string, logf func(string, ...any)) error {
	if conn == nil {
		return fmt.Errorf("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	healthClient := grpc_health_v1.NewHealthClient(conn)
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = healthInitialInterval
	policy.MaxInterval = healthMaxInterval

	check := func() (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
		callCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()
		response, err := healthClient.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
		if err != nil {
			return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
		}
		if response.GetStatus() != grpc_health_v1.HealthCheckResponse_SERVING {
			return response.GetStatus(), fmt.Errorf("status %s", response.GetStatus())
		}
		return response.GetStatus(), nil
	}

	notify := func(err error, wait time.Duration) {
		if logf != nil {
			logf("waiting for gRPC health: %v (retry in %s)", err, wait)
		}
	}

	if _, err := backoff.Retry(ctx, check,
		backoff.WithBackOff(policy),
		backoff.WithNotify(notify),
		backoff.WithMaxElapsedTime(0),
	); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("wait for gRPC health: %w", ctx.Err())
		}
		return fmt.Errorf("wait for gRPC health: %w", err)
	}
	if logf != nil {
		logf("gRPC health check is SERVING")
	}
	return nil
}
