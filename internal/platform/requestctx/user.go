// Package requestctx carries per-request identity through context.
package requestctx

import (
	"context"
	"time"
)

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID    string
	Issuer    string
	ExpiresAt time.Time
}

type principalContextKey struct{}

// WithPrincipal stores the authenticated caller in context.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, principalContextKey{}, principal)
}

// PrincipalFromContext returns the authenticated caller, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	value, ok := ctx.Value(principalContextKey{}).(Principal)
	return value, ok && value.UserID != ""
}

// WithUserID stores a bare user identifier in context.
func WithUserID(ctx context.Context, userID string) context.Context {
	return WithPrincipal(ctx, Principal{UserID: userID})
}

// UserIDFromContext returns the user identifier stored in context.
func UserIDFromContext(ctx context.Context) string {
	principal, _ := PrincipalFromContext(ctx)
	return principal.UserID
}
