package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/openai/openai-go"
)

// FailureKind says whether retrying the same request may succeed.
type FailureKind string

const (
	FailureTransient FailureKind = "transient"
	FailurePermanent FailureKind = "permanent"
)

// Failure reasons.
const (
	ReasonTimeout           = "timeout"
	ReasonCanceled          = "canceled"
	ReasonRateLimited       = "rate_limited"
	ReasonUnavailable       = "upstream_unavailable"
	ReasonMalformedResponse = "malformed_response"
	ReasonAuth              = "auth"
	ReasonQuota             = "quota"
	ReasonRejected          = "request_rejected"
	ReasonNotConfigured     = "not_configured"
)

// Failure is a classified provider error.
type Failure struct {
	Kind   FailureKind
	Reason string
	Err    error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return fmt.Sprintf("provider %s failure: %s", f.Kind, f.Reason)
	}
	return fmt.Sprintf("provider %s failure: %s: %v", f.Kind, f.Reason, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Transient reports a failure that may succeed on retry.
func Transient(reason string, err error) *Failure {
	return &Failure{Kind: FailureTransient, Reason: reason, Err: err}
}

// Permanent reports a failure that will not succeed without intervention.
func Permanent(reason string, err error) *Failure {
	return &Failure{Kind: FailurePermanent, Reason: reason, Err: err}
}

// AsFailure extracts a classified failure from err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}

// Classify maps a raw client error to a Failure.
func Classify(err error) *Failure {
	if err == nil {
		return nil
	}
	if f, ok := AsFailure(err); ok {
		return f
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return Transient(ReasonTimeout, err)
	}
	if errors.Is(err, context.Canceled) {
		return Transient(ReasonCanceled, err)
	}

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests && (apiErr.Code == "insufficient_quota" || apiErr.Type == "insufficient_quota"):
			return Permanent(ReasonQuota, err)
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return Transient(ReasonRateLimited, err)
		case apiErr.StatusCode == http.StatusUnauthorized, apiErr.StatusCode == http.StatusForbidden:
			return Permanent(ReasonAuth, err)
		case apiErr.StatusCode == http.StatusRequestTimeout, apiErr.StatusCode == http.StatusConflict:
			return Transient(ReasonUnavailable, err)
		case apiErr.StatusCode >= http.StatusInternalServerError:
			return Transient(ReasonUnavailable, err)
		default:
			return Permanent(ReasonRejected, err)
		}
	}

	// Transport errors (DNS, reset connections) are worth retrying.
	return Transient(ReasonUnavailable, err)
}

// ToAppError converts provider failures into gateway error codes and leaves
// every other error untouched.
func ToAppError(err error, operation string) error {
	f, ok := AsFailure(err)
	if !ok {
		return err
	}
	metadata := map[string]string{"Reason": f.Reason, "Operation": operation}
	if f.Kind == FailurePermanent {
		return apperrors.WrapWithMetadata(apperrors.CodeGatewayPermanent, operation+": "+f.Error(), metadata, err)
	}
	return apperrors.WrapWithMetadata(apperrors.CodeGatewayTransient, operation+": "+f.Error(), metadata, err)
}
