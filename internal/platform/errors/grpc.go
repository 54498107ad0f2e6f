package errors

import (
	"context"
	"errors"

	"github.com/louisbranch/mocktrial/internal/platform/errors/i18n"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// DefaultLocale is the default locale for error messages.
const DefaultLocale = i18n.BaseLocale

// LocaleMetadataKey carries the caller's preferred languages.
const LocaleMetadataKey = "accept-language"

// HandleError converts domain errors to gRPC status for client responses.
// It formats the user-facing message using the i18n catalog for the given locale,
// defaulting to en-US if the locale is empty.
func HandleError(err error, locale string) error {
	if err == nil {
		return nil
	}

	if locale == "" {
		locale = DefaultLocale
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		catalog := i18n.GetCatalog(locale)
		userMsg := catalog.Format(string(appErr.Code), appErr.Metadata)
		return appErr.ToGRPCStatus(catalog.Locale(), userMsg)
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, "request canceled")
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, "request deadline exceeded")
	}

	// Unknown error - return internal with generic message
	return status.Error(codes.Internal, "an unexpected error occurred")
}

// LocaleFromContext negotiates the response locale from incoming metadata.
func LocaleFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return DefaultLocale
	}
	values := md.Get(LocaleMetadataKey)
	if len(values) == 0 {
		return DefaultLocale
	}
	return i18n.Negotiate(values[0])
}

// GetCode extracts the error code from any error.
// Returns CodeUnknown if the error is not a domain error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode checks if the error has the specified code.
func IsCode(err error, code Code) bool {
	return GetCode(err) == code
}

// IsKind checks if the error belongs to the given failure family.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code.Kind() == kind
	}
	return false
}

// GetMetadata extracts metadata from an error if present.
// Returns nil if the error is not a domain error or has no metadata.
func GetMetadata(err error) map[string]string {
	var e *Error
	if errors.As(err, &e) {
		return e.Metadata
	}
	return nil
}

// StatusDetails reads the stable tag and localized message back from a
// status error returned by HandleError. ok is false when err carries no
// ErrorInfo.
func StatusDetails(err error) (tag string, message string, ok bool) {
	st, isStatus := status.FromError(err)
	if !isStatus {
		return "", "", false
	}
	message = st.Message()
	for _, detail := range st.Details() {
		switch d := detail.(type) {
		case *errdetails.LocalizedMessage:
			if d.GetMessage() != "" {
				message = d.GetMessage()
			}
		case *errdetails.ErrorInfo:
			tag = d.GetMetadata()["tag"]
			ok = true
		}
	}
	return tag, message, ok
}
