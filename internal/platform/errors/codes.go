// Package errors provides structured error handling with i18n support.
package errors

import (
	"strings"

	"google.golang.org/grpc/codes"
)

// Code is a machine-readable error code.
type Code string

// Kind groups codes into the failure families callers branch on.
type Kind string

const (
	KindPrecondition     Kind = "precondition"
	KindConflict         Kind = "conflict"
	KindGatewayTransient Kind = "gateway_transient"
	KindGatewayPermanent Kind = "gateway_permanent"
	KindNotFound         Kind = "not_found"
	KindInvalidArgument  Kind = "invalid_argument"
	KindPermissionDenied Kind = "permission_denied"
	KindUnauthenticated  Kind = "unauthenticated"
	KindCanceled         Kind = "canceled"
	KindInternal         Kind = "internal"
)

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Case errors
	CodeCaseTitleEmpty        Code = "CASE_TITLE_EMPTY"
	CodeCaseInvalidType       Code = "CASE_INVALID_TYPE"
	CodeCaseJurisdictionEmpty Code = "CASE_JURISDICTION_EMPTY"
	CodeCaseInvalidMaxRounds  Code = "CASE_INVALID_MAX_ROUNDS"
	CodeCaseOwnerMissing      Code = "CASE_OWNER_MISSING"
	CodeCaseIDEmpty           Code = "CASE_ID_EMPTY"
	CodeInvalidSide           Code = "INVALID_SIDE"
	CodeCaseUpdateEmpty       Code = "CASE_UPDATE_EMPTY"

	// Document errors
	CodeDocumentIDEmpty         Code = "DOCUMENT_ID_EMPTY"
	CodeDocumentTitleEmpty      Code = "DOCUMENT_TITLE_EMPTY"
	CodeDocumentEmpty           Code = "DOCUMENT_EMPTY"
	CodeDocumentTooLarge        Code = "DOCUMENT_TOO_LARGE"
	CodeDocumentUnsupportedType Code = "DOCUMENT_UNSUPPORTED_TYPE"

	// Argument errors
	CodeArgumentEmpty   Code = "ARGUMENT_EMPTY"
	CodeArgumentTooLong Code = "ARGUMENT_TOO_LONG"

	// Round preconditions
	CodeMissingEvidence  Code = "MISSING_EVIDENCE"
	CodeAlreadyGenerated Code = "ALREADY_GENERATED"
	CodeRoundsIncomplete Code = "ROUNDS_INCOMPLETE"
	CodeAlreadyFinalized Code = "ALREADY_FINALIZED"
	CodeCaseLocked       Code = "CASE_LOCKED"
	CodeCaseNotStarted   Code = "CASE_NOT_STARTED"
	CodeRoundNotReady    Code = "ROUND_NOT_READY"

	// Round conflicts
	CodeDuplicateSubmission Code = "DUPLICATE_SUBMISSION"
	CodeInvalidRound        Code = "INVALID_ROUND"

	// Adjudication gateway errors
	CodeGatewayTransient Code = "GATEWAY_TRANSIENT"
	CodeGatewayPermanent Code = "GATEWAY_PERMANENT"

	// Storage errors
	CodeNotFound Code = "NOT_FOUND"

	// Access errors
	CodePermissionDenied Code = "PERMISSION_DENIED"
	CodeUnauthenticated  Code = "UNAUTHENTICATED"

	// Request lifecycle errors
	CodeRequestCanceled Code = "REQUEST_CANCELED"
	CodeRequestTimeout  Code = "REQUEST_TIMEOUT"
)

// Kind returns the failure family of the code.
func (c Code) Kind() Kind {
	switch c {
	case CodeCaseTitleEmpty,
		CodeCaseInvalidType,
		CodeCaseJurisdictionEmpty,
		CodeCaseInvalidMaxRounds,
		CodeCaseOwnerMissing,
		CodeCaseIDEmpty,
		CodeInvalidSide,
		CodeCaseUpdateEmpty,
		CodeDocumentIDEmpty,
		CodeDocumentTitleEmpty,
		CodeDocumentEmpty,
		CodeDocumentTooLarge,
		CodeDocumentUnsupportedType,
		CodeArgumentEmpty,
		CodeArgumentTooLong:
		return KindInvalidArgument

	case CodeMissingEvidence,
		CodeAlreadyGenerated,
		CodeRoundsIncomplete,
		CodeAlreadyFinalized,
		CodeCaseLocked,
		CodeCaseNotStarted,
		CodeRoundNotReady:
		return KindPrecondition

	case CodeDuplicateSubmission,
		CodeInvalidRound:
		return KindConflict

	case CodeGatewayTransient:
		return KindGatewayTransient
	case CodeGatewayPermanent:
		return KindGatewayPermanent
	case CodeNotFound:
		return KindNotFound
	case CodePermissionDenied:
		return KindPermissionDenied
	case CodeUnauthenticated:
		return KindUnauthenticated
	case CodeRequestCanceled, CodeRequestTimeout:
		return KindCanceled
	default:
		return KindInternal
	}
}

// Tag returns the stable kebab-case tag clients match on.
func (c Code) Tag() string {
	switch c {
	case CodeMissingEvidence:
		return "missing-evidence"
	case CodeAlreadyGenerated:
		return "already-generated"
	case CodeRoundsIncomplete:
		return "rounds-incomplete"
	case CodeAlreadyFinalized:
		return "already-finalized"
	case CodeCaseLocked:
		return "case-locked"
	case CodeCaseNotStarted:
		return "case-not-started"
	case CodeRoundNotReady:
		return "round-not-ready"
	case CodeDuplicateSubmission:
		return "duplicate-submission"
	case CodeInvalidRound:
		return "invalid-round"
	case CodeGatewayTransient:
		return "gateway-transient"
	case CodeGatewayPermanent:
		return "gateway-permanent"
	case CodeNotFound:
		return "not-found"
	}
	return tagFromCode(c)
}

func tagFromCode(c Code) string {
	return strings.ToLower(strings.ReplaceAll(string(c), "_", "-"))
}

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c.Kind() {
	// InvalidArgument - validation failures, bad input
	case KindInvalidArgument:
		return codes.InvalidArgument

	// FailedPrecondition - case state doesn't allow operation
	case KindPrecondition:
		return codes.FailedPrecondition

	case KindConflict:
		if c == CodeDuplicateSubmission {
			return codes.AlreadyExists
		}
		// Aborted tells the client to re-read the case before retrying.
		return codes.Aborted

	case KindGatewayTransient:
		return codes.Unavailable
	case KindNotFound:
		return codes.NotFound
	case KindPermissionDenied:
		return codes.PermissionDenied
	case KindUnauthenticated:
		return codes.Unauthenticated
	case KindCanceled:
		if c == CodeRequestTimeout {
			return codes.DeadlineExceeded
		}
		return codes.Canceled
	default:
		return codes.Internal
	}
}
