package domain

import apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"

var (
	// ErrEmptyTitle indicates a missing case title.
	ErrEmptyTitle = apperrors.New(apperrors.CodeCaseTitleEmpty, "case title is required")
	// ErrEmptyJurisdiction indicates a missing jurisdiction.
	ErrEmptyJurisdiction = apperrors.New(apperrors.CodeCaseJurisdictionEmpty, "case jurisdiction is required")
	// ErrMissingOwner indicates a case without an owner.
	ErrMissingOwner = apperrors.New(apperrors.CodeCaseOwnerMissing, "case owner is required")
	// ErrEmptyCaseID indicates a request without a case id.
	ErrEmptyCaseID = apperrors.New(apperrors.CodeCaseIDEmpty, "case id is required")
	// ErrEmptyCaseUpdate indicates an update that sets no field.
	ErrEmptyCaseUpdate = apperrors.New(apperrors.CodeCaseUpdateEmpty, "case update sets no field")
	// ErrInvalidSide indicates a side other than A or B.
	ErrInvalidSide = apperrors.New(apperrors.CodeInvalidSide, "side must be A or B")
	// ErrEmptyDocumentID indicates a request without a document id.
	ErrEmptyDocumentID = apperrors.New(apperrors.CodeDocumentIDEmpty, "document id is required")
	// ErrEmptyDocumentTitle indicates a document without a title.
	ErrEmptyDocumentTitle = apperrors.New(apperrors.CodeDocumentTitleEmpty, "document title is required")
	// ErrEmptyDocument indicates a document with no extracted text.
	ErrEmptyDocument = apperrors.New(apperrors.CodeDocumentEmpty, "document text is empty")
	// ErrEmptyArgument indicates an argument without text.
	ErrEmptyArgument = apperrors.New(apperrors.CodeArgumentEmpty, "argument text is required")
	// ErrInvalidVerdict indicates a verdict payload that breaks its invariants.
	ErrInvalidVerdict = apperrors.New(apperrors.CodeGatewayTransient, "verdict payload is invalid")
)
