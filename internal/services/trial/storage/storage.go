// Package storage defines persistence contracts for trial state.
//
// Arguments and verdicts are append-only ledgers. Every write that depends on
// case state re-checks that state inside the same statement or transaction,
// so a stale caller gets ErrConflict instead of a partial write.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
)

var (
	// ErrNotFound indicates a requested record is missing.
	ErrNotFound = errors.New("record not found")
	// ErrAlreadyExists indicates a uniqueness-constrained record already exists.
	ErrAlreadyExists = errors.New("record already exists")
	// ErrConflict indicates the case changed since the caller last read it.
	ErrConflict = errors.New("case state changed concurrently")
)

// CasePage stores one page of cases.
type CasePage struct {
	Cases         []domain.Case
	NextPageToken string
}

// CaseStore persists case records.
type CaseStore interface {
	CreateCase(ctx context.Context, c domain.Case) error
	GetCase(ctx context.Context, caseID string) (domain.Case, error)
	ListCasesByOwner(ctx context.Context, ownerUserID string, pageSize int, pageToken string) (CasePage, error)
	GetCaseCounts(ctx context.Context, caseID string) (domain.CaseCounts, error)
	// UpdateCaseDetails rewrites title, description, case type and
	// jurisdiction. It returns ErrConflict once the case is finalized.
	UpdateCaseDetails(ctx context.Context, c domain.Case) error
	// DeleteCase removes a non-finalized case and everything attached to it.
	DeleteCase(ctx context.Context, caseID string) error
}

// DocumentStore persists case evidence.
type DocumentStore interface {
	// PutDocument stores a document unless the case is finalized (ErrConflict).
	// A case that has not started moves between draft and ready to match its
	// evidence in the same write.
	PutDocument(ctx context.Context, doc domain.Document) error
	GetDocument(ctx context.Context, caseID, documentID string) (domain.Document, error)
	// ListDocuments returns documents in upload order; an empty side lists both.
	ListDocuments(ctx context.Context, caseID string, side domain.Side) ([]domain.Document, error)
	// DeleteDocument removes a document unless the case is finalized
	// (ErrConflict), syncing the pre-trial status like PutDocument.
	DeleteDocument(ctx context.Context, caseID, documentID string, updatedAt time.Time) error
}

// ArgumentStore is the append-only argument ledger.
type ArgumentStore interface {
	// AppendArgument stores an argument for the open round. It returns
	// ErrAlreadyExists for a repeated (case, round, side) and ErrConflict when
	// the round is not the case's next open round.
	AppendArgument(ctx context.Context, arg domain.Argument) error
	ListRoundArguments(ctx context.Context, caseID string, round int) (domain.RoundArguments, error)
	ListArguments(ctx context.Context, caseID string) ([]domain.Argument, error)
}

// VerdictStore reads the verdict ledger.
type VerdictStore interface {
	GetVerdict(ctx context.Context, caseID string, round int) (domain.Verdict, error)
	LatestVerdict(ctx context.Context, caseID string) (domain.Verdict, error)
	ListVerdicts(ctx context.Context, caseID string) ([]domain.Verdict, error)
}

// CommitVerdictInput describes an atomic verdict append plus case advance.
type CommitVerdictInput struct {
	Verdict domain.Verdict
	// ExpectedRound is the case's current_round observed before adjudication.
	ExpectedRound int
	// ExpectedStatus is the case's status observed before adjudication.
	ExpectedStatus domain.Status
	NextStatus     domain.Status
	UpdatedAt      time.Time
}

// RoundStore applies round transitions atomically.
type RoundStore interface {
	// CommitVerdict appends the verdict and sets current_round to its round
	// in one transaction. ErrAlreadyExists reports an existing verdict for
	// the round; ErrConflict reports that the case moved on.
	CommitVerdict(ctx context.Context, input CommitVerdictInput) (domain.Case, error)
	// FinalizeCase locks an in-progress case whose rounds are all decided.
	FinalizeCase(ctx context.Context, caseID string, finalizedAt time.Time) (domain.Case, error)
}

// Store is the full trial persistence surface.
type Store interface {
	CaseStore
	DocumentStore
	ArgumentStore
	VerdictStore
	RoundStore
}
