package orchestrator

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
)

// CaseDetail is a case with its ledger sizes.
type CaseDetail struct {
	Case   domain.Case
	Counts domain.CaseCounts
}

// CreateCase opens a draft case owned by input.OwnerUserID.
func (o *Orchestrator) CreateCase(ctx context.Context, input domain.CreateCaseInput) (c domain.Case, err error) {
	ctx, span := o.startSpan(ctx, "create_case", "")
	defer func() { o.finish(span, "create case", c.ID, err) }()
	if err := o.ready(); err != nil {
		return domain.Case{}, err
	}

	normalized, err := domain.NormalizeCreateCaseInput(input, o.defaultMaxRounds)
	if err != nil {
		return domain.Case{}, err
	}
	caseID, err := o.idGenerator()
	if err != nil {
		return domain.Case{}, err
	}
	now := o.now()
	for attempt := 0; attempt < caseNumberAttempts; attempt++ {
		code, err := o.codeGen()
		if err != nil {
			return domain.Case{}, err
		}
		created := domain.NewCase(normalized, caseID, domain.CaseNumber(now, code), now)
		err = o.store.CreateCase(ctx, created)
		if err == nil {
			return created, nil
		}
		if !errors.Is(err, storage.ErrAlreadyExists) {
			return domain.Case{}, fmt.Errorf("create case: %w", err)
		}
	}
	return domain.Case{}, fmt.Errorf("create case: no free case number after %d attempts", caseNumberAttempts)
}

// GetCase returns a case and its ledger sizes.
func (o *Orchestrator) GetCase(ctx context.Context, caseID, userID string) (CaseDetail, error) {
	if err := o.ready(); err != nil {
		return CaseDetail{}, err
	}
	c, err := o.loadCase(ctx, caseID, userID)
	if err != nil {
		return CaseDetail{}, err
	}
	counts, err := o.store.GetCaseCounts(ctx, caseID)
	if err != nil {
		return CaseDetail{}, storeError(err, "case")
	}
	return CaseDetail{Case: c, Counts: counts}, nil
}

// UpdateCase edits a case's title, description, type or jurisdiction.
// Finalized cases are read-only.
func (o *Orchestrator) UpdateCase(ctx context.Context, caseID, userID string, input domain.UpdateCaseInput) (c domain.Case, err error) {
	ctx, span := o.startSpan(ctx, "update_case", caseID)
	defer func() { o.finish(span, "update case", caseID, err) }()
	if err := o.ready(); err != nil {
		return domain.Case{}, err
	}

	unlock, err := o.lockCase(ctx, caseID)
	if err != nil {
		return domain.Case{}, err
	}
	defer unlock()

	c, err = o.loadCase(ctx, caseID, userID)
	if err != nil {
		return domain.Case{}, err
	}
	if c.Status == domain.StatusFinalized {
		return domain.Case{}, caseLocked(caseID)
	}
	updated, err := input.Apply(c)
	if err != nil {
		return domain.Case{}, err
	}
	updated.UpdatedAt = o.now()
	if err := o.store.UpdateCaseDetails(ctx, updated); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return domain.Case{}, caseLocked(caseID)
		}
		return domain.Case{}, storeError(err, "case")
	}
	return updated, nil
}

// ListCases returns one page of the user's cases, newest first.
func (o *Orchestrator) ListCases(ctx context.Context, userID string, pageSize int, pageToken string) (storage.CasePage, error) {
	if err := o.ready(); err != nil {
		return storage.CasePage{}, err
	}
	if userID == "" {
		return storage.CasePage{}, domain.ErrMissingOwner
	}
	return o.store.ListCasesByOwner(ctx, userID, pageSize, pageToken)
}

// DeleteCase removes a case that is not finalized along with its ledgers.
func (o *Orchestrator) DeleteCase(ctx context.Context, caseID, userID string) (err error) {
	ctx, span := o.startSpan(ctx, "delete_case", caseID)
	defer func() { o.finish(span, "delete case", caseID, err) }()
	if err := o.ready(); err != nil {
		return err
	}

	unlock, err := o.lockCase(ctx, caseID)
	if err != nil {
		return err
	}
	defer unlock()

	c, err := o.loadCase(ctx, caseID, userID)
	if err != nil {
		return err
	}
	if c.Status == domain.StatusFinalized {
		return caseLocked(caseID)
	}
	if err := o.store.DeleteCase(ctx, caseID); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return caseLocked(caseID)
		}
		return storeError(err, "case")
	}
	return nil
}

func permissionDenied() error {
	return apperrors.New(apperrors.CodePermissionDenied, "case belongs to another user")
}
