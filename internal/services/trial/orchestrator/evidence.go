package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
	"go.opentelemetry.io/otel/attribute"
)

// AddDocumentInput is one evidence upload.
type AddDocumentInput struct {
	CaseID   string
	UserID   string
	Side     domain.Side
	Title    string
	FileName string
	Data     []byte
}

// AddDocument ingests a file as evidence for one side. Before the initial
// verdict the store moves the case to ready, in the same write, once both
// sides have evidence.
func (o *Orchestrator) AddDocument(ctx context.Context, input AddDocumentInput) (doc domain.Document, err error) {
	ctx, span := o.startSpan(ctx, "add_document", input.CaseID, attribute.String("trial.side", string(input.Side)))
	defer func() { o.finish(span, "add document", input.CaseID, err) }()
	if err := o.ready(); err != nil {
		return domain.Document{}, err
	}
	if o.ingestor == nil {
		return domain.Document{}, fmt.Errorf("evidence ingestor is not configured")
	}
	if !input.Side.Valid() {
		return domain.Document{}, domain.ErrInvalidSide
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		title = strings.TrimSpace(input.FileName)
	}
	if title == "" {
		return domain.Document{}, domain.ErrEmptyDocumentTitle
	}

	// Fail fast on unknown or locked cases before spending time on extraction.
	c, err := o.loadCase(ctx, input.CaseID, input.UserID)
	if err != nil {
		return domain.Document{}, err
	}
	if !c.Status.AcceptsEvidence() {
		return domain.Document{}, caseLocked(c.ID)
	}
	extraction, err := o.ingestor.Ingest(ctx, input.FileName, input.Data)
	if err != nil {
		return domain.Document{}, err
	}
	docID, err := o.idGenerator()
	if err != nil {
		return domain.Document{}, err
	}
	doc = domain.Document{
		ID:            docID,
		CaseID:        c.ID,
		Side:          input.Side,
		Title:         title,
		FileName:      input.FileName,
		FileType:      extraction.FileType,
		ExtractedText: extraction.Text,
		PageCount:     extraction.PageCount,
		WordCount:     extraction.WordCount,
		UploadedBy:    input.UserID,
		UploadedAt:    o.now(),
	}
	if err := doc.Validate(); err != nil {
		return domain.Document{}, err
	}

	unlock, err := o.lockCase(ctx, c.ID)
	if err != nil {
		return domain.Document{}, err
	}
	defer unlock()

	if err := o.store.PutDocument(ctx, doc); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return domain.Document{}, caseLocked(c.ID)
		}
		return domain.Document{}, storeError(err, "case")
	}
	return doc, nil
}

// RemoveDocument deletes evidence from a case that is not finalized.
func (o *Orchestrator) RemoveDocument(ctx context.Context, caseID, documentID, userID string) (err error) {
	ctx, span := o.startSpan(ctx, "remove_document", caseID)
	defer func() { o.finish(span, "remove document", caseID, err) }()
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
	if !c.Status.AcceptsEvidence() {
		return caseLocked(caseID)
	}
	if documentID == "" {
		return domain.ErrEmptyDocumentID
	}
	if err := o.store.DeleteDocument(ctx, caseID, documentID, o.now()); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return caseLocked(caseID)
		}
		return storeError(err, "document")
	}
	return nil
}

// GetDocument returns one piece of a case's evidence.
func (o *Orchestrator) GetDocument(ctx context.Context, caseID, documentID, userID string) (domain.Document, error) {
	if err := o.ready(); err != nil {
		return domain.Document{}, err
	}
	if _, err := o.loadCase(ctx, caseID, userID); err != nil {
		return domain.Document{}, err
	}
	if documentID == "" {
		return domain.Document{}, domain.ErrEmptyDocumentID
	}
	doc, err := o.store.GetDocument(ctx, caseID, documentID)
	if err != nil {
		return domain.Document{}, storeError(err, "document")
	}
	return doc, nil
}

// ListDocuments returns a case's evidence; an empty side lists both.
func (o *Orchestrator) ListDocuments(ctx context.Context, caseID, userID string, side domain.Side) ([]domain.Document, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if side != "" && !side.Valid() {
		return nil, domain.ErrInvalidSide
	}
	if _, err := o.loadCase(ctx, caseID, userID); err != nil {
		return nil, err
	}
	return o.store.ListDocuments(ctx, caseID, side)
}
