package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
)

const documentColumns = `id, case_id, side, title, file_name, file_type, extracted_text,
       page_count, word_count, uploaded_by, uploaded_at`

func scanDocument(row rowScanner) (domain.Document, error) {
	var (
		doc        domain.Document
		side       string
		fileType   string
		uploadedAt int64
	)
	if err := row.Scan(
		&doc.ID,
		&doc.CaseID,
		&side,
		&doc.Title,
		&doc.FileName,
		&fileType,
		&doc.ExtractedText,
		&doc.PageCount,
		&doc.WordCount,
		&doc.UploadedBy,
		&uploadedAt,
	); err != nil {
		return domain.Document{}, err
	}
	doc.Side = domain.Side(side)
	doc.FileType = domain.FileType(fileType)
	doc.UploadedAt = fromMillis(uploadedAt)
	return doc, nil
}

// PutDocument stores a document while its case still accepts evidence. In
// the same transaction a case that has not started moves between draft and
// ready to match its evidence.
func (s *Store) PutDocument(ctx context.Context, doc domain.Document) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if err := doc.Validate(); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put document: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT INTO documents (
		   id, case_id, side, title, file_name, file_type, extracted_text,
		   page_count, word_count, uploaded_by, uploaded_at
		 )
		 SELECT ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?
		  WHERE EXISTS (SELECT 1 FROM cases WHERE id = ? AND status != 'finalized')`,
		doc.ID,
		doc.CaseID,
		string(doc.Side),
		doc.Title,
		doc.FileName,
		string(doc.FileType),
		doc.ExtractedText,
		doc.PageCount,
		doc.WordCount,
		doc.UploadedBy,
		toMillis(doc.UploadedAt),
		doc.CaseID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("put document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	if affected == 0 {
		return missingOrConflict(ctx, tx, doc.CaseID)
	}
	if err := syncEvidenceStatus(ctx, tx, doc.CaseID, doc.UploadedAt); err != nil {
		return fmt.Errorf("put document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit put document: %w", err)
	}
	return nil
}

// GetDocument returns one document of a case.
func (s *Store) GetDocument(ctx context.Context, caseID, documentID string) (domain.Document, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Document{}, err
	}
	doc, err := scanDocument(s.sqlDB.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE case_id = ? AND id = ?`,
		caseID, documentID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Document{}, storage.ErrNotFound
		}
		return domain.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// ListDocuments returns a case's documents in upload order.
func (s *Store) ListDocuments(ctx context.Context, caseID string, side domain.Side) ([]domain.Document, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+documentColumns+`
		   FROM documents
		  WHERE case_id = ? AND (? = '' OR side = ?)
		  ORDER BY uploaded_at ASC, id ASC`,
		caseID, string(side), string(side),
	)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("list documents: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// DeleteDocument removes a document while its case still accepts evidence,
// syncing the pre-trial status in the same transaction.
func (s *Store) DeleteDocument(ctx context.Context, caseID, documentID string, updatedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete document: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`DELETE FROM documents
		  WHERE case_id = ? AND id = ?
		    AND EXISTS (SELECT 1 FROM cases WHERE id = ? AND status != 'finalized')`,
		caseID, documentID, caseID,
	)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if affected == 0 {
		found, err := exists(ctx, tx, `SELECT 1 FROM documents WHERE case_id = ? AND id = ?`, caseID, documentID)
		if err != nil {
			return fmt.Errorf("delete document: %w", err)
		}
		if !found {
			return storage.ErrNotFound
		}
		return storage.ErrConflict
	}
	if err := syncEvidenceStatus(ctx, tx, caseID, updatedAt); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete document: %w", err)
	}
	return nil
}

// syncEvidenceStatus moves a case that has not started between draft and
// ready to match its per-side document counts.
func syncEvidenceStatus(ctx context.Context, tx *sql.Tx, caseID string, updatedAt time.Time) error {
	var (
		status       string
		sideA, sideB int
	)
	err := tx.QueryRowContext(ctx,
		`SELECT c.status,
		        (SELECT COUNT(*) FROM documents WHERE case_id = c.id AND side = 'A'),
		        (SELECT COUNT(*) FROM documents WHERE case_id = c.id AND side = 'B')
		   FROM cases c WHERE c.id = ?`,
		caseID,
	).Scan(&status, &sideA, &sideB)
	if err != nil {
		return fmt.Errorf("read evidence counts: %w", err)
	}
	current := domain.Status(status)
	if current.Started() {
		return nil
	}
	next := domain.EvidenceStatus(sideA, sideB)
	if next == current || !domain.IsStatusTransitionAllowed(current, next) {
		return nil
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE cases SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(next), toMillis(updatedAt), caseID, status,
	); err != nil {
		return fmt.Errorf("update case status: %w", err)
	}
	return nil
}
