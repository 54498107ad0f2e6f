package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
)

const caseColumns = `id, case_number, owner_user_id, title, description, case_type, jurisdiction,
       status, current_round, max_rounds, created_at, updated_at, finalized_at`

func scanCase(row rowScanner) (domain.Case, error) {
	var (
		c           domain.Case
		caseType    string
		status      string
		createdAt   int64
		updatedAt   int64
		finalizedAt sql.NullInt64
	)
	if err := row.Scan(
		&c.ID,
		&c.CaseNumber,
		&c.OwnerUserID,
		&c.Title,
		&c.Description,
		&caseType,
		&c.Jurisdiction,
		&status,
		&c.CurrentRound,
		&c.MaxRounds,
		&createdAt,
		&updatedAt,
		&finalizedAt,
	); err != nil {
		return domain.Case{}, err
	}
	c.CaseType = domain.CaseType(caseType)
	c.Status = domain.Status(status)
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	if finalizedAt.Valid {
		value := fromMillis(finalizedAt.Int64)
		c.FinalizedAt = &value
	}
	return c, nil
}

func getCase(ctx context.Context, q queryer, caseID string) (domain.Case, error) {
	c, err := scanCase(q.QueryRowContext(ctx, `SELECT `+caseColumns+` FROM cases WHERE id = ?`, caseID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Case{}, storage.ErrNotFound
		}
		return domain.Case{}, fmt.Errorf("get case: %w", err)
	}
	return c, nil
}

// CreateCase inserts a new case.
func (s *Store) CreateCase(ctx context.Context, c domain.Case) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("case id is required")
	}
	if strings.TrimSpace(c.OwnerUserID) == "" {
		return fmt.Errorf("owner user id is required")
	}
	createdAt := c.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := c.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO cases (
		   id, case_number, owner_user_id, title, description, case_type, jurisdiction,
		   status, current_round, max_rounds, created_at, updated_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID,
		c.CaseNumber,
		c.OwnerUserID,
		c.Title,
		c.Description,
		string(c.CaseType),
		c.Jurisdiction,
		string(c.Status),
		c.CurrentRound,
		c.MaxRounds,
		toMillis(createdAt),
		toMillis(updatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("create case: %w", err)
	}
	return nil
}

// GetCase returns one case by ID.
func (s *Store) GetCase(ctx context.Context, caseID string) (domain.Case, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Case{}, err
	}
	return getCase(ctx, s.sqlDB, strings.TrimSpace(caseID))
}

// ListCasesByOwner returns one page of the owner's cases ordered by ID.
func (s *Store) ListCasesByOwner(ctx context.Context, ownerUserID string, pageSize int, pageToken string) (storage.CasePage, error) {
	if err := s.ready(ctx); err != nil {
		return storage.CasePage{}, err
	}
	if pageSize <= 0 {
		return storage.CasePage{}, fmt.Errorf("page size must be greater than zero")
	}
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return storage.CasePage{}, fmt.Errorf("owner user id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+caseColumns+`
		   FROM cases
		  WHERE owner_user_id = ? AND id > ?
		  ORDER BY id ASC
		  LIMIT ?`,
		ownerUserID,
		strings.TrimSpace(pageToken),
		pageSize+1,
	)
	if err != nil {
		return storage.CasePage{}, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	page := storage.CasePage{Cases: make([]domain.Case, 0, pageSize)}
	for rows.Next() {
		c, err := scanCase(rows)
		if err != nil {
			return storage.CasePage{}, fmt.Errorf("list cases: %w", err)
		}
		page.Cases = append(page.Cases, c)
	}
	if err := rows.Err(); err != nil {
		return storage.CasePage{}, fmt.Errorf("list cases: %w", err)
	}
	if len(page.Cases) > pageSize {
		page.NextPageToken = page.Cases[pageSize-1].ID
		page.Cases = page.Cases[:pageSize]
	}
	return page, nil
}

// GetCaseCounts returns ledger sizes for one case.
func (s *Store) GetCaseCounts(ctx context.Context, caseID string) (domain.CaseCounts, error) {
	if err := s.ready(ctx); err != nil {
		return domain.CaseCounts{}, err
	}
	var counts domain.CaseCounts
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM documents WHERE case_id = c.id AND side = 'A'),
		   (SELECT COUNT(*) FROM documents WHERE case_id = c.id AND side = 'B'),
		   (SELECT COUNT(*) FROM arguments WHERE case_id = c.id),
		   (SELECT COUNT(*) FROM verdicts WHERE case_id = c.id)
		 FROM cases c WHERE c.id = ?`,
		caseID,
	).Scan(&counts.SideADocuments, &counts.SideBDocuments, &counts.Arguments, &counts.Verdicts)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.CaseCounts{}, storage.ErrNotFound
		}
		return domain.CaseCounts{}, fmt.Errorf("count case records: %w", err)
	}
	return counts, nil
}

// UpdateCaseDetails rewrites a non-finalized case's editable metadata.
func (s *Store) UpdateCaseDetails(ctx context.Context, c domain.Case) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE cases
		    SET title = ?, description = ?, case_type = ?, jurisdiction = ?, updated_at = ?
		  WHERE id = ? AND status != 'finalized'`,
		c.Title,
		c.Description,
		string(c.CaseType),
		c.Jurisdiction,
		toMillis(c.UpdatedAt),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("update case details: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update case details: %w", err)
	}
	if affected == 0 {
		return missingOrConflict(ctx, s.sqlDB, c.ID)
	}
	return nil
}

// DeleteCase removes a non-finalized case; documents, arguments and
// verdicts cascade.
func (s *Store) DeleteCase(ctx context.Context, caseID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM cases WHERE id = ? AND status != 'finalized'`,
		caseID,
	)
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete case: %w", err)
	}
	if affected == 0 {
		return missingOrConflict(ctx, s.sqlDB, caseID)
	}
	return nil
}
