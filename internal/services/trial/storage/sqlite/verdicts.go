package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
)

const verdictColumns = `id, case_id, round, payload_json, model, tokens_used, created_at`

func scanVerdict(row rowScanner) (domain.Verdict, error) {
	var (
		v         domain.Verdict
		payload   string
		createdAt int64
	)
	if err := row.Scan(&v.ID, &v.CaseID, &v.Round, &payload, &v.Model, &v.TokensUsed, &createdAt); err != nil {
		return domain.Verdict{}, err
	}
	if err := json.Unmarshal([]byte(payload), &v.Payload); err != nil {
		return domain.Verdict{}, fmt.Errorf("decode verdict payload: %w", err)
	}
	v.CreatedAt = fromMillis(createdAt)
	return v, nil
}

func (s *Store) queryVerdict(ctx context.Context, query string, args ...any) (domain.Verdict, error) {
	v, err := scanVerdict(s.sqlDB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Verdict{}, storage.ErrNotFound
		}
		return domain.Verdict{}, fmt.Errorf("get verdict: %w", err)
	}
	return v, nil
}

// GetVerdict returns the verdict of one round.
func (s *Store) GetVerdict(ctx context.Context, caseID string, round int) (domain.Verdict, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Verdict{}, err
	}
	return s.queryVerdict(ctx,
		`SELECT `+verdictColumns+` FROM verdicts WHERE case_id = ? AND round = ?`,
		caseID, round,
	)
}

// LatestVerdict returns the highest-round verdict of a case.
func (s *Store) LatestVerdict(ctx context.Context, caseID string) (domain.Verdict, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Verdict{}, err
	}
	return s.queryVerdict(ctx,
		`SELECT `+verdictColumns+` FROM verdicts WHERE case_id = ? ORDER BY round DESC LIMIT 1`,
		caseID,
	)
}

// ListVerdicts returns every verdict of a case ordered by round.
func (s *Store) ListVerdicts(ctx context.Context, caseID string) ([]domain.Verdict, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+verdictColumns+` FROM verdicts WHERE case_id = ? ORDER BY round ASC`,
		caseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list verdicts: %w", err)
	}
	defer rows.Close()

	var out []domain.Verdict
	for rows.Next() {
		v, err := scanVerdict(rows)
		if err != nil {
			return nil, fmt.Errorf("list verdicts: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list verdicts: %w", err)
	}
	return out, nil
}

// CommitVerdict appends a verdict and advances the case in one transaction.
func (s *Store) CommitVerdict(ctx context.Context, input storage.CommitVerdictInput) (domain.Case, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Case{}, err
	}
	v := input.Verdict
	if err := v.Payload.Validate(); err != nil {
		return domain.Case{}, err
	}
	payload, err := json.Marshal(v.Payload)
	if err != nil {
		return domain.Case{}, fmt.Errorf("encode verdict payload: %w", err)
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Case{}, fmt.Errorf("begin commit verdict: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE cases
		    SET current_round = ?, status = ?, updated_at = ?
		  WHERE id = ? AND status = ? AND current_round = ?`,
		v.Round,
		string(input.NextStatus),
		toMillis(input.UpdatedAt),
		v.CaseID,
		string(input.ExpectedStatus),
		input.ExpectedRound,
	)
	if err != nil {
		return domain.Case{}, fmt.Errorf("advance case: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Case{}, fmt.Errorf("advance case: %w", err)
	}
	if affected == 0 {
		return domain.Case{}, missingOrConflict(ctx, tx, v.CaseID)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO verdicts (id, case_id, round, payload_json, leader, confidence, model, tokens_used, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID,
		v.CaseID,
		v.Round,
		string(payload),
		string(v.Payload.Leader),
		v.Payload.Confidence,
		v.Model,
		v.TokensUsed,
		toMillis(v.CreatedAt),
	); err != nil {
		if isUniqueViolation(err) {
			return domain.Case{}, storage.ErrAlreadyExists
		}
		return domain.Case{}, fmt.Errorf("append verdict: %w", err)
	}

	updated, err := getCase(ctx, tx, v.CaseID)
	if err != nil {
		return domain.Case{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Case{}, fmt.Errorf("commit verdict: %w", err)
	}
	return updated, nil
}

// FinalizeCase locks an in-progress case whose final round is decided.
func (s *Store) FinalizeCase(ctx context.Context, caseID string, finalizedAt time.Time) (domain.Case, error) {
	if err := s.ready(ctx); err != nil {
		return domain.Case{}, err
	}
	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return domain.Case{}, fmt.Errorf("begin finalize: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE cases
		    SET status = 'finalized', finalized_at = ?, updated_at = ?
		  WHERE id = ? AND status = 'in_progress' AND current_round >= max_rounds`,
		toMillis(finalizedAt), toMillis(finalizedAt), caseID,
	)
	if err != nil {
		return domain.Case{}, fmt.Errorf("finalize case: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return domain.Case{}, fmt.Errorf("finalize case: %w", err)
	}
	if affected == 0 {
		return domain.Case{}, missingOrConflict(ctx, tx, caseID)
	}
	updated, err := getCase(ctx, tx, caseID)
	if err != nil {
		return domain.Case{}, err
	}
	if err := tx.Commit(); err != nil {
		return domain.Case{}, fmt.Errorf("commit finalize: %w", err)
	}
	return updated, nil
}
