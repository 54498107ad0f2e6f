package sqlite

import (
	"context"
	"fmt"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
)

const argumentColumns = `id, case_id, round, side, text, submitted_by, submitted_at`

func scanArgument(row rowScanner) (domain.Argument, error) {
	var (
		arg         domain.Argument
		side        string
		submittedAt int64
	)
	if err := row.Scan(&arg.ID, &arg.CaseID, &arg.Round, &side, &arg.Text, &arg.SubmittedBy, &submittedAt); err != nil {
		return domain.Argument{}, err
	}
	arg.Side = domain.Side(side)
	arg.SubmittedAt = fromMillis(submittedAt)
	return arg, nil
}

// AppendArgument stores an argument only for the case's open round.
func (s *Store) AppendArgument(ctx context.Context, arg domain.Argument) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if !arg.Side.Valid() {
		return domain.ErrInvalidSide
	}
	if arg.Round < 1 {
		return fmt.Errorf("argument round must be at least 1")
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO arguments (id, case_id, round, side, text, submitted_by, submitted_at)
		 SELECT ?, ?, ?, ?, ?, ?, ?
		  WHERE EXISTS (
		    SELECT 1 FROM cases
		     WHERE id = ? AND status = 'in_progress'
		       AND current_round = ? - 1 AND ? <= max_rounds
		  )`,
		arg.ID,
		arg.CaseID,
		arg.Round,
		string(arg.Side),
		arg.Text,
		arg.SubmittedBy,
		toMillis(arg.SubmittedAt),
		arg.CaseID,
		arg.Round,
		arg.Round,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("append argument: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("append argument: %w", err)
	}
	if affected == 0 {
		return missingOrConflict(ctx, s.sqlDB, arg.CaseID)
	}
	return nil
}

// ListRoundArguments returns one round's arguments keyed by side.
func (s *Store) ListRoundArguments(ctx context.Context, caseID string, round int) (domain.RoundArguments, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+argumentColumns+` FROM arguments WHERE case_id = ? AND round = ?`,
		caseID, round,
	)
	if err != nil {
		return nil, fmt.Errorf("list round arguments: %w", err)
	}
	defer rows.Close()

	out := domain.RoundArguments{}
	for rows.Next() {
		arg, err := scanArgument(rows)
		if err != nil {
			return nil, fmt.Errorf("list round arguments: %w", err)
		}
		out[arg.Side] = arg
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list round arguments: %w", err)
	}
	return out, nil
}

// ListArguments returns every argument of a case ordered by round then side.
func (s *Store) ListArguments(ctx context.Context, caseID string) ([]domain.Argument, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+argumentColumns+` FROM arguments WHERE case_id = ? ORDER BY round ASC, side ASC`,
		caseID,
	)
	if err != nil {
		return nil, fmt.Errorf("list arguments: %w", err)
	}
	defer rows.Close()

	var out []domain.Argument
	for rows.Next() {
		arg, err := scanArgument(rows)
		if err != nil {
			return nil, fmt.Errorf("list arguments: %w", err)
		}
		out = append(out, arg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list arguments: %w", err)
	}
	return out, nil
}
