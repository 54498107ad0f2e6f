package orchestrator

import (
	"context"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
)

// RoundView describes the open round of a case. Waiting state is derived
// from the argument ledger on every read; it is never stored.
type RoundView struct {
	Case domain.Case
	// Round is the round accepting arguments, or 0 when none does.
	Round     int
	Submitted []domain.Side
	Awaiting  []domain.Side
	// VerdictPending is set when both sides argued the open round but its
	// verdict has not been committed, usually after a gateway failure.
	VerdictPending bool
}

// RoundStatus reports who has argued the open round.
func (o *Orchestrator) RoundStatus(ctx context.Context, caseID, userID string) (RoundView, error) {
	if err := o.ready(); err != nil {
		return RoundView{}, err
	}
	c, err := o.loadCase(ctx, caseID, userID)
	if err != nil {
		return RoundView{}, err
	}
	view := RoundView{Case: c, Round: c.NextRound()}
	if view.Round == 0 {
		return view, nil
	}
	submitted, err := o.store.ListRoundArguments(ctx, caseID, view.Round)
	if err != nil {
		return RoundView{}, err
	}
	for _, side := range domain.Sides {
		if _, ok := submitted[side]; ok {
			view.Submitted = append(view.Submitted, side)
		} else {
			view.Awaiting = append(view.Awaiting, side)
		}
	}
	view.VerdictPending = submitted.Complete()
	return view, nil
}

// ListArguments returns every argument of a case ordered by round and side.
func (o *Orchestrator) ListArguments(ctx context.Context, caseID, userID string) ([]domain.Argument, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if _, err := o.loadCase(ctx, caseID, userID); err != nil {
		return nil, err
	}
	return o.store.ListArguments(ctx, caseID)
}

// ListVerdicts returns the verdict history of a case ordered by round.
func (o *Orchestrator) ListVerdicts(ctx context.Context, caseID, userID string) ([]domain.Verdict, error) {
	if err := o.ready(); err != nil {
		return nil, err
	}
	if _, err := o.loadCase(ctx, caseID, userID); err != nil {
		return nil, err
	}
	return o.store.ListVerdicts(ctx, caseID)
}

// GetVerdict returns the verdict of one round. A negative round selects the
// latest verdict.
func (o *Orchestrator) GetVerdict(ctx context.Context, caseID, userID string, round int) (domain.Verdict, error) {
	if err := o.ready(); err != nil {
		return domain.Verdict{}, err
	}
	if _, err := o.loadCase(ctx, caseID, userID); err != nil {
		return domain.Verdict{}, err
	}
	var (
		v   domain.Verdict
		err error
	)
	if round < 0 {
		v, err = o.store.LatestVerdict(ctx, caseID)
	} else {
		v, err = o.store.GetVerdict(ctx, caseID, round)
	}
	if err != nil {
		return domain.Verdict{}, storeError(err, "verdict")
	}
	return v, nil
}
