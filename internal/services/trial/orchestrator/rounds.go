package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/services/trial/adjudication"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// OutcomeKind is the observable result of a round transition.
type OutcomeKind string

const (
	OutcomeVerdictGenerated    OutcomeKind = "verdict_generated"
	OutcomeWaitingForOtherSide OutcomeKind = "waiting_for_other_side"
)

// Outcome reports what a submission or generation request did.
type Outcome struct {
	Kind  OutcomeKind
	Round int
	// Verdict is set for OutcomeVerdictGenerated.
	Verdict *domain.Verdict
	// SideRemaining is set for OutcomeWaitingForOtherSide.
	SideRemaining domain.Side
	Case          domain.Case
}

// SubmitArgumentInput is one side's argument for a round. A zero Round
// targets the case's open round.
type SubmitArgumentInput struct {
	CaseID string
	UserID string
	Round  int
	Side   domain.Side
	Text   string
}

// GenerateInitialVerdict adjudicates round 0 from evidence alone and starts
// the case.
func (o *Orchestrator) GenerateInitialVerdict(ctx context.Context, caseID, userID string) (out Outcome, err error) {
	ctx, span := o.startSpan(ctx, "generate_initial_verdict", caseID, attribute.Int("trial.round", 0))
	defer func() { o.finish(span, "generate initial verdict", caseID, err) }()
	if err := o.ready(); err != nil {
		return Outcome{}, err
	}

	unlock, err := o.lockCase(ctx, caseID)
	if err != nil {
		return Outcome{}, err
	}
	defer unlock()

	c, err := o.loadCase(ctx, caseID, userID)
	if err != nil {
		return Outcome{}, err
	}
	switch c.Status {
	case domain.StatusFinalized:
		return Outcome{}, caseLocked(caseID)
	case domain.StatusInProgress:
		return Outcome{}, alreadyGenerated(0)
	}
	return o.generate(ctx, c, 0, nil)
}

// SubmitArgument appends one side's argument. When the other side already
// submitted for the round, the round is adjudicated before returning.
func (o *Orchestrator) SubmitArgument(ctx context.Context, input SubmitArgumentInput) (out Outcome, err error) {
	ctx, span := o.startSpan(ctx, "submit_argument", input.CaseID,
		attribute.Int("trial.round", input.Round),
		attribute.String("trial.side", string(input.Side)),
	)
	defer func() { o.finish(span, "submit argument", input.CaseID, err) }()
	if err := o.ready(); err != nil {
		return Outcome{}, err
	}
	if !input.Side.Valid() {
		return Outcome{}, domain.ErrInvalidSide
	}
	text, err := domain.NormalizeArgumentText(input.Text)
	if err != nil {
		return Outcome{}, err
	}

	unlock, err := o.lockCase(ctx, input.CaseID)
	if err != nil {
		return Outcome{}, err
	}
	defer unlock()

	c, err := o.loadCase(ctx, input.CaseID, input.UserID)
	if err != nil {
		return Outcome{}, err
	}
	round := input.Round
	if round == 0 {
		round = c.CurrentRound + 1
	}
	if err := checkArgumentRound(c, round); err != nil {
		return Outcome{}, err
	}

	submitted, err := o.store.ListRoundArguments(ctx, c.ID, round)
	if err != nil {
		return Outcome{}, err
	}
	if _, ok := submitted[input.Side]; ok {
		return Outcome{}, duplicateSubmission(round, input.Side)
	}

	argID, err := o.idGenerator()
	if err != nil {
		return Outcome{}, err
	}
	arg := domain.Argument{
		ID:          argID,
		CaseID:      c.ID,
		Round:       round,
		Side:        input.Side,
		Text:        text,
		SubmittedBy: input.UserID,
		SubmittedAt: o.now(),
	}
	if err := o.store.AppendArgument(ctx, arg); err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return Outcome{}, duplicateSubmission(round, input.Side)
		case errors.Is(err, storage.ErrConflict):
			return Outcome{}, o.explainConflict(ctx, c.ID, round)
		default:
			return Outcome{}, storeError(err, "case")
		}
	}
	submitted[input.Side] = arg

	if !submitted.Complete() {
		return Outcome{
			Kind:          OutcomeWaitingForOtherSide,
			Round:         round,
			SideRemaining: input.Side.Other(),
			Case:          c,
		}, nil
	}
	return o.generate(ctx, c, round, submitted)
}

// RetryRoundVerdict re-runs adjudication for the open round after a
// gateway failure. Both arguments must already be stored; nothing is
// re-appended.
func (o *Orchestrator) RetryRoundVerdict(ctx context.Context, caseID, userID string) (out Outcome, err error) {
	ctx, span := o.startSpan(ctx, "retry_round_verdict", caseID)
	defer func() { o.finish(span, "retry round verdict", caseID, err) }()
	if err := o.ready(); err != nil {
		return Outcome{}, err
	}

	unlock, err := o.lockCase(ctx, caseID)
	if err != nil {
		return Outcome{}, err
	}
	defer unlock()

	c, err := o.loadCase(ctx, caseID, userID)
	if err != nil {
		return Outcome{}, err
	}
	switch {
	case c.Status == domain.StatusFinalized:
		return Outcome{}, caseLocked(caseID)
	case !c.Status.Started():
		return Outcome{}, notStarted()
	case c.CurrentRound >= c.MaxRounds:
		return Outcome{}, alreadyGenerated(c.CurrentRound)
	}

	round := c.CurrentRound + 1
	submitted, err := o.store.ListRoundArguments(ctx, c.ID, round)
	if err != nil {
		return Outcome{}, err
	}
	if !submitted.Complete() {
		missing, _ := submitted.Missing()
		if missing == "" {
			missing = domain.SideA
		}
		return Outcome{}, apperrors.WithMetadata(
			apperrors.CodeRoundNotReady,
			fmt.Sprintf("round %d is missing side %s", round, missing),
			map[string]string{"Round": strconv.Itoa(round), "Side": string(missing)},
		)
	}
	return o.generate(ctx, c, round, submitted)
}

// FinalizeCase locks a case whose final round is decided.
func (o *Orchestrator) FinalizeCase(ctx context.Context, caseID, userID string) (c domain.Case, err error) {
	ctx, span := o.startSpan(ctx, "finalize_case", caseID)
	defer func() { o.finish(span, "finalize case", caseID, err) }()
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
	if err := checkFinalizable(c); err != nil {
		return domain.Case{}, err
	}
	finalized, err := o.store.FinalizeCase(ctx, caseID, o.now())
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			current, getErr := o.store.GetCase(ctx, caseID)
			if getErr != nil {
				return domain.Case{}, storeError(getErr, "case")
			}
			if checkErr := checkFinalizable(current); checkErr != nil {
				return domain.Case{}, checkErr
			}
		}
		return domain.Case{}, storeError(err, "case")
	}
	return finalized, nil
}

// generate adjudicates one round and commits the verdict together with the
// case advance. Callers hold the case lock and have checked the round.
func (o *Orchestrator) generate(ctx context.Context, c domain.Case, round int, submitted domain.RoundArguments) (Outcome, error) {
	input, err := o.gatherContext(ctx, c, round, submitted)
	if err != nil {
		return Outcome{}, err
	}

	gatewayCtx, cancel := context.WithTimeout(ctx, o.gatewayTimeout)
	result, err := o.gateway.Adjudicate(gatewayCtx, input)
	cancel()
	if err != nil {
		return Outcome{}, llm.ToAppError(llm.Classify(err), "adjudicate round "+strconv.Itoa(round))
	}
	if err := result.Payload.Validate(); err != nil {
		return Outcome{}, llm.ToAppError(llm.Transient(llm.ReasonMalformedResponse, err), "adjudicate round "+strconv.Itoa(round))
	}

	verdictID, err := o.idGenerator()
	if err != nil {
		return Outcome{}, err
	}
	now := o.now()
	verdict := domain.Verdict{
		ID:         verdictID,
		CaseID:     c.ID,
		Round:      round,
		Payload:    result.Payload,
		Model:      result.Model,
		TokensUsed: result.TokensUsed,
		CreatedAt:  now,
	}
	commit := storage.CommitVerdictInput{
		Verdict:        verdict,
		ExpectedRound:  round - 1,
		ExpectedStatus: domain.StatusInProgress,
		NextStatus:     domain.StatusInProgress,
		UpdatedAt:      now,
	}
	if round == 0 {
		commit.ExpectedRound = 0
		commit.ExpectedStatus = domain.StatusReady
	}
	updated, err := o.store.CommitVerdict(ctx, commit)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrAlreadyExists):
			return Outcome{}, alreadyGenerated(round)
		case errors.Is(err, storage.ErrConflict):
			return Outcome{}, o.explainConflict(ctx, c.ID, round)
		default:
			return Outcome{}, storeError(err, "case")
		}
	}
	return Outcome{
		Kind:    OutcomeVerdictGenerated,
		Round:   round,
		Verdict: &verdict,
		Case:    updated,
	}, nil
}

// gatherContext loads what the judge needs for a round.
func (o *Orchestrator) gatherContext(ctx context.Context, c domain.Case, round int, submitted domain.RoundArguments) (adjudication.Context, error) {
	input := adjudication.Context{Case: c, Round: round, Arguments: submitted}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		docs, err := o.store.ListDocuments(gctx, c.ID, domain.SideA)
		input.SideA = docs
		return err
	})
	g.Go(func() error {
		docs, err := o.store.ListDocuments(gctx, c.ID, domain.SideB)
		input.SideB = docs
		return err
	})
	if round > 0 {
		g.Go(func() error {
			all, err := o.store.ListArguments(gctx, c.ID)
			if err != nil {
				return err
			}
			for _, arg := range all {
				if arg.Round < round {
					input.History = append(input.History, arg)
				}
			}
			return nil
		})
		g.Go(func() error {
			previous, err := o.store.GetVerdict(gctx, c.ID, round-1)
			if err != nil {
				return storeError(err, "previous verdict")
			}
			input.PreviousVerdict = &previous
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return adjudication.Context{}, err
	}

	if len(input.SideA) == 0 || len(input.SideB) == 0 {
		return adjudication.Context{}, missingEvidence(len(input.SideA), len(input.SideB))
	}
	return input, nil
}

// explainConflict turns a store-level compare-and-set miss into the
// precondition the caller lost to.
func (o *Orchestrator) explainConflict(ctx context.Context, caseID string, round int) error {
	c, err := o.store.GetCase(ctx, caseID)
	if err != nil {
		return storeError(err, "case")
	}
	if c.Status == domain.StatusFinalized {
		return caseLocked(caseID)
	}
	if round == 0 {
		if c.Status.Started() {
			return alreadyGenerated(0)
		}
		return apperrors.New(apperrors.CodeMissingEvidence, "case is not ready for the initial verdict")
	}
	if c.CurrentRound >= round {
		return alreadyGenerated(round)
	}
	if err := checkArgumentRound(c, round); err != nil {
		return err
	}
	return fmt.Errorf("round %d of case %s changed concurrently: %w", round, caseID, storage.ErrConflict)
}

func checkArgumentRound(c domain.Case, round int) error {
	if c.Status == domain.StatusFinalized {
		return caseLocked(c.ID)
	}
	if !c.Status.Started() {
		return notStarted()
	}
	expected := c.CurrentRound + 1
	if round != expected || round > c.MaxRounds {
		metadata := map[string]string{
			"Round":         strconv.Itoa(round),
			"ExpectedRound": strconv.Itoa(expected),
			"MaxRounds":     strconv.Itoa(c.MaxRounds),
		}
		if expected > c.MaxRounds {
			metadata["ExpectedRound"] = "none"
		}
		return apperrors.WithMetadata(
			apperrors.CodeInvalidRound,
			fmt.Sprintf("round %d is not open (current %d, max %d)", round, c.CurrentRound, c.MaxRounds),
			metadata,
		)
	}
	return nil
}

func checkFinalizable(c domain.Case) error {
	if c.Status == domain.StatusFinalized {
		return apperrors.New(apperrors.CodeAlreadyFinalized, "case is already finalized")
	}
	if !c.RoundsComplete() {
		return apperrors.WithMetadata(
			apperrors.CodeRoundsIncomplete,
			fmt.Sprintf("round %d of %d decided", c.CurrentRound, c.MaxRounds),
			map[string]string{"MaxRounds": strconv.Itoa(c.MaxRounds), "Round": strconv.Itoa(c.CurrentRound)},
		)
	}
	return nil
}

func alreadyGenerated(round int) error {
	return apperrors.WithMetadata(
		apperrors.CodeAlreadyGenerated,
		fmt.Sprintf("verdict for round %d already exists", round),
		map[string]string{"Round": strconv.Itoa(round)},
	)
}

func duplicateSubmission(round int, side domain.Side) error {
	return apperrors.WithMetadata(
		apperrors.CodeDuplicateSubmission,
		fmt.Sprintf("side %s already argued round %d", side, round),
		map[string]string{"Round": strconv.Itoa(round), "Side": string(side)},
	)
}

func notStarted() error {
	return apperrors.New(apperrors.CodeCaseNotStarted, "initial verdict has not been generated")
}

func missingEvidence(sideA, sideB int) error {
	return apperrors.WithMetadata(
		apperrors.CodeMissingEvidence,
		fmt.Sprintf("side A has %d documents, side B has %d", sideA, sideB),
		map[string]string{"SideADocuments": strconv.Itoa(sideA), "SideBDocuments": strconv.Itoa(sideB)},
	)
}
