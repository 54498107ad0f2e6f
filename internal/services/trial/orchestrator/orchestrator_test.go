package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
	"github.com/louisbranch/mocktrial/internal/services/trial/adjudication"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/evidence"
	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage/sqlite"
)

const owner = "user-1"

var testNow = time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

type fakeGateway struct {
	mu     sync.Mutex
	calls  []adjudication.Context
	failOn map[int]error
}

func (g *fakeGateway) Adjudicate(_ context.Context, input adjudication.Context) (adjudication.Result, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls = append(g.calls, input)
	if err, ok := g.failOn[input.Round]; ok {
		delete(g.failOn, input.Round)
		return adjudication.Result{}, err
	}
	return adjudication.Result{
		Payload: domain.VerdictPayload{
			Summary:       fmt.Sprintf("Round %d summary", input.Round),
			Leader:        domain.LeaderA,
			Confidence:    0.6,
			FinalDecision: "Side A leads.",
		},
		Model:      "fake-judge",
		TokensUsed: 42,
	}, nil
}

func (g *fakeGateway) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

type fixture struct {
	orch    *Orchestrator
	store   *sqlite.Store
	gateway *fakeGateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "trial.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	gateway := &fakeGateway{failOn: map[int]error{}}
	orch := New(store, gateway, evidence.NewIngestor(0, nil), Config{})
	orch.clock = func() time.Time { return testNow }
	var seq int64
	orch.idGenerator = func() (string, error) {
		return fmt.Sprintf("id-%d", atomic.AddInt64(&seq, 1)), nil
	}
	orch.logf = func(string, ...any) {}
	return &fixture{orch: orch, store: store, gateway: gateway}
}

func (f *fixture) createCase(t *testing.T, maxRounds int) domain.Case {
	t.Helper()
	c, err := f.orch.CreateCase(context.Background(), domain.CreateCaseInput{
		OwnerUserID:  owner,
		Title:        "Acme v. Widget",
		CaseType:     "civil",
		Jurisdiction: "Delaware",
		MaxRounds:    maxRounds,
	})
	if err != nil {
		t.Fatalf("create case: %v", err)
	}
	return c
}

func (f *fixture) addDocument(t *testing.T, caseID string, side domain.Side) domain.Document {
	t.Helper()
	doc, err := f.orch.AddDocument(context.Background(), AddDocumentInput{
		CaseID:   caseID,
		UserID:   owner,
		Side:     side,
		FileName: "exhibit-" + string(side) + ".txt",
		Data:     []byte("Evidence for side " + string(side)),
	})
	if err != nil {
		t.Fatalf("add document: %v", err)
	}
	return doc
}

func (f *fixture) readyCase(t *testing.T, maxRounds int) domain.Case {
	t.Helper()
	c := f.createCase(t, maxRounds)
	f.addDocument(t, c.ID, domain.SideA)
	f.addDocument(t, c.ID, domain.SideB)
	return c
}

func (f *fixture) startedCase(t *testing.T, maxRounds int) domain.Case {
	t.Helper()
	c := f.readyCase(t, maxRounds)
	if _, err := f.orch.GenerateInitialVerdict(context.Background(), c.ID, owner); err != nil {
		t.Fatalf("initial verdict: %v", err)
	}
	return c
}

func (f *fixture) finalizedCase(t *testing.T) domain.Case {
	t.Helper()
	c := f.startedCase(t, 1)
	if _, err := f.submit(c.ID, 1, domain.SideA); err != nil {
		t.Fatalf("round 1 side A: %v", err)
	}
	if _, err := f.submit(c.ID, 1, domain.SideB); err != nil {
		t.Fatalf("round 1 side B: %v", err)
	}
	finalized, err := f.orch.FinalizeCase(context.Background(), c.ID, owner)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	return finalized
}

func (f *fixture) submit(caseID string, round int, side domain.Side) (Outcome, error) {
	return f.orch.SubmitArgument(context.Background(), SubmitArgumentInput{
		CaseID: caseID,
		UserID: owner,
		Round:  round,
		Side:   side,
		Text:   fmt.Sprintf("Side %s argues round %d.", side, round),
	})
}

func (f *fixture) getCase(t *testing.T, caseID string) domain.Case {
	t.Helper()
	c, err := f.store.GetCase(context.Background(), caseID)
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	return c
}

func assertCode(t *testing.T, err error, want apperrors.Code) {
	t.Helper()
	if got := apperrors.GetCode(err); got != want {
		t.Fatalf("code = %s, want %s (err %v)", got, want, err)
	}
}

func TestFullTrialLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.createCase(t, 2)
	if c.Status != domain.StatusDraft {
		t.Fatalf("status = %s, want draft", c.Status)
	}
	f.addDocument(t, c.ID, domain.SideA)
	f.addDocument(t, c.ID, domain.SideB)
	if got := f.getCase(t, c.ID).Status; got != domain.StatusReady {
		t.Fatalf("status = %s, want ready", got)
	}

	initial, err := f.orch.GenerateInitialVerdict(ctx, c.ID, owner)
	if err != nil {
		t.Fatalf("initial verdict: %v", err)
	}
	if initial.Kind != OutcomeVerdictGenerated || initial.Round != 0 {
		t.Fatalf("outcome = %+v", initial)
	}
	if initial.Case.Status != domain.StatusInProgress || initial.Case.CurrentRound != 0 {
		t.Fatalf("case = %s/%d, want in_progress/0", initial.Case.Status, initial.Case.CurrentRound)
	}

	for round := 1; round <= 2; round++ {
		waiting, err := f.submit(c.ID, round, domain.SideA)
		if err != nil {
			t.Fatalf("round %d side A: %v", round, err)
		}
		if waiting.Kind != OutcomeWaitingForOtherSide || waiting.SideRemaining != domain.SideB {
			t.Fatalf("round %d outcome = %+v", round, waiting)
		}
		if _, err := f.store.GetVerdict(ctx, c.ID, round); err == nil {
			t.Fatalf("round %d verdict exists after one side", round)
		}

		decided, err := f.submit(c.ID, round, domain.SideB)
		if err != nil {
			t.Fatalf("round %d side B: %v", round, err)
		}
		if decided.Kind != OutcomeVerdictGenerated || decided.Verdict == nil || decided.Verdict.Round != round {
			t.Fatalf("round %d outcome = %+v", round, decided)
		}
		if decided.Case.CurrentRound != round {
			t.Fatalf("current round = %d, want %d", decided.Case.CurrentRound, round)
		}
	}

	finalized, err := f.orch.FinalizeCase(ctx, c.ID, owner)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if finalized.Status != domain.StatusFinalized || finalized.FinalizedAt == nil {
		t.Fatalf("finalized case = %+v", finalized)
	}

	_, err = f.submit(c.ID, 3, domain.SideA)
	assertCode(t, err, apperrors.CodeCaseLocked)
	_, err = f.orch.AddDocument(ctx, AddDocumentInput{CaseID: c.ID, UserID: owner, Side: domain.SideA, FileName: "late.txt", Data: []byte("late")})
	assertCode(t, err, apperrors.CodeCaseLocked)
	_, err = f.orch.FinalizeCase(ctx, c.ID, owner)
	assertCode(t, err, apperrors.CodeAlreadyFinalized)
	assertCode(t, f.orch.DeleteCase(ctx, c.ID, owner), apperrors.CodeCaseLocked)

	verdicts, err := f.orch.ListVerdicts(ctx, c.ID, owner)
	if err != nil {
		t.Fatalf("list verdicts: %v", err)
	}
	if len(verdicts) != 3 {
		t.Fatalf("verdicts = %d, want 3", len(verdicts))
	}
	if f.gateway.callCount() != 3 {
		t.Fatalf("gateway calls = %d, want 3", f.gateway.callCount())
	}
}

func TestInitialVerdictRequiresBothSides(t *testing.T) {
	f := newFixture(t)
	c := f.createCase(t, 2)
	f.addDocument(t, c.ID, domain.SideA)

	_, err := f.orch.GenerateInitialVerdict(context.Background(), c.ID, owner)
	assertCode(t, err, apperrors.CodeMissingEvidence)
	if !apperrors.IsKind(err, apperrors.KindPrecondition) {
		t.Fatalf("kind = %s, want precondition", apperrors.GetCode(err).Kind())
	}
	if got := f.getCase(t, c.ID).Status; got != domain.StatusDraft {
		t.Fatalf("status = %s, want draft", got)
	}
	if f.gateway.callCount() != 0 {
		t.Fatal("gateway should not be called")
	}
}

func TestInitialVerdictRejectsSecondGeneration(t *testing.T) {
	f := newFixture(t)
	c := f.startedCase(t, 2)
	_, err := f.orch.GenerateInitialVerdict(context.Background(), c.ID, owner)
	assertCode(t, err, apperrors.CodeAlreadyGenerated)
	if f.gateway.callCount() != 1 {
		t.Fatalf("gateway calls = %d, want 1", f.gateway.callCount())
	}
}

func TestSubmitArgumentPreconditions(t *testing.T) {
	f := newFixture(t)
	ready := f.readyCase(t, 2)
	_, err := f.submit(ready.ID, 1, domain.SideA)
	assertCode(t, err, apperrors.CodeCaseNotStarted)

	c := f.startedCase(t, 1)
	_, err = f.submit(c.ID, 2, domain.SideA)
	assertCode(t, err, apperrors.CodeInvalidRound)

	if _, err := f.submit(c.ID, 1, domain.SideA); err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = f.submit(c.ID, 1, domain.SideA)
	assertCode(t, err, apperrors.CodeDuplicateSubmission)
	if !apperrors.IsKind(err, apperrors.KindConflict) {
		t.Fatal("duplicate submission should be a conflict")
	}

	if _, err := f.submit(c.ID, 1, domain.SideB); err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = f.submit(c.ID, 1, domain.SideA)
	assertCode(t, err, apperrors.CodeInvalidRound)
	_, err = f.submit(c.ID, 2, domain.SideA)
	assertCode(t, err, apperrors.CodeInvalidRound)
	if got := f.getCase(t, c.ID).CurrentRound; got != 1 {
		t.Fatalf("current round = %d, want 1", got)
	}
}

func TestSubmitArgumentDefaultsToOpenRound(t *testing.T) {
	f := newFixture(t)
	c := f.startedCase(t, 2)
	out, err := f.submit(c.ID, 0, domain.SideB)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.Round != 1 || out.SideRemaining != domain.SideA {
		t.Fatalf("outcome = %+v", out)
	}
}

func TestSubmitArgumentValidatesInput(t *testing.T) {
	f := newFixture(t)
	c := f.startedCase(t, 2)
	_, err := f.orch.SubmitArgument(context.Background(), SubmitArgumentInput{CaseID: c.ID, UserID: owner, Round: 1, Side: "C", Text: "x"})
	assertCode(t, err, apperrors.CodeInvalidSide)
	_, err = f.orch.SubmitArgument(context.Background(), SubmitArgumentInput{CaseID: c.ID, UserID: owner, Round: 1, Side: domain.SideA, Text: "   "})
	assertCode(t, err, apperrors.CodeArgumentEmpty)
}

func TestFinalizeBeforeLastRound(t *testing.T) {
	f := newFixture(t)
	ready := f.readyCase(t, 1)
	_, err := f.orch.FinalizeCase(context.Background(), ready.ID, owner)
	assertCode(t, err, apperrors.CodeRoundsIncomplete)

	c := f.startedCase(t, 1)
	_, err = f.orch.FinalizeCase(context.Background(), c.ID, owner)
	assertCode(t, err, apperrors.CodeRoundsIncomplete)
	if got := f.getCase(t, c.ID).Status; got != domain.StatusInProgress {
		t.Fatalf("status = %s, want in_progress", got)
	}
}

func TestGatewayMalformedResponseLeavesRoundOpen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.startedCase(t, 2)
	f.gateway.failOn[1] = llm.Transient(llm.ReasonMalformedResponse, errors.New("not json"))

	if _, err := f.submit(c.ID, 1, domain.SideA); err != nil {
		t.Fatalf("submit A: %v", err)
	}
	_, err := f.submit(c.ID, 1, domain.SideB)
	assertCode(t, err, apperrors.CodeGatewayTransient)
	if !apperrors.IsKind(err, apperrors.KindGatewayTransient) {
		t.Fatal("expected transient gateway kind")
	}

	if _, err := f.store.GetVerdict(ctx, c.ID, 1); err == nil {
		t.Fatal("verdict persisted after gateway failure")
	}
	if got := f.getCase(t, c.ID).CurrentRound; got != 0 {
		t.Fatalf("current round = %d, want 0", got)
	}
	args, err := f.store.ListRoundArguments(ctx, c.ID, 1)
	if err != nil {
		t.Fatalf("list arguments: %v", err)
	}
	if !args.Complete() {
		t.Fatal("both arguments should remain stored")
	}

	view, err := f.orch.RoundStatus(ctx, c.ID, owner)
	if err != nil {
		t.Fatalf("round status: %v", err)
	}
	if view.Round != 1 || !view.VerdictPending || len(view.Awaiting) != 0 {
		t.Fatalf("view = %+v", view)
	}

	_, err = f.submit(c.ID, 1, domain.SideB)
	assertCode(t, err, apperrors.CodeDuplicateSubmission)

	out, err := f.orch.RetryRoundVerdict(ctx, c.ID, owner)
	if err != nil {
		t.Fatalf("retry: %v", err)
	}
	if out.Kind != OutcomeVerdictGenerated || out.Case.CurrentRound != 1 {
		t.Fatalf("retry outcome = %+v", out)
	}
	all, err := f.orch.ListArguments(ctx, c.ID, owner)
	if err != nil {
		t.Fatalf("list arguments: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("arguments = %d, want 2", len(all))
	}
}

func TestGatewayPermanentFailure(t *testing.T) {
	f := newFixture(t)
	c := f.readyCase(t, 1)
	f.gateway.failOn[0] = llm.Permanent(llm.ReasonQuota, errors.New("no credit"))

	_, err := f.orch.GenerateInitialVerdict(context.Background(), c.ID, owner)
	assertCode(t, err, apperrors.CodeGatewayPermanent)
	if got := f.getCase(t, c.ID).Status; got != domain.StatusReady {
		t.Fatalf("status = %s, want ready", got)
	}
	if got := apperrors.GetMetadata(err)["Reason"]; got != llm.ReasonQuota {
		t.Fatalf("reason = %q, want %q", got, llm.ReasonQuota)
	}
}

func TestUnclassifiedGatewayErrorIsTransient(t *testing.T) {
	f := newFixture(t)
	c := f.readyCase(t, 1)
	f.gateway.failOn[0] = context.DeadlineExceeded

	_, err := f.orch.GenerateInitialVerdict(context.Background(), c.ID, owner)
	assertCode(t, err, apperrors.CodeGatewayTransient)
}

func TestRetryRoundVerdictPreconditions(t *testing.T) {
	f := newFixture(t)
	ready := f.readyCase(t, 1)
	_, err := f.orch.RetryRoundVerdict(context.Background(), ready.ID, owner)
	assertCode(t, err, apperrors.CodeCaseNotStarted)

	c := f.startedCase(t, 1)
	if _, err := f.submit(c.ID, 1, domain.SideA); err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = f.orch.RetryRoundVerdict(context.Background(), c.ID, owner)
	assertCode(t, err, apperrors.CodeRoundNotReady)
	if got := apperrors.GetMetadata(err)["Side"]; got != "B" {
		t.Fatalf("missing side = %q, want B", got)
	}

	if _, err := f.submit(c.ID, 1, domain.SideB); err != nil {
		t.Fatalf("submit: %v", err)
	}
	_, err = f.orch.RetryRoundVerdict(context.Background(), c.ID, owner)
	assertCode(t, err, apperrors.CodeAlreadyGenerated)
}

func TestRoundContextCarriesHistory(t *testing.T) {
	f := newFixture(t)
	c := f.startedCase(t, 2)
	for round := 1; round <= 2; round++ {
		for _, side := range domain.Sides {
			if _, err := f.submit(c.ID, round, side); err != nil {
				t.Fatalf("submit round %d side %s: %v", round, side, err)
			}
		}
	}

	f.gateway.mu.Lock()
	defer f.gateway.mu.Unlock()
	last := f.gateway.calls[len(f.gateway.calls)-1]
	if last.Round != 2 {
		t.Fatalf("round = %d, want 2", last.Round)
	}
	if last.PreviousVerdict == nil || last.PreviousVerdict.Round != 1 {
		t.Fatalf("previous verdict = %+v", last.PreviousVerdict)
	}
	if len(last.History) != 2 || last.History[0].Round != 1 {
		t.Fatalf("history = %+v", last.History)
	}
	if !last.Arguments.Complete() {
		t.Fatal("round arguments should be complete")
	}
	if len(last.SideA) != 1 || len(last.SideB) != 1 {
		t.Fatalf("documents = %d/%d", len(last.SideA), len(last.SideB))
	}
}

func TestConcurrentBothSidesProduceOneVerdict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.startedCase(t, 1)

	var wg sync.WaitGroup
	outcomes := make([]Outcome, 2)
	errs := make([]error, 2)
	for i, side := range domain.Sides {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i], errs[i] = f.submit(c.ID, 1, side)
		}()
	}
	wg.Wait()

	generated, waiting := 0, 0
	for i := range outcomes {
		if errs[i] != nil {
			t.Fatalf("submit %d: %v", i, errs[i])
		}
		switch outcomes[i].Kind {
		case OutcomeVerdictGenerated:
			generated++
		case OutcomeWaitingForOtherSide:
			waiting++
		}
	}
	if generated != 1 || waiting != 1 {
		t.Fatalf("generated/waiting = %d/%d, want 1/1", generated, waiting)
	}
	verdicts, err := f.store.ListVerdicts(ctx, c.ID)
	if err != nil {
		t.Fatalf("list verdicts: %v", err)
	}
	if len(verdicts) != 2 {
		t.Fatalf("verdicts = %d, want 2", len(verdicts))
	}
	if got := f.getCase(t, c.ID).CurrentRound; got != 1 {
		t.Fatalf("current round = %d, want 1", got)
	}
}

func TestConcurrentSameSideSubmissions(t *testing.T) {
	f := newFixture(t)
	c := f.startedCase(t, 2)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.submit(c.ID, 1, domain.SideA)
		}()
	}
	wg.Wait()

	ok, dup := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case apperrors.IsCode(err, apperrors.CodeDuplicateSubmission):
			dup++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || dup != 1 {
		t.Fatalf("ok/duplicate = %d/%d, want 1/1", ok, dup)
	}
}

func TestCommitRaceReportsAlreadyGenerated(t *testing.T) {
	f := newFixture(t)
	c := f.readyCase(t, 1)
	// Another writer commits round 0 while this process adjudicates.
	f.orch.gateway = adjudication.GatewayFunc(func(ctx context.Context, input adjudication.Context) (adjudication.Result, error) {
		result, err := f.gateway.Adjudicate(ctx, input)
		if err != nil {
			return result, err
		}
		if _, err := f.store.CommitVerdict(ctx, storage.CommitVerdictInput{
			Verdict: domain.Verdict{
				ID:        "rival-verdict",
				CaseID:    c.ID,
				Round:     0,
				Payload:   result.Payload,
				Model:     "rival",
				CreatedAt: testNow,
			},
			ExpectedRound:  0,
			ExpectedStatus: domain.StatusReady,
			NextStatus:     domain.StatusInProgress,
			UpdatedAt:      testNow,
		}); err != nil {
			t.Errorf("rival commit: %v", err)
		}
		return result, nil
	})

	_, err := f.orch.GenerateInitialVerdict(context.Background(), c.ID, owner)
	assertCode(t, err, apperrors.CodeAlreadyGenerated)
	v, err := f.store.GetVerdict(context.Background(), c.ID, 0)
	if err != nil {
		t.Fatalf("get verdict: %v", err)
	}
	if v.ID != "rival-verdict" {
		t.Fatalf("verdict id = %q, losing writer persisted its verdict", v.ID)
	}
}

func TestEvidenceMovesCaseBetweenDraftAndReady(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.createCase(t, 1)
	f.addDocument(t, c.ID, domain.SideA)
	docB := f.addDocument(t, c.ID, domain.SideB)
	if got := f.getCase(t, c.ID).Status; got != domain.StatusReady {
		t.Fatalf("status = %s, want ready", got)
	}
	if err := f.orch.RemoveDocument(ctx, c.ID, docB.ID, owner); err != nil {
		t.Fatalf("remove document: %v", err)
	}
	if got := f.getCase(t, c.ID).Status; got != domain.StatusDraft {
		t.Fatalf("status = %s, want draft", got)
	}
	assertCode(t, f.orch.RemoveDocument(ctx, c.ID, docB.ID, owner), apperrors.CodeNotFound)

	docs, err := f.orch.ListDocuments(ctx, c.ID, owner, "")
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 1 || docs[0].Side != domain.SideA {
		t.Fatalf("documents = %+v", docs)
	}
}

func TestAddDocumentRejectsBadUploads(t *testing.T) {
	f := newFixture(t)
	c := f.createCase(t, 1)
	_, err := f.orch.AddDocument(context.Background(), AddDocumentInput{CaseID: c.ID, UserID: owner, Side: domain.SideA, FileName: "photo.png", Data: []byte("x")})
	assertCode(t, err, apperrors.CodeDocumentUnsupportedType)
	_, err = f.orch.AddDocument(context.Background(), AddDocumentInput{CaseID: c.ID, UserID: owner, Side: "", FileName: "a.txt", Data: []byte("x")})
	assertCode(t, err, apperrors.CodeInvalidSide)
}

func TestOwnershipIsEnforced(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.startedCase(t, 1)

	_, err := f.orch.GetCase(ctx, c.ID, "intruder")
	assertCode(t, err, apperrors.CodePermissionDenied)
	_, err = f.orch.SubmitArgument(ctx, SubmitArgumentInput{CaseID: c.ID, UserID: "intruder", Round: 1, Side: domain.SideA, Text: "x"})
	assertCode(t, err, apperrors.CodePermissionDenied)
	_, err = f.orch.GetCase(ctx, "missing", owner)
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestGetCaseAndVerdictReads(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.startedCase(t, 1)

	detail, err := f.orch.GetCase(ctx, c.ID, owner)
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if detail.Counts.SideADocuments != 1 || detail.Counts.Verdicts != 1 {
		t.Fatalf("counts = %+v", detail.Counts)
	}
	latest, err := f.orch.GetVerdict(ctx, c.ID, owner, -1)
	if err != nil {
		t.Fatalf("latest verdict: %v", err)
	}
	if latest.Round != 0 || latest.Model != "fake-judge" || latest.TokensUsed != 42 {
		t.Fatalf("latest = %+v", latest)
	}
	_, err = f.orch.GetVerdict(ctx, c.ID, owner, 1)
	assertCode(t, err, apperrors.CodeNotFound)

	page, err := f.orch.ListCases(ctx, owner, 10, "")
	if err != nil {
		t.Fatalf("list cases: %v", err)
	}
	if len(page.Cases) != 1 {
		t.Fatalf("cases = %d, want 1", len(page.Cases))
	}
}

func TestCreateCaseRetriesCaseNumberCollision(t *testing.T) {
	f := newFixture(t)
	codes := []string{"AAAAAA", "AAAAAA", "BBBBBB"}
	f.orch.codeGen = func() (string, error) {
		code := codes[0]
		codes = codes[1:]
		return code, nil
	}
	first := f.createCase(t, 1)
	second := f.createCase(t, 1)
	if first.CaseNumber != "CAS-2026-AAAAAA" || second.CaseNumber != "CAS-2026-BBBBBB" {
		t.Fatalf("case numbers = %s, %s", first.CaseNumber, second.CaseNumber)
	}
}

func TestDeleteCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.startedCase(t, 1)
	if err := f.orch.DeleteCase(ctx, c.ID, owner); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err := f.orch.GetCase(ctx, c.ID, owner)
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestRemoveDocumentAfterFinalizeIsLocked(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.finalizedCase(t)
	docs, err := f.orch.ListDocuments(ctx, c.ID, owner, "")
	if err != nil {
		t.Fatalf("list documents: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("documents = %d, want 2", len(docs))
	}

	assertCode(t, f.orch.RemoveDocument(ctx, c.ID, docs[0].ID, owner), apperrors.CodeCaseLocked)
	if _, err := f.store.GetDocument(ctx, c.ID, docs[0].ID); err != nil {
		t.Fatalf("document removed from finalized case: %v", err)
	}
	if got := f.getCase(t, c.ID).Status; got != domain.StatusFinalized {
		t.Fatalf("status = %s, want finalized", got)
	}
}

func TestUpdateCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.startedCase(t, 2)

	title, kind := "Acme v. Widget (amended)", "corporate"
	updated, err := f.orch.UpdateCase(ctx, c.ID, owner, domain.UpdateCaseInput{Title: &title, CaseType: &kind})
	if err != nil {
		t.Fatalf("update case: %v", err)
	}
	if updated.Title != title || updated.CaseType != domain.CaseTypeCorporate || updated.Jurisdiction != "Delaware" {
		t.Fatalf("updated = %+v", updated)
	}
	stored := f.getCase(t, c.ID)
	if stored.Title != title || stored.Status != domain.StatusInProgress || stored.CurrentRound != 0 || stored.MaxRounds != 2 {
		t.Fatalf("stored = %+v", stored)
	}

	blank := " "
	_, err = f.orch.UpdateCase(ctx, c.ID, owner, domain.UpdateCaseInput{Jurisdiction: &blank})
	assertCode(t, err, apperrors.CodeCaseJurisdictionEmpty)
	_, err = f.orch.UpdateCase(ctx, c.ID, owner, domain.UpdateCaseInput{})
	assertCode(t, err, apperrors.CodeCaseUpdateEmpty)
	_, err = f.orch.UpdateCase(ctx, c.ID, "intruder", domain.UpdateCaseInput{Title: &title})
	assertCode(t, err, apperrors.CodePermissionDenied)
	_, err = f.orch.UpdateCase(ctx, "missing", owner, domain.UpdateCaseInput{Title: &title})
	assertCode(t, err, apperrors.CodeNotFound)
}

func TestUpdateCaseAfterFinalizeIsLocked(t *testing.T) {
	f := newFixture(t)
	c := f.finalizedCase(t)
	title := "Too late"
	_, err := f.orch.UpdateCase(context.Background(), c.ID, owner, domain.UpdateCaseInput{Title: &title})
	assertCode(t, err, apperrors.CodeCaseLocked)
	if got := f.getCase(t, c.ID).Title; got != c.Title {
		t.Fatalf("title = %q, want %q", got, c.Title)
	}
}

func TestGetDocument(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.createCase(t, 1)
	doc := f.addDocument(t, c.ID, domain.SideA)

	got, err := f.orch.GetDocument(ctx, c.ID, doc.ID, owner)
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if got.ID != doc.ID || got.ExtractedText != "Evidence for side A" || got.Side != domain.SideA {
		t.Fatalf("document = %+v", got)
	}

	_, err = f.orch.GetDocument(ctx, c.ID, doc.ID, "intruder")
	assertCode(t, err, apperrors.CodePermissionDenied)
	_, err = f.orch.GetDocument(ctx, c.ID, "missing", owner)
	assertCode(t, err, apperrors.CodeNotFound)
	_, err = f.orch.GetDocument(ctx, c.ID, "", owner)
	assertCode(t, err, apperrors.CodeDocumentIDEmpty)
}

func TestCaseLockWaitReportsRequestEnd(t *testing.T) {
	f := newFixture(t)
	c := f.startedCase(t, 1)
	unlock, err := f.orch.locks.Lock(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("hold lock: %v", err)
	}
	defer unlock()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.orch.SubmitArgument(canceled, SubmitArgumentInput{CaseID: c.ID, UserID: owner, Round: 1, Side: domain.SideA, Text: "x"})
	assertCode(t, err, apperrors.CodeRequestCanceled)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled cause", err)
	}

	expired, cancelExpired := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancelExpired()
	assertCode(t, f.orch.RemoveDocument(expired, c.ID, "doc", owner), apperrors.CodeRequestTimeout)
	if f.gateway.callCount() != 1 {
		t.Fatalf("gateway calls = %d, want 1", f.gateway.callCount())
	}
}
