package sqlite

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/storage"
)

var testNow = time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "trial.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func seedCase(t *testing.T, store *Store, id, owner string, maxRounds int) domain.Case {
	t.Helper()
	c := domain.Case{
		ID:           id,
		CaseNumber:   "CAS-2026-" + id,
		OwnerUserID:  owner,
		Title:        "Case " + id,
		CaseType:     domain.CaseTypeCivil,
		Jurisdiction: "Ontario",
		Status:       domain.StatusDraft,
		MaxRounds:    maxRounds,
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	if err := store.CreateCase(context.Background(), c); err != nil {
		t.Fatalf("create case: %v", err)
	}
	return c
}

func seedDocument(t *testing.T, store *Store, caseID, id string, side domain.Side) {
	t.Helper()
	err := store.PutDocument(context.Background(), domain.Document{
		ID:            id,
		CaseID:        caseID,
		Side:          side,
		Title:         "Doc " + id,
		FileName:      id + ".txt",
		FileType:      domain.FileTypeText,
		ExtractedText: "evidence text",
		PageCount:     1,
		WordCount:     2,
		UploadedBy:    "user-1",
		UploadedAt:    testNow,
	})
	if err != nil {
		t.Fatalf("put document: %v", err)
	}
}

func verdictFor(caseID string, round int) domain.Verdict {
	return domain.Verdict{
		ID:     fmt.Sprintf("%s-v%d", caseID, round),
		CaseID: caseID,
		Round:  round,
		Payload: domain.VerdictPayload{
			Summary:       "summary",
			Leader:        domain.LeaderA,
			Confidence:    0.6,
			Issues:        []domain.Issue{{Issue: "breach", Finding: "yes", Reasoning: "signed"}},
			FinalDecision: "A prevails",
			CitedEvidence: []string{"Contract"},
		},
		Model:      "gpt-4o-mini",
		TokensUsed: 120,
		CreatedAt:  testNow,
	}
}

func startCase(t *testing.T, store *Store, caseID string) {
	t.Helper()
	ctx := context.Background()
	seedDocument(t, store, caseID, caseID+"-a", domain.SideA)
	seedDocument(t, store, caseID, caseID+"-b", domain.SideB)
	if _, err := store.CommitVerdict(ctx, storage.CommitVerdictInput{
		Verdict:        verdictFor(caseID, 0),
		ExpectedRound:  0,
		ExpectedStatus: domain.StatusReady,
		NextStatus:     domain.StatusInProgress,
		UpdatedAt:      testNow,
	}); err != nil {
		t.Fatalf("commit initial verdict: %v", err)
	}
}

func TestCreateAndGetCase(t *testing.T) {
	store := openTestStore(t)
	want := seedCase(t, store, "c1", "user-1", 3)

	got, err := store.GetCase(context.Background(), "c1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if got.ID != want.ID || got.Title != want.Title || got.MaxRounds != 3 || got.Status != domain.StatusDraft {
		t.Fatalf("case = %+v", got)
	}
	if !got.CreatedAt.Equal(testNow) || got.FinalizedAt != nil {
		t.Fatalf("timestamps = %v %v", got.CreatedAt, got.FinalizedAt)
	}

	if err := store.CreateCase(context.Background(), want); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate create err = %v, want already exists", err)
	}
	if _, err := store.GetCase(context.Background(), "missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing err = %v, want not found", err)
	}
}

func TestListCasesByOwnerPaginates(t *testing.T) {
	store := openTestStore(t)
	for _, id := range []string{"c1", "c2", "c3"} {
		seedCase(t, store, id, "user-1", 5)
	}
	seedCase(t, store, "c4", "user-2", 5)

	first, err := store.ListCasesByOwner(context.Background(), "user-1", 2, "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(first.Cases) != 2 || first.NextPageToken != "c2" {
		t.Fatalf("first page = %d cases, token %q", len(first.Cases), first.NextPageToken)
	}
	second, err := store.ListCasesByOwner(context.Background(), "user-1", 2, first.NextPageToken)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(second.Cases) != 1 || second.Cases[0].ID != "c3" || second.NextPageToken != "" {
		t.Fatalf("second page = %+v", second)
	}
}

func TestDocumentWritesSyncEvidenceStatus(t *testing.T) {
	store := openTestStore(t)
	seedCase(t, store, "c1", "user-1", 2)
	ctx := context.Background()

	assertStatus := func(want domain.Status) {
		t.Helper()
		c, err := store.GetCase(ctx, "c1")
		if err != nil {
			t.Fatalf("get case: %v", err)
		}
		if c.Status != want {
			t.Fatalf("status = %s, want %s", c.Status, want)
		}
	}

	seedDocument(t, store, "c1", "d1", domain.SideA)
	assertStatus(domain.StatusDraft)
	seedDocument(t, store, "c1", "d2", domain.SideB)
	assertStatus(domain.StatusReady)

	later := testNow.Add(time.Minute)
	if err := store.DeleteDocument(ctx, "c1", "d2", later); err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertStatus(domain.StatusDraft)
	c, err := store.GetCase(ctx, "c1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if !c.UpdatedAt.Equal(later) {
		t.Fatalf("updated at = %v, want %v", c.UpdatedAt, later)
	}

	// A started case keeps its status when evidence changes.
	startCase(t, store, "c1")
	if err := store.DeleteDocument(ctx, "c1", "c1-b", later); err != nil {
		t.Fatalf("delete after start: %v", err)
	}
	assertStatus(domain.StatusInProgress)
}

func TestRejectedDocumentWriteLeavesStatus(t *testing.T) {
	store := openTestStore(t)
	seedCase(t, store, "c1", "user-1", 2)
	seedDocument(t, store, "c1", "d1", domain.SideA)
	ctx := context.Background()

	dup := domain.Document{ID: "d1", CaseID: "c1", Side: domain.SideB, Title: "dup", ExtractedText: "x", UploadedAt: testNow}
	if err := store.PutDocument(ctx, dup); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate err = %v, want already exists", err)
	}
	c, err := store.GetCase(ctx, "c1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if c.Status != domain.StatusDraft {
		t.Fatalf("status = %s, want draft", c.Status)
	}
	missing := domain.Document{ID: "d2", CaseID: "nope", Side: domain.SideA, Title: "x", ExtractedText: "x", UploadedAt: testNow}
	if err := store.PutDocument(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing case err = %v, want not found", err)
	}
}

func TestUpdateCaseDetails(t *testing.T) {
	store := openTestStore(t)
	c := seedCase(t, store, "c1", "user-1", 1)
	ctx := context.Background()

	c.Title = "Renamed"
	c.Description = "facts"
	c.CaseType = domain.CaseTypeCorporate
	c.Jurisdiction = "Quebec"
	c.Status = domain.StatusFinalized
	c.UpdatedAt = testNow.Add(time.Hour)
	if err := store.UpdateCaseDetails(ctx, c); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, err := store.GetCase(ctx, "c1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if got.Title != "Renamed" || got.Description != "facts" || got.CaseType != domain.CaseTypeCorporate || got.Jurisdiction != "Quebec" {
		t.Fatalf("case = %+v", got)
	}
	if got.Status != domain.StatusDraft || !got.UpdatedAt.Equal(c.UpdatedAt) {
		t.Fatalf("status/updated = %s %v", got.Status, got.UpdatedAt)
	}

	missing := c
	missing.ID = "nope"
	if err := store.UpdateCaseDetails(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("missing err = %v, want not found", err)
	}
}

func TestDocumentsAndCounts(t *testing.T) {
	store := openTestStore(t)
	seedCase(t, store, "c1", "user-1", 2)
	seedDocument(t, store, "c1", "d1", domain.SideA)
	seedDocument(t, store, "c1", "d2", domain.SideA)
	seedDocument(t, store, "c1", "d3", domain.SideB)
	ctx := context.Background()

	sideA, err := store.ListDocuments(ctx, "c1", domain.SideA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sideA) != 2 || sideA[0].ID != "d1" {
		t.Fatalf("side A docs = %+v", sideA)
	}
	all, err := store.ListDocuments(ctx, "c1", "")
	if err != nil || len(all) != 3 {
		t.Fatalf("all docs = %d, %v", len(all), err)
	}

	counts, err := store.GetCaseCounts(ctx, "c1")
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.SideADocuments != 2 || counts.SideBDocuments != 1 || counts.Arguments != 0 || counts.Verdicts != 0 {
		t.Fatalf("counts = %+v", counts)
	}

	if err := store.DeleteDocument(ctx, "c1", "d2", testNow); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteDocument(ctx, "c1", "d2", testNow); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("second delete err = %v, want not found", err)
	}
	if _, err := store.GetDocument(ctx, "c1", "d3"); err != nil {
		t.Fatalf("get document: %v", err)
	}
}

func TestAppendArgumentGuardsOpenRound(t *testing.T) {
	store := openTestStore(t)
	seedCase(t, store, "c1", "user-1", 2)
	ctx := context.Background()

	arg := domain.Argument{ID: "a1", CaseID: "c1", Round: 1, Side: domain.SideA, Text: "argue", SubmittedBy: "user-1", SubmittedAt: testNow}
	if err := store.AppendArgument(ctx, arg); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("append before start err = %v, want conflict", err)
	}

	startCase(t, store, "c1")
	if err := store.AppendArgument(ctx, arg); err != nil {
		t.Fatalf("append: %v", err)
	}
	dup := arg
	dup.ID = "a2"
	if err := store.AppendArgument(ctx, dup); !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("duplicate err = %v, want already exists", err)
	}
	skip := domain.Argument{ID: "a3", CaseID: "c1", Round: 2, Side: domain.SideB, Text: "early", SubmittedBy: "user-1", SubmittedAt: testNow}
	if err := store.AppendArgument(ctx, skip); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("future round err = %v, want conflict", err)
	}

	round, err := store.ListRoundArguments(ctx, "c1", 1)
	if err != nil {
		t.Fatalf("round args: %v", err)
	}
	if side, ok := round.Missing(); !ok || side != domain.SideB {
		t.Fatalf("missing = %q, %v", side, ok)
	}

	if _, err := store.sqlDB.ExecContext(ctx, `UPDATE arguments SET text = 'edited' WHERE id = 'a1'`); err == nil {
		t.Fatal("expected arguments to be append-only")
	}
}

func TestCommitVerdictAtMostOncePerRound(t *testing.T) {
	store := openTestStore(t)
	seedCase(t, store, "c1", "user-1", 1)
	startCase(t, store, "c1")
	ctx := context.Background()

	updated, err := store.GetCase(ctx, "c1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if updated.Status != domain.StatusInProgress || updated.CurrentRound != 0 {
		t.Fatalf("after initial verdict = %+v", updated)
	}

	input := storage.CommitVerdictInput{
		Verdict:        verdictFor("c1", 1),
		ExpectedRound:  0,
		ExpectedStatus: domain.StatusInProgress,
		NextStatus:     domain.StatusInProgress,
		UpdatedAt:      testNow,
	}
	advanced, err := store.CommitVerdict(ctx, input)
	if err != nil {
		t.Fatalf("commit round 1: %v", err)
	}
	if advanced.CurrentRound != 1 {
		t.Fatalf("current round = %d, want 1", advanced.CurrentRound)
	}

	input.Verdict.ID = "other"
	if _, err := store.CommitVerdict(ctx, input); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("replayed commit err = %v, want conflict", err)
	}
	verdicts, err := store.ListVerdicts(ctx, "c1")
	if err != nil {
		t.Fatalf("list verdicts: %v", err)
	}
	if len(verdicts) != 2 || verdicts[1].Round != 1 {
		t.Fatalf("verdicts = %+v", verdicts)
	}
	if verdicts[1].Payload.Issues[0].Issue != "breach" || verdicts[1].TokensUsed != 120 {
		t.Fatalf("payload = %+v", verdicts[1].Payload)
	}
	latest, err := store.LatestVerdict(ctx, "c1")
	if err != nil || latest.Round != 1 {
		t.Fatalf("latest = %+v, %v", latest, err)
	}
}

func TestCommitVerdictRollsBackOnDuplicateRound(t *testing.T) {
	store := openTestStore(t)
	seedCase(t, store, "c1", "user-1", 2)
	startCase(t, store, "c1")
	ctx := context.Background()

	// Force a stale round-0 row conflict while the case CAS still matches.
	_, err := store.CommitVerdict(ctx, storage.CommitVerdictInput{
		Verdict:        verdictFor("c1", 0),
		ExpectedRound:  0,
		ExpectedStatus: domain.StatusInProgress,
		NextStatus:     domain.StatusInProgress,
		UpdatedAt:      testNow.Add(time.Minute),
	})
	if !errors.Is(err, storage.ErrAlreadyExists) {
		t.Fatalf("err = %v, want already exists", err)
	}
	c, err := store.GetCase(ctx, "c1")
	if err != nil {
		t.Fatalf("get case: %v", err)
	}
	if !c.UpdatedAt.Equal(testNow) {
		t.Fatalf("updated_at = %v, want rollback to %v", c.UpdatedAt, testNow)
	}
}

func TestFinalizeCaseLocksEvidence(t *testing.T) {
	store := openTestStore(t)
	seedCase(t, store, "c1", "user-1", 1)
	seedDocument(t, store, "c1", "d1", domain.SideA)
	startCase(t, store, "c1")
	ctx := context.Background()

	if _, err := store.FinalizeCase(ctx, "c1", testNow); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("early finalize err = %v, want conflict", err)
	}
	if _, err := store.CommitVerdict(ctx, storage.CommitVerdictInput{
		Verdict:        verdictFor("c1", 1),
		ExpectedRound:  0,
		ExpectedStatus: domain.StatusInProgress,
		NextStatus:     domain.StatusInProgress,
		UpdatedAt:      testNow,
	}); err != nil {
		t.Fatalf("commit: %v", err)
	}

	final, err := store.FinalizeCase(ctx, "c1", testNow.Add(time.Hour))
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if final.Status != domain.StatusFinalized || final.FinalizedAt == nil || !final.FinalizedAt.Equal(testNow.Add(time.Hour)) {
		t.Fatalf("finalized case = %+v", final)
	}
	if _, err := store.FinalizeCase(ctx, "c1", testNow); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("second finalize err = %v, want conflict", err)
	}
	if err := store.DeleteDocument(ctx, "c1", "d1", testNow); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("delete locked document err = %v, want conflict", err)
	}
	err = store.PutDocument(ctx, domain.Document{ID: "d9", CaseID: "c1", Side: domain.SideB, Title: "late", ExtractedText: "x", UploadedAt: testNow})
	if !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("late upload err = %v, want conflict", err)
	}
	if err := store.UpdateCaseDetails(ctx, final); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("update finalized err = %v, want conflict", err)
	}
	if err := store.DeleteCase(ctx, "c1"); !errors.Is(err, storage.ErrConflict) {
		t.Fatalf("delete finalized err = %v, want conflict", err)
	}
}

func TestDeleteCaseCascades(t *testing.T) {
	store := openTestStore(t)
	seedCase(t, store, "c1", "user-1", 2)
	seedDocument(t, store, "c1", "d1", domain.SideA)
	startCase(t, store, "c1")
	ctx := context.Background()

	if err := store.DeleteCase(ctx, "c1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetCase(ctx, "c1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("get deleted err = %v", err)
	}
	docs, err := store.ListDocuments(ctx, "c1", "")
	if err != nil || len(docs) != 0 {
		t.Fatalf("docs after delete = %d, %v", len(docs), err)
	}
	verdicts, err := store.ListVerdicts(ctx, "c1")
	if err != nil || len(verdicts) != 0 {
		t.Fatalf("verdicts after delete = %d, %v", len(verdicts), err)
	}
}

func TestStoreRejectsCanceledContext(t *testing.T) {
	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.GetCase(ctx, "c1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want canceled", err)
	}
	var nilStore *Store
	if _, err := nilStore.GetCase(context.Background(), "c1"); err == nil {
		t.Fatal("expected unconfigured store error")
	}
}
