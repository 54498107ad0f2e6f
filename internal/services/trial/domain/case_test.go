package domain

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
)

func TestNormalizeCreateCaseInput(t *testing.T) {
	input := CreateCaseInput{
		OwnerUserID:  " user-1 ",
		Title:        "  Smith v. Jones ",
		CaseType:     "Civil",
		Jurisdiction: " California ",
	}
	got, err := NormalizeCreateCaseInput(input, 5)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if got.Title != "Smith v. Jones" || got.CaseType != "civil" || got.Jurisdiction != "California" {
		t.Fatalf("normalized = %+v", got)
	}
	if got.MaxRounds != 5 {
		t.Fatalf("max rounds = %d, want default 5", got.MaxRounds)
	}
}

func TestNormalizeCreateCaseInputRejects(t *testing.T) {
	valid := CreateCaseInput{OwnerUserID: "u", Title: "T", CaseType: "civil", Jurisdiction: "J"}
	tests := []struct {
		name   string
		mutate func(*CreateCaseInput)
		code   apperrors.Code
	}{
		{"owner", func(in *CreateCaseInput) { in.OwnerUserID = "" }, apperrors.CodeCaseOwnerMissing},
		{"title", func(in *CreateCaseInput) { in.Title = "  " }, apperrors.CodeCaseTitleEmpty},
		{"type", func(in *CreateCaseInput) { in.CaseType = "maritime" }, apperrors.CodeCaseInvalidType},
		{"jurisdiction", func(in *CreateCaseInput) { in.Jurisdiction = "" }, apperrors.CodeCaseJurisdictionEmpty},
		{"rounds high", func(in *CreateCaseInput) { in.MaxRounds = 6 }, apperrors.CodeCaseInvalidMaxRounds},
		{"rounds negative", func(in *CreateCaseInput) { in.MaxRounds = -1 }, apperrors.CodeCaseInvalidMaxRounds},
	}
	for _, tt := range tests {
		input := valid
		tt.mutate(&input)
		_, err := NormalizeCreateCaseInput(input, 5)
		if got := apperrors.GetCode(err); got != tt.code {
			t.Fatalf("%s: code = %s, want %s", tt.name, got, tt.code)
		}
	}
}

func TestNewCaseStartsDraft(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.FixedZone("x", 3600))
	c := NewCase(CreateCaseInput{OwnerUserID: "u", Title: "T", CaseType: "civil", Jurisdiction: "J", MaxRounds: 3}, "c1", CaseNumber(now, "ab12cd"), now)
	if c.Status != StatusDraft || c.CurrentRound != 0 || c.MaxRounds != 3 {
		t.Fatalf("case = %+v", c)
	}
	if c.CaseNumber != "CAS-2026-AB12CD" {
		t.Fatalf("case number = %q", c.CaseNumber)
	}
	if c.CreatedAt.Location() != time.UTC {
		t.Fatal("expected UTC timestamps")
	}
}

func TestUpdateCaseInputApply(t *testing.T) {
	c := Case{ID: "c1", OwnerUserID: "u", Title: "Old", CaseType: CaseTypeCivil, Jurisdiction: "J", Status: StatusInProgress, CurrentRound: 1, MaxRounds: 3}
	title, kind := "  New title ", "Criminal"
	got, err := UpdateCaseInput{Title: &title, CaseType: &kind}.Apply(c)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if got.Title != "New title" || got.CaseType != CaseTypeCriminal || got.Jurisdiction != "J" {
		t.Fatalf("updated = %+v", got)
	}
	if got.Status != StatusInProgress || got.CurrentRound != 1 || got.MaxRounds != 3 || got.OwnerUserID != "u" {
		t.Fatalf("lifecycle fields changed: %+v", got)
	}

	blank, bad := " ", "maritime"
	tests := []struct {
		name  string
		input UpdateCaseInput
		code  apperrors.Code
	}{
		{"empty", UpdateCaseInput{}, apperrors.CodeCaseUpdateEmpty},
		{"title", UpdateCaseInput{Title: &blank}, apperrors.CodeCaseTitleEmpty},
		{"type", UpdateCaseInput{CaseType: &bad}, apperrors.CodeCaseInvalidType},
		{"jurisdiction", UpdateCaseInput{Jurisdiction: &blank}, apperrors.CodeCaseJurisdictionEmpty},
	}
	for _, tt := range tests {
		_, err := tt.input.Apply(c)
		if got := apperrors.GetCode(err); got != tt.code {
			t.Fatalf("%s: code = %s, want %s", tt.name, got, tt.code)
		}
	}
}

func TestCaseNextRound(t *testing.T) {
	tests := []struct {
		c    Case
		want int
	}{
		{Case{Status: StatusReady, MaxRounds: 3}, 0},
		{Case{Status: StatusInProgress, CurrentRound: 0, MaxRounds: 3}, 1},
		{Case{Status: StatusInProgress, CurrentRound: 2, MaxRounds: 3}, 3},
		{Case{Status: StatusInProgress, CurrentRound: 3, MaxRounds: 3}, 0},
		{Case{Status: StatusFinalized, CurrentRound: 3, MaxRounds: 3}, 0},
	}
	for _, tt := range tests {
		if got := tt.c.NextRound(); got != tt.want {
			t.Fatalf("NextRound(%+v) = %d, want %d", tt.c, got, tt.want)
		}
	}
	if !(Case{Status: StatusInProgress, CurrentRound: 1, MaxRounds: 1}).RoundsComplete() {
		t.Fatal("expected rounds complete")
	}
	if (Case{Status: StatusReady, MaxRounds: 0}).RoundsComplete() {
		t.Fatal("expected unstarted case to be incomplete")
	}
}

func TestStatusTransitions(t *testing.T) {
	allowed := [][2]Status{
		{StatusDraft, StatusReady},
		{StatusReady, StatusDraft},
		{StatusReady, StatusInProgress},
		{StatusInProgress, StatusFinalized},
	}
	for _, pair := range allowed {
		if !IsStatusTransitionAllowed(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s allowed", pair[0], pair[1])
		}
	}
	denied := [][2]Status{
		{StatusDraft, StatusInProgress},
		{StatusInProgress, StatusReady},
		{StatusFinalized, StatusInProgress},
		{StatusFinalized, StatusDraft},
	}
	for _, pair := range denied {
		if IsStatusTransitionAllowed(pair[0], pair[1]) {
			t.Fatalf("expected %s -> %s denied", pair[0], pair[1])
		}
	}
	if EvidenceStatus(1, 0) != StatusDraft || EvidenceStatus(1, 2) != StatusReady {
		t.Fatal("unexpected evidence status")
	}
}

func TestParseSide(t *testing.T) {
	for input, want := range map[string]Side{"a": SideA, " B ": SideB, "SIDE_A": SideA} {
		got, err := ParseSide(input)
		if err != nil || got != want {
			t.Fatalf("ParseSide(%q) = %q, %v", input, got, err)
		}
	}
	if _, err := ParseSide("C"); !errors.Is(err, ErrInvalidSide) {
		t.Fatalf("err = %v, want invalid side", err)
	}
	if SideA.Other() != SideB || SideB.Other() != SideA {
		t.Fatal("unexpected other side")
	}
}
