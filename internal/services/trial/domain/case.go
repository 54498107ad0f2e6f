package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/louisbranch/mocktrial/internal/platform/errors"
)

// MaxRoundsLimit is the highest number of argument rounds a case may have.
const MaxRoundsLimit = 5

// CaseType classifies the dispute.
type CaseType string

const (
	CaseTypeCivil          CaseType = "civil"
	CaseTypeCriminal       CaseType = "criminal"
	CaseTypeCorporate      CaseType = "corporate"
	CaseTypeConstitutional CaseType = "constitutional"
	CaseTypeFamily         CaseType = "family"
)

// ParseCaseType normalizes a case type label.
func ParseCaseType(value string) (CaseType, bool) {
	switch CaseType(strings.ToLower(strings.TrimSpace(value))) {
	case CaseTypeCivil:
		return CaseTypeCivil, true
	case CaseTypeCriminal:
		return CaseTypeCriminal, true
	case CaseTypeCorporate:
		return CaseTypeCorporate, true
	case CaseTypeConstitutional:
		return CaseTypeConstitutional, true
	case CaseTypeFamily:
		return CaseTypeFamily, true
	default:
		return "", false
	}
}

// Case is one adversarial dispute between Side A and Side B.
type Case struct {
	ID           string
	CaseNumber   string
	OwnerUserID  string
	Title        string
	Description  string
	CaseType     CaseType
	Jurisdiction string
	Status       Status
	// CurrentRound is the highest round with a verdict; 0 before and after
	// the initial verdict.
	CurrentRound int
	MaxRounds    int
	CreatedAt    time.Time
	UpdatedAt    time.Time
	FinalizedAt  *time.Time
}

// CreateCaseInput describes the metadata needed to open a case.
type CreateCaseInput struct {
	OwnerUserID  string
	Title        string
	Description  string
	CaseType     string
	Jurisdiction string
	// MaxRounds of zero selects the default.
	MaxRounds int
}

// NormalizeCreateCaseInput trims input and validates case metadata.
func NormalizeCreateCaseInput(input CreateCaseInput, defaultMaxRounds int) (CreateCaseInput, error) {
	input.OwnerUserID = strings.TrimSpace(input.OwnerUserID)
	input.Title = strings.TrimSpace(input.Title)
	input.Description = strings.TrimSpace(input.Description)
	input.Jurisdiction = strings.TrimSpace(input.Jurisdiction)

	if input.OwnerUserID == "" {
		return CreateCaseInput{}, ErrMissingOwner
	}
	if input.Title == "" {
		return CreateCaseInput{}, ErrEmptyTitle
	}
	caseType, ok := ParseCaseType(input.CaseType)
	if !ok {
		return CreateCaseInput{}, apperrors.WithMetadata(
			apperrors.CodeCaseInvalidType,
			fmt.Sprintf("case type %q is not supported", input.CaseType),
			map[string]string{"CaseType": input.CaseType},
		)
	}
	input.CaseType = string(caseType)
	if input.Jurisdiction == "" {
		return CreateCaseInput{}, ErrEmptyJurisdiction
	}
	if input.MaxRounds == 0 {
		input.MaxRounds = defaultMaxRounds
	}
	if input.MaxRounds < 1 || input.MaxRounds > MaxRoundsLimit {
		return CreateCaseInput{}, apperrors.WithMetadata(
			apperrors.CodeCaseInvalidMaxRounds,
			fmt.Sprintf("max rounds %d outside 1..%d", input.MaxRounds, MaxRoundsLimit),
			map[string]string{"Limit": strconv.Itoa(MaxRoundsLimit)},
		)
	}
	return input, nil
}

// UpdateCaseInput edits case metadata; nil fields keep their value.
type UpdateCaseInput struct {
	Title        *string
	Description  *string
	CaseType     *string
	Jurisdiction *string
}

// Empty reports whether the update sets no field.
func (input UpdateCaseInput) Empty() bool {
	return input.Title == nil && input.Description == nil && input.CaseType == nil && input.Jurisdiction == nil
}

// Apply validates the update against c's current metadata and returns the
// edited case. Status, rounds and ownership never change.
func (input UpdateCaseInput) Apply(c Case) (Case, error) {
	if input.Empty() {
		return Case{}, ErrEmptyCaseUpdate
	}
	merged := CreateCaseInput{
		OwnerUserID:  c.OwnerUserID,
		Title:        c.Title,
		Description:  c.Description,
		CaseType:     string(c.CaseType),
		Jurisdiction: c.Jurisdiction,
		MaxRounds:    c.MaxRounds,
	}
	if input.Title != nil {
		merged.Title = *input.Title
	}
	if input.Description != nil {
		merged.Description = *input.Description
	}
	if input.CaseType != nil {
		merged.CaseType = *input.CaseType
	}
	if input.Jurisdiction != nil {
		merged.Jurisdiction = *input.Jurisdiction
	}
	merged, err := NormalizeCreateCaseInput(merged, c.MaxRounds)
	if err != nil {
		return Case{}, err
	}
	c.Title = merged.Title
	c.Description = merged.Description
	c.CaseType = CaseType(merged.CaseType)
	c.Jurisdiction = merged.Jurisdiction
	return c, nil
}

// NewCase builds a draft case from normalized input.
func NewCase(input CreateCaseInput, id, caseNumber string, now time.Time) Case {
	now = now.UTC()
	return Case{
		ID:           id,
		CaseNumber:   caseNumber,
		OwnerUserID:  input.OwnerUserID,
		Title:        input.Title,
		Description:  input.Description,
		CaseType:     CaseType(input.CaseType),
		Jurisdiction: input.Jurisdiction,
		Status:       StatusDraft,
		CurrentRound: 0,
		MaxRounds:    input.MaxRounds,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CaseNumber formats the human-readable case reference.
func CaseNumber(now time.Time, code string) string {
	return fmt.Sprintf("CAS-%d-%s", now.UTC().Year(), strings.ToUpper(code))
}

// NextRound is the round that accepts arguments, or 0 when none does.
func (c Case) NextRound() int {
	if c.Status != StatusInProgress || c.CurrentRound >= c.MaxRounds {
		return 0
	}
	return c.CurrentRound + 1
}

// RoundsComplete reports whether every argument round has a verdict.
func (c Case) RoundsComplete() bool {
	return c.Status.Started() && c.CurrentRound >= c.MaxRounds
}

// OwnedBy reports whether userID created the case.
func (c Case) OwnedBy(userID string) bool {
	return userID != "" && c.OwnerUserID == userID
}

// CaseCounts summarizes the ledger sizes of a case.
type CaseCounts struct {
	SideADocuments int
	SideBDocuments int
	Arguments      int
	Verdicts       int
}
