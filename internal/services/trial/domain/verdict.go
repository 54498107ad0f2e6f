package domain

import (
	"fmt"
	"strings"
	"time"
)

// Leader is the side currently favored by a verdict.
type Leader string

const (
	LeaderA         Leader = "A"
	LeaderB         Leader = "B"
	LeaderUndecided Leader = "undecided"
)

// ParseLeader normalizes a leader label.
func ParseLeader(value string) (Leader, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "a", "side a", "side_a":
		return LeaderA, true
	case "b", "side b", "side_b":
		return LeaderB, true
	case "undecided", "tie", "none":
		return LeaderUndecided, true
	default:
		return "", false
	}
}

// Issue is one legal question the judge ruled on.
type Issue struct {
	Issue     string `json:"issue"`
	Finding   string `json:"finding"`
	Reasoning string `json:"reasoning"`
}

// VerdictPayload is the structured ruling returned by adjudication.
type VerdictPayload struct {
	Summary       string   `json:"summary"`
	Leader        Leader   `json:"leader"`
	Confidence    float64  `json:"confidence"`
	Issues        []Issue  `json:"issues"`
	FinalDecision string   `json:"final_decision"`
	CitedEvidence []string `json:"cited_evidence"`
}

// Validate checks the payload invariants.
func (p VerdictPayload) Validate() error {
	if strings.TrimSpace(p.Summary) == "" {
		return fmt.Errorf("%w: summary is empty", ErrInvalidVerdict)
	}
	switch p.Leader {
	case LeaderA, LeaderB, LeaderUndecided:
	default:
		return fmt.Errorf("%w: leader %q", ErrInvalidVerdict, p.Leader)
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("%w: confidence %v outside [0,1]", ErrInvalidVerdict, p.Confidence)
	}
	return nil
}

// Verdict is the immutable ruling for one (case, round).
type Verdict struct {
	ID         string
	CaseID     string
	Round      int
	Payload    VerdictPayload
	Model      string
	TokensUsed int
	CreatedAt  time.Time
}

// IsInitial reports whether this is the round-0 verdict.
func (v Verdict) IsInitial() bool {
	return v.Round == 0
}
