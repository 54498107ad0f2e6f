package domain

import (
	"time"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
)

// CaseResult is the MCP view of a case.
type CaseResult struct {
	ID             string `json:"id" jsonschema:"case identifier"`
	CaseNumber     string `json:"case_number" jsonschema:"human-readable case number"`
	Title          string `json:"title" jsonschema:"case title"`
	CaseType       string `json:"case_type" jsonschema:"case type"`
	Jurisdiction   string `json:"jurisdiction" jsonschema:"jurisdiction"`
	Status         string `json:"status" jsonschema:"case status (draft, ready, in_progress, finalized)"`
	CurrentRound   int    `json:"current_round" jsonschema:"highest round with a verdict"`
	MaxRounds      int    `json:"max_rounds" jsonschema:"number of argument rounds"`
	SideADocuments int    `json:"side_a_documents,omitempty" jsonschema:"evidence documents for side A"`
	SideBDocuments int    `json:"side_b_documents,omitempty" jsonschema:"evidence documents for side B"`
	CreatedAt      string `json:"created_at" jsonschema:"RFC3339 timestamp when the case was created"`
	FinalizedAt    string `json:"finalized_at,omitempty" jsonschema:"RFC3339 timestamp when the case was finalized"`
}

// IssueResult is one issue ruled on by a verdict.
type IssueResult struct {
	Issue     string `json:"issue" jsonschema:"question ruled on"`
	Finding   string `json:"finding" jsonschema:"finding"`
	Reasoning string `json:"reasoning" jsonschema:"reasoning"`
}

// VerdictResult is the MCP view of a verdict.
type VerdictResult struct {
	Round         int           `json:"round" jsonschema:"round number, 0 for the initial verdict"`
	Summary       string        `json:"summary" jsonschema:"verdict summary"`
	Leader        string        `json:"leader" jsonschema:"leading side (A, B, undecided)"`
	Confidence    float64       `json:"confidence" jsonschema:"confidence between 0 and 1"`
	Issues        []IssueResult `json:"issues,omitempty" jsonschema:"issues ruled on"`
	FinalDecision string        `json:"final_decision" jsonschema:"decision text"`
	CitedEvidence []string      `json:"cited_evidence,omitempty" jsonschema:"evidence cited by the verdict"`
	CreatedAt     string        `json:"created_at" jsonschema:"RFC3339 timestamp when the verdict was recorded"`
}

// OutcomeResult is the result of a round transition.
type OutcomeResult struct {
	Kind          string         `json:"kind" jsonschema:"verdict_generated or waiting_for_other_side"`
	Round         int            `json:"round" jsonschema:"round the transition applied to"`
	SideRemaining string         `json:"side_remaining,omitempty" jsonschema:"side still expected to argue"`
	Verdict       *VerdictResult `json:"verdict,omitempty" jsonschema:"verdict generated by the transition"`
	Case          *CaseResult    `json:"case,omitempty" jsonschema:"case state after the transition"`
}

func caseResult(c *trialv1.Case) CaseResult {
	if c == nil {
		return CaseResult{}
	}
	result := CaseResult{
		ID:           c.ID,
		CaseNumber:   c.CaseNumber,
		Title:        c.Title,
		CaseType:     c.CaseType,
		Jurisdiction: c.Jurisdiction,
		Status:       c.Status,
		CurrentRound: int(c.CurrentRound),
		MaxRounds:    int(c.MaxRounds),
		CreatedAt:    formatTimestamp(c.CreatedAt),
	}
	if c.Counts != nil {
		result.SideADocuments = int(c.Counts.SideADocuments)
		result.SideBDocuments = int(c.Counts.SideBDocuments)
	}
	if c.FinalizedAt != nil {
		result.FinalizedAt = formatTimestamp(*c.FinalizedAt)
	}
	return result
}

func verdictResult(v *trialv1.Verdict) VerdictResult {
	if v == nil {
		return VerdictResult{}
	}
	result := VerdictResult{
		Round:         int(v.Round),
		Summary:       v.Summary,
		Leader:        v.Leader,
		Confidence:    v.Confidence,
		FinalDecision: v.FinalDecision,
		CitedEvidence: v.CitedEvidence,
		CreatedAt:     formatTimestamp(v.CreatedAt),
	}
	for _, issue := range v.Issues {
		result.Issues = append(result.Issues, IssueResult(issue))
	}
	return result
}

func outcomeResult(o *trialv1.Outcome) OutcomeResult {
	result := OutcomeResult{
		Kind:          o.Kind,
		Round:         int(o.Round),
		SideRemaining: o.SideRemaining,
	}
	if o.Verdict != nil {
		verdict := verdictResult(o.Verdict)
		result.Verdict = &verdict
	}
	if o.Case != nil {
		c := caseResult(o.Case)
		result.Case = &c
	}
	return result
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}
