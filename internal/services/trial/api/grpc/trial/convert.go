package trial

import (
	"unicode/utf8"

	trialv1 "github.com/louisbranch/mocktrial/api/trial/v1"
	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/orchestrator"
)

// documentExcerptLength bounds the text preview returned with documents.
const documentExcerptLength = 500

func caseToProto(c domain.Case, counts *domain.CaseCounts) *trialv1.Case {
	out := &trialv1.Case{
		ID:           c.ID,
		CaseNumber:   c.CaseNumber,
		Title:        c.Title,
		Description:  c.Description,
		CaseType:     string(c.CaseType),
		Jurisdiction: c.Jurisdiction,
		Status:       string(c.Status),
		CurrentRound: int32(c.CurrentRound),
		MaxRounds:    int32(c.MaxRounds),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
		FinalizedAt:  c.FinalizedAt,
	}
	if counts != nil {
		out.Counts = &trialv1.CaseCounts{
			SideADocuments: int32(counts.SideADocuments),
			SideBDocuments: int32(counts.SideBDocuments),
			Arguments:      int32(counts.Arguments),
			Verdicts:       int32(counts.Verdicts),
		}
	}
	return out
}

func documentToProto(doc domain.Document) *trialv1.Document {
	return &trialv1.Document{
		ID:         doc.ID,
		CaseID:     doc.CaseID,
		Side:       string(doc.Side),
		Title:      doc.Title,
		FileName:   doc.FileName,
		FileType:   string(doc.FileType),
		PageCount:  int32(doc.PageCount),
		WordCount:  int32(doc.WordCount),
		Excerpt:    excerpt(doc.ExtractedText, documentExcerptLength),
		UploadedAt: doc.UploadedAt,
	}
}

func argumentToProto(arg domain.Argument) *trialv1.Argument {
	return &trialv1.Argument{
		ID:          arg.ID,
		CaseID:      arg.CaseID,
		Round:       int32(arg.Round),
		Side:        string(arg.Side),
		Text:        arg.Text,
		SubmittedAt: arg.SubmittedAt,
	}
}

func verdictToProto(v domain.Verdict) *trialv1.Verdict {
	out := &trialv1.Verdict{
		ID:            v.ID,
		CaseID:        v.CaseID,
		Round:         int32(v.Round),
		Summary:       v.Payload.Summary,
		Leader:        string(v.Payload.Leader),
		Confidence:    v.Payload.Confidence,
		FinalDecision: v.Payload.FinalDecision,
		CitedEvidence: v.Payload.CitedEvidence,
		Model:         v.Model,
		TokensUsed:    int32(v.TokensUsed),
		CreatedAt:     v.CreatedAt,
	}
	for _, issue := range v.Payload.Issues {
		out.Issues = append(out.Issues, trialv1.Issue(issue))
	}
	return out
}

func outcomeToProto(out orchestrator.Outcome) *trialv1.Outcome {
	proto := &trialv1.Outcome{
		Kind:          string(out.Kind),
		Round:         int32(out.Round),
		SideRemaining: string(out.SideRemaining),
		Case:          caseToProto(out.Case, nil),
	}
	if out.Verdict != nil {
		proto.Verdict = verdictToProto(*out.Verdict)
	}
	return proto
}

func sidesToProto(sides []domain.Side) []string {
	out := make([]string, 0, len(sides))
	for _, side := range sides {
		out = append(out, string(side))
	}
	return out
}

func excerpt(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	return string([]rune(text)[:limit])
}
