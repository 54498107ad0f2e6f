package adjudication

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/tidwall/gjson"
)

var requiredVerdictFields = []string{
	"summary",
	"winner",
	"confidence_score",
	"issues",
	"final_decision",
	"key_evidence_cited",
}

type wireIssue struct {
	Issue     string `json:"issue"`
	Finding   string `json:"finding"`
	Reasoning string `json:"reasoning"`
}

type wireVerdict struct {
	Summary          string      `json:"summary"`
	Winner           string      `json:"winner"`
	ConfidenceScore  float64     `json:"confidence_score"`
	Issues           []wireIssue `json:"issues"`
	FinalDecision    string      `json:"final_decision"`
	KeyEvidenceCited []string    `json:"key_evidence_cited"`
}

// ParseVerdict validates and decodes a judge response. Responses wrapped in
// a markdown code fence are accepted.
func ParseVerdict(raw []byte) (domain.VerdictPayload, error) {
	raw = stripCodeFence(raw)
	if !gjson.ValidBytes(raw) {
		return domain.VerdictPayload{}, fmt.Errorf("response is not valid JSON")
	}
	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return domain.VerdictPayload{}, fmt.Errorf("response is not a JSON object")
	}
	var missing []string
	for _, name := range requiredVerdictFields {
		if !root.Get(name).Exists() {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return domain.VerdictPayload{}, fmt.Errorf("response is missing %s", strings.Join(missing, ", "))
	}
	if score := root.Get("confidence_score"); score.Type != gjson.Number {
		return domain.VerdictPayload{}, fmt.Errorf("confidence_score is not a number")
	}

	var wire wireVerdict
	if err := json.Unmarshal(raw, &wire); err != nil {
		return domain.VerdictPayload{}, fmt.Errorf("decode verdict: %w", err)
	}
	leader, ok := domain.ParseLeader(wire.Winner)
	if !ok {
		return domain.VerdictPayload{}, fmt.Errorf("winner %q is not A, B or undecided", wire.Winner)
	}

	payload := domain.VerdictPayload{
		Summary:       strings.TrimSpace(wire.Summary),
		Leader:        leader,
		Confidence:    wire.ConfidenceScore,
		FinalDecision: strings.TrimSpace(wire.FinalDecision),
		CitedEvidence: wire.KeyEvidenceCited,
	}
	for _, issue := range wire.Issues {
		payload.Issues = append(payload.Issues, domain.Issue(issue))
	}
	if err := payload.Validate(); err != nil {
		return domain.VerdictPayload{}, err
	}
	return payload, nil
}

func stripCodeFence(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if !bytes.HasPrefix(trimmed, []byte("```")) {
		return trimmed
	}
	trimmed = bytes.TrimPrefix(trimmed, []byte("```"))
	if newline := bytes.IndexByte(trimmed, '\n'); newline != -1 {
		trimmed = trimmed[newline+1:]
	}
	trimmed = bytes.TrimSuffix(bytes.TrimSpace(trimmed), []byte("```"))
	return bytes.TrimSpace(trimmed)
}
