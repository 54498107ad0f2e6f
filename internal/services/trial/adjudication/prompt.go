package adjudication

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
	"unicode/utf8"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
)

// SystemPrompt frames every adjudication request.
const SystemPrompt = "You are an experienced AI judge delivering fair and reasoned verdicts based on evidence. Always respond with valid JSON only."

// Evidence excerpt limits in characters. Later rounds trade evidence detail
// for room to quote arguments.
const (
	InitialExcerptLimit = 1000
	RoundExcerptLimit   = 800
)

//go:embed prompts/*.tmpl
var promptFS embed.FS

var promptTemplates = template.Must(template.ParseFS(promptFS, "prompts/*.tmpl"))

type promptDocument struct {
	Title    string
	FileType domain.FileType
	Excerpt  string
}

type promptPrevious struct {
	Round         int
	Leader        domain.Leader
	Confidence    float64
	Summary       string
	FinalDecision string
}

type promptData struct {
	Case      domain.Case
	Round     int
	Initial   bool
	Previous  *promptPrevious
	History   []domain.Argument
	SideA     []promptDocument
	SideB     []promptDocument
	ArgumentA string
	ArgumentB string
}

// BuildPrompt renders the user prompt for one round.
func BuildPrompt(input Context) (string, error) {
	limit := RoundExcerptLimit
	if input.Round == 0 {
		limit = InitialExcerptLimit
	}
	data := promptData{
		Case:      input.Case,
		Round:     input.Round,
		Initial:   input.Round == 0,
		History:   input.History,
		SideA:     excerpts(input.SideA, limit),
		SideB:     excerpts(input.SideB, limit),
		ArgumentA: input.Arguments[domain.SideA].Text,
		ArgumentB: input.Arguments[domain.SideB].Text,
	}
	if prev := input.PreviousVerdict; prev != nil {
		data.Previous = &promptPrevious{
			Round:         prev.Round,
			Leader:        prev.Payload.Leader,
			Confidence:    prev.Payload.Confidence,
			Summary:       prev.Payload.Summary,
			FinalDecision: prev.Payload.FinalDecision,
		}
	}

	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, "verdict", data); err != nil {
		return "", fmt.Errorf("render verdict prompt: %w", err)
	}
	return buf.String(), nil
}

func excerpts(docs []domain.Document, limit int) []promptDocument {
	out := make([]promptDocument, 0, len(docs))
	for _, doc := range docs {
		out = append(out, promptDocument{
			Title:    doc.Title,
			FileType: doc.FileType,
			Excerpt:  truncate(doc.ExtractedText, limit),
		})
	}
	return out
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit])
}
