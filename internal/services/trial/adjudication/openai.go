package adjudication

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gpt-4o-mini"

// OpenAIConfig tunes chat completion requests.
type OpenAIConfig struct {
	Model            string
	Temperature      float64
	InitialMaxTokens int64
	RoundMaxTokens   int64
}

// OpenAIGateway adjudicates rounds with the OpenAI chat completions API.
type OpenAIGateway struct {
	client openai.Client
	cfg    OpenAIConfig
}

// NewOpenAIGateway builds a gateway over an OpenAI client.
func NewOpenAIGateway(client openai.Client, cfg OpenAIConfig) *OpenAIGateway {
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	if cfg.InitialMaxTokens <= 0 {
		cfg.InitialMaxTokens = 2000
	}
	if cfg.RoundMaxTokens <= 0 {
		cfg.RoundMaxTokens = 2500
	}
	return &OpenAIGateway{client: client, cfg: cfg}
}

// Adjudicate implements Gateway.
func (g *OpenAIGateway) Adjudicate(ctx context.Context, input Context) (Result, error) {
	if err := input.Validate(); err != nil {
		return Result{}, llm.Permanent(llm.ReasonRejected, err)
	}
	prompt, err := BuildPrompt(input)
	if err != nil {
		return Result{}, llm.Permanent(llm.ReasonRejected, err)
	}
	maxTokens := g.cfg.RoundMaxTokens
	if input.Round == 0 {
		maxTokens = g.cfg.InitialMaxTokens
	}

	completion, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(g.cfg.Temperature),
		MaxTokens:   openai.Int(maxTokens),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return Result{}, llm.Classify(err)
	}
	if len(completion.Choices) == 0 {
		return Result{}, llm.Transient(llm.ReasonMalformedResponse, fmt.Errorf("completion has no choices"))
	}
	payload, err := ParseVerdict([]byte(completion.Choices[0].Message.Content))
	if err != nil {
		return Result{}, llm.Transient(llm.ReasonMalformedResponse, err)
	}

	model := completion.Model
	if model == "" {
		model = g.cfg.Model
	}
	return Result{
		Payload:    payload,
		Model:      model,
		TokensUsed: int(completion.Usage.TotalTokens),
	}, nil
}
