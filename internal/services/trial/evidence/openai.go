package evidence

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
	"github.com/openai/openai-go"
)

const (
	extractionSystemPrompt = "You are a document text extraction assistant. Extract and return only the text content."
	// extractionInputLimit bounds how much of the file is sent.
	extractionInputLimit = 10000
	extractionMaxTokens  = 4000
	extractionTemp       = 0.1
)

// OpenAIExtractor asks a chat model to recover text from binary formats.
type OpenAIExtractor struct {
	client openai.Client
	model  string
}

// NewOpenAIExtractor builds an extractor over an OpenAI client.
func NewOpenAIExtractor(client openai.Client, model string) *OpenAIExtractor {
	if strings.TrimSpace(model) == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIExtractor{client: client, model: model}
}

// ExtractText implements BinaryExtractor.
func (e *OpenAIExtractor) ExtractText(ctx context.Context, fileName string, fileType domain.FileType, data []byte) (string, error) {
	if len(data) > extractionInputLimit {
		data = data[:extractionInputLimit]
	}
	content := strings.ToValidUTF8(string(data), "")
	prompt := fmt.Sprintf(
		"Extract all text content from this %s document named %q. Return only the extracted text, preserving paragraphs.\n\nDocument content:\n%s",
		strings.ToUpper(string(fileType)), fileName, content,
	)

	completion, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(extractionSystemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(extractionTemp),
		MaxTokens:   openai.Int(extractionMaxTokens),
	})
	if err != nil {
		return "", llm.Classify(err)
	}
	if len(completion.Choices) == 0 {
		return "", llm.Transient(llm.ReasonMalformedResponse, fmt.Errorf("completion has no choices"))
	}
	return completion.Choices[0].Message.Content, nil
}
