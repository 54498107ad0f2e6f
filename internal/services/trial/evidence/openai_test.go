package evidence

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/louisbranch/mocktrial/internal/services/trial/domain"
	"github.com/louisbranch/mocktrial/internal/services/trial/llm"
)

type roundTripFunc func(req *http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestOpenAIExtractorTruncatesInput(t *testing.T) {
	var request struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
		Messages    []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	client := llm.NewClient(llm.Config{
		APIKey: "sk-test",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			header := make(http.Header)
			header.Set("Content-Type", "application/json")
			body := `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Extracted lease terms."}}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`
			return &http.Response{StatusCode: http.StatusOK, Header: header, Body: io.NopCloser(strings.NewReader(body)), Request: req}, nil
		})},
	})
	extractor := NewOpenAIExtractor(client, "")

	data := []byte(strings.Repeat("z", extractionInputLimit+500))
	text, err := extractor.ExtractText(context.Background(), "lease.pdf", domain.FileTypePDF, data)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if text != "Extracted lease terms." {
		t.Fatalf("text = %q", text)
	}
	if request.Model != "gpt-4o-mini" || request.MaxTokens != extractionMaxTokens {
		t.Fatalf("request = %s/%d", request.Model, request.MaxTokens)
	}
	if len(request.Messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(request.Messages))
	}
	user := request.Messages[1].Content
	if strings.Contains(user, strings.Repeat("z", extractionInputLimit+1)) {
		t.Fatal("expected input to be truncated")
	}
	if !strings.Contains(user, "PDF document") {
		t.Fatalf("prompt = %q", user[:80])
	}
}
