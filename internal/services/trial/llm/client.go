// Package llm wraps the OpenAI chat completions client used for adjudication
// and document extraction, and classifies provider failures as transient or
// permanent.
package llm

import (
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Config configures the provider client.
type Config struct {
	APIKey  string
	BaseURL string
	// Timeout caps one request; zero leaves the caller's context in charge.
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Configured reports whether a credential is present.
func (c Config) Configured() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// NewClient builds a chat client. Retries are disabled: callers surface
// transient failures and the round can be retried explicitly.
func NewClient(cfg Config) openai.Client {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(cfg.BaseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	return openai.NewClient(opts...)
}
