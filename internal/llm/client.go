// Package llm provides the shared chat-completion client used by the
// extraction and verification boundaries.
package llm

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hearsay-live/hearsay/internal/model"
)

// ChatClient mirrors the subset of the OpenAI client we need, so
// extraction and verification can be tested against mocks.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewClient builds a chat client from configuration. Returns nil when no
// provider is configured (LLM features disabled).
func NewClient(cfg model.LLMConfig) (ChatClient, error) {
	switch strings.ToLower(cfg.Provider) {
	case "":
		return nil, nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		clientConfig := openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientConfig.BaseURL = cfg.BaseURL
		}
		var client ChatClient = openai.NewClientWithConfig(clientConfig)
		if cfg.RequestsPerSecond > 0 {
			client = NewRateLimited(client, cfg.RequestsPerSecond, cfg.Burst)
		}
		return client, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai)", cfg.Provider)
	}
}

// Model returns the configured model name, falling back to a default.
func Model(cfg model.LLMConfig) string {
	if cfg.Model != "" {
		return cfg.Model
	}
	return openai.GPT4oMini
}

// StripFences removes a Markdown code fence wrapper, which chat models
// like to put around JSON even when told not to.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
