package verify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hearsay-live/hearsay/internal/llm"
	"github.com/hearsay-live/hearsay/internal/model"
)

const checkSystemPrompt = `You are a careful fact checker. Assess the claim and return strict JSON:
{"verdict": "...", "confidence": 0.0-1.0, "evidence_for": [...], "evidence_against": [...], "sources": [...]}.
Verdict vocabulary: "true", "mostly-true", "mixed", "mostly-false", "false", "unverifiable".
Rules:
- Judge only the claim as stated; use the context to resolve pronouns and referents, not to add new claims.
- evidence_for / evidence_against are short factual statements, not URLs.
- sources are publication or organization names you are drawing on.
- When you cannot assess the claim, use "unverifiable" with low confidence; never refuse.`

// LLMChecker verifies claims via a chat-completion call.
type LLMChecker struct {
	client llm.ChatClient
	cfg    model.LLMConfig
}

// NewLLMChecker creates a checker backed by the given chat client.
func NewLLMChecker(client llm.ChatClient, cfg model.LLMConfig) *LLMChecker {
	return &LLMChecker{client: client, cfg: cfg}
}

// Check verifies one claim. The caller bounds the call with a context
// deadline; a timeout surfaces as an error, never as a hang.
func (c *LLMChecker) Check(ctx context.Context, req CheckRequest) (*model.VerificationResult, error) {
	var user strings.Builder
	user.WriteString("Claim:\n")
	user.WriteString(req.Claim)
	if req.Context != "" {
		user.WriteString("\n\nTranscript context:\n")
		user.WriteString(req.Context)
	}

	chatReq := openai.ChatCompletionRequest{
		Model: llm.Model(c.cfg),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: checkSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user.String()},
		},
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: 0.2,
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("verification call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("verification: empty response")
	}

	raw := llm.StripFences(resp.Choices[0].Message.Content)
	var result model.VerificationResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, fmt.Errorf("verification: parse response: %w", err)
	}
	if result.Verdict == "" {
		return nil, fmt.Errorf("verification: response missing verdict")
	}
	return &result, nil
}
