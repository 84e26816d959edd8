package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hearsay-live/hearsay/internal/llm"
	"github.com/hearsay-live/hearsay/internal/model"
)

const extractSystemPrompt = `You identify discrete, checkable factual claims in live speech transcripts.
Return strict JSON: {"claims": [...], "forced_claims": [...]}.
Rules:
- A claim is a single verifiable factual statement, quoted or lightly cleaned up from the transcript.
- Skip opinions, questions, greetings, and filler.
- Skip anything in the already-checked list unless the speaker explicitly asks to check it again.
- If the speaker explicitly asks to fact-check something ("fact check that", "is that true"), put the referenced claim into forced_claims.
- Return {"claims": [], "forced_claims": []} when nothing checkable was said.`

// LLMExtractor extracts claims via a chat-completion call.
type LLMExtractor struct {
	client llm.ChatClient
	cfg    model.LLMConfig
}

// NewLLMExtractor creates an extractor backed by the given chat client.
func NewLLMExtractor(client llm.ChatClient, cfg model.LLMConfig) *LLMExtractor {
	return &LLMExtractor{client: client, cfg: cfg}
}

// Extract sends one extraction round to the model and parses the JSON
// candidate list out of the response.
func (e *LLMExtractor) Extract(ctx context.Context, req Request) (*Response, error) {
	user := buildUserMessage(req)

	chatReq := openai.ChatCompletionRequest{
		Model: llm.Model(e.cfg),
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: extractSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: 0.1,
	}

	resp, err := e.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, fmt.Errorf("extraction call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("extraction: empty response")
	}

	raw := llm.StripFences(resp.Choices[0].Message.Content)
	var out Response
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("extraction: parse response: %w", err)
	}
	return &out, nil
}

func buildUserMessage(req Request) string {
	var b strings.Builder
	b.WriteString("New transcript text:\n")
	b.WriteString(req.NewText)
	if req.RecentContext != "" && req.RecentContext != req.NewText {
		b.WriteString("\n\nRecent context:\n")
		b.WriteString(req.RecentContext)
	}
	if len(req.CheckedClaims) > 0 {
		b.WriteString("\n\nAlready checked:\n")
		for _, c := range req.CheckedClaims {
			b.WriteString("- ")
			b.WriteString(c)
			b.WriteString("\n")
		}
	}
	return b.String()
}
