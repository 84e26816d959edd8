package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/hearsay-live/hearsay/internal/model"
)

type mockChat struct {
	lastReq openai.ChatCompletionRequest
	content string
	err     error
}

func (m *mockChat) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	m.lastReq = req
	if m.err != nil {
		return openai.ChatCompletionResponse{}, m.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: m.content}},
		},
	}, nil
}

func TestLLMExtractor_ParsesResponse(t *testing.T) {
	mock := &mockChat{content: "```json\n{\"claims\": [\"Unemployment hit 5 percent\"], \"forced_claims\": [\"The bridge was built in 1932\"]}\n```"}
	e := NewLLMExtractor(mock, model.DefaultConfig().LLM)

	resp, err := e.Extract(context.Background(), Request{
		NewText:       "unemployment hit 5 percent, fact check the bridge thing",
		RecentContext: "earlier talk",
		CheckedClaims: []string{"The moon is smaller than Earth"},
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(resp.Claims) != 1 || resp.Claims[0] != "Unemployment hit 5 percent" {
		t.Errorf("Unexpected claims: %v", resp.Claims)
	}
	if len(resp.ForcedClaims) != 1 {
		t.Errorf("Expected one forced claim, got %v", resp.ForcedClaims)
	}

	// The dedup hint must reach the request.
	user := mock.lastReq.Messages[len(mock.lastReq.Messages)-1].Content
	if !strings.Contains(user, "The moon is smaller than Earth") {
		t.Error("Expected checked claims in the user message")
	}
}

func TestLLMExtractor_CallError(t *testing.T) {
	mock := &mockChat{err: errors.New("boom")}
	e := NewLLMExtractor(mock, model.DefaultConfig().LLM)

	if _, err := e.Extract(context.Background(), Request{NewText: "anything"}); err == nil {
		t.Error("Expected error to propagate")
	}
}

func TestLLMExtractor_MalformedJSON(t *testing.T) {
	mock := &mockChat{content: "sorry, I can't do that"}
	e := NewLLMExtractor(mock, model.DefaultConfig().LLM)

	if _, err := e.Extract(context.Background(), Request{NewText: "anything"}); err == nil {
		t.Error("Expected parse error for non-JSON response")
	}
}

func TestHeuristicExtractor_PicksFactualSentences(t *testing.T) {
	e := NewHeuristicExtractor(8)

	resp, err := e.Extract(context.Background(), Request{
		NewText: "Well, good morning everyone. Unemployment hit 5 percent in March. How are you feeling today? The bridge was built in 1932.",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(resp.Claims) != 2 {
		t.Fatalf("Expected 2 candidates, got %d: %v", len(resp.Claims), resp.Claims)
	}
	if !strings.Contains(resp.Claims[0], "5 percent") {
		t.Errorf("Unexpected first candidate: %q", resp.Claims[0])
	}
	if !strings.Contains(resp.Claims[1], "1932") {
		t.Errorf("Unexpected second candidate: %q", resp.Claims[1])
	}
}

func TestHeuristicExtractor_DedupesAndFiltersShort(t *testing.T) {
	e := NewHeuristicExtractor(8)

	resp, _ := e.Extract(context.Background(), Request{
		NewText: "It's 5. The GDP grew by 3 percent. The GDP grew by 3 percent.",
	})
	if len(resp.Claims) != 1 {
		t.Errorf("Expected 1 deduped candidate, got %v", resp.Claims)
	}
}

func TestHeuristicExtractor_UnpunctuatedTrailingText(t *testing.T) {
	e := NewHeuristicExtractor(8)

	resp, _ := e.Extract(context.Background(), Request{
		NewText: "the deficit reached 30 billion dollars",
	})
	if len(resp.Claims) != 1 {
		t.Errorf("Expected trailing unpunctuated claim to be picked up, got %v", resp.Claims)
	}
}
