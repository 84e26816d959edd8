package llm

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// RateLimited wraps a ChatClient with a token-bucket limiter so that a
// fast transcript cannot fan calls out to the provider unbounded.
type RateLimited struct {
	inner   ChatClient
	limiter *rate.Limiter
}

// NewRateLimited creates a rate-limited chat client.
func NewRateLimited(inner ChatClient, requestsPerSecond float64, burst int) *RateLimited {
	if burst <= 0 {
		burst = 1
	}
	return &RateLimited{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
	}
}

// CreateChatCompletion waits for limiter clearance, then delegates.
func (r *RateLimited) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return openai.ChatCompletionResponse{}, err
	}
	return r.inner.CreateChatCompletion(ctx, req)
}
