package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// RateLimitedGenerator wraps a TextGenerator with a token-bucket limiter so
// bursts of user actions cannot hammer the external API.
type RateLimitedGenerator struct {
	inner   TextGenerator
	limiter *rate.Limiter
}

// NewRateLimitedGenerator allows callsPerMinute sustained calls with a burst
// of two.
func NewRateLimitedGenerator(inner TextGenerator, callsPerMinute int) *RateLimitedGenerator {
	return &RateLimitedGenerator{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(float64(callsPerMinute)/60.0), 2),
	}
}

// GenerateContent blocks until the limiter admits the call, then delegates.
func (g *RateLimitedGenerator) GenerateContent(ctx context.Context, prompt string) (ContentResponse, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return ContentResponse{}, fmt.Errorf("rate limiter wait: %w", err)
	}
	return g.inner.GenerateContent(ctx, prompt)
}
