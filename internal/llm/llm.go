package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/KOFI-GYIMAH/handoff-assistant/internal/config"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	// * Upper bound for a single generation round trip
	DefaultTimeout = 2 * time.Minute
)

// * Generator turns a single prompt into text. No streaming, no retry.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// * Error is the only failure kind a Generator returns. Callers that recover
// * from generation failures match on it with errors.As.
type Error struct {
	Provider string
	Err      error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s generation failed: %v", e.Provider, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// * New builds the generator selected by cfg.Provider, paced at cfg.RequestsPerMinute
func New(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	var gen Generator
	var err error

	switch cfg.Provider {
	case ProviderGemini, "":
		gen, err = NewGeminiClient(ctx, cfg.GoogleAPIKey, cfg.GeminiModel, "")
	case ProviderOpenAI:
		gen, err = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, "")
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	if cfg.RequestsPerMinute > 0 {
		gen = NewRateLimited(gen, cfg.RequestsPerMinute)
	}
	return gen, nil
}

// * RateLimited paces calls to the wrapped generator
type RateLimited struct {
	next    Generator
	limiter *rate.Limiter
}

func NewRateLimited(next Generator, perMinute int) *RateLimited {
	return &RateLimited{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
	}
}

func (r *RateLimited) Generate(ctx context.Context, prompt string) (string, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return "", &Error{Provider: "rate limiter", Err: err}
	}
	return r.next.Generate(ctx, prompt)
}
