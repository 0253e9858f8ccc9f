package llm

import (
	"context"
	"math_quiz_backend/internal/config"
)

const defaultMaxTokens = 1500

// NewProvider picks the first provider with a configured credential,
// in priority order Claude > OpenAI (incl. compatible APIs) > Gemini.
// The choice is made once at startup, not per call. Returns (nil, nil)
// when no credential is configured; explanations are then reported as
// unavailable instead of failing the server.
func NewProvider(ctx context.Context, cfg config.AIConfig) (Provider, error) {
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	if cfg.AnthropicAPIKey != "" {
		return NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel, maxTokens)
	}
	if cfg.OpenAIAPIKey != "" {
		return NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, maxTokens)
	}
	if cfg.GeminiAPIKey != "" {
		return NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, maxTokens)
	}

	return nil, nil
}
