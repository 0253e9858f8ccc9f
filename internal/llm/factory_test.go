package llm

import (
	"context"
	"testing"

	"math_quiz_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProvider_NoCredentials(t *testing.T) {
	provider, err := NewProvider(context.Background(), config.AIConfig{})
	require.NoError(t, err)
	assert.Nil(t, provider)
}

func TestNewProvider_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AIConfig
		want string
	}{
		{
			name: "anthropic wins over everything",
			cfg: config.AIConfig{
				AnthropicAPIKey: "sk-ant-test",
				OpenAIAPIKey:    "sk-test",
				GeminiAPIKey:    "gm-test",
			},
			want: "anthropic",
		},
		{
			name: "openai wins over gemini",
			cfg: config.AIConfig{
				OpenAIAPIKey: "sk-test",
				GeminiAPIKey: "gm-test",
			},
			want: "openai",
		},
		{
			name: "gemini as last resort",
			cfg:  config.AIConfig{GeminiAPIKey: "gm-test"},
			want: "gemini",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider, err := NewProvider(context.Background(), tt.cfg)
			require.NoError(t, err)
			require.NotNil(t, provider)
			assert.Equal(t, tt.want, provider.Name())
		})
	}
}

func TestNewProvider_OpenAICompatibleBaseURL(t *testing.T) {
	provider, err := NewProvider(context.Background(), config.AIConfig{
		OpenAIAPIKey:  "sk-test",
		OpenAIBaseURL: "https://openrouter.ai/api/v1",
		OpenAIModel:   "meta-llama/llama-3-70b",
	})
	require.NoError(t, err)
	require.NotNil(t, provider)
	assert.Equal(t, "openai", provider.Name())
}
