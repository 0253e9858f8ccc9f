package llm

import "context"

// Provider is the abstraction over AI text-generation backends.
// The quiz core only needs plain text for explanations, so the contract
// is deliberately small: one prompt in, one completion out.
type Provider interface {
	// Generate sends the prompt and returns the completion text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns a short provider identifier for logs and metrics.
	Name() string
}
