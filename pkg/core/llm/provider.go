// Package llm wraps the external language-model backends behind a single
// Provider interface so the rest of the pipeline never touches a vendor SDK
// directly. Providers are stateless; credentials come from the environment.
package llm

import (
	"context"
)

// Provider is the interface for all LLM providers.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
}
