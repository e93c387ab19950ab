package ai

import (
	"context"

	"insight-backend/pkg/config"
)

// Message is one prior conversation turn supplied by the caller.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Params are per-call generation settings. An empty Model falls back to the
// provider's configured default; MaxTokens <= 0 omits the limit.
type Params struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Provider is the uniform capability interface over interchangeable LLM
// backends. Implement this interface and register it to add a backend
// (Gemini, OpenAI, Ollama, ...); nothing above the registry changes.
type Provider interface {
	Name() string
	Defaults() config.ProviderConfig
	Generate(ctx context.Context, prompt string, p Params) (string, error)
	Chat(ctx context.Context, contextPrompt string, history []Message, userMessage string, p Params) (string, error)
}
