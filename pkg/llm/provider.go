package llm

//go:generate mockgen -destination=./llmmock/provider.go -package=llmmock -source=provider.go Provider

import "context"

// Provider sends a single non-streaming chat completion to an LLM backend.
type Provider interface {
	// Name returns a short identifier for logging (e.g., "ollama").
	Name() string

	// Chat performs one completion. Implementations translate the
	// Ollama-compatible request into their own wire format.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}
