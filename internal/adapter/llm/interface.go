// Package llm provides an abstraction for language-model providers.
package llm

import (
	"context"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// Generator defines the interface for language-model text generation.
type Generator interface {
	// IsConfigured reports whether the adapter holds a usable credential.
	// Callers must check it before invoking Generate.
	IsConfigured() bool

	// Generate produces a response for the prompt given the prior
	// conversation history. History order is preserved when translating to
	// the provider's role vocabulary.
	Generate(ctx context.Context, prompt string, history []domain.ConversationMessage) (string, error)
}

// Ensure Client implements Generator.
var _ Generator = (*Client)(nil)
