package llm

import (
	"context"
	"errors"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// Mock is a configurable Generator for tests. Calls counts invocations and
// LastHistory captures the history passed to the most recent call.
type Mock struct {
	Configured   bool
	GenerateFunc func(ctx context.Context, prompt string, history []domain.ConversationMessage) (string, error)
	Calls        int
	LastHistory  []domain.ConversationMessage
}

var _ Generator = (*Mock)(nil)

// NewMock returns a configured mock that always answers with reply.
func NewMock(reply string) *Mock {
	return &Mock{
		Configured: true,
		GenerateFunc: func(ctx context.Context, prompt string, history []domain.ConversationMessage) (string, error) {
			return reply, nil
		},
	}
}

func (m *Mock) IsConfigured() bool {
	return m.Configured
}

func (m *Mock) Generate(ctx context.Context, prompt string, history []domain.ConversationMessage) (string, error) {
	m.Calls++
	m.LastHistory = history
	if m.GenerateFunc == nil {
		return "", errors.New("llm mock: no GenerateFunc")
	}
	return m.GenerateFunc(ctx, prompt, history)
}
