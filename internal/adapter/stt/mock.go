package stt

import (
	"context"
	"errors"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// Mock is a configurable Transcriber for tests. Calls counts invocations of
// Transcribe so tests can assert that skipped stages were never reached.
type Mock struct {
	Configured     bool
	TranscribeFunc func(ctx context.Context, audio []byte) (*domain.Transcript, error)
	Calls          int
}

var _ Transcriber = (*Mock)(nil)

// NewMock returns a configured mock that transcribes everything as text.
func NewMock(text string) *Mock {
	return &Mock{
		Configured: true,
		TranscribeFunc: func(ctx context.Context, audio []byte) (*domain.Transcript, error) {
			return &domain.Transcript{Text: text}, nil
		},
	}
}

func (m *Mock) IsConfigured() bool {
	return m.Configured
}

func (m *Mock) Transcribe(ctx context.Context, audio []byte) (*domain.Transcript, error) {
	m.Calls++
	if m.TranscribeFunc == nil {
		return nil, errors.New("stt mock: no TranscribeFunc")
	}
	return m.TranscribeFunc(ctx, audio)
}
