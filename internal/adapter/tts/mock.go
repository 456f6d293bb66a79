package tts

import (
	"context"
	"errors"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// MockFallbackURL is the URL the mock returns from FallbackAudio.
const MockFallbackURL = "https://mock.test/fallback.mp3"

// Mock is a configurable Synthesizer for tests.
type Mock struct {
	Configured     bool
	SynthesizeFunc func(ctx context.Context, text string, voice domain.VoiceParams) (*Result, error)
	Calls          int
	FallbackCalls  int
}

var _ Synthesizer = (*Mock)(nil)

// NewMock returns a configured mock that resolves every text to audioURL.
func NewMock(audioURL string) *Mock {
	return &Mock{
		Configured: true,
		SynthesizeFunc: func(ctx context.Context, text string, voice domain.VoiceParams) (*Result, error) {
			return &Result{AudioURL: audioURL}, nil
		},
	}
}

func (m *Mock) IsConfigured() bool {
	return m.Configured
}

func (m *Mock) Synthesize(ctx context.Context, text string, voice domain.VoiceParams) (*Result, error) {
	m.Calls++
	if m.SynthesizeFunc == nil {
		return nil, errors.New("tts mock: no SynthesizeFunc")
	}
	return m.SynthesizeFunc(ctx, text, voice)
}

func (m *Mock) FallbackAudio(ctx context.Context, message string) string {
	m.FallbackCalls++
	return MockFallbackURL
}
