// Package tts provides an abstraction for text-to-speech providers.
package tts

import (
	"context"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// Result is the outcome of a synthesis call. Truncated is set when the
// input text exceeded the provider limit and was cut before dispatch.
type Result struct {
	AudioURL  string
	Truncated bool
}

// Synthesizer defines the interface for text-to-speech operations.
type Synthesizer interface {
	// IsConfigured reports whether the adapter holds a usable credential.
	// Callers must check it before invoking Synthesize.
	IsConfigured() bool

	// Synthesize converts text into a playable audio URL. Over-long input
	// is truncated to the provider limit rather than rejected.
	Synthesize(ctx context.Context, text string, voice domain.VoiceParams) (*Result, error)

	// FallbackAudio returns a playable URL for an apology message. It is
	// best-effort and never fails: when real synthesis cannot run it
	// returns a constant placeholder URL.
	FallbackAudio(ctx context.Context, message string) string
}

// Ensure Client implements Synthesizer.
var _ Synthesizer = (*Client)(nil)
