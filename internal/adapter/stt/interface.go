// Package stt provides an abstraction for speech-to-text providers.
package stt

import (
	"context"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// Transcriber defines the interface for speech-to-text operations.
type Transcriber interface {
	// IsConfigured reports whether the adapter holds a usable credential.
	// Callers must check it before invoking Transcribe.
	IsConfigured() bool

	// Transcribe converts audio bytes into a transcript.
	Transcribe(ctx context.Context, audio []byte) (*domain.Transcript, error)
}

// Ensure Client implements Transcriber.
var _ Transcriber = (*Client)(nil)
