// Package service implements the voice pipeline orchestrator.
package service

import (
	"context"
	"log"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/llm"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/stt"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/adapter/tts"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/config"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/repository"
)

// Service sequences the STT, LLM and TTS adapters, applies the fallback
// policy, and owns the session store's lifecycle operations.
type Service struct {
	stt      stt.Transcriber
	llm      llm.Generator
	tts      tts.Synthesizer
	sessions repository.SessionStore
	config   *config.Config
}

// New creates the orchestrator service.
func New(sttClient stt.Transcriber, llmClient llm.Generator, ttsClient tts.Synthesizer, sessions repository.SessionStore, cfg *config.Config) *Service {
	return &Service{
		stt:      sttClient,
		llm:      llmClient,
		tts:      ttsClient,
		sessions: sessions,
		config:   cfg,
	}
}

// AllConfigured reports whether all three adapters hold credentials.
func (s *Service) AllConfigured() bool {
	return s.stt.IsConfigured() && s.llm.IsConfigured() && s.tts.IsConfigured()
}

// ClearSession removes all history for the session. Idempotent.
func (s *Service) ClearSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return err
	}
	log.Printf("Cleared session history for session: %s", sessionID)
	return nil
}

// TranscribeFile runs the STT stage alone.
func (s *Service) TranscribeFile(ctx context.Context, audio []byte) (*domain.Transcript, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.STTTimeout)
	defer cancel()
	return s.stt.Transcribe(ctx, audio)
}

// Speak runs the TTS stage alone.
func (s *Service) Speak(ctx context.Context, text string, voice domain.VoiceParams) (*tts.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.config.TTSTimeout)
	defer cancel()
	return s.tts.Synthesize(ctx, text, voice)
}

// STTConfigured reports whether the transcription adapter is usable.
func (s *Service) STTConfigured() bool { return s.stt.IsConfigured() }

// TTSConfigured reports whether the synthesis adapter is usable.
func (s *Service) TTSConfigured() bool { return s.tts.IsConfigured() }

// defaultVoice returns the configured synthesis parameters.
func (s *Service) defaultVoice() domain.VoiceParams {
	return domain.VoiceParams{
		VoiceID: s.config.DefaultVoiceID,
		Style:   s.config.DefaultVoiceStyle,
		Speed:   1.0,
		Pitch:   1.0,
		Volume:  1.0,
	}
}
