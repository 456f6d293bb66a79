package service

import (
	"context"
	"log"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// Echo transcribes the audio and speaks the transcript back, skipping the
// language-model stage. It follows the same fallback routing as the full
// pipeline: the result always carries a playable audio URL.
func (s *Service) Echo(ctx context.Context, audio []byte) *domain.EchoResult {
	if !s.stt.IsConfigured() || !s.tts.IsConfigured() {
		return &domain.EchoResult{
			AudioURL:      s.tts.FallbackAudio(ctx, domain.Fallback(domain.ErrorAPIKeysMissing)),
			Transcription: placeholderNoKeys,
			Error:         domain.ErrorAPIKeysMissing,
			Success:       false,
		}
	}

	sttCtx, cancel := context.WithTimeout(ctx, s.config.STTTimeout)
	defer cancel()
	transcript, err := s.stt.Transcribe(sttCtx, audio)
	if err != nil {
		log.Printf("ERROR: echo transcription failed: %v", err)
		return &domain.EchoResult{
			AudioURL:      s.tts.FallbackAudio(ctx, domain.Fallback(domain.ErrorSTTFailure)),
			Transcription: placeholderNoTranscript,
			Error:         domain.ErrorSTTFailure,
			Success:       false,
		}
	}

	ttsCtx, cancel := context.WithTimeout(ctx, s.config.TTSTimeout)
	defer cancel()
	result, err := s.tts.Synthesize(ttsCtx, transcript.Text, s.defaultVoice())
	if err != nil {
		log.Printf("ERROR: echo synthesis failed: %v", err)
		return &domain.EchoResult{
			AudioURL:      s.tts.FallbackAudio(ctx, domain.Fallback(domain.ErrorTTSFailure)),
			Transcription: transcript.Text,
			Error:         domain.ErrorTTSFailure,
			Success:       false,
		}
	}

	return &domain.EchoResult{
		AudioURL:      result.AudioURL,
		Transcription: transcript.Text,
		Success:       true,
	}
}
