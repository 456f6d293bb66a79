package service

import (
	"context"
	"log"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// stage identifies a step of the per-request pipeline state machine. Every
// run terminates in stageDone; failure branches get there early by
// producing an envelope with fallback audio instead of aborting.
type stage int

const (
	stageTranscribing stage = iota
	stageGenerating
	stageSynthesizing
	stageDone
)

// Placeholder texts for envelopes whose real values never materialized.
const (
	placeholderNoTranscript = "Could not transcribe audio"
	placeholderNoKeys       = "API keys not configured"
	placeholderError        = "Error occurred"
)

// RunStatelessQuery runs the full pipeline without touching session state.
func (s *Service) RunStatelessQuery(ctx context.Context, audio []byte) *domain.PipelineResult {
	return s.run(ctx, "", audio)
}

// RunSessionTurn runs the full pipeline with per-session history: the
// transcribed user message and, on LLM success, the assistant reply are
// appended to the session's sliding window.
func (s *Service) RunSessionTurn(ctx context.Context, sessionID string, audio []byte) *domain.PipelineResult {
	return s.run(ctx, sessionID, audio)
}

func (s *Service) run(ctx context.Context, sessionID string, audio []byte) (result *domain.PipelineResult) {
	t := &turn{
		svc:       s,
		ctx:       ctx,
		sessionID: sessionID,
		audio:     audio,
	}

	// Unexpected errors anywhere in a run map to general_failure; the
	// caller still receives a playable envelope.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: pipeline panic recovered: %v", r)
			result = t.generalFailure()
		}
	}()

	if pre := t.preflight(); pre != nil {
		return pre
	}

	st := stageTranscribing
	for {
		var res *domain.PipelineResult
		switch st {
		case stageTranscribing:
			res, st = t.transcribe()
		case stageGenerating:
			res, st = t.generate()
		case stageSynthesizing:
			res, st = t.synthesize()
		case stageDone:
			return res
		}
		if res != nil {
			return res
		}
	}
}

// turn carries the state of one pipeline run.
type turn struct {
	svc       *Service
	ctx       context.Context
	sessionID string // empty for stateless queries
	audio     []byte

	transcription string
	response      string
	historyLen    *int

	// prior turns, captured before the current user message is appended;
	// this is the context handed to the LLM stage
	prior []domain.ConversationMessage
}

func (t *turn) sessionScoped() bool {
	return t.sessionID != ""
}

// preflight short-circuits to DONE when any adapter is unconfigured.
func (t *turn) preflight() *domain.PipelineResult {
	if t.svc.AllConfigured() {
		return nil
	}
	log.Printf("ERROR: missing API keys, refusing pipeline run")
	if t.sessionScoped() {
		t.historyLen = t.currentLength()
	}
	return t.fail(domain.ErrorAPIKeysMissing, placeholderNoKeys, domain.Fallback(domain.ErrorAPIKeysMissing))
}

// transcribe invokes the STT adapter. Failure is a hard stop: the LLM and
// TTS stages never run. On success in a session turn, the user message is
// appended before the LLM stage, with only prior turns kept as context.
func (t *turn) transcribe() (*domain.PipelineResult, stage) {
	ctx, cancel := context.WithTimeout(t.ctx, t.svc.config.STTTimeout)
	defer cancel()

	transcript, err := t.svc.stt.Transcribe(ctx, t.audio)
	if err != nil {
		log.Printf("ERROR: transcription failed: %v", err)
		if t.sessionScoped() {
			t.historyLen = t.currentLength()
		}
		return t.fail(domain.ErrorSTTFailure, placeholderNoTranscript, domain.Fallback(domain.ErrorSTTFailure)), stageDone
	}
	t.transcription = transcript.Text

	if t.sessionScoped() {
		prior, err := t.svc.sessions.Get(t.ctx, t.sessionID)
		if err != nil {
			log.Printf("WARN: failed to read session history: %v", err)
		}
		t.prior = prior

		// A cancelled request must leave no partial session mutation.
		if t.ctx.Err() != nil {
			return t.generalFailure(), stageDone
		}

		n, err := t.svc.sessions.Append(t.ctx, t.sessionID, domain.ConversationMessage{
			Role:    domain.RoleUser,
			Content: t.transcription,
		})
		if err != nil {
			log.Printf("ERROR: failed to append user message: %v", err)
			return t.generalFailure(), stageDone
		}
		t.historyLen = &n
	}

	return nil, stageGenerating
}

// generate invokes the LLM adapter with the prior turns as context and the
// transcription as the prompt. On failure the TTS stage is skipped and the
// transcription from the previous stage is preserved in the envelope.
func (t *turn) generate() (*domain.PipelineResult, stage) {
	ctx, cancel := context.WithTimeout(t.ctx, t.svc.config.LLMTimeout)
	defer cancel()

	response, err := t.svc.llm.Generate(ctx, t.transcription, t.prior)
	if err != nil {
		log.Printf("ERROR: LLM generation failed: %v", err)
		return t.fail(domain.ErrorLLMFailure, t.transcription, domain.Fallback(domain.ErrorLLMFailure)), stageDone
	}
	t.response = response

	if t.sessionScoped() {
		if t.ctx.Err() != nil {
			return t.generalFailure(), stageDone
		}
		n, err := t.svc.sessions.Append(t.ctx, t.sessionID, domain.ConversationMessage{
			Role:    domain.RoleAssistant,
			Content: t.response,
		})
		if err != nil {
			log.Printf("ERROR: failed to append assistant message: %v", err)
			return t.generalFailure(), stageDone
		}
		t.historyLen = &n
	}

	return nil, stageSynthesizing
}

// synthesize invokes the TTS adapter on the LLM's text. On failure the
// fallback audio is substituted but the successful upstream transcription
// and LLM response are preserved and surfaced.
func (t *turn) synthesize() (*domain.PipelineResult, stage) {
	ctx, cancel := context.WithTimeout(t.ctx, t.svc.config.TTSTimeout)
	defer cancel()

	result, err := t.svc.tts.Synthesize(ctx, t.response, t.svc.defaultVoice())
	if err != nil {
		log.Printf("ERROR: speech synthesis failed: %v", err)
		return &domain.PipelineResult{
			SessionID:     t.sessionID,
			AudioURL:      t.svc.tts.FallbackAudio(t.ctx, domain.Fallback(domain.ErrorTTSFailure)),
			Transcription: t.transcription,
			LLMResponse:   t.response,
			HistoryLength: t.historyLen,
			Error:         domain.ErrorTTSFailure,
			Success:       false,
		}, stageDone
	}

	return &domain.PipelineResult{
		SessionID:     t.sessionID,
		AudioURL:      result.AudioURL,
		Transcription: t.transcription,
		LLMResponse:   t.response,
		HistoryLength: t.historyLen,
		Success:       true,
	}, stageDone
}

// fail assembles a failure envelope with fallback audio for the category.
func (t *turn) fail(category domain.ErrorCategory, transcription, llmResponse string) *domain.PipelineResult {
	return &domain.PipelineResult{
		SessionID:     t.sessionID,
		AudioURL:      t.svc.tts.FallbackAudio(t.ctx, domain.Fallback(category)),
		Transcription: transcription,
		LLMResponse:   llmResponse,
		HistoryLength: t.historyLen,
		Error:         category,
		Success:       false,
	}
}

// generalFailure is the catch-all terminal branch for unexpected errors.
func (t *turn) generalFailure() *domain.PipelineResult {
	if t.sessionScoped() && t.historyLen == nil {
		t.historyLen = t.currentLength()
	}
	return t.fail(domain.ErrorGeneralFailure, placeholderError, domain.Fallback(domain.ErrorGeneralFailure))
}

// currentLength reads the session length best-effort for envelopes built
// before any append happened.
func (t *turn) currentLength() *int {
	history, err := t.svc.sessions.Get(t.ctx, t.sessionID)
	if err != nil {
		log.Printf("WARN: failed to read session length: %v", err)
	}
	n := len(history)
	return &n
}
