package domain

// PipelineResult is the response envelope produced by every pipeline run.
// AudioURL is always non-empty: on failure it points at fallback audio, so
// the caller always receives something playable even when Success is false.
type PipelineResult struct {
	SessionID     string        `json:"session_id,omitempty"`
	AudioURL      string        `json:"audio_url"`
	Transcription string        `json:"transcription"`
	LLMResponse   string        `json:"llm_response"`
	HistoryLength *int          `json:"history_length,omitempty"`
	Error         ErrorCategory `json:"error,omitempty"`
	Success       bool          `json:"success"`
}

// EchoResult is the envelope for the transcribe-and-repeat operation, which
// skips the language-model stage.
type EchoResult struct {
	AudioURL      string        `json:"audio_url"`
	Transcription string        `json:"transcription"`
	Error         ErrorCategory `json:"error,omitempty"`
	Success       bool          `json:"success"`
}
