package domain

// ErrorCategory classifies a pipeline failure. It drives fallback-message
// selection and is surfaced to the caller in the response envelope; it is a
// classification, not a transport error.
type ErrorCategory string

const (
	ErrorSTTFailure     ErrorCategory = "stt_failure"
	ErrorLLMFailure     ErrorCategory = "llm_failure"
	ErrorTTSFailure     ErrorCategory = "tts_failure"
	ErrorAPIKeysMissing ErrorCategory = "api_keys_missing"
	ErrorGeneralFailure ErrorCategory = "general_failure"
)

// Pre-written spoken apologies, one per failure category.
const (
	fallbackSTT     = "I'm having trouble understanding your voice right now. Please try again."
	fallbackLLM     = "I'm having trouble processing your request. Please try again."
	fallbackTTS     = "I'm having trouble speaking right now. Please try again."
	fallbackGeneral = "I'm experiencing technical difficulties. Please try again later."
	fallbackAPIKeys = "I'm not properly configured. Please check the server setup."
)

// Fallback returns the apology message for a failure category. It is total:
// unrecognized categories get the general-failure message.
func Fallback(category ErrorCategory) string {
	switch category {
	case ErrorSTTFailure:
		return fallbackSTT
	case ErrorLLMFailure:
		return fallbackLLM
	case ErrorTTSFailure:
		return fallbackTTS
	case ErrorAPIKeysMissing:
		return fallbackAPIKeys
	default:
		return fallbackGeneral
	}
}
