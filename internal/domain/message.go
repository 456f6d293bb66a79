// Package domain defines the core domain models for the voice agent.
package domain

// MessageRole identifies the author of a conversation message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ConversationMessage is a single entry in a session transcript.
// Messages are ordered chronologically; the order carries turn semantics.
type ConversationMessage struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// Transcript is the output of the speech-to-text stage.
type Transcript struct {
	Text       string   `json:"transcription"`
	Confidence *float64 `json:"confidence,omitempty"`
}
