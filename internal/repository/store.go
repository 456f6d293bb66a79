// Package repository defines session-history storage and implementations.
package repository

import (
	"context"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// SessionStore persists per-session conversation history.
//
// Sessions are created implicitly: Get on an unseen session id returns an
// empty history, and the session materializes on first Append. Append
// enforces the sliding-window invariant, evicting the oldest messages so
// at most the configured maximum remain. Implementations must serialize
// read-modify-write access per session id so concurrent turns on the same
// session cannot lose appends or evictions.
type SessionStore interface {
	// Get returns the session history in chronological order. Absent
	// sessions read as empty; no entry is created.
	Get(ctx context.Context, sessionID string) ([]domain.ConversationMessage, error)

	// Append adds a message, applies window eviction, and returns the
	// resulting history length.
	Append(ctx context.Context, sessionID string, msg domain.ConversationMessage) (int, error)

	// Clear removes the session entirely. Clearing an absent session is
	// not an error.
	Clear(ctx context.Context, sessionID string) error

	// Close releases any underlying resources.
	Close() error
}
