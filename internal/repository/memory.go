package repository

import (
	"context"
	"sync"

	"github.com/MeghanathMC/Murf-30-Days-AI-Voice-Agent/internal/domain"
)

// MemoryStore is the in-memory SessionStore. History lives for the process
// lifetime; there is no expiry and no durability across restarts.
type MemoryStore struct {
	maxHistory int

	mu       sync.Mutex
	sessions map[string]*memorySession
}

// memorySession holds one session's messages behind its own lock, so
// concurrent turns on the same session id serialize while turns on
// different sessions do not contend.
type memorySession struct {
	mu       sync.Mutex
	messages []domain.ConversationMessage
}

var _ SessionStore = (*MemoryStore)(nil)

// NewMemoryStore creates an in-memory store retaining at most maxHistory
// messages per session.
func NewMemoryStore(maxHistory int) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		sessions:   make(map[string]*memorySession),
	}
}

// Get returns a copy of the session history. Absent sessions read as empty.
func (s *MemoryStore) Get(ctx context.Context, sessionID string) ([]domain.ConversationMessage, error) {
	s.mu.Lock()
	sess := s.sessions[sessionID]
	s.mu.Unlock()

	if sess == nil {
		return nil, nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	out := make([]domain.ConversationMessage, len(sess.messages))
	copy(out, sess.messages)
	return out, nil
}

// Append adds a message and evicts the oldest entries beyond the window.
func (s *MemoryStore) Append(ctx context.Context, sessionID string, msg domain.ConversationMessage) (int, error) {
	s.mu.Lock()
	sess := s.sessions[sessionID]
	if sess == nil {
		sess = &memorySession{}
		s.sessions[sessionID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.messages = append(sess.messages, msg)
	if len(sess.messages) > s.maxHistory {
		sess.messages = sess.messages[len(sess.messages)-s.maxHistory:]
	}
	return len(sess.messages), nil
}

// Clear removes the session. Idempotent.
func (s *MemoryStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
