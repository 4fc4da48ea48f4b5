// ABOUTME: In-memory conversation store: ordered message history plus session id.
// ABOUTME: History is the source of truth for the transcript; append-only until reset.

package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389/rag-console/internal/api"
)

// Role identifies who authored a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// contextWindowSize bounds how many prior turns are sent with a new request.
const contextWindowSize = 10

// Message is one transcript entry. Immutable once appended; the store never
// edits or removes individual messages, only wholesale-clears on Reset.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Sources   []api.SourceInfo
	Timestamp time.Time
}

// NewMessage builds a Message with a fresh id and the current time.
func NewMessage(role Role, content string, sources []api.SourceInfo) Message {
	return Message{
		ID:        uuid.New().String(),
		Role:      role,
		Content:   content,
		Sources:   sources,
		Timestamp: time.Now(),
	}
}

// Store owns the ordered message history and the backend-assigned session id.
// Safe for concurrent use: turn completions append from goroutines while the
// UI reads snapshots.
type Store struct {
	mu        sync.RWMutex
	messages  []Message
	sessionID string
}

// NewStore creates an empty store with no session id.
func NewStore() *Store {
	return &Store{}
}

// Append adds a message to the history. There is no bound on stored length;
// only the context window sent to the backend is bounded.
func (s *Store) Append(msg Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
}

// Messages returns a snapshot copy of the full history for rendering.
func (s *Store) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len reports how many messages the history holds.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// ContextWindow returns the last messages authored by the user or assistant,
// at most ten, as role/content pairs in history order. Sources and timestamps
// never travel back to the backend.
func (s *Store) ContextWindow() []api.MessageItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	window := make([]api.MessageItem, 0, contextWindowSize)
	for i := len(s.messages) - 1; i >= 0 && len(window) < contextWindowSize; i-- {
		msg := s.messages[i]
		if msg.Role != RoleUser && msg.Role != RoleAssistant {
			continue
		}
		window = append(window, api.MessageItem{Role: string(msg.Role), Content: msg.Content})
	}

	// Collected newest-first; restore history order.
	for i, j := 0, len(window)-1; i < j; i, j = i+1, j-1 {
		window[i], window[j] = window[j], window[i]
	}
	return window
}

// SessionID returns the backend-assigned session id, or "" before the first
// session-aware response arrives.
func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// SetSessionID overwrites the session id unconditionally. Last response wins;
// interleaved responses carrying different ids are not reconciled.
func (s *Store) SetSessionID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = id
}

// Reset clears the history and session id. Idempotent.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	s.sessionID = ""
}
