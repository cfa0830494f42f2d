package auth

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionNotFound is returned for unknown or expired session tokens.
var ErrSessionNotFound = errors.New("session not found")

// Session binds a token to a user until it expires.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
}

// SessionStore abstracts session persistence behind get/set/destroy so the
// in-memory implementation can be swapped for a database-backed one without
// touching the handlers.
type SessionStore interface {
	Get(token string) (*Session, error)
	Set(session *Session) error
	Destroy(token string) error
}

// MemoryStore keeps sessions in a mutex-guarded map. Sessions do not survive
// a process restart, which matches the cookie-session behavior this replaces.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

func (s *MemoryStore) Get(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.Destroy(token)
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *MemoryStore) Set(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.Token] = session
	return nil
}

func (s *MemoryStore) Destroy(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// NewSession mints a session for the user with a fresh random token.
func NewSession(userID string, ttl time.Duration) *Session {
	return &Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
}
