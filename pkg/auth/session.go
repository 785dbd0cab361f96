package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"sync"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Session represents one signed-in user for the lifetime of the cookie.
type Session struct {
	ID        string    `json:"id"`
	User      UserInfo  `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

type sessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*Session)}
}

func (s *sessionStore) Create(user UserInfo, ttl time.Duration) (*Session, error) {
	id, err := randomString(32)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	session := &Session{
		ID:        id,
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	s.sessions[id] = session
	s.mu.Unlock()

	return session, nil
}

func (s *sessionStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	if time.Now().After(session.ExpiresAt) {
		s.Delete(id)
		return nil, ErrSessionExpired
	}
	return session, nil
}

func (s *sessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// stateStore holds pending login states with their nonces. States are
// single-use: Consume removes them.
type stateStore struct {
	mu   sync.Mutex
	data map[string]stateData
}

type stateData struct {
	nonce     string
	expiresAt time.Time
}

func newStateStore() *stateStore {
	return &stateStore{data: make(map[string]stateData)}
}

func (s *stateStore) Save(state, nonce string, expiresAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Opportunistic sweep keeps abandoned logins from accumulating.
	now := time.Now()
	for key, value := range s.data {
		if now.After(value.expiresAt) {
			delete(s.data, key)
		}
	}

	s.data[state] = stateData{nonce: nonce, expiresAt: expiresAt}
}

func (s *stateStore) Consume(state string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[state]
	if !ok {
		return "", false
	}
	delete(s.data, state)

	if time.Now().After(value.expiresAt) {
		return "", false
	}
	return value.nonce, true
}

func randomString(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
