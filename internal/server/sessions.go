package server

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// sessionStore tracks issued session tokens in memory. Tokens expire after
// the configured max age; restarting the process signs everyone out, which
// is acceptable for a single fixed-credential display login.
type sessionStore struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	maxAge time.Duration
}

func newSessionStore(maxAge time.Duration) *sessionStore {
	return &sessionStore{
		tokens: make(map[string]time.Time),
		maxAge: maxAge,
	}
}

// Issue creates and records a fresh opaque session token. Issuing also
// sweeps expired tokens, so abandoned sessions don't accumulate for the
// full max age.
func (s *sessionStore) Issue() string {
	token := uuid.NewString()
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for t, expiry := range s.tokens {
		if now.After(expiry) {
			delete(s.tokens, t)
		}
	}

	s.tokens[token] = now.Add(s.maxAge)
	return token
}

// Validate reports whether the token is live, dropping it when expired.
func (s *sessionStore) Validate(token string) bool {
	if token == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiry, ok := s.tokens[token]
	if !ok {
		return false
	}
	if time.Now().After(expiry) {
		delete(s.tokens, token)
		return false
	}
	return true
}

// Revoke forgets a token.
func (s *sessionStore) Revoke(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
}
