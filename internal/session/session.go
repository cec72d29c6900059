// Package session holds the bearer token and user identity of the signed-in user.
// It is the only state shared between the HTTP client and the store, and its
// Storage hooks are its only coupling to persistence.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is safe for concurrent use.
type Session struct {
	mu        sync.RWMutex
	storage   Storage
	token     string
	userID    int64
	expiresAt time.Time
	now       func() time.Time
}

// New returns an empty session backed by storage. A nil storage keeps the
// session in memory only.
func New(storage Storage) *Session {
	if storage == nil {
		storage = &MemoryStorage{}
	}
	return &Session{storage: storage, now: time.Now}
}

// Restore loads the persisted session. An expired or malformed token is treated
// as absent and removed from storage.
func (s *Session) Restore() error {
	d, err := s.storage.Load()
	if err != nil {
		return err
	}
	if d.Token == "" {
		return nil
	}
	exp := tokenExpiry(d.Token)
	if !exp.IsZero() && !s.now().Before(exp) {
		return s.storage.Clear()
	}

	s.mu.Lock()
	s.token, s.userID, s.expiresAt = d.Token, d.UserID, exp
	s.mu.Unlock()
	return nil
}

// Set records a fresh login and persists it. The in-memory session is updated
// even when persisting fails.
func (s *Session) Set(token string, userID int64) error {
	s.mu.Lock()
	s.token, s.userID, s.expiresAt = token, userID, tokenExpiry(token)
	s.mu.Unlock()
	return s.storage.Save(Data{Token: token, UserID: userID})
}

// Clear forgets the session in memory and in storage.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.token, s.userID, s.expiresAt = "", 0, time.Time{}
	s.mu.Unlock()
	return s.storage.Clear()
}

// Token returns the bearer token, or "" when signed out or expired.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.expiredLocked() {
		return ""
	}
	return s.token
}

// UserID returns the signed-in user's id, or 0.
func (s *Session) UserID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.expiredLocked() {
		return 0
	}
	return s.userID
}

// ExpiresAt returns the token's expiry; zero when the token carries none.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Valid reports whether a non-expired token is present.
func (s *Session) Valid() bool {
	return s.Token() != ""
}

func (s *Session) expiredLocked() bool {
	return !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt)
}

// tokenExpiry reads the exp claim without verifying the signature; the client
// never holds the signing key.
func tokenExpiry(token string) time.Time {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
