// Package session implements the admin session guard for gift lists.
//
// This is a convenience gate, not a security boundary: the credentials it
// compares live in the list document itself and the session record is an
// unsigned marker with a 24 hour lifetime. It sits behind the Guard interface
// so a real server-verified mechanism can replace it without touching
// callers.
package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"giftlist-api/internal/models"

	"github.com/google/uuid"
)

// TTL is how long an admin session stays valid after authentication.
const TTL = 24 * time.Hour

var ErrInvalidCredentials = errors.New("invalid email or access code")

// Session is the per-list authentication record.
type Session struct {
	ListID    uuid.UUID `json:"listId"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	Timestamp time.Time `json:"timestamp"`
}

// ExpiresAt returns the instant the session stops being valid.
func (s *Session) ExpiresAt() time.Time {
	return s.Timestamp.Add(TTL)
}

// Guard gates owner-only actions behind a per-list authenticated session.
type Guard interface {
	// Authenticate checks the supplied credentials against the list and, on
	// success, establishes a session for the list. Email is compared trimmed
	// and case-insensitively; the access code is compared trimmed and exact.
	Authenticate(listID uuid.UUID, email, code string, list *models.List) (*Session, error)

	// CheckSession reports whether an unexpired session exists for the list.
	// Expired records are discarded on sight.
	CheckSession(listID uuid.UUID) bool

	// Validate reports whether the given token belongs to an unexpired
	// session for the list.
	Validate(listID uuid.UUID, token string) bool

	// Logout discards the session for the list, if any.
	Logout(listID uuid.UUID)
}

// MemoryGuard keeps session records in process memory, one per list.
type MemoryGuard struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	now      func() time.Time
}

// NewMemoryGuard creates an empty in-memory session guard.
func NewMemoryGuard() *MemoryGuard {
	return &MemoryGuard{
		sessions: make(map[uuid.UUID]*Session),
		now:      time.Now,
	}
}

// Authenticate implements Guard.
func (g *MemoryGuard) Authenticate(listID uuid.UUID, email, code string, list *models.List) (*Session, error) {
	emailOK := strings.EqualFold(strings.TrimSpace(email), strings.TrimSpace(list.OwnerEmail))
	codeOK := strings.TrimSpace(code) == strings.TrimSpace(list.AccessCode)
	if !emailOK || !codeOK {
		return nil, ErrInvalidCredentials
	}

	sess := &Session{
		ListID:    listID,
		Email:     email,
		Token:     uuid.NewString(),
		Timestamp: g.now(),
	}

	g.mu.Lock()
	g.sessions[listID] = sess
	g.mu.Unlock()

	return sess, nil
}

// CheckSession implements Guard.
func (g *MemoryGuard) CheckSession(listID uuid.UUID) bool {
	sess := g.lookup(listID)
	return sess != nil
}

// Validate implements Guard.
func (g *MemoryGuard) Validate(listID uuid.UUID, token string) bool {
	sess := g.lookup(listID)
	return sess != nil && token != "" && sess.Token == token
}

// Logout implements Guard.
func (g *MemoryGuard) Logout(listID uuid.UUID) {
	g.mu.Lock()
	delete(g.sessions, listID)
	g.mu.Unlock()
}

// lookup returns the live session for a list, removing it when expired.
func (g *MemoryGuard) lookup(listID uuid.UUID) *Session {
	g.mu.RLock()
	sess, ok := g.sessions[listID]
	g.mu.RUnlock()
	if !ok {
		return nil
	}

	if g.now().Sub(sess.Timestamp) >= TTL {
		g.mu.Lock()
		// Re-check under the write lock; a fresh login may have replaced it.
		if cur, ok := g.sessions[listID]; ok && cur == sess {
			delete(g.sessions, listID)
		}
		g.mu.Unlock()
		return nil
	}

	return sess
}
