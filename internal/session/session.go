// Package session keeps login state in an HS256-signed cookie. A session
// moves Anonymous -> PasswordVerified -> Authenticated; the authenticated
// fields are only ever set through Promote.
package session

import (
	"context"
	"time"

	"bizportal/pkg/utils"
)

type Session struct {
	ID        string
	ExpiresAt time.Time

	LoggedIn bool
	UserID   int64
	Username string
	Role     string

	PendingUserID int64
	PendingRole   string
	PendingCode   string

	flashes []string
	retired []string
	ttl     time.Duration
}

func newSession(ttl time.Duration, now time.Time) *Session {
	return &Session{
		ID:        utils.GenerateSessionID(),
		ExpiresAt: now.Add(ttl),
		ttl:       ttl,
	}
}

// IsAuthenticated reports whether the session completed the second factor.
func (s *Session) IsAuthenticated() bool {
	return s.LoggedIn && s.UserID != 0
}

// HasPendingLogin reports whether a password was verified and a code is
// awaited.
func (s *Session) HasPendingLogin() bool {
	return s.PendingUserID != 0
}

// BeginLogin discards any previous identity and records a pending login
// under a fresh session id. Flashes survive.
func (s *Session) BeginLogin(userID int64, role, code string) {
	s.rotate()
	s.clearIdentity()
	s.PendingUserID = userID
	s.PendingRole = role
	s.PendingCode = code
}

// Promote turns a pending login into an authenticated session under a
// fresh session id.
func (s *Session) Promote(userID int64, username, role string) {
	s.rotate()
	s.clearIdentity()
	s.LoggedIn = true
	s.UserID = userID
	s.Username = username
	s.Role = role
}

func (s *Session) AddFlash(msg string) {
	s.flashes = append(s.flashes, msg)
}

// Flashes returns and clears queued messages.
func (s *Session) Flashes() []string {
	out := s.flashes
	s.flashes = nil
	if out == nil {
		return []string{}
	}
	return out
}

func (s *Session) rotate() {
	if s.ID != "" {
		s.retired = append(s.retired, s.ID)
	}
	s.ID = utils.GenerateSessionID()
	s.ExpiresAt = time.Now().Add(s.ttl)
}

func (s *Session) clearIdentity() {
	s.LoggedIn = false
	s.UserID = 0
	s.Username = ""
	s.Role = ""
	s.PendingUserID = 0
	s.PendingRole = ""
	s.PendingCode = ""
}

type ctxKey struct{}

func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the request session, or nil outside the middleware.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}
