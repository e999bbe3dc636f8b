package session

import (
	"net/http"
	"time"

	"bizportal/pkg/utils"

	"go.uber.org/zap"
)

type Manager struct {
	codec   *Codec
	revoker Revoker
	name    string
	ttl     time.Duration
	secure  bool
	log     *zap.Logger
}

func NewManager(config utils.SessionConfig, revoker Revoker, log *zap.Logger) *Manager {
	if revoker == nil {
		revoker = NopRevoker{}
	}
	ttl := config.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{
		codec:   NewCodec(config.Secret),
		revoker: revoker,
		name:    config.CookieName,
		ttl:     ttl,
		secure:  config.Secure,
		log:     log.With(zap.String("component", "session")),
	}
}

// Load returns the session carried by r. A missing, tampered, expired or
// revoked cookie yields a new anonymous session.
func (m *Manager) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(m.name)
	if err != nil || cookie.Value == "" {
		return newSession(m.ttl, time.Now())
	}

	s, err := m.codec.Decode(cookie.Value)
	if err != nil {
		m.log.Debug("Discarding session cookie", zap.Error(err))
		return newSession(m.ttl, time.Now())
	}

	revoked, err := m.revoker.IsRevoked(r.Context(), s.ID)
	if err != nil {
		m.log.Warn("Session revocation check failed", zap.Error(err))
		return newSession(m.ttl, time.Now())
	}
	if revoked {
		return newSession(m.ttl, time.Now())
	}

	s.ttl = m.ttl
	return s
}

// Save writes s to the response cookie and revokes any ids s rotated away
// from.
func (m *Manager) Save(w http.ResponseWriter, r *http.Request, s *Session) error {
	for _, id := range s.retired {
		if err := m.revoker.Revoke(r.Context(), id, s.ExpiresAt); err != nil {
			m.log.Warn("Failed to revoke rotated session", zap.Error(err))
		}
	}
	s.retired = nil

	value, err := m.codec.Encode(s)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.name,
		Value:    value,
		Path:     "/",
		Expires:  s.ExpiresAt,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy revokes s and returns an anonymous session that keeps only the
// flashes. The caller saves it.
func (m *Manager) Destroy(r *http.Request, s *Session) *Session {
	if err := m.revoker.Revoke(r.Context(), s.ID, s.ExpiresAt); err != nil {
		m.log.Warn("Failed to revoke session on logout", zap.Error(err))
	}

	fresh := newSession(m.ttl, time.Now())
	fresh.flashes = s.flashes
	return fresh
}
