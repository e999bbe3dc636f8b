package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

type claims struct {
	jwt.RegisteredClaims
	LoggedIn      bool     `json:"logged_in,omitempty"`
	UserID        int64    `json:"user_id,omitempty"`
	Username      string   `json:"username,omitempty"`
	Role          string   `json:"role,omitempty"`
	PendingUserID int64    `json:"pending_user_id,omitempty"`
	PendingRole   string   `json:"pending_role,omitempty"`
	PendingCode   string   `json:"pending_code,omitempty"`
	Flashes       []string `json:"flashes,omitempty"`
}

// Codec signs and verifies session cookies.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

func (c *Codec) Encode(s *Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        s.ID,
			ExpiresAt: jwt.NewNumericDate(s.ExpiresAt),
		},
		LoggedIn:      s.LoggedIn,
		UserID:        s.UserID,
		Username:      s.Username,
		Role:          s.Role,
		PendingUserID: s.PendingUserID,
		PendingRole:   s.PendingRole,
		PendingCode:   s.PendingCode,
		Flashes:       s.flashes,
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Decode verifies signature and expiry.
func (c *Codec) Decode(raw string) (*Session, error) {
	var cl claims
	token, err := jwt.ParseWithClaims(raw, &cl, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || cl.ID == "" {
		return nil, ErrInvalidToken
	}

	s := &Session{
		ID:            cl.ID,
		ExpiresAt:     cl.ExpiresAt.Time,
		LoggedIn:      cl.LoggedIn,
		UserID:        cl.UserID,
		Username:      cl.Username,
		Role:          cl.Role,
		PendingUserID: cl.PendingUserID,
		PendingRole:   cl.PendingRole,
		PendingCode:   cl.PendingCode,
		flashes:       cl.Flashes,
	}
	return s, nil
}
