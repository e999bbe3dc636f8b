package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bizportal/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() utils.SessionConfig {
	return utils.SessionConfig{
		Secret:     "test-secret",
		CookieName: "sid",
		TTL:        time.Hour,
	}
}

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

// roundTrip saves s and returns a request carrying the resulting cookie.
func roundTrip(t *testing.T, m *Manager, s *Session) *http.Request {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Save(rec, httptest.NewRequest(http.MethodGet, "/", nil), s))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	return req
}

func TestManager_LoadWithoutCookie(t *testing.T) {
	m := NewManager(testConfig(), nil, zap.NewNop())

	s := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, s.ID)
	assert.False(t, s.IsAuthenticated())
	assert.False(t, s.HasPendingLogin())
}

func TestManager_PendingThenPromoted(t *testing.T) {
	m := NewManager(testConfig(), nil, zap.NewNop())

	s := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	anonID := s.ID

	s.BeginLogin(42, "sales", "")
	assert.NotEqual(t, anonID, s.ID)
	assert.False(t, s.IsAuthenticated())

	loaded := m.Load(roundTrip(t, m, s))
	assert.Equal(t, int64(42), loaded.PendingUserID)
	assert.Equal(t, "sales", loaded.PendingRole)
	assert.False(t, loaded.IsAuthenticated())

	pendingID := loaded.ID
	loaded.Promote(42, "alice", "sales")
	assert.NotEqual(t, pendingID, loaded.ID)

	final := m.Load(roundTrip(t, m, loaded))
	assert.True(t, final.IsAuthenticated())
	assert.Equal(t, "alice", final.Username)
	assert.False(t, final.HasPendingLogin())
}

func TestManager_TamperedCookieIsAnonymous(t *testing.T) {
	m := NewManager(testConfig(), nil, zap.NewNop())

	s := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	s.Promote(1, "alice", "sales")
	req := roundTrip(t, m, s)

	other := NewManager(utils.SessionConfig{Secret: "other", CookieName: "sid", TTL: time.Hour}, nil, zap.NewNop())
	assert.False(t, other.Load(req).IsAuthenticated())

	forged := httptest.NewRequest(http.MethodGet, "/", nil)
	forged.AddCookie(&http.Cookie{Name: "sid", Value: "eyJhbGciOiJub25lIn0.eyJsb2dnZWRfaW4iOnRydWV9."})
	assert.False(t, m.Load(forged).IsAuthenticated())
}

func TestCodec_RejectsExpired(t *testing.T) {
	c := NewCodec("k")
	s := &Session{ID: "abc", ExpiresAt: time.Now().Add(-time.Minute), LoggedIn: true, UserID: 1}

	raw, err := c.Encode(s)
	require.NoError(t, err)

	_, err = c.Decode(raw)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSession_FlashesDrain(t *testing.T) {
	m := NewManager(testConfig(), nil, zap.NewNop())

	s := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	s.AddFlash("Invalid credentials.")
	s.BeginLogin(3, "other", "")

	loaded := m.Load(roundTrip(t, m, s))
	assert.Equal(t, []string{"Invalid credentials."}, loaded.Flashes())
	assert.Empty(t, loaded.Flashes())
}

func TestManager_DestroyRevokes(t *testing.T) {
	mr, client := setupMiniredis(t)
	m := NewManager(testConfig(), NewRedisRevoker(client), zap.NewNop())

	s := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	s.Promote(9, "carol", "partner")
	req := roundTrip(t, m, s)
	require.True(t, m.Load(req).IsAuthenticated())

	fresh := m.Destroy(req, s)
	assert.False(t, fresh.IsAuthenticated())
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.True(t, mr.Exists("session:revoked:"+s.ID))

	// The old cookie no longer authenticates.
	assert.False(t, m.Load(req).IsAuthenticated())
}

func TestManager_RotationRevokesPreviousID(t *testing.T) {
	mr, client := setupMiniredis(t)
	m := NewManager(testConfig(), NewRedisRevoker(client), zap.NewNop())

	s := m.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	s.BeginLogin(5, "finance", "")
	pendingReq := roundTrip(t, m, s)
	pendingID := s.ID

	s.Promote(5, "erin", "finance")
	roundTrip(t, m, s)

	assert.True(t, mr.Exists("session:revoked:"+pendingID))
	assert.False(t, m.Load(pendingReq).HasPendingLogin())
}

func TestRedisRevoker_TTL(t *testing.T) {
	mr, client := setupMiniredis(t)
	r := NewRedisRevoker(client)
	ctx := context.Background()

	require.NoError(t, r.Revoke(ctx, "abc", time.Now().Add(time.Minute)))
	revoked, err := r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	// Already expired sessions need no entry.
	require.NoError(t, r.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	assert.False(t, mr.Exists("session:revoked:old"))
}

func TestContext(t *testing.T) {
	assert.Nil(t, FromContext(context.Background()))

	s := &Session{ID: "x"}
	assert.Same(t, s, FromContext(WithSession(context.Background(), s)))
}
