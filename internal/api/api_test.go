package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"friendbook/internal/api"
	"friendbook/internal/app/service"
	"friendbook/internal/common/security"
	"friendbook/internal/domain/model"
	"friendbook/internal/domain/repository"
	"friendbook/internal/platform/config"
	"friendbook/internal/platform/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cookieName = "friendbook_session"

type testEnv struct {
	server   *httptest.Server
	sessions session.Store
	tokens   *security.TokenService
}

func setupServer(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:         "test-secret",
		TokenTTL:          time.Hour,
		SessionTTL:        time.Hour,
		SessionCookieName: cookieName,
	}
	tokens := security.NewTokenService(cfg.JWTSecret)
	sessions := session.NewMemoryStore()
	users := repository.NewMemoryUserRepository(security.PlainComparer{})
	friends := repository.NewMemoryFriendRepository()

	authService := service.NewAuthService(users, tokens, sessions, cfg.TokenTTL, cfg.SessionTTL)
	friendService := service.NewFriendService(friends)

	srv := httptest.NewServer(api.NewRouter(cfg, authService, friendService, sessions, tokens))
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, sessions: sessions, tokens: tokens}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

// envelope covers every response shape the API produces.
type envelope struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	Data           json.RawMessage `json:"data"`
	Count          *int            `json:"count"`
	ChangedFields  []string        `json:"changedFields"`
	RemainingCount *int            `json:"remainingCount"`
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (*http.Response, envelope) {
	t.Helper()
	var reqBody bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&reqBody).Encode(body))
	}
	req, err := http.NewRequest(method, url, &reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func registerAndLogin(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()
	creds := map[string]string{"username": "alice", "password": "pw"}

	resp, env := doJSON(t, client, http.MethodPost, baseURL+"/register", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, env.Success)

	resp, env = doJSON(t, client, http.MethodPost, baseURL+"/login", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, env.Success)
}

func TestHealth(t *testing.T) {
	env := setupServer(t)
	client := newClient(t)

	resp, body := doJSON(t, client, http.MethodGet, env.server.URL+"/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
}

func TestRegister(t *testing.T) {
	env := setupServer(t)
	client := newClient(t)

	resp, body := doJSON(t, client, http.MethodPost, env.server.URL+"/register",
		map[string]string{"username": "alice", "password": "pw"})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, body.Success)

	// Missing fields
	resp, body = doJSON(t, client, http.MethodPost, env.server.URL+"/register",
		map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, body.Success)

	// Duplicate username
	resp, body = doJSON(t, client, http.MethodPost, env.server.URL+"/register",
		map[string]string{"username": "alice", "password": "other"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, body.Success)
}

func TestLogin(t *testing.T) {
	env := setupServer(t)
	client := newClient(t)

	_, _ = doJSON(t, client, http.MethodPost, env.server.URL+"/register",
		map[string]string{"username": "alice", "password": "pw"})

	resp, body := doJSON(t, client, http.MethodPost, env.server.URL+"/login",
		map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, body.Success)

	resp, body = doJSON(t, client, http.MethodPost, env.server.URL+"/login",
		map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = doJSON(t, client, http.MethodPost, env.server.URL+"/login",
		map[string]string{"username": "alice", "password": "pw"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == cookieName {
			found = true
			assert.True(t, c.HttpOnly)
			assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
			assert.False(t, c.Secure)
		}
	}
	assert.True(t, found, "login must set the session cookie")
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	env := setupServer(t)
	client := newClient(t)

	resp, body := doJSON(t, client, http.MethodGet, env.server.URL+"/friends", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, body.Success)

	resp, _ = doJSON(t, client, http.MethodPost, env.server.URL+"/friends",
		map[string]string{"email": "a@b.com", "firstName": "A", "lastName": "B", "dob": "01-01-2000"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = doJSON(t, client, http.MethodDelete, env.server.URL+"/friends/a@b.com", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestExpiredTokenForbidden(t *testing.T) {
	env := setupServer(t)

	// Session is live but holds a token that has already expired.
	expiredToken, err := env.tokens.Issue("alice", "p", -time.Minute)
	require.NoError(t, err)
	require.NoError(t, env.sessions.Create(context.Background(), "sid-expired-token", model.Session{
		Username:  "alice",
		Token:     expiredToken,
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/friends", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "sid-expired-token"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestExpiredSessionUnauthorized(t *testing.T) {
	env := setupServer(t)

	token, err := env.tokens.Issue("alice", "p", time.Hour)
	require.NoError(t, err)
	require.NoError(t, env.sessions.Create(context.Background(), "sid-expired-session", model.Session{
		Username:  "alice",
		Token:     token,
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/friends", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: "sid-expired-session"})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestFriendCRUDFlow(t *testing.T) {
	env := setupServer(t)
	client := newClient(t)
	registerAndLogin(t, client, env.server.URL)
	base := env.server.URL + "/friends"

	// Empty store
	resp, body := doJSON(t, client, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body.Count)
	assert.Equal(t, 0, *body.Count)

	// Create
	friend := map[string]string{"email": "a@b.com", "firstName": "A", "lastName": "B", "dob": "01-01-2000"}
	resp, body = doJSON(t, client, http.MethodPost, base, friend)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.True(t, body.Success)

	// Missing field -> 400
	resp, _ = doJSON(t, client, http.MethodPost, base, map[string]string{"email": "c@d.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Duplicate -> 400 on this endpoint
	resp, _ = doJSON(t, client, http.MethodPost, base, friend)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Get
	resp, body = doJSON(t, client, http.MethodGet, base+"/a@b.com", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got model.Friend
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Equal(t, model.Friend{Email: "a@b.com", FirstName: "A", LastName: "B", DOB: "01-01-2000"}, got)

	// Get unknown -> 404
	resp, _ = doJSON(t, client, http.MethodGet, base+"/no@body.com", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// List counts one
	resp, body = doJSON(t, client, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body.Count)
	assert.Equal(t, 1, *body.Count)

	// No-op update: value unchanged, nothing reported
	resp, body = doJSON(t, client, http.MethodPut, base+"/a@b.com", map[string]string{"firstName": "A"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, body.ChangedFields)

	// Real update
	resp, body = doJSON(t, client, http.MethodPut, base+"/a@b.com", map[string]string{"firstName": "Z"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"firstName"}, body.ChangedFields)
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Equal(t, "Z", got.FirstName)

	// Update unknown -> 404
	resp, _ = doJSON(t, client, http.MethodPut, base+"/no@body.com", map[string]string{"firstName": "Q"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Delete returns the pre-deletion snapshot and the remaining count
	resp, body = doJSON(t, client, http.MethodDelete, base+"/a@b.com", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, body.RemainingCount)
	assert.Equal(t, 0, *body.RemainingCount)
	require.NoError(t, json.Unmarshal(body.Data, &got))
	assert.Equal(t, "Z", got.FirstName)

	// Gone afterwards
	resp, _ = doJSON(t, client, http.MethodGet, base+"/a@b.com", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = doJSON(t, client, http.MethodDelete, base+"/a@b.com", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	env := setupServer(t)
	client := newClient(t)
	registerAndLogin(t, client, env.server.URL)

	resp, body := doJSON(t, client, http.MethodGet, env.server.URL+"/friends", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)

	resp, body = doJSON(t, client, http.MethodPost, env.server.URL+"/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.True(t, body.Success)

	// The session is gone server-side; a stale cookie no longer helps.
	resp, _ = doJSON(t, client, http.MethodGet, env.server.URL+"/friends", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Logging out twice is fine.
	resp, body = doJSON(t, client, http.MethodPost, env.server.URL+"/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, body.Success)
}
