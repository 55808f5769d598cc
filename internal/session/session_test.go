package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chakula/internal/client"
)

// authServer accepts staff@chakula.co / secret and honors the issued
// token on /auth/me.
func authServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostFormValue("username") != "staff@chakula.co" || r.PostFormValue("password") != "secret" {
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, `{"error":"Incorrect email or password"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-123", "token_type": "bearer"})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok-123" {
			http.Error(w, `{"error":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"id": 1, "email": "staff@chakula.co"})
	})
	return httptest.NewServer(mux)
}

func tokenPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "token")
}

func TestLoginSuccess(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()

	api := client.New(srv.URL)
	sess := New(api, tokenPath(t))
	assert.Equal(t, Anonymous, sess.State())

	err := sess.Login(context.Background(), "staff@chakula.co", "secret")
	require.NoError(t, err)
	assert.Equal(t, Authenticated, sess.State())
	assert.Equal(t, "staff@chakula.co", sess.Email())
	assert.Equal(t, "tok-123", api.Token)
}

func TestLoginFailureReturnsToAnonymous(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()

	sess := New(client.New(srv.URL), tokenPath(t))
	err := sess.Login(context.Background(), "staff@chakula.co", "wrong")

	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
	assert.Equal(t, Anonymous, sess.State())
}

func TestLogoutClearsTokenFile(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()

	api := client.New(srv.URL)
	path := tokenPath(t)
	sess := New(api, path)
	require.NoError(t, sess.Login(context.Background(), "staff@chakula.co", "secret"))

	_, err := os.Stat(path)
	require.NoError(t, err, "token should be persisted after login")

	sess.Logout()
	assert.Equal(t, Anonymous, sess.State())
	assert.Empty(t, api.Token)
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRestoreValidToken(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()

	path := tokenPath(t)
	require.NoError(t, os.WriteFile(path, []byte("tok-123\n"), 0o600))

	api := client.New(srv.URL)
	sess := New(api, path)

	assert.True(t, sess.Restore(context.Background()))
	assert.Equal(t, Authenticated, sess.State())
	assert.Equal(t, "staff@chakula.co", sess.Email())
}

func TestRestoreStaleToken(t *testing.T) {
	srv := authServer(t)
	defer srv.Close()

	path := tokenPath(t)
	require.NoError(t, os.WriteFile(path, []byte("expired"), 0o600))

	api := client.New(srv.URL)
	sess := New(api, path)

	// a stale token fails open to anonymous and is removed
	assert.False(t, sess.Restore(context.Background()))
	assert.Equal(t, Anonymous, sess.State())
	assert.Empty(t, api.Token)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRestoreNoTokenFile(t *testing.T) {
	sess := New(client.New("http://localhost:0"), tokenPath(t))
	assert.False(t, sess.Restore(context.Background()))
	assert.Equal(t, Anonymous, sess.State())
}
