package shell

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, dir string) *http.Client {
	t.Helper()
	transport, err := New(nil, dir)
	require.NoError(t, err)
	return &http.Client{Transport: transport}
}

func TestNetworkFirstThenCacheFallback(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("shell page"))
	}))

	dir := t.TempDir()
	httpc := newClient(t, dir)

	resp, err := httpc.Get(srv.URL + "/app")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "shell page", string(body))
	assert.Equal(t, 1, hits)

	// server goes away; the cached copy answers
	srv.Close()
	resp, err = httpc.Get(srv.URL + "/app")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "shell page", string(body))
	assert.Equal(t, "cache", resp.Header.Get("X-Served-From"))
}

func TestNetworkPreferredWhenAvailable(t *testing.T) {
	content := "v1"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(content))
	}))
	defer srv.Close()

	httpc := newClient(t, t.TempDir())

	resp, _ := httpc.Get(srv.URL + "/app")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "v1", string(body))

	// a live server always wins over the cached copy
	content = "v2"
	resp, _ = httpc.Get(srv.URL + "/app")
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "v2", string(body))
	assert.Empty(t, resp.Header.Get("X-Served-From"))
}

func TestAPIRoutesNeverCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	httpc := newClient(t, t.TempDir())
	resp, err := httpc.Get(srv.URL + "/orders/active")
	require.NoError(t, err)
	resp.Body.Close()

	srv.Close()
	_, err = httpc.Get(srv.URL + "/orders/active")
	assert.Error(t, err, "live data must fail rather than serve stale")
}

func TestPostNeverCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	httpc := newClient(t, t.TempDir())
	resp, err := httpc.Post(srv.URL+"/app", "text/plain", nil)
	require.NoError(t, err)
	resp.Body.Close()

	srv.Close()
	_, err = httpc.Post(srv.URL+"/app", "text/plain", nil)
	assert.Error(t, err)
}

func TestActivatePrunesOldGenerations(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "chakula-shell-v1")
	require.NoError(t, os.MkdirAll(stale, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(stale, "old"), []byte("x"), 0o644))

	transport, err := New(nil, dir)
	require.NoError(t, err)
	require.NoError(t, transport.Activate())

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, Version))
	assert.NoError(t, err, "current generation survives activation")
}

func TestErrorResponsesNotCached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	httpc := newClient(t, t.TempDir())
	resp, err := httpc.Get(srv.URL + "/app")
	require.NoError(t, err)
	resp.Body.Close()

	srv.Close()
	_, err = httpc.Get(srv.URL + "/app")
	assert.Error(t, err, "a 500 must not become the offline copy")
}
