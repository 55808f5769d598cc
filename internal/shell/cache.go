// Package shell keeps the app usable when the network is not. It wraps
// an http.RoundTripper with a versioned disk cache: responses for the
// static app surface are written through on success and served back
// when the network fails. API data is never cached; stale orders are
// worse than an error.
package shell

import (
	"bufio"
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strings"
)

// Version names the cache generation. Bumping it invalidates every
// cached response; Activate prunes older generations from disk.
const Version = "chakula-shell-v2"

// apiPrefixes are never served from cache. Everything the dashboard
// treats as live data lives under these.
var apiPrefixes = []string{
	"/auth/", "/orders", "/menu", "/inventory", "/reservations", "/ai/", "/ws/", "/webhooks/",
}

// CacheTransport is a network-first RoundTripper with disk fallback.
type CacheTransport struct {
	next http.RoundTripper
	dir  string
}

// New wraps next with a cache rooted at dir (empty uses the user cache
// dir). next may be nil for http.DefaultTransport.
func New(next http.RoundTripper, dir string) (*CacheTransport, error) {
	if next == nil {
		next = http.DefaultTransport
	}
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		dir = filepath.Join(base, "chakula")
	}
	if err := os.MkdirAll(filepath.Join(dir, Version), 0o755); err != nil {
		return nil, err
	}
	return &CacheTransport{next: next, dir: dir}, nil
}

// Activate removes cache generations other than the current one. Call
// once at startup.
func (t *CacheTransport) Activate() error {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() && e.Name() != Version {
			if err := os.RemoveAll(filepath.Join(t.dir, e.Name())); err != nil {
				return err
			}
		}
	}
	return nil
}

// RoundTrip tries the network first. A successful cacheable response
// is stored; a network error on a cacheable request falls back to the
// stored copy if one exists.
func (t *CacheTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !t.cacheable(req) {
		return t.next.RoundTrip(req)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		if cached, ok := t.load(req); ok {
			return cached, nil
		}
		return nil, err
	}
	if resp.StatusCode == http.StatusOK {
		t.store(req, resp)
	}
	return resp, nil
}

// cacheable: GET only, and never the live API surface.
func (t *CacheTransport) cacheable(req *http.Request) bool {
	if req.Method != http.MethodGet {
		return false
	}
	path := req.URL.Path
	for _, prefix := range apiPrefixes {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

func (t *CacheTransport) keyPath(req *http.Request) string {
	sum := sha256.Sum256([]byte(req.URL.String()))
	return filepath.Join(t.dir, Version, hex.EncodeToString(sum[:16]))
}

// store writes the full response to disk and replaces resp.Body so the
// caller can still read it.
func (t *CacheTransport) store(req *http.Request, resp *http.Response) {
	dump, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return
	}
	// DumpResponse drained the body; hand the caller a fresh copy.
	if i := bytes.Index(dump, []byte("\r\n\r\n")); i >= 0 {
		resp.Body = newBody(dump[i+4:])
	}
	tmp := t.keyPath(req) + ".tmp"
	if err := os.WriteFile(tmp, dump, 0o644); err != nil {
		return
	}
	_ = os.Rename(tmp, t.keyPath(req))
}

func (t *CacheTransport) load(req *http.Request) (*http.Response, bool) {
	data, err := os.ReadFile(t.keyPath(req))
	if err != nil {
		return nil, false
	}
	resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(data)), req)
	if err != nil {
		return nil, false
	}
	resp.Header.Set("X-Served-From", "cache")
	return resp, true
}

type bodyReader struct {
	*bytes.Reader
}

func (bodyReader) Close() error { return nil }

func newBody(b []byte) bodyReader {
	return bodyReader{bytes.NewReader(b)}
}
