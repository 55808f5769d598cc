// Package session owns the auth lifecycle of the terminal app: login,
// token persistence across restarts, and logout. The server never
// learns about logout; discarding the token locally is enough.
package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"chakula/internal/client"
)

// State is the auth state machine. Authenticating exists so the UI can
// disable the form while a login is in flight.
type State int

const (
	Anonymous State = iota
	Authenticating
	Authenticated
)

func (s State) String() string {
	switch s {
	case Authenticating:
		return "authenticating"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// ErrNotAuthenticated is returned by operations that need a session.
var ErrNotAuthenticated = errors.New("session: not authenticated")

// Session tracks who is signed in and keeps the client's token in sync.
type Session struct {
	api       *client.Client
	state     State
	email     string
	tokenPath string
}

// New builds a session over the API client. tokenPath overrides where
// the token is persisted; empty uses the user config dir.
func New(api *client.Client, tokenPath string) *Session {
	if tokenPath == "" {
		tokenPath = defaultTokenPath()
	}
	return &Session{api: api, state: Anonymous, tokenPath: tokenPath}
}

func defaultTokenPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "chakula", "token")
}

func (s *Session) State() State  { return s.state }
func (s *Session) Email() string { return s.email }

// Login exchanges credentials for a token, persists it, and moves the
// session to Authenticated. On failure the session returns to
// Anonymous and the error surfaces to the caller.
func (s *Session) Login(ctx context.Context, email, password string) error {
	s.state = Authenticating
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.state = Anonymous
		return err
	}

	s.api.SetToken(token.AccessToken)
	s.email = email
	s.state = Authenticated
	s.saveToken(token.AccessToken)
	return nil
}

// Register creates a tenant and signs its admin in with the returned
// token.
func (s *Session) Register(ctx context.Context, req client.RegisterRequest) error {
	token, err := s.api.Register(ctx, req)
	if err != nil {
		return err
	}
	s.api.SetToken(token.AccessToken)
	s.email = req.Email
	s.state = Authenticated
	s.saveToken(token.AccessToken)
	return nil
}

// Logout drops the token locally. No server call.
func (s *Session) Logout() {
	s.api.SetToken("")
	s.email = ""
	s.state = Anonymous
	os.Remove(s.tokenPath)
}

// Restore loads a persisted token and validates it against /auth/me.
// Any failure lands back in Anonymous; a stale token is not an error
// the user should see.
func (s *Session) Restore(ctx context.Context) bool {
	data, err := os.ReadFile(s.tokenPath)
	if err != nil {
		return false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return false
	}

	s.api.SetToken(token)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.api.SetToken("")
		os.Remove(s.tokenPath)
		return false
	}

	s.email = user.Email
	s.state = Authenticated
	return true
}

// saveToken persists best-effort; a read-only home dir only costs the
// user a fresh login next run.
func (s *Session) saveToken(token string) {
	if err := os.MkdirAll(filepath.Dir(s.tokenPath), 0o700); err != nil {
		return
	}
	_ = os.WriteFile(s.tokenPath, []byte(token), 0o600)
}
