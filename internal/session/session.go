package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aquamarinepk/aqm"

	"github.com/tapnserve/pos/internal/api"
)

// DefaultRefreshInterval is the cadence of the silent token refresh while a
// session is live.
const DefaultRefreshInterval = 4 * time.Minute

var ErrInvalidCredentials = errors.New("invalid credentials")

// Credentials are the login form fields.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Session is the authenticated identity plus its tokens.
type Session struct {
	AccessToken  string
	RefreshToken string
	Username     string
	Role         api.Role
}

// persistedSession mirrors the durable storage keys of the client.
type persistedSession struct {
	AuthToken    string `json:"auth_token"`
	RefreshToken string `json:"refresh_token"`
	UserType     string `json:"user_type"`
	Username     string `json:"username"`
}

// Store owns the session for the lifetime of the process. It persists the
// session to a small JSON file so a restarted terminal resumes logged in, and
// runs a background refresh loop while a session is live.
type Store struct {
	mu      sync.RWMutex
	current *Session

	baseURL      string
	path         string
	refreshEvery time.Duration
	httpc        *http.Client
	logger       aqm.Logger

	stopRefresh context.CancelFunc
}

func NewStore(baseURL, path string, refreshEvery time.Duration, logger aqm.Logger) *Store {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	if refreshEvery <= 0 {
		refreshEvery = DefaultRefreshInterval
	}
	return &Store{
		baseURL:      strings.TrimRight(baseURL, "/"),
		path:         path,
		refreshEvery: refreshEvery,
		httpc:        &http.Client{Timeout: 15 * time.Second},
		logger:       logger,
	}
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Username     string `json:"username"`
}

// Login authenticates against the backend, persists the session and starts
// the silent refresh loop. The role is derived from the access token claims.
func (s *Store) Login(ctx context.Context, creds Credentials) (*Session, error) {
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		return nil, ErrInvalidCredentials
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		return nil, fmt.Errorf("encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/api/auth/login", bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidCredentials
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("login failed with status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		return nil, fmt.Errorf("unexpected login response content type %q", ct)
	}

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if body.AccessToken == "" {
		return nil, fmt.Errorf("login response missing access token")
	}

	role := api.RoleEmployee
	if claims, err := api.DecodeClaims(body.AccessToken); err == nil {
		role = api.DeriveRole(claims)
	} else {
		s.logger.Debug("cannot decode access token claims, defaulting role", "error", err)
	}

	username := body.Username
	if username == "" {
		username = creds.Username
	}

	sess := &Session{
		AccessToken:  body.AccessToken,
		RefreshToken: body.RefreshToken,
		Username:     username,
		Role:         role,
	}

	s.mu.Lock()
	s.current = sess
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		s.logger.Error("cannot persist session", "error", err)
	}

	s.startRefreshLoop()
	s.logger.Info("login succeeded", "username", username, "role", role)
	return sess, nil
}

// Logout destroys the session in memory and on disk and stops the refresh
// loop.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	stop := s.stopRefresh
	s.stopRefresh = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("cannot remove persisted session", "error", err)
	}
	s.logger.Info("logged out")
}

// Restore loads a persisted session from disk, if present. Missing files are
// not an error; the terminal simply starts unauthenticated.
func (s *Store) Restore() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read persisted session: %w", err)
	}

	var stored persistedSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return fmt.Errorf("decode persisted session: %w", err)
	}
	if stored.AuthToken == "" {
		return nil
	}

	s.mu.Lock()
	s.current = &Session{
		AccessToken:  stored.AuthToken,
		RefreshToken: stored.RefreshToken,
		Username:     stored.Username,
		Role:         api.ParseRole(stored.UserType),
	}
	s.mu.Unlock()

	s.startRefreshLoop()
	s.logger.Info("session restored", "username", stored.Username, "role", stored.UserType)
	return nil
}

// Start implements the aqm lifecycle. It restores any persisted session so a
// restarted terminal resumes logged in.
func (s *Store) Start(ctx context.Context) error {
	return s.Restore()
}

// Stop implements the aqm lifecycle. It halts the refresh loop but keeps the
// persisted session for the next start.
func (s *Store) Stop(ctx context.Context) error {
	s.mu.Lock()
	stop := s.stopRefresh
	s.stopRefresh = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	return nil
}

// Current returns a copy of the live session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	current := *s.current
	return &current
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil && s.current.AccessToken != ""
}

func (s *Store) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Username
}

func (s *Store) Role() api.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return api.RoleEmployee
	}
	return s.current.Role
}

// AccessToken implements api.TokenSource.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.AccessToken
}

// RefreshToken implements api.TokenSource.
func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.RefreshToken
}

// UpdateTokens implements api.TokenSource. An empty refresh token keeps the
// current one; the backend does not always rotate it.
func (s *Store) UpdateTokens(access, refresh string) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current.AccessToken = access
	if refresh != "" {
		s.current.RefreshToken = refresh
	}
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		s.logger.Error("cannot persist refreshed tokens", "error", err)
	}
}

// Clear implements api.TokenSource. It wipes the session after a failed
// refresh; unlike Logout it keeps the refresh loop teardown quiet.
func (s *Store) Clear() {
	s.mu.Lock()
	s.current = nil
	stop := s.stopRefresh
	s.stopRefresh = nil
	s.mu.Unlock()

	if stop != nil {
		stop()
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.logger.Error("cannot remove persisted session", "error", err)
	}
}

func (s *Store) persist() error {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()
	if current == nil {
		return nil
	}

	stored := persistedSession{
		AuthToken:    current.AccessToken,
		RefreshToken: current.RefreshToken,
		UserType:     string(current.Role),
		Username:     current.Username,
	}
	raw, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// startRefreshLoop schedules the periodic silent refresh for the lifetime of
// the session. Refresh failures are logged and otherwise ignored: logout
// happens lazily when an API call's own refresh attempt fails.
func (s *Store) startRefreshLoop() {
	s.mu.Lock()
	if s.stopRefresh != nil {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.stopRefresh = cancel
	s.mu.Unlock()

	go func() {
		ticker := time.NewTicker(s.refreshEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.silentRefresh(ctx)
			}
		}
	}()
}

func (s *Store) silentRefresh(ctx context.Context) {
	refresh := s.RefreshToken()
	if refresh == "" {
		return
	}

	access, rotated, err := api.RefreshTokens(ctx, s.httpc, s.baseURL, refresh)
	if err != nil {
		s.logger.Info("silent token refresh failed", "error", err)
		return
	}
	s.UpdateTokens(access, rotated)
	s.logger.Debug("silent token refresh succeeded")
}
