package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aquamarinepk/aqm"
)

const (
	defaultTimeout = 15 * time.Second

	// Tokens about to expire within this window are refreshed up front so the
	// original request is not wasted on a guaranteed 401.
	expirySkew = 10 * time.Second
)

// TokenSource provides the stored tokens and accepts replacements issued by
// the refresh endpoint. The session store implements it.
type TokenSource interface {
	AccessToken() string
	RefreshToken() string
	UpdateTokens(access, refresh string)
	Clear()
}

// Client wraps HTTP access to the backend. It attaches the bearer token,
// refreshes an expired access token transparently (one attempt) and retries
// the original request once with the replacement token.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
	logger  aqm.Logger
}

func NewClient(baseURL string, tokens TokenSource, logger aqm.Logger) *Client {
	if logger == nil {
		logger = aqm.NewNoopLogger()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		tokens:  tokens,
		logger:  logger,
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs an authenticated JSON request. A nil payload sends no body.
// The caller owns the returned response body.
func (c *Client) Do(ctx context.Context, method, path string, payload interface{}) (*http.Response, error) {
	var body []byte
	contentType := ""
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request payload: %w", err)
		}
		body = raw
		contentType = "application/json"
	}
	return c.do(ctx, method, path, contentType, body)
}

// DoRaw performs an authenticated request with a prebuilt body, for payloads
// that are not JSON (multipart uploads, binary downloads).
func (c *Client) DoRaw(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	return c.do(ctx, method, path, contentType, body)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	if err := c.ensureFreshToken(ctx); err != nil {
		return nil, err
	}

	resp, err := c.send(ctx, method, path, contentType, body)
	if err != nil {
		return nil, err
	}

	// The up-front expiry check can miss a token revoked server-side; a 401
	// gets the same single refresh-and-retry treatment.
	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil && c.tokens.RefreshToken() != "" {
		resp.Body.Close()
		if err := c.refresh(ctx); err != nil {
			return nil, err
		}
		return c.send(ctx, method, path, contentType, body)
	}

	return resp, nil
}

func (c *Client) send(ctx context.Context, method, path, contentType string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.accessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

// ensureFreshToken refreshes the access token when its exp claim has passed.
// An unauthenticated client (no stored token) is left alone so that login and
// setup calls go through untouched.
func (c *Client) ensureFreshToken(ctx context.Context) error {
	token := c.accessToken()
	if token == "" {
		return nil
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		c.logger.Debug("stored access token is not decodable", "error", err)
		return nil
	}
	if !claims.Expired(time.Now(), expirySkew) {
		return nil
	}

	return c.refresh(ctx)
}

// refresh swaps the stored access token using the refresh endpoint. On
// failure the whole persisted session is cleared and ErrSessionExpired is
// returned so the caller can route back to login.
func (c *Client) refresh(ctx context.Context) error {
	if c.tokens == nil || c.tokens.RefreshToken() == "" {
		return ErrSessionExpired
	}

	access, refresh, err := RefreshTokens(ctx, c.httpc, c.baseURL, c.tokens.RefreshToken())
	if err != nil {
		c.logger.Info("token refresh failed, clearing session", "error", err)
		c.tokens.Clear()
		return fmt.Errorf("%w: %v", ErrSessionExpired, err)
	}

	c.tokens.UpdateTokens(access, refresh)
	c.logger.Debug("access token refreshed")
	return nil
}

func (c *Client) accessToken() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.AccessToken()
}

// GetJSON performs a GET and decodes the JSON response into dest.
func (c *Client) GetJSON(ctx context.Context, path string, dest interface{}) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, dest)
}

// PostJSON performs a POST with a JSON payload. A nil dest discards the
// response body after the status check.
func (c *Client) PostJSON(ctx context.Context, path string, payload, dest interface{}) error {
	resp, err := c.Do(ctx, http.MethodPost, path, payload)
	if err != nil {
		return err
	}
	return decodeResponse(resp, dest)
}

// Delete performs a DELETE and checks the status.
func (c *Client) Delete(ctx context.Context, path string) error {
	resp, err := c.Do(ctx, http.MethodDelete, path, nil)
	if err != nil {
		return err
	}
	return decodeResponse(resp, nil)
}

// decodeResponse enforces the 2xx contract and, when dest is non-nil, decodes
// the JSON body into it. Non-JSON bodies on a success status are reported as
// malformed responses.
func decodeResponse(resp *http.Response, dest interface{}) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	if dest == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.Contains(ct, "application/json") {
		return fmt.Errorf("unexpected content type %q", ct)
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshTokens calls the refresh endpoint directly. It is shared by the
// client's transparent refresh and by the session store's background refresh
// loop. The returned refresh token is empty when the backend did not rotate it.
func RefreshTokens(ctx context.Context, httpc *http.Client, baseURL, refreshToken string) (string, string, error) {
	if refreshToken == "" {
		return "", "", fmt.Errorf("no refresh token")
	}
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultTimeout}
	}

	raw, err := json.Marshal(refreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return "", "", fmt.Errorf("encode refresh payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(baseURL, "/")+"/api/auth/refresh", bytes.NewReader(raw))
	if err != nil {
		return "", "", fmt.Errorf("build refresh request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpc.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("refresh request: %w", err)
	}

	var body refreshResponse
	if err := decodeResponse(resp, &body); err != nil {
		return "", "", err
	}
	if body.AccessToken == "" {
		return "", "", fmt.Errorf("refresh response missing access token")
	}
	return body.AccessToken, body.RefreshToken, nil
}
