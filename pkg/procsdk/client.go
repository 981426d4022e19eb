package procsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the procurement service. It exposes the
// unauthenticated surface directly and produces a Session after login.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a new account awaiting email verification.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (UserInfo, error) {
	var out UserInfo
	err := c.do(ctx, http.MethodPost, "/v1/auth/register", "", req, &out)
	return out, err
}

// Verify redeems an email verification token.
func (c *Client) Verify(ctx context.Context, token string) error {
	path := "/v1/auth/verify?token=" + url.QueryEscape(token)
	return c.do(ctx, http.MethodGet, path, "", nil, nil)
}

// Bootstrap creates the first Admin on an empty system.
func (c *Client) Bootstrap(ctx context.Context, req BootstrapRequest) (BootstrapResponse, error) {
	var out BootstrapResponse
	err := c.do(ctx, http.MethodPost, "/v1/bootstrap", "", req, &out)
	return out, err
}

// Login authenticates and returns an authenticated Session.
func (c *Client) Login(ctx context.Context, username, password string) (*Session, error) {
	var tok TokenResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", "", LoginRequest{
		Username: username,
		Password: password,
	}, &tok)
	if err != nil {
		return nil, err
	}
	return &Session{client: c, accessToken: tok.AccessToken}, nil
}

// Livez checks liveness.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/livez", "", nil, &out)
	return out, err
}

// Readyz checks readiness, including database connectivity.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	var out HealthResponse
	err := c.do(ctx, http.MethodGet, "/readyz", "", nil, &out)
	return out, err
}

// do performs one JSON round trip. A non-2xx response is decoded into
// an *APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr ErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		if apiErr.Error == "" {
			apiErr.Error = "unexpected_response"
		}
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        apiErr.Error,
			Description: apiErr.ErrorDescription,
		}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
