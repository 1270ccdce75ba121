// ABOUTME: HTTP client for the Book API backend
// ABOUTME: The sole network boundary; attaches bearer auth from the session store

package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jdalton/bookshelf-cli/internal/debuglog"
)

// TokenSource provides the current auth token before each request.
// An empty token means the request goes out unauthenticated, which is
// what login and register need. The session store satisfies this.
type TokenSource interface {
	Token() string
}

// Client is the API client for the Book API backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// New creates a new API client with the given base URL and token source
func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Author identifies who created a book
type Author struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Book represents a catalog entry owned by the server
type Book struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
	Author      Author `json:"author"`
	CoverImage  string `json:"coverImage"`
	File        string `json:"file"`
	CreatedAt   string `json:"createdAt"`
}

// AuthResponse is the success body for login and register.
// Register historically varied across server revisions; this client
// expects one contract for both and the server conforms.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	UserID      string `json:"userId"`
}

// APIError is a non-2xx response from the backend
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.Status)
}

// IsUnauthorized reports whether err is a 401 from the backend,
// which is how an expired or invalid token surfaces. The caller
// decides what to do with it (re-login prompt, login screen).
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// newRequest builds a request and attaches the bearer token when one
// is present. Requests without a token pass through unauthenticated.
func (c *Client) newRequest(ctx context.Context, method, path string, body requestBody) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body.reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body.contentType != "" {
		req.Header.Set("Content-Type", body.contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, nil
}

// do sends a request and logs any failure before returning it unchanged.
// Errors are never swallowed or retried here; callers decide handling.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = c.handleRequestError(req.Context(), err)
		debuglog.Error("api "+req.Method+" "+req.URL.Path, err)
		return nil, err
	}
	return resp, nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}
