// ABOUTME: Login and register operations against /api/users
// ABOUTME: Validates credentials client-side before any network call

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/jdalton/bookshelf-cli/internal/debuglog"
)

// LoginInput is the request body for login. Never persisted; it exists
// only for the duration of one request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput is the request body for register
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login calls POST /api/users/login. Empty fields fail fast without a
// network round trip.
func (c *Client) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	if input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	body, err := jsonBody(input)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/users/login", body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := decodeError(resp, "")
		debuglog.Error("login", err)
		return nil, err
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &auth, nil
}

// Register calls POST /api/users/register. The response contract is the
// same as login; older server revisions that omitted the token are not
// supported.
func (c *Client) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}

	body, err := jsonBody(input)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/users/register", body)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		err := decodeError(resp, "")
		debuglog.Error("register", err)
		return nil, err
	}

	var auth AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&auth); err != nil {
		return nil, fmt.Errorf("invalid response from backend: %w", err)
	}

	return &auth, nil
}
