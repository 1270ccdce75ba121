// ABOUTME: Tests for root command helpers
// ABOUTME: Verifies session gating and 401 hint mapping

package cmd

import (
	"errors"
	"strings"
	"testing"

	"github.com/jdalton/bookshelf-cli/internal/client"
	"github.com/jdalton/bookshelf-cli/internal/session"
)

// setupTest points the command helpers at a test server and a throwaway
// config dir, restoring the previous values on cleanup.
func setupTest(t *testing.T, serverURL string) {
	t.Helper()
	prevAPI, prevDir, prevJSON := apiURL, configDir, jsonOutput
	apiURL = serverURL
	configDir = t.TempDir()
	jsonOutput = false
	t.Cleanup(func() {
		apiURL, configDir, jsonOutput = prevAPI, prevDir, prevJSON
	})
}

// loginTestSession persists a session in the test config dir
func loginTestSession(t *testing.T, token, userID string) {
	t.Helper()
	if err := session.New(configDir).SetCredentials(token, userID); err != nil {
		t.Fatalf("SetCredentials: %v", err)
	}
}

func TestRequireSession_NotLoggedIn(t *testing.T) {
	setupTest(t, "http://localhost:5501")

	_, err := requireSession(newSessionStore())
	if err == nil {
		t.Fatal("expected error when not logged in")
	}
	if !strings.Contains(err.Error(), "bookshelf login") {
		t.Errorf("expected login hint in error, got %q", err.Error())
	}
}

func TestRequireSession_LoggedIn(t *testing.T) {
	setupTest(t, "http://localhost:5501")
	loginTestSession(t, "tok-1", "user-1")

	s, err := requireSession(newSessionStore())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.UserID != "user-1" {
		t.Errorf("expected user-1, got %q", s.UserID)
	}
}

func TestAuthHint_Unauthorized(t *testing.T) {
	err := authHint(&client.APIError{Status: 401, Message: "unauthorized"})
	if !strings.Contains(err.Error(), "bookshelf login") {
		t.Errorf("expected re-login hint for 401, got %q", err.Error())
	}
}

func TestAuthHint_OtherErrorsPassThrough(t *testing.T) {
	orig := errors.New("connection refused")
	if err := authHint(orig); err != orig {
		t.Errorf("expected error to pass through unchanged, got %v", err)
	}

	apiErr := &client.APIError{Status: 500, Message: "boom"}
	if err := authHint(apiErr); err != error(apiErr) {
		t.Errorf("expected 500 to pass through unchanged, got %v", err)
	}
}
