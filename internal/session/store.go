// ABOUTME: Persisted session store holding the auth token and user ID
// ABOUTME: Stores session state as JSON in the XDG config directory

package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Session is the client-held authentication state.
// An empty Token means unauthenticated.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Store is the single source of truth for the current session.
// Every mutation is written through to disk so a new process
// restores the session without re-login.
type Store struct {
	mu      sync.Mutex
	dir     string
	current Session
}

// New creates a store backed by the given config directory and loads
// any previously persisted session. A missing or unreadable session
// file yields an empty session, never an error.
func New(dir string) *Store {
	st := &Store{dir: dir}
	st.load()
	return st
}

// DefaultConfigDir returns the default config directory following XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "bookshelf")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "bookshelf")
}

func (st *Store) sessionFile() string {
	return filepath.Join(st.dir, "session.json")
}

func (st *Store) load() {
	data, err := os.ReadFile(st.sessionFile())
	if err != nil {
		st.current = Session{}
		return
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		// Corrupt session file, start unauthenticated
		st.current = Session{}
		return
	}
	// Invariant: no token means no user ID
	if s.Token == "" {
		s.UserID = ""
	}
	st.current = s
}

// Current returns the session as of the last mutation. Never fails.
func (st *Store) Current() Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current
}

// Token returns only the current token. Satisfies client.TokenSource.
func (st *Store) Token() string {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.current.Token
}

// SetCredentials overwrites both token and user ID in one persisted write.
// This is the mutation login and register use.
func (st *Store) SetCredentials(token, userID string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = Session{Token: token, UserID: userID}
	if token == "" {
		st.current.UserID = ""
	}
	return st.save()
}

// SetToken overwrites the token. Clearing the token also clears the
// user ID so an empty session never carries a dangling identity.
func (st *Store) SetToken(token string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current.Token = token
	if token == "" {
		st.current.UserID = ""
	}
	return st.save()
}

// SetUserID overwrites the user ID.
func (st *Store) SetUserID(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current.UserID = id
	return st.save()
}

// Clear drops the session entirely. Used by logout.
func (st *Store) Clear() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = Session{}
	return st.save()
}

func (st *Store) save() error {
	if err := os.MkdirAll(st.dir, 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st.current, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(st.sessionFile(), data, 0600)
}
