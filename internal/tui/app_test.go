// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests component wiring, screen transitions and cache invalidation

package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jdalton/bookshelf-cli/internal/cache"
	"github.com/jdalton/bookshelf-cli/internal/client"
	"github.com/jdalton/bookshelf-cli/internal/session"
	"github.com/jdalton/bookshelf-cli/internal/tui/authform"
	"github.com/jdalton/bookshelf-cli/internal/tui/bookform"
	"github.com/jdalton/bookshelf-cli/internal/tui/booktable"
)

func newTestApp(t *testing.T) (*App, *session.Store) {
	t.Helper()
	store := session.New(t.TempDir())
	c := client.New("http://localhost:5501", store)
	return New(c, store, cache.New(time.Minute)), store
}

func TestAppInitialState(t *testing.T) {
	app, _ := newTestApp(t)

	if app.screen != ScreenAuth {
		t.Errorf("expected initial screen to be ScreenAuth, got %d", app.screen)
	}
	if app.auth == nil {
		t.Error("expected auth form to be initialized")
	}
}

func TestAppStartsOnBooksWhenSessionExists(t *testing.T) {
	store := session.New(t.TempDir())
	if err := store.SetCredentials("tok-1", "user-1"); err != nil {
		t.Fatalf("SetCredentials: %v", err)
	}
	c := client.New("http://localhost:5501", store)
	app := New(c, store, cache.New(time.Minute))

	if app.screen != ScreenBooks {
		t.Errorf("expected initial screen to be ScreenBooks, got %d", app.screen)
	}
}

func TestScreenConstants(t *testing.T) {
	// Verify screen constants are defined correctly
	if ScreenAuth != 0 {
		t.Errorf("expected ScreenAuth to be 0, got %d", ScreenAuth)
	}
	if ScreenBooks != 1 {
		t.Errorf("expected ScreenBooks to be 1, got %d", ScreenBooks)
	}
	if ScreenDetail != 2 {
		t.Errorf("expected ScreenDetail to be 2, got %d", ScreenDetail)
	}
	if ScreenForm != 3 {
		t.Errorf("expected ScreenForm to be 3, got %d", ScreenForm)
	}
	if ScreenConfirmDelete != 4 {
		t.Errorf("expected ScreenConfirmDelete to be 4, got %d", ScreenConfirmDelete)
	}
}

func TestAppBooksLoadedMsg(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 100
	app.height = 40
	app.screen = ScreenBooks

	books := []client.Book{
		{ID: "b1", Title: "Dune", Genre: "Sci-Fi"},
		{ID: "b2", Title: "Hyperion", Genre: "Sci-Fi"},
	}

	model, _ := app.Update(booksLoadedMsg{books: books})

	result := model.(*App)
	if result.screen != ScreenBooks {
		t.Errorf("expected screen to be ScreenBooks after books loaded, got %d", result.screen)
	}
	if result.table == nil {
		t.Error("expected table to be created")
	}
	if len(result.books) != 2 {
		t.Errorf("expected 2 books, got %d", len(result.books))
	}
	if result.lastUpdate.IsZero() {
		t.Error("expected lastUpdate to be set")
	}
}

func TestAppAuthDonePersistsSession(t *testing.T) {
	app, store := newTestApp(t)

	model, cmd := app.Update(authDoneMsg{auth: &client.AuthResponse{AccessToken: "tok-abc", UserID: "user-9"}})

	result := model.(*App)
	if result.screen != ScreenBooks {
		t.Errorf("expected screen to be ScreenBooks after auth, got %d", result.screen)
	}
	if cmd == nil {
		t.Error("expected a load command after auth")
	}
	if got := store.Current().UserID; got != "user-9" {
		t.Errorf("expected session userId 'user-9', got %q", got)
	}
	if got := store.Token(); got != "tok-abc" {
		t.Errorf("expected session token 'tok-abc', got %q", got)
	}
}

func TestAppAuthDoneErrorStaysOnAuth(t *testing.T) {
	app, store := newTestApp(t)

	model, _ := app.Update(authDoneMsg{err: &client.APIError{Status: 400, Message: "invalid email or password"}})

	result := model.(*App)
	if result.screen != ScreenAuth {
		t.Errorf("expected screen to stay ScreenAuth on auth error, got %d", result.screen)
	}
	if result.err == nil {
		t.Error("expected error to be shown")
	}
	if store.Current().Authenticated() {
		t.Error("expected session to remain empty after failed auth")
	}
}

func TestAppFailedAuthAllowsRetry(t *testing.T) {
	app, _ := newTestApp(t)
	spent := app.auth

	model, cmd := app.Update(authDoneMsg{err: &client.APIError{Status: 400, Message: "invalid email or password"}})
	result := model.(*App)

	if result.auth == spent {
		t.Error("expected a fresh auth form after failed auth")
	}
	if cmd == nil {
		t.Error("expected the rebuilt form to be initialized")
	}

	// The rebuilt form is idle again: tab can still switch modes,
	// which a spent (completed) form refuses
	model, _ = result.Update(tea.KeyMsg{Type: tea.KeyTab})
	result = model.(*App)
	if result.auth.Mode() != authform.ModeRegister {
		t.Error("expected tab to switch the rebuilt form to register mode")
	}
}

func TestAppEditBlockedForOtherAuthor(t *testing.T) {
	store := session.New(t.TempDir())
	if err := store.SetCredentials("tok-1", "user-1"); err != nil {
		t.Fatalf("SetCredentials: %v", err)
	}
	c := client.New("http://localhost:5501", store)
	app := New(c, store, cache.New(time.Minute))

	book := &client.Book{ID: "b1", Title: "Dune", Author: client.Author{ID: "user-2", Name: "Someone Else"}}
	model, _ := app.Update(bookLoadedMsg{book: book, forEdit: true})

	result := model.(*App)
	if result.screen != ScreenBooks {
		t.Errorf("expected screen to be ScreenBooks after blocked edit, got %d", result.screen)
	}
	if result.form != nil {
		t.Error("expected no edit form for a book owned by another author")
	}
	if !strings.Contains(result.status, "not authorized") {
		t.Errorf("expected not-authorized status, got %q", result.status)
	}
}

func TestAppEditOpensFormForOwnBook(t *testing.T) {
	store := session.New(t.TempDir())
	if err := store.SetCredentials("tok-1", "user-1"); err != nil {
		t.Fatalf("SetCredentials: %v", err)
	}
	c := client.New("http://localhost:5501", store)
	app := New(c, store, cache.New(time.Minute))

	book := &client.Book{ID: "b1", Title: "Dune", Author: client.Author{ID: "user-1", Name: "Me"}}
	model, _ := app.Update(bookLoadedMsg{book: book, forEdit: true})

	result := model.(*App)
	if result.screen != ScreenForm {
		t.Errorf("expected screen to be ScreenForm, got %d", result.screen)
	}
	if result.form == nil {
		t.Error("expected edit form to be created")
	}
}

func TestAppBookLoadedShowsDetail(t *testing.T) {
	app, _ := newTestApp(t)

	book := &client.Book{ID: "b1", Title: "Dune", Description: "Desert planet epic"}
	model, _ := app.Update(bookLoadedMsg{book: book})

	result := model.(*App)
	if result.screen != ScreenDetail {
		t.Errorf("expected screen to be ScreenDetail, got %d", result.screen)
	}
	if result.detail != book {
		t.Error("expected detail book to be set")
	}
}

func TestAppBookSavedInvalidatesCache(t *testing.T) {
	app, _ := newTestApp(t)
	app.cache.Set(booksCacheKey, []client.Book{{ID: "stale"}})

	model, cmd := app.Update(bookSavedMsg{book: &client.Book{ID: "b1", Title: "Dune"}})

	if _, ok := model.(*App).cache.Get(booksCacheKey); ok {
		t.Error("expected books cache entry to be invalidated after save")
	}
	if cmd == nil {
		t.Error("expected a reload command after save")
	}
}

func TestAppBookDeletedInvalidatesCache(t *testing.T) {
	app, _ := newTestApp(t)
	app.cache.Set(booksCacheKey, []client.Book{{ID: "stale"}})

	model, cmd := app.Update(bookDeletedMsg{id: "b1"})

	result := model.(*App)
	if _, ok := result.cache.Get(booksCacheKey); ok {
		t.Error("expected books cache entry to be invalidated after delete")
	}
	if cmd == nil {
		t.Error("expected a reload command after delete")
	}
	if !strings.Contains(result.status, "deleted") {
		t.Errorf("expected deleted status, got %q", result.status)
	}
}

func TestAppUnauthorizedReturnsToLogin(t *testing.T) {
	store := session.New(t.TempDir())
	if err := store.SetCredentials("tok-expired", "user-1"); err != nil {
		t.Fatalf("SetCredentials: %v", err)
	}
	c := client.New("http://localhost:5501", store)
	app := New(c, store, cache.New(time.Minute))

	model, _ := app.Update(booksLoadedMsg{err: &client.APIError{Status: 401, Message: "unauthorized"}})

	result := model.(*App)
	if result.screen != ScreenAuth {
		t.Errorf("expected screen to be ScreenAuth after 401, got %d", result.screen)
	}
	if store.Current().Authenticated() {
		t.Error("expected session to be cleared after 401")
	}
	if result.auth == nil {
		t.Error("expected auth form to be recreated")
	}
}

func TestAppDeleteConfirmFlow(t *testing.T) {
	app, _ := newTestApp(t)
	app.screen = ScreenBooks

	model, _ := app.Update(booktable.DeleteMsg{BookID: "b1", Title: "Dune"})
	result := model.(*App)
	if result.screen != ScreenConfirmDelete {
		t.Errorf("expected screen to be ScreenConfirmDelete, got %d", result.screen)
	}
	if result.pending == nil || result.pending.id != "b1" {
		t.Error("expected pending delete target to be set")
	}

	// n cancels without issuing a delete
	model, cmd := result.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	result = model.(*App)
	if result.screen != ScreenBooks {
		t.Errorf("expected screen to be ScreenBooks after cancel, got %d", result.screen)
	}
	if result.pending != nil {
		t.Error("expected pending delete target to be cleared")
	}
	if cmd != nil {
		t.Error("expected no command after cancelled delete")
	}

	// y confirms and issues the delete command
	model, _ = result.Update(booktable.DeleteMsg{BookID: "b1", Title: "Dune"})
	result = model.(*App)
	model, cmd = result.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	result = model.(*App)
	if result.screen != ScreenBooks {
		t.Errorf("expected screen to be ScreenBooks after confirm, got %d", result.screen)
	}
	if cmd == nil {
		t.Error("expected a delete command after confirm")
	}
}

func TestAppFormSubmitReturnsToBooks(t *testing.T) {
	app, _ := newTestApp(t)
	app.form = bookform.NewCreate()
	app.screen = ScreenForm

	model, cmd := app.Update(bookform.SubmitMsg{Title: "Dune", Genre: "Sci-Fi", Description: "Desert planet epic"})

	result := model.(*App)
	if result.screen != ScreenBooks {
		t.Errorf("expected screen to be ScreenBooks after submit, got %d", result.screen)
	}
	if result.form != nil {
		t.Error("expected form to be cleared after submit")
	}
	if cmd == nil {
		t.Error("expected a save command after submit")
	}
}

func TestAppFormCancelReturnsToBooks(t *testing.T) {
	app, _ := newTestApp(t)
	app.form = bookform.NewCreate()
	app.screen = ScreenForm

	model, _ := app.Update(bookform.CancelledMsg{})

	result := model.(*App)
	if result.screen != ScreenBooks {
		t.Errorf("expected screen to be ScreenBooks after cancel, got %d", result.screen)
	}
	if result.form != nil {
		t.Error("expected form to be cleared after cancel")
	}
}

func TestAppViewReturnsContent(t *testing.T) {
	app, _ := newTestApp(t)
	app.width = 100
	app.height = 40

	// Auth view renders inside the branded frame
	view := app.View()
	if !strings.Contains(view, "Bookshelf") {
		t.Error("expected view to contain 'Bookshelf'")
	}

	// Books view footer shows the refresh keybinding
	app.screen = ScreenBooks
	view = app.View()
	if !strings.Contains(view, "Refresh") {
		t.Error("expected books view to contain 'Refresh' keybinding")
	}

	// Detail view footer shows back navigation
	app.screen = ScreenDetail
	app.detail = &client.Book{ID: "b1", Title: "Dune"}
	view = app.View()
	if !strings.Contains(view, "Back") {
		t.Error("expected detail view to contain 'Back' keybinding")
	}
	if !strings.Contains(view, "Dune") {
		t.Error("expected detail view to contain the book title")
	}

	// Confirm view names the book being deleted
	app.screen = ScreenConfirmDelete
	app.pending = &deleteTarget{id: "b1", title: "Dune"}
	view = app.View()
	if !strings.Contains(view, "delete") {
		t.Error("expected confirm view to mention delete")
	}
}

func TestFormatTimeSince(t *testing.T) {
	tests := []struct {
		name     string
		since    time.Duration
		expected string
	}{
		{"just now", 2 * time.Second, "just now"},
		{"seconds", 30 * time.Second, "30s ago"},
		{"one minute", 90 * time.Second, "1m ago"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"one hour", 70 * time.Minute, "1h ago"},
		{"hours", 3 * time.Hour, "3h ago"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := formatTimeSince(time.Now().Add(-tc.since))
			if got != tc.expected {
				t.Errorf("formatTimeSince() = %q, want %q", got, tc.expected)
			}
		})
	}
}
