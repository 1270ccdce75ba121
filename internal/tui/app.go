// ABOUTME: Root bubbletea model for the dashboard TUI
// ABOUTME: Manages screen state and routes keyboard input to child components

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdalton/bookshelf-cli/internal/cache"
	"github.com/jdalton/bookshelf-cli/internal/client"
	"github.com/jdalton/bookshelf-cli/internal/session"
	"github.com/jdalton/bookshelf-cli/internal/tui/authform"
	"github.com/jdalton/bookshelf-cli/internal/tui/bookform"
	"github.com/jdalton/bookshelf-cli/internal/tui/booktable"
	"github.com/jdalton/bookshelf-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenAuth Screen = iota
	ScreenBooks
	ScreenDetail
	ScreenForm
	ScreenConfirmDelete
)

// Layout constants
const (
	minTerminalWidth = 80
	frameOverhead    = 8 // header, footer, panel borders and spacing
)

const booksCacheKey = "books"

// booksLoadedMsg is sent when the catalog fetch completes
type booksLoadedMsg struct {
	books []client.Book
	err   error
}

// bookLoadedMsg is sent when a single book fetch completes
type bookLoadedMsg struct {
	book    *client.Book
	forEdit bool
	err     error
}

// authDoneMsg is sent when login or register completes
type authDoneMsg struct {
	auth *client.AuthResponse
	err  error
}

// bookSavedMsg is sent when a create or update completes
type bookSavedMsg struct {
	book *client.Book
	err  error
}

// bookDeletedMsg is sent when a delete completes
type bookDeletedMsg struct {
	id  string
	err error
}

// deleteTarget is the book pending delete confirmation
type deleteTarget struct {
	id    string
	title string
}

// App is the root model for the TUI
type App struct {
	client *client.Client
	store  *session.Store
	cache  *cache.Cache

	screen     Screen
	width      int
	height     int
	err        error
	status     string
	lastUpdate time.Time

	books   []client.Book
	detail  *client.Book
	pending *deleteTarget

	// Child models
	auth  *authform.AuthForm
	table *booktable.BookTable
	form  *bookform.BookForm
}

// New creates a new TUI application. The starting screen depends on
// whether a persisted session exists.
func New(apiClient *client.Client, store *session.Store, queryCache *cache.Cache) *App {
	a := &App{
		client: apiClient,
		store:  store,
		cache:  queryCache,
		screen: ScreenAuth,
		auth:   authform.New(authform.ModeLogin),
	}
	if store.Current().Authenticated() {
		a.screen = ScreenBooks
	}
	return a
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	if a.screen == ScreenBooks {
		return a.loadBooks(false)
	}
	return a.auth.Init()
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.table != nil {
			a.table.SetSize(a.contentWidth(), a.contentHeight())
		}
		if a.auth != nil {
			return a.updateAuthMsg(msg)
		}
		if a.form != nil {
			return a.updateForm(msg)
		}
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		a.status = ""

		switch a.screen {
		case ScreenAuth:
			return a.updateAuth(msg)
		case ScreenBooks:
			return a.updateBooks(msg)
		case ScreenDetail:
			return a.updateDetail(msg)
		case ScreenForm:
			return a.updateForm(msg)
		case ScreenConfirmDelete:
			return a.updateConfirmDelete(msg)
		}

	case authform.LoginSubmittedMsg:
		return a, a.doLogin(msg.Email, msg.Password)

	case authform.RegisterSubmittedMsg:
		return a, a.doRegister(msg.Name, msg.Email, msg.Password)

	case authform.CancelledMsg:
		return a, tea.Quit

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case booktable.SelectedMsg:
		return a, a.loadBook(msg.BookID, false)

	case booktable.EditMsg:
		return a, a.loadBook(msg.BookID, true)

	case booktable.CreateMsg:
		a.form = bookform.NewCreate()
		a.screen = ScreenForm
		return a, a.form.Init()

	case booktable.DeleteMsg:
		a.pending = &deleteTarget{id: msg.BookID, title: msg.Title}
		a.screen = ScreenConfirmDelete
		return a, nil

	case bookform.SubmitMsg:
		a.form = nil
		a.screen = ScreenBooks
		return a, a.saveBook(msg)

	case bookform.CancelledMsg:
		a.form = nil
		a.screen = ScreenBooks
		return a, nil

	case booksLoadedMsg:
		return a.handleBooksLoaded(msg)

	case bookLoadedMsg:
		return a.handleBookLoaded(msg)

	case bookSavedMsg:
		return a.handleBookSaved(msg)

	case bookDeletedMsg:
		return a.handleBookDeleted(msg)

	default:
		// Forward unknown messages to the active form (huh internals)
		if a.screen == ScreenForm && a.form != nil {
			return a.updateForm(msg)
		}
		if a.screen == ScreenAuth && a.auth != nil {
			return a.updateAuthMsg(msg)
		}
	}

	return a, nil
}

func (a *App) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	return a.updateAuthMsg(msg)
}

func (a *App) updateAuthMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.auth == nil {
		return a, nil
	}
	model, cmd := a.auth.Update(msg)
	a.auth = model.(*authform.AuthForm)
	return a, cmd
}

func (a *App) updateBooks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "r":
		// Refresh always refetches; no request deduplication
		return a, a.loadBooks(true)
	}
	if a.table == nil {
		return a, nil
	}
	model, cmd := a.table.Update(msg)
	a.table = model.(*booktable.BookTable)
	return a, cmd
}

func (a *App) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return a, tea.Quit
	case "b", "esc":
		a.detail = nil
		a.screen = ScreenBooks
		return a, nil
	case "e":
		if a.detail != nil {
			return a, a.loadBook(a.detail.ID, true)
		}
	}
	return a, nil
}

func (a *App) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.form == nil {
		return a, nil
	}
	model, cmd := a.form.Update(msg)
	a.form = model.(*bookform.BookForm)
	return a, cmd
}

func (a *App) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		target := a.pending
		a.pending = nil
		a.screen = ScreenBooks
		if target != nil {
			return a, a.deleteBook(target.id)
		}
		return a, nil
	case "n", "esc":
		a.pending = nil
		a.screen = ScreenBooks
		return a, nil
	}
	return a, nil
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		a.err = msg.err
		// The submitted form is spent; rebuild it in the same mode so
		// the user can correct the credentials and retry
		mode := authform.ModeLogin
		if a.auth != nil {
			mode = a.auth.Mode()
		}
		a.auth = authform.New(mode)
		return a, a.auth.Init()
	}
	a.err = nil
	if err := a.store.SetCredentials(msg.auth.AccessToken, msg.auth.UserID); err != nil {
		a.err = fmt.Errorf("failed to persist session: %w", err)
		return a, nil
	}
	a.auth = nil
	a.screen = ScreenBooks
	return a, a.loadBooks(false)
}

func (a *App) handleBooksLoaded(msg booksLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a.handleError(msg.err)
	}
	a.err = nil
	a.books = msg.books
	a.lastUpdate = time.Now()
	if a.table == nil {
		a.table = booktable.New(msg.books, a.contentWidth(), a.contentHeight())
	} else {
		a.table.SetBooks(msg.books)
	}
	a.screen = ScreenBooks
	return a, nil
}

func (a *App) handleBookLoaded(msg bookLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a.handleError(msg.err)
	}
	a.err = nil

	if msg.forEdit {
		// Advisory only; the server independently enforces ownership
		if msg.book.Author.ID != a.store.Current().UserID {
			a.status = "You are not authorized to edit this book."
			a.screen = ScreenBooks
			return a, nil
		}
		a.form = bookform.NewEdit(msg.book)
		a.screen = ScreenForm
		return a, a.form.Init()
	}

	a.detail = msg.book
	a.screen = ScreenDetail
	return a, nil
}

func (a *App) handleBookSaved(msg bookSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a.handleError(msg.err)
	}
	a.err = nil
	a.status = fmt.Sprintf("Saved %q", msg.book.Title)
	// Any mutation invalidates the cached list before the refetch
	a.cache.Invalidate(booksCacheKey)
	return a, a.loadBooks(false)
}

func (a *App) handleBookDeleted(msg bookDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		return a.handleError(msg.err)
	}
	a.err = nil
	a.status = "Book deleted"
	a.cache.Invalidate(booksCacheKey)
	return a, a.loadBooks(false)
}

// handleError routes a failed operation. A 401 sends the user back to
// the login screen; everything else is shown on the current screen.
func (a *App) handleError(err error) (tea.Model, tea.Cmd) {
	if client.IsUnauthorized(err) {
		a.store.Clear()
		a.err = fmt.Errorf("session expired, please log in again")
		a.auth = authform.New(authform.ModeLogin)
		a.screen = ScreenAuth
		return a, a.auth.Init()
	}
	a.err = err
	return a, nil
}

// loadBooks fetches the catalog through the query cache. force drops
// the cached list first so a refresh always reaches the server.
func (a *App) loadBooks(force bool) tea.Cmd {
	return func() tea.Msg {
		if force {
			a.cache.Invalidate(booksCacheKey)
		}
		val, err := a.cache.GetOrFetch(booksCacheKey, func() (interface{}, error) {
			return a.client.ListBooks(context.Background())
		})
		if err != nil {
			return booksLoadedMsg{err: err}
		}
		return booksLoadedMsg{books: val.([]client.Book)}
	}
}

// loadBook fetches one book, either for the detail view or the edit form
func (a *App) loadBook(id string, forEdit bool) tea.Cmd {
	return func() tea.Msg {
		book, err := a.client.GetBook(context.Background(), id)
		return bookLoadedMsg{book: book, forEdit: forEdit, err: err}
	}
}

func (a *App) doLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		auth, err := a.client.Login(context.Background(), client.LoginInput{Email: email, Password: password})
		return authDoneMsg{auth: auth, err: err}
	}
}

func (a *App) doRegister(name, email, password string) tea.Cmd {
	return func() tea.Msg {
		auth, err := a.client.Register(context.Background(), client.RegisterInput{Name: name, Email: email, Password: password})
		return authDoneMsg{auth: auth, err: err}
	}
}

// saveBook uploads a create or update built from the submitted form
func (a *App) saveBook(msg bookform.SubmitMsg) tea.Cmd {
	return func() tea.Msg {
		input := client.BookInput{
			Title:       msg.Title,
			Genre:       msg.Genre,
			Description: msg.Description,
		}

		if msg.CoverPath != "" {
			cover, closer, err := client.UploadFromFile(msg.CoverPath)
			if err != nil {
				return bookSavedMsg{err: err}
			}
			defer closer.Close()
			input.CoverImage = cover
		}
		if msg.FilePath != "" {
			file, closer, err := client.UploadFromFile(msg.FilePath)
			if err != nil {
				return bookSavedMsg{err: err}
			}
			defer closer.Close()
			input.File = file
		}

		var book *client.Book
		var err error
		if msg.BookID == "" {
			book, err = a.client.CreateBook(context.Background(), input)
		} else {
			book, err = a.client.UpdateBook(context.Background(), msg.BookID, input)
		}
		return bookSavedMsg{book: book, err: err}
	}
}

func (a *App) deleteBook(id string) tea.Cmd {
	return func() tea.Msg {
		err := a.client.DeleteBook(context.Background(), id)
		return bookDeletedMsg{id: id, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenAuth:
		content = a.viewAuth()
	case ScreenBooks:
		content = a.viewBooks()
	case ScreenDetail:
		content = a.viewDetail()
	case ScreenForm:
		content = a.viewForm()
	case ScreenConfirmDelete:
		content = a.viewConfirmDelete()
	default:
		content = a.viewBooks()
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewAuth() string {
	body := ""
	if a.err != nil {
		body = styles.StatusError.Render(a.err.Error()) + "\n\n"
	}
	if a.auth != nil {
		body += a.auth.View()
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(body)
}

func (a *App) viewBooks() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render("Books"))
	sb.WriteString("\n")
	if a.err != nil {
		sb.WriteString(styles.StatusError.Render("Error: " + a.err.Error()))
		sb.WriteString("\n\n")
	}
	if a.status != "" {
		sb.WriteString(styles.StatusOK.Render(a.status))
		sb.WriteString("\n\n")
	}
	if a.table != nil {
		sb.WriteString(a.table.View())
	} else {
		sb.WriteString(styles.Subtitle.Render("Loading..."))
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(sb.String())
}

func (a *App) viewDetail() string {
	if a.detail == nil {
		return styles.Panel.Width(a.contentWidth()).Render("Loading...")
	}
	b := a.detail
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(b.Title))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(b.Genre))
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Author:      %s\n", b.Author.Name))
	sb.WriteString(fmt.Sprintf("Created:     %s\n", b.CreatedAt))
	sb.WriteString(fmt.Sprintf("Cover image: %s\n", b.CoverImage))
	sb.WriteString(fmt.Sprintf("Book file:   %s\n", b.File))
	sb.WriteString("\n")
	sb.WriteString(b.Description)
	return styles.ActivePanel.Width(a.contentWidth()).Render(sb.String())
}

func (a *App) viewForm() string {
	if a.form == nil {
		return ""
	}
	return styles.ActivePanel.Width(a.contentWidth()).Render(a.form.View())
}

func (a *App) viewConfirmDelete() string {
	title := ""
	if a.pending != nil {
		title = a.pending.title
	}
	body := fmt.Sprintf("Are you sure you want to delete %q?\n\n", title)
	body += styles.KeyStyle.Render("y") + " delete    " + styles.KeyStyle.Render("n") + " cancel"
	return styles.ActivePanel.Width(a.contentWidth()).Render(body)
}

func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth - 4
	}
	return a.width - 4
}

func (a *App) contentHeight() int {
	h := a.height - frameOverhead
	if h < 5 {
		return 5
	}
	return h
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := " " + titleStyle.Render("Bookshelf")

	rightText := ""
	if s := a.store.Current(); s.Authenticated() && a.screen != ScreenAuth {
		rightText = contextStyle.Render("user "+s.UserID) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts and status
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	var shortcuts []string
	switch a.screen {
	case ScreenAuth:
		shortcuts = []string{"tab Login/Register", "esc Quit"}
	case ScreenBooks:
		shortcuts = []string{"↑↓ Navigate", "Enter Open", "n New", "e Edit", "d Delete", "r Refresh", "q Quit"}
	case ScreenDetail:
		shortcuts = []string{"e Edit", "b Back", "q Quit"}
	case ScreenForm:
		shortcuts = []string{"Enter Next", "Esc Cancel"}
	case ScreenConfirmDelete:
		shortcuts = []string{"y Delete", "n Cancel"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlainText := " " + strings.Join(shortcuts, "  ")

	rightText := ""
	rightPlainText := ""
	if !a.lastUpdate.IsZero() && a.screen == ScreenBooks {
		elapsed := formatTimeSince(a.lastUpdate)
		rightText = statusStyle.Render("Updated "+elapsed) + " "
		rightPlainText = "Updated " + elapsed + " "
	}

	leftWidth := lipgloss.Width(leftPlainText)
	rightWidth := lipgloss.Width(rightPlainText)
	fillWidth := width - 4 - leftWidth - rightWidth
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// formatTimeSince formats a duration since the given time in human-readable form
func formatTimeSince(t time.Time) string {
	d := time.Since(t)

	if d < time.Minute {
		secs := int(d.Seconds())
		if secs < 5 {
			return "just now"
		}
		return fmt.Sprintf("%ds ago", secs)
	}

	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1m ago"
		}
		return fmt.Sprintf("%dm ago", mins)
	}

	hours := int(d.Hours())
	if hours == 1 {
		return "1h ago"
	}
	return fmt.Sprintf("%dh ago", hours)
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(apiClient *client.Client, store *session.Store, queryCache *cache.Cache) error {
	app := New(apiClient, store, queryCache)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
