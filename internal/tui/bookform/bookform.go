// ABOUTME: Create/edit book form as a bubbletea model
// ABOUTME: Collects text fields plus local file paths for the uploads

package bookform

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/jdalton/bookshelf-cli/internal/client"
	"github.com/jdalton/bookshelf-cli/internal/tui/styles"
)

// SubmitMsg is sent when the form completes. An empty BookID means
// create; otherwise it is an update of that book.
type SubmitMsg struct {
	BookID      string
	Title       string
	Genre       string
	Description string
	CoverPath   string
	FilePath    string
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// BookForm collects book fields for create or edit
type BookForm struct {
	bookID    string
	form      *huh.Form
	width     int
	submitted bool

	title       string
	genre       string
	description string
	coverPath   string
	filePath    string
}

// NewCreate creates an empty form for a new book
func NewCreate() *BookForm {
	f := &BookForm{}
	f.form = f.createForm()
	return f
}

// NewEdit creates a form pre-filled from an existing book. File path
// fields start empty; leaving them empty keeps the server's files.
func NewEdit(book *client.Book) *BookForm {
	f := &BookForm{
		bookID:      book.ID,
		title:       book.Title,
		genre:       book.Genre,
		description: book.Description,
	}
	f.form = f.createForm()
	return f
}

func (f *BookForm) editing() bool {
	return f.bookID != ""
}

func (f *BookForm) createForm() *huh.Form {
	title := huh.NewInput().
		Title("Title").
		Value(&f.title).
		Validate(minLength("title", 2))
	genre := huh.NewInput().
		Title("Genre").
		Value(&f.genre).
		Validate(minLength("genre", 2))
	description := huh.NewText().
		Title("Description").
		Value(&f.description).
		Validate(minLength("description", 2))

	coverTitle := "Cover image path"
	fileTitle := "Book file path"
	validateCover := validateFilePath
	validateFile := validateFilePath
	if f.editing() {
		coverTitle += " (blank keeps current)"
		fileTitle += " (blank keeps current)"
		validateCover = validateOptionalFilePath
		validateFile = validateOptionalFilePath
	}
	cover := huh.NewInput().
		Title(coverTitle).
		Placeholder("/path/to/cover.png").
		Value(&f.coverPath).
		Validate(validateCover)
	file := huh.NewInput().
		Title(fileTitle).
		Placeholder("/path/to/book.pdf").
		Value(&f.filePath).
		Validate(validateFile)

	groupTitle := "Add book"
	groupDesc := "Fill out the form below to create a new book."
	if f.editing() {
		groupTitle = "Edit book"
		groupDesc = "Fill out the form below to edit the book."
	}

	return huh.NewForm(
		huh.NewGroup(title, genre, description, cover, file).
			Title(groupTitle).
			Description(groupDesc),
	).WithTheme(huh.ThemeBase())
}

func minLength(field string, n int) func(string) error {
	return func(s string) error {
		if len(strings.TrimSpace(s)) < n {
			return fmt.Errorf("%s must be at least %d characters", field, n)
		}
		return nil
	}
}

func validateFilePath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("a file path is required")
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("cannot read %s", path)
	}
	return nil
}

func validateOptionalFilePath(path string) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	return validateFilePath(path)
}

// Init implements tea.Model
func (f *BookForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *BookForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width

	case tea.KeyMsg:
		if msg.String() == "esc" {
			return f, func() tea.Msg { return CancelledMsg{} }
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	// Emit the submit exactly once; messages queued between completion
	// and the app processing SubmitMsg must not trigger a second save
	if f.form.State == huh.StateCompleted && !f.submitted {
		f.submitted = true
		submit := SubmitMsg{
			BookID:      f.bookID,
			Title:       strings.TrimSpace(f.title),
			Genre:       strings.TrimSpace(f.genre),
			Description: strings.TrimSpace(f.description),
			CoverPath:   strings.TrimSpace(f.coverPath),
			FilePath:    strings.TrimSpace(f.filePath),
		}
		return f, func() tea.Msg { return submit }
	}

	return f, cmd
}

// View implements tea.Model
func (f *BookForm) View() string {
	var sb strings.Builder
	sb.WriteString(f.form.View())
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("esc cancel"))
	return sb.String()
}
