// ABOUTME: Books table component backed by bubbles/table
// ABOUTME: Shows the catalog and emits selection and action messages

package booktable

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdalton/bookshelf-cli/internal/client"
	"github.com/jdalton/bookshelf-cli/internal/tui/styles"
)

// SelectedMsg is sent when a book row is opened
type SelectedMsg struct {
	BookID string
}

// EditMsg is sent when the user wants to edit the highlighted book
type EditMsg struct {
	BookID string
}

// DeleteMsg is sent when the user wants to delete the highlighted book
type DeleteMsg struct {
	BookID string
	Title  string
}

// CreateMsg is sent when the user wants to add a book
type CreateMsg struct{}

// BookTable renders the catalog as a navigable table
type BookTable struct {
	table table.Model
	books []client.Book
	width int
}

// New creates a book table with the given rows
func New(books []client.Book, width, height int) *BookTable {
	columns := []table.Column{
		{Title: "Title", Width: 28},
		{Title: "Genre", Width: 14},
		{Title: "Author", Width: 18},
		{Title: "Created", Width: 20},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rowsFor(books)),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(styles.Text).
		Background(styles.Primary).
		Bold(false)
	t.SetStyles(s)

	return &BookTable{table: t, books: books, width: width}
}

func rowsFor(books []client.Book) []table.Row {
	rows := make([]table.Row, 0, len(books))
	for _, b := range books {
		rows = append(rows, table.Row{b.Title, b.Genre, b.Author.Name, b.CreatedAt})
	}
	return rows
}

// SetBooks replaces the table contents
func (bt *BookTable) SetBooks(books []client.Book) {
	bt.books = books
	bt.table.SetRows(rowsFor(books))
}

// SetSize updates the table dimensions
func (bt *BookTable) SetSize(width, height int) {
	bt.width = width
	bt.table.SetHeight(height)
}

// Selected returns the highlighted book, or nil for an empty table
func (bt *BookTable) Selected() *client.Book {
	idx := bt.table.Cursor()
	if idx < 0 || idx >= len(bt.books) {
		return nil
	}
	return &bt.books[idx]
}

// Init implements tea.Model
func (bt *BookTable) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (bt *BookTable) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if b := bt.Selected(); b != nil {
				return bt, func() tea.Msg { return SelectedMsg{BookID: b.ID} }
			}
			return bt, nil
		case "e":
			if b := bt.Selected(); b != nil {
				return bt, func() tea.Msg { return EditMsg{BookID: b.ID} }
			}
			return bt, nil
		case "d":
			if b := bt.Selected(); b != nil {
				return bt, func() tea.Msg { return DeleteMsg{BookID: b.ID, Title: b.Title} }
			}
			return bt, nil
		case "n":
			return bt, func() tea.Msg { return CreateMsg{} }
		}
	}

	var cmd tea.Cmd
	bt.table, cmd = bt.table.Update(msg)
	return bt, cmd
}

// View implements tea.Model
func (bt *BookTable) View() string {
	if len(bt.books) == 0 {
		return styles.Subtitle.Render("No books in the catalog yet. Press n to add one.")
	}
	return bt.table.View()
}
