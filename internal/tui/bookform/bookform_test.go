// ABOUTME: Tests for the create/edit book form component
// ABOUTME: Validates prefilling, field validation and cancellation

package bookform

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/jdalton/bookshelf-cli/internal/client"
)

func TestNewCreateIsEmpty(t *testing.T) {
	f := NewCreate()

	if f.editing() {
		t.Error("expected create form to not be in edit mode")
	}
	if f.title != "" || f.genre != "" || f.description != "" {
		t.Error("expected create form fields to start empty")
	}
}

func TestNewEditPrefillsFields(t *testing.T) {
	book := &client.Book{
		ID:          "b1",
		Title:       "Dune",
		Genre:       "Sci-Fi",
		Description: "Desert planet epic",
	}

	f := NewEdit(book)

	if !f.editing() {
		t.Error("expected edit form to be in edit mode")
	}
	if f.title != "Dune" || f.genre != "Sci-Fi" || f.description != "Desert planet epic" {
		t.Errorf("expected prefilled fields, got title=%q genre=%q", f.title, f.genre)
	}
	// Blank paths keep the server's current files
	if f.coverPath != "" || f.filePath != "" {
		t.Error("expected file path fields to start empty on edit")
	}
}

func TestEscEmitsCancelled(t *testing.T) {
	f := NewCreate()

	_, cmd := f.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected a command from esc")
	}
	if _, ok := cmd().(CancelledMsg); !ok {
		t.Error("expected CancelledMsg from esc")
	}
}

func TestCompletedFormSubmitsOnce(t *testing.T) {
	f := NewCreate()
	f.title = "Dune"
	f.genre = "Sci-Fi"
	f.description = "Desert planet epic"
	f.form.State = huh.StateCompleted

	// First message after completion emits the submit
	model, cmd := f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	f = model.(*BookForm)
	if cmd == nil {
		t.Fatal("expected a submit command from the completed form")
	}
	if _, ok := cmd().(SubmitMsg); !ok {
		t.Fatalf("expected SubmitMsg, got %T", cmd())
	}

	// Queued messages must not trigger a second save
	for i := 0; i < 3; i++ {
		model, cmd = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
		f = model.(*BookForm)
		if cmd == nil {
			continue
		}
		if _, ok := cmd().(SubmitMsg); ok {
			t.Fatalf("keypress %d issued a duplicate submit", i+1)
		}
	}
}

func TestMinLength(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"Dune", false},
		{"ab", false},
		{"a", true},
		{"  a  ", true},
		{"", true},
	}

	validate := minLength("title", 2)
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			err := validate(tc.input)
			if tc.wantErr && err == nil {
				t.Errorf("expected error for input %q", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error for input %q: %v", tc.input, err)
			}
		})
	}
}

func TestValidateFilePath(t *testing.T) {
	existing := filepath.Join(t.TempDir(), "cover.png")
	if err := os.WriteFile(existing, []byte("png"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := validateFilePath(existing); err != nil {
		t.Errorf("unexpected error for existing file: %v", err)
	}
	if err := validateFilePath("/no/such/file.png"); err == nil {
		t.Error("expected error for missing file")
	}
	if err := validateFilePath(""); err == nil {
		t.Error("expected error for empty path")
	}
}

func TestValidateOptionalFilePath(t *testing.T) {
	if err := validateOptionalFilePath(""); err != nil {
		t.Errorf("expected blank path to be allowed on edit, got %v", err)
	}
	if err := validateOptionalFilePath("   "); err != nil {
		t.Errorf("expected whitespace path to be allowed on edit, got %v", err)
	}
	if err := validateOptionalFilePath("/no/such/file.png"); err == nil {
		t.Error("expected error for missing file")
	}
}
