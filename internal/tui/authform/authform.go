// ABOUTME: Login and register forms as a bubbletea model
// ABOUTME: Uses huh forms and emits submitted credentials to the app

package authform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdalton/bookshelf-cli/internal/tui/styles"
)

// Mode selects which form is shown
type Mode int

const (
	ModeLogin Mode = iota
	ModeRegister
)

// LoginSubmittedMsg is sent when the login form completes
type LoginSubmittedMsg struct {
	Email    string
	Password string
}

// RegisterSubmittedMsg is sent when the register form completes
type RegisterSubmittedMsg struct {
	Name     string
	Email    string
	Password string
}

// CancelledMsg is sent when the user backs out
type CancelledMsg struct{}

// AuthForm collects credentials for login or registration
type AuthForm struct {
	mode      Mode
	form      *huh.Form
	width     int
	submitted bool

	name     string
	email    string
	password string
}

// New creates an auth form in the given mode
func New(mode Mode) *AuthForm {
	f := &AuthForm{mode: mode}
	f.form = f.createForm()
	return f
}

// Mode returns the form's current mode
func (f *AuthForm) Mode() Mode {
	return f.mode
}

func (f *AuthForm) createForm() *huh.Form {
	email := huh.NewInput().
		Title("Email").
		Placeholder("m@example.com").
		Value(&f.email).
		Validate(validateRequired("email"))
	password := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&f.password).
		Validate(validateRequired("password"))

	if f.mode == ModeRegister {
		name := huh.NewInput().
			Title("Full name").
			Placeholder("Max").
			Value(&f.name).
			Validate(validateRequired("name"))
		return huh.NewForm(
			huh.NewGroup(name, email, password).
				Title("Sign Up").
				Description("Enter your information to create an account"),
		).WithTheme(huh.ThemeBase())
	}

	return huh.NewForm(
		huh.NewGroup(email, password).
			Title("Login").
			Description("Enter your email below to login to your account"),
	).WithTheme(huh.ThemeBase())
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return &requiredError{field: field}
		}
		return nil
	}
}

type requiredError struct {
	field string
}

func (e *requiredError) Error() string {
	return e.field + " is required"
}

// Init implements tea.Model
func (f *AuthForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update implements tea.Model
func (f *AuthForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return f, func() tea.Msg { return CancelledMsg{} }
		case "tab":
			// Toggle between login and register when the form is idle
			if f.form.State == huh.StateNormal {
				if f.mode == ModeLogin {
					f.mode = ModeRegister
				} else {
					f.mode = ModeLogin
				}
				f.form = f.createForm()
				return f, f.form.Init()
			}
		}
	}

	form, cmd := f.form.Update(msg)
	if hf, ok := form.(*huh.Form); ok {
		f.form = hf
	}

	// Emit the submit exactly once; the form stays StateCompleted
	// afterwards and must not fire again on later messages
	if f.form.State == huh.StateCompleted && !f.submitted {
		f.submitted = true
		return f, f.submit()
	}

	return f, cmd
}

func (f *AuthForm) submit() tea.Cmd {
	if f.mode == ModeRegister {
		msg := RegisterSubmittedMsg{
			Name:     strings.TrimSpace(f.name),
			Email:    strings.TrimSpace(f.email),
			Password: f.password,
		}
		return func() tea.Msg { return msg }
	}
	msg := LoginSubmittedMsg{
		Email:    strings.TrimSpace(f.email),
		Password: f.password,
	}
	return func() tea.Msg { return msg }
}

// View implements tea.Model
func (f *AuthForm) View() string {
	var sb strings.Builder
	sb.WriteString(f.form.View())
	hint := "tab switch login/register  esc quit"
	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render(hint))
	return lipgloss.NewStyle().Render(sb.String())
}
