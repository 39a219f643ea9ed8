package tui

import (
	"fmt"
	"io"

	"eduxctl/pkg/config"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

var (
	// These act as fallbacks initially, GetTheme() replaces the accent with the configured one
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// GetTheme loads the user's saved Accent Color and constructs the UI theme.
func GetTheme() *huh.Theme {
	cfg, err := config.Load()
	baseColor := config.Defaults().AccentColor

	if err == nil && cfg != nil && cfg.AccentColor != "" {
		baseColor = cfg.AccentColor
	}

	// Update the global lipgloss accent so manual CLI print statements also receive the color
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(baseColor))

	return GetCustomTheme(baseColor)
}

// GetCustomTheme returns a new huh.Theme instantiated with the provided lipgloss color string.
// This is used for live-previewing styles before they are officially saved.
func GetCustomTheme(baseColor string) *huh.Theme {
	t := huh.ThemeCharm()
	p := lipgloss.Color(baseColor)

	// Inject the dynamic color into the active inputs, cursors, borders, and buttons
	t.Focused.Title = t.Focused.Title.Foreground(p).Bold(true)
	t.Focused.Base = t.Focused.Base.Border(lipgloss.RoundedBorder()).BorderForeground(p).Padding(0, 1)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "235"})
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(p)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(lipgloss.Color("0")).Background(p)

	// Softer borders for unfocused elements
	t.Blurred.Base = t.Blurred.Base.Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	return t
}

// Printer writes styled status lines for the user.
type Printer struct {
	w io.Writer
}

// NewPrinter returns a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.w, msg)
}

// Question prints an emphasized line, used for prompts and headings.
func (p *Printer) Question(msg string) {
	fmt.Fprintln(p.w, accentStyle.Render(msg))
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.w, warnStyle.Render(msg))
}

func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, errorStyle.Render(msg))
}

func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.w, successStyle.Render(msg))
}

// Menu actions returned by RunMenu
const (
	ActionShow    = "show"
	ActionSet     = "set"
	ActionForm    = "form"
	ActionTree    = "tree"
	ActionCourses = "courses"
	ActionCookie  = "cookie"
	ActionConfig  = "config"
	ActionQuit    = "quit"
)

// RunMenu launches the main menu and returns the chosen action.
func RunMenu() (string, error) {
	var action string

	initialForm := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What would you like to do?").
				Options(
					huh.NewOption("🔎 Show a Score", ActionShow),
					huh.NewOption("✏️ Edit a Score", ActionSet),
					huh.NewOption("📋 Show a Whole Form", ActionForm),
					huh.NewOption("🌳 Browse Classification", ActionTree),
					huh.NewOption("📚 List Courses", ActionCourses),
					huh.NewOption("🍪 Set Session Cookie", ActionCookie),
					huh.NewOption("⚙️ Settings", ActionConfig),
					huh.NewOption("👋 Quit", ActionQuit),
				).
				Value(&action),
		),
	).WithTheme(GetTheme())

	if err := initialForm.Run(); err != nil {
		return "", err
	}
	return action, nil
}
