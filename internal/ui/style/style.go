// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported. All styling
// is semantic (Success, Warning, Error, etc.) rather than visual (RedBold, etc.).
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Palette holds ANSI 256-color values, or "bold", per semantic role.
type Palette struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
}

// DefaultPalette reads on both dark and light terminals.
var DefaultPalette = Palette{
	Success: "2",
	Warning: "3",
	Error:   "1",
	Info:    "6",
	Muted:   "8",
	Header:  "bold",
}

var (
	enabled bool

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
)

// Init enables or disables styling with the default palette.
// NO_COLOR and ECUPROBE_NO_COLOR, if set to any non-empty value, disable
// styling regardless of enable.
//
// This function should be called once from main before any output.
func Init(enable bool) {
	InitWith(enable, DefaultPalette)
}

// InitWith is Init with an explicit palette.
func InitWith(enable bool, p Palette) {
	if os.Getenv("NO_COLOR") != "" || os.Getenv("ECUPROBE_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable

	if enabled {
		// Force ANSI256 regardless of TTY detection; the caller already decided.
		lipgloss.SetColorProfile(termenv.ANSI256)

		successStyle = makeStyle(p.Success)
		warningStyle = makeStyle(p.Warning)
		errorStyle = makeStyle(p.Error)
		infoStyle = makeStyle(p.Info)
		mutedStyle = makeStyle(p.Muted)
		headerStyle = makeStyle(p.Header)
	}
}

// makeStyle creates a lipgloss style from a color value.
// The value can be "bold" for bold styling, or an ANSI color number (0-255).
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	return enabled
}

func render(s lipgloss.Style, text string) string {
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Success styles text for successful operations.
func Success(text string) string { return render(successStyle, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return render(warningStyle, text) }

// Error styles text for error messages.
func Error(text string) string { return render(errorStyle, text) }

// Info styles command names and other highlighted values.
func Info(text string) string { return render(infoStyle, text) }

// Header styles section headers.
func Header(text string) string { return render(headerStyle, text) }

// Muted styles secondary information.
func Muted(text string) string { return render(mutedStyle, text) }
