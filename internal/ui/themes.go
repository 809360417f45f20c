package ui

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// Theme is a CLI colour scheme.
type Theme struct {
	// Name is the identifier of the theme.
	Name string
	// Primary highlights results.
	Primary *color.Color
	// Secondary is used for labels and metadata such as durations.
	Secondary *color.Color
	// Success marks successful outcomes.
	Success *color.Color
	// Warning marks non-fatal conditions.
	Warning *color.Color
	// Error marks failures.
	Error *color.Color
	// Info marks the internals dump.
	Info *color.Color
}

var (
	// DarkTheme uses bright colours for dark terminal backgrounds.
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   color.New(color.FgHiCyan, color.Bold),
		Secondary: color.New(color.FgHiBlack),
		Success:   color.New(color.FgHiGreen),
		Warning:   color.New(color.FgHiYellow),
		Error:     color.New(color.FgHiRed, color.Bold),
		Info:      color.New(color.FgHiMagenta),
	}

	// LightTheme uses darker colours for light backgrounds.
	LightTheme = Theme{
		Name:      "light",
		Primary:   color.New(color.FgBlue, color.Bold),
		Secondary: color.New(color.FgBlack),
		Success:   color.New(color.FgGreen),
		Warning:   color.New(color.FgYellow),
		Error:     color.New(color.FgRed, color.Bold),
		Info:      color.New(color.FgMagenta),
	}

	// NoColorTheme disables colour output.
	NoColorTheme = newNoColorTheme()

	currentTheme = DarkTheme
	themeMutex   sync.RWMutex
)

func newNoColorTheme() Theme {
	plain := func() *color.Color {
		c := color.New()
		c.DisableColor()
		return c
	}
	return Theme{
		Name:      "none",
		Primary:   plain(),
		Secondary: plain(),
		Success:   plain(),
		Warning:   plain(),
		Error:     plain(),
		Info:      plain(),
	}
}

// TUITheme defines lipgloss colours for the terminal UI.
type TUITheme struct {
	Text    lipgloss.TerminalColor
	Border  lipgloss.TerminalColor
	Accent  lipgloss.TerminalColor
	Success lipgloss.TerminalColor
	Error   lipgloss.TerminalColor
	Dim     lipgloss.TerminalColor
}

var (
	// DarkTUITheme is the default TUI palette.
	DarkTUITheme = TUITheme{
		Text:    lipgloss.Color("#E0E0E0"),
		Border:  lipgloss.Color("#4488FF"),
		Accent:  lipgloss.Color("#00D7FF"),
		Success: lipgloss.Color("#9ECE6A"),
		Error:   lipgloss.Color("#FF4444"),
		Dim:     lipgloss.Color("#666666"),
	}

	// LightTUITheme pairs with LightTheme.
	LightTUITheme = TUITheme{
		Text:    lipgloss.Color("#202020"),
		Border:  lipgloss.Color("#1F4FBF"),
		Accent:  lipgloss.Color("#0050A0"),
		Success: lipgloss.Color("#2E7D32"),
		Error:   lipgloss.Color("#B00020"),
		Dim:     lipgloss.Color("#707070"),
	}

	// NoColorTUITheme renders with the terminal's default colours.
	NoColorTUITheme = TUITheme{
		Text:    lipgloss.NoColor{},
		Border:  lipgloss.NoColor{},
		Accent:  lipgloss.NoColor{},
		Success: lipgloss.NoColor{},
		Error:   lipgloss.NoColor{},
		Dim:     lipgloss.NoColor{},
	}
)

// GetCurrentTUITheme returns the TUI palette matching the active theme.
func GetCurrentTUITheme() TUITheme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()

	switch currentTheme.Name {
	case "none":
		return NoColorTUITheme
	case "light":
		return LightTUITheme
	default:
		return DarkTUITheme
	}
}

// GetCurrentTheme returns the active theme.
func GetCurrentTheme() Theme {
	themeMutex.RLock()
	defer themeMutex.RUnlock()
	return currentTheme
}

// SetCurrentTheme replaces the active theme; tests use it to restore state.
func SetCurrentTheme(t Theme) {
	themeMutex.Lock()
	defer themeMutex.Unlock()
	currentTheme = t
}

// SetTheme activates a theme by name ("dark", "light", "none"). Unknown
// names select the dark theme.
func SetTheme(name string) {
	themeMutex.Lock()
	defer themeMutex.Unlock()

	switch name {
	case "light":
		currentTheme = LightTheme
	case "none":
		currentTheme = NoColorTheme
	default:
		currentTheme = DarkTheme
	}
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// ColorEnabled decides whether colour is used for out. Colour is off when
// noColor is set, when NO_COLOR is present in the environment
// (https://no-color.org/) or when out is not a terminal.
func ColorEnabled(noColor bool, out *os.File) bool {
	if noColor {
		return false
	}
	if _, exists := os.LookupEnv("NO_COLOR"); exists {
		return false
	}
	return IsTerminal(out)
}

// InitTheme selects the dark theme or NoColorTheme according to
// ColorEnabled, and sets fatih/color's global switch to match.
func InitTheme(noColor bool, out *os.File) {
	enabled := ColorEnabled(noColor, out)

	themeMutex.Lock()
	defer themeMutex.Unlock()
	color.NoColor = !enabled
	if enabled {
		currentTheme = DarkTheme
	} else {
		currentTheme = NoColorTheme
	}
}
