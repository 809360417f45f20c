package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/bigcalc/internal/ui"
)

// Styles of the calculator, rebuilt from the ui theme by initTUIStyles.
var (
	panelStyle      lipgloss.Style
	titleStyle      lipgloss.Style
	dimStyle        lipgloss.Style
	exprStyle       lipgloss.Style
	resultStyle     lipgloss.Style
	errorStyle      lipgloss.Style
	varNameStyle    lipgloss.Style
	statusOKStyle   lipgloss.Style
	statusBusyStyle lipgloss.Style
)

func init() {
	initTUIStyles()
}

// initTUIStyles rebuilds all styles from the current ui theme. Run calls it
// again after the application has selected its theme.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(t.Accent)

	dimStyle = lipgloss.NewStyle().
		Foreground(t.Dim)

	exprStyle = lipgloss.NewStyle().
		Foreground(t.Text)

	resultStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	errorStyle = lipgloss.NewStyle().
		Foreground(t.Error)

	varNameStyle = lipgloss.NewStyle().
		Foreground(t.Success)

	statusOKStyle = lipgloss.NewStyle().
		Foreground(t.Success).
		Bold(true)

	statusBusyStyle = lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)
}
