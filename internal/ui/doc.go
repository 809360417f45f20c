// Package ui holds the colour themes shared by the line-oriented CLI and the
// terminal UI, and decides whether colour is used at all.
//
// CLI colours are fatih/color attributes; TUI colours are lipgloss colours.
// Both follow the same active theme, which honours --no-color, the NO_COLOR
// environment variable and whether the output is a terminal.
package ui
