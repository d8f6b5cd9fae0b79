package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// truncate shortens text to maxLen runes, adding "..." if truncated
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

var (
	// Colors
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorSecondary = lipgloss.Color("#06B6D4")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorMuted     = lipgloss.Color("#6B7280")
	colorWhite     = lipgloss.Color("#F9FAFB")

	// Logo style
	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	styleTitle = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Subtitle
	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Box
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleCategory = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)

	styleSelected = lipgloss.NewStyle().
			Foreground(colorWhite).
			Bold(true)

	styleDone = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Strikethrough(true)

	styleOverdue = lipgloss.NewStyle().
			Foreground(colorError)

	styleFieldError = lipgloss.NewStyle().
			Foreground(colorError)

	styleNotice = lipgloss.NewStyle().
			Foreground(colorWarning)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(colorSecondary)
)

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}

// boxWidth caps a box at limit columns while leaving a margin on narrow
// terminals.
func (a *App) boxWidth(limit int) int {
	if a.width <= 0 {
		return limit
	}
	return min(limit, a.width-4)
}
