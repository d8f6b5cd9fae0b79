package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderAlert() string {
	al := a.state.alert
	if al == nil {
		return a.renderList()
	}

	var b strings.Builder

	titleStyle := styleTitle
	border := colorPrimary
	if al.isError {
		titleStyle = lipgloss.NewStyle().Foreground(colorError).Bold(true)
		border = colorError
	}

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, titleStyle.Render(al.title)))
	b.WriteString("\n\n")

	box := styleBox.Copy().
		Width(a.boxWidth(70)).
		BorderForeground(border).
		Render(al.message)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	if al.status != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleNotice.Render(al.status)))
		b.WriteString("\n\n")
	}

	status := "[Enter] OK"
	if al.copyText != "" {
		status += "  [c] Copy"
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status)))

	return a.centerVertically(b.String())
}

func (a *App) renderConfirm() string {
	c := a.state.confirm
	if c == nil {
		return a.renderList()
	}

	var b strings.Builder

	title := lipgloss.NewStyle().Foreground(colorWarning).Bold(true).Render(c.title)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	box := styleBox.Copy().
		Width(a.boxWidth(56)).
		BorderForeground(colorWarning).
		Render(c.message)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render("[y] Delete  [n] Cancel")))

	return a.centerVertically(b.String())
}
