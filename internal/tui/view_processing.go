package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderProcessing() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("AI Help")))
	b.WriteString("\n\n")

	task := styleSubtitle.Render("> " + truncate(a.state.aiTask, 60))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, task))
	b.WriteString("\n\n")

	line := a.state.spinner.View() + " Working out the steps with " + a.state.config.Model + "..."
	box := styleBox.Copy().
		Width(a.boxWidth(60)).
		BorderForeground(colorSecondary).
		Render(line)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))

	return a.centerVertically(b.String())
}
