package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleTitle.Render("Help")))
	b.WriteString("\n\n")

	listKeys := []key.Binding{
		keys.Up, keys.Down, keys.Toggle, keys.AddTodo, keys.DeleteTodo,
		keys.AddCategory, keys.DeleteCategory, keys.AIHelp, keys.Settings, keys.Quit,
	}
	shortcutsBox := styleBox.Copy().
		Width(a.boxWidth(50)).
		Render(strings.Join(helpLines(listKeys), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Todo list")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, shortcutsBox))
	b.WriteString("\n\n")

	formKeys := []key.Binding{keys.Tab, keys.ShiftTab, keys.Left, keys.Right, keys.Enter, keys.Back}
	formBox := styleBox.Copy().
		Width(a.boxWidth(50)).
		Render(strings.Join(helpLines(formKeys), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render("Forms")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, formBox))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render("[Esc] Back")))

	return a.centerVertically(b.String())
}

func helpLines(bindings []key.Binding) []string {
	lines := make([]string, len(bindings))
	for i, kb := range bindings {
		h := kb.Help()
		lines[i] = fmt.Sprintf("  %-12s %s", h.Key, h.Desc)
	}
	return lines
}
