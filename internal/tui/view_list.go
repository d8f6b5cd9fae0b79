package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"

	"github.com/sant0-9/todoai/internal/todo"
)

func (a *App) renderList() string {
	var b strings.Builder

	b.WriteString(a.renderHeader())
	b.WriteString("\n\n")

	summary := fmt.Sprintf("%d categories  %d todos  %d done",
		len(a.state.categories), len(a.state.todos), a.doneCount())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleSubtitle.Render(summary)))
	b.WriteString("\n\n")

	width := a.boxWidth(72)
	var body string
	switch {
	case len(a.state.categories) == 0:
		body = styleSubtitle.Render("No categories yet. Press [c] to add one.")
	case len(a.state.todos) == 0:
		body = styleSubtitle.Render("Nothing to do. Press [a] to add a todo.")
	default:
		body = strings.Join(a.todoLines(width-4), "\n")
	}

	box := styleBox.Copy().
		Width(width).
		BorderForeground(colorPrimary).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	if a.state.notice != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleNotice.Render(a.state.notice)))
		b.WriteString("\n\n")
	}

	status := styleStatusBar.Render("[a] Todo  [c] Category  [space] Done  [d] Delete  [i] AI help  [s] Settings  [?] Help  [q] Quit")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render("AI: ")+a.providerStatus()))

	return a.centerVertically(b.String())
}

// bannerRows is the height of everything on the list screen except the todo
// rows, with the banner logo shown.
const bannerRows = 24

// renderHeader draws the banner logo when the list still fits below it.
func (a *App) renderHeader() string {
	tagline := styleSubtitle.Render("todos with a little help")
	if a.width < 48 || a.height < max(len(a.state.todos), 1)+bannerRows {
		header := styleLogo.Render("todoai") + "  " + tagline
		return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header)
	}

	logo := strings.TrimRight(figure.NewFigure("todoai", "small", true).String(), "\n")
	header := lipgloss.JoinVertical(lipgloss.Center, styleLogo.Render(logo), tagline)
	return lipgloss.PlaceHorizontal(a.width, lipgloss.Center, header)
}

// todoLines renders one line per todo, in store order so the cursor index
// lines up with state.todos.
func (a *App) todoLines(width int) []string {
	now := time.Now()
	lines := make([]string, 0, len(a.state.todos))

	for i, t := range a.state.todos {
		check := "[ ]"
		if t.Done() {
			check = "[x]"
		}

		category := styleCategory.Render(truncate(a.state.categoryName(t.CategoryID), 14))
		due := t.DueDate.Format(todo.DateLayout)
		name := truncate(t.Name, max(width-40, 10))

		switch {
		case t.Done():
			name = styleDone.Render(name)
		case t.Overdue(now):
			due = styleOverdue.Render(due + " overdue")
		}

		cursor := "  "
		if i == a.state.cursor {
			cursor = styleSelected.Render("> ")
			if !t.Done() {
				name = styleSelected.Render(name)
			}
		}

		lines = append(lines, fmt.Sprintf("%s%s %s  %s  %s", cursor, check, name, category, styleSubtitle.Render(due)))
	}

	return lines
}

func (a *App) doneCount() int {
	n := 0
	for _, t := range a.state.todos {
		if t.Done() {
			n++
		}
	}
	return n
}
