package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type formKind int

const (
	formAddCategory formKind = iota
	formAddTodo
	formDeleteCategory
	formAIHelp
)

type option struct {
	label string
	value string
}

// formField is either a text input or, when options is set, a picker.
type formField struct {
	name     string
	label    string
	input    textinput.Model
	options  []option
	selected int
}

func (f *formField) value() string {
	if f.options != nil {
		if len(f.options) == 0 {
			return ""
		}
		return f.options[f.selected].value
	}
	return f.input.Value()
}

type form struct {
	kind         formKind
	title        string
	message      string
	confirmLabel string
	fields       []formField
	focus        int
	err          string
}

func newTextField(name, label, placeholder string) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 200
	in.Width = 50
	return formField{name: name, label: label, input: in}
}

func newSelectField(name, label string, options []option) formField {
	return formField{name: name, label: label, options: options}
}

func newForm(kind formKind, title, message, confirmLabel string, fields ...formField) *form {
	f := &form{
		kind:         kind,
		title:        title,
		message:      message,
		confirmLabel: confirmLabel,
		fields:       fields,
	}
	f.focusField(0)
	return f
}

func (f *form) value(name string) string {
	for i := range f.fields {
		if f.fields[i].name == name {
			return f.fields[i].value()
		}
	}
	return ""
}

func (f *form) focusField(i int) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	f.focus = (i + len(f.fields)) % len(f.fields)
	var cmd tea.Cmd
	for j := range f.fields {
		if f.fields[j].options != nil {
			continue
		}
		if j == f.focus {
			cmd = f.fields[j].input.Focus()
		} else {
			f.fields[j].input.Blur()
		}
	}
	return cmd
}

// update moves focus, cycles pickers, and feeds text inputs. Enter and Esc
// are handled by the caller.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if km, ok := msg.(tea.KeyMsg); ok {
		field := &f.fields[f.focus]
		switch {
		case key.Matches(km, keys.Tab):
			return f.focusField(f.focus + 1)
		case key.Matches(km, keys.ShiftTab):
			return f.focusField(f.focus - 1)
		case field.options != nil && key.Matches(km, keys.Left):
			if n := len(field.options); n > 0 {
				field.selected = (field.selected - 1 + n) % n
			}
			return nil
		case field.options != nil && key.Matches(km, keys.Right):
			if n := len(field.options); n > 0 {
				field.selected = (field.selected + 1) % n
			}
			return nil
		}
	}

	field := &f.fields[f.focus]
	if field.options != nil {
		return nil
	}
	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)
	return cmd
}

func (a *App) renderForm() string {
	f := a.state.form
	var b strings.Builder

	title := styleTitle.Render(f.title)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	if f.message != "" {
		msg := styleSubtitle.Render(f.message)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, msg))
		b.WriteString("\n\n")
	}

	var lines []string
	for i, field := range f.fields {
		label := field.label
		if i == f.focus {
			label = styleSelected.Render("> " + label)
		} else {
			label = styleSubtitle.Render("  " + label)
		}
		lines = append(lines, label)

		if field.options != nil {
			lines = append(lines, "  "+renderOptions(field, i == f.focus))
		} else {
			lines = append(lines, "  "+field.input.View())
		}
		lines = append(lines, "")
	}
	if f.err != "" {
		lines = append(lines, styleFieldError.Render(f.err))
	}

	box := styleBox.Copy().
		Width(a.boxWidth(64)).
		BorderForeground(colorSecondary).
		Render(strings.TrimRight(strings.Join(lines, "\n"), "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
	b.WriteString("\n\n")

	status := styleStatusBar.Render(fmt.Sprintf("[Tab] Next field  [Enter] %s  [Esc] Cancel", f.confirmLabel))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func renderOptions(field formField, focused bool) string {
	if len(field.options) == 0 {
		return styleSubtitle.Render("(none)")
	}
	current := field.options[field.selected].label
	if focused {
		return styleCategory.Render("< "+current+" >") +
			styleSubtitle.Render(fmt.Sprintf("  %d/%d", field.selected+1, len(field.options)))
	}
	return current
}
