package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit           key.Binding
	Back           key.Binding
	Help           key.Binding
	Enter          key.Binding
	Up             key.Binding
	Down           key.Binding
	Tab            key.Binding
	ShiftTab       key.Binding
	Left           key.Binding
	Right          key.Binding
	Toggle         key.Binding
	AddTodo        key.Binding
	AddCategory    key.Binding
	DeleteTodo     key.Binding
	DeleteCategory key.Binding
	AIHelp         key.Binding
	Settings       key.Binding
	Copy           key.Binding
	Yes            key.Binding
	No             key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("left", "previous option"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("right", "next option"),
	),
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space", "toggle done"),
	),
	AddTodo: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "add todo"),
	),
	AddCategory: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "add category"),
	),
	DeleteTodo: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete todo"),
	),
	DeleteCategory: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete category"),
	),
	AIHelp: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "AI help"),
	),
	Settings: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "settings"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "cancel"),
	),
}
