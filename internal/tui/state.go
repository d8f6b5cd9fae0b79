package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/sant0-9/todoai/internal/config"
	"github.com/sant0-9/todoai/internal/llm"
	"github.com/sant0-9/todoai/internal/todo"
)

type state struct {
	// Config
	config *config.Config

	// Settings
	settingsMode     string
	settingsSelected int
	apiKeyInput      textinput.Model

	// Todos
	store      *todo.Store
	todos      []todo.Todo
	categories []todo.Category
	cursor     int

	// Modals
	form    *form
	confirm *confirmDialog
	alert   *alert

	// AI help
	aiBusy  bool
	aiTask  string
	spinner spinner.Model

	// Provider
	provider      llm.Provider
	helper        Helper
	providerReady bool
	providerError error

	// One-line feedback under the list
	notice string
}

type alert struct {
	title   string
	message string
	isError bool

	// copyText enables [c] Copy; status reports the result.
	copyText string
	status   string
}

func newState(cfg *config.Config, store *todo.Store) *state {
	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	s := &state{
		config:      cfg,
		store:       store,
		apiKeyInput: apiKey,
		spinner:     sp,
	}
	s.reload()
	return s
}

// reload refreshes the cached lists from the store and clamps the cursor.
func (s *state) reload() {
	s.todos = s.store.Todos()
	s.categories = s.store.Categories()
	if s.cursor >= len(s.todos) {
		s.cursor = len(s.todos) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *state) selectedTodo() (todo.Todo, bool) {
	if len(s.todos) == 0 {
		return todo.Todo{}, false
	}
	return s.todos[s.cursor], true
}

func (s *state) categoryName(id string) string {
	for _, c := range s.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return "Uncategorized"
}
