// Package tui is the terminal front-end: a todo list with categories, due
// dates, and AI help for a task.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/sant0-9/todoai/internal/assist"
	"github.com/sant0-9/todoai/internal/config"
	"github.com/sant0-9/todoai/internal/llm"
	"github.com/sant0-9/todoai/internal/logger"
	"github.com/sant0-9/todoai/internal/todo"
)

// Helper produces normalized step text for a task.
type Helper interface {
	Help(ctx context.Context, task string) (string, error)
}

type view int

const (
	viewList view = iota
	viewForm
	viewConfirm
	viewProcessing
	viewAlert
	viewSettings
	viewHelp
)

type App struct {
	width      int
	height     int
	view       view
	state      *state
	log        logger.Logger
	configPath string
	watcher    *fsnotify.Watcher
	watchPath  string
	quitting   bool
}

func NewApp(cfg *config.Config, store *todo.Store, log logger.Logger) *App {
	a := &App{
		view:  viewList,
		state: newState(cfg, store),
		log:   log,
	}
	a.connect()
	return a
}

// SetConfigPath makes settings changes save to path instead of the default
// config location.
func (a *App) SetConfigPath(path string) {
	a.configPath = path
}

// connect (re)builds the provider and helper from the current config.
func (a *App) connect() {
	a.state.providerReady = false
	provider, err := llm.NewProvider(a.state.config)
	if err != nil {
		a.state.provider = nil
		a.state.helper = nil
		a.state.providerError = err
		return
	}
	a.state.provider = provider
	a.state.helper = assist.NewHelper(provider, a.state.config.Model)
	a.state.providerError = nil
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.WindowSize(),
		a.testProvider(),
		a.waitForStoreChange(),
	)
}

func (a *App) testProvider() tea.Cmd {
	provider := a.state.provider
	if provider == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := llm.WaitReady(ctx, provider, 2, 500*time.Millisecond); err != nil {
			return providerErrorMsg{err}
		}
		return providerReadyMsg{}
	}
}

// requestHelp runs one AI request off the UI goroutine.
func (a *App) requestHelp(task string) tea.Cmd {
	helper := a.state.helper
	timeout := a.state.config.RequestTimeout()
	log := a.log
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		ctx = logger.ContextWithLogger(ctx, log)

		text, err := helper.Help(ctx, task)
		if err != nil {
			return aiErrorMsg{err}
		}
		return aiResultMsg{text}
	}
}

type providerReadyMsg struct{}
type providerErrorMsg struct{ error }
type aiResultMsg struct{ text string }
type aiErrorMsg struct{ error }
type settingsSavedMsg struct{}
type settingsErrorMsg struct{ error }
type copiedMsg struct{ err error }

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		return copiedMsg{clipboard.WriteAll(text)}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case providerReadyMsg:
		a.state.providerReady = true
		a.state.providerError = nil
		return a, nil

	case providerErrorMsg:
		a.state.providerReady = false
		a.state.providerError = msg.error
		a.log.Warn("AI backend not reachable", "error", msg.error)
		return a, nil

	case aiResultMsg:
		a.state.aiBusy = false
		a.showAlert("How to accomplish this task", msg.text, false)
		a.state.alert.copyText = msg.text
		return a, nil

	case copiedMsg:
		if a.state.alert != nil {
			a.state.alert.status = "Copied to clipboard"
			if msg.err != nil {
				a.log.Warn("clipboard write failed", "error", msg.err)
				a.state.alert.status = "Couldn't copy: " + msg.err.Error()
			}
		}
		return a, nil

	case storeChangedMsg:
		if err := a.state.store.Refresh(); err != nil {
			a.log.Warn("store reload failed", "error", err)
		}
		a.state.reload()
		return a, a.waitForStoreChange()

	case watchErrorMsg:
		a.log.Warn("store watcher error", "error", msg.error)
		return a, a.waitForStoreChange()

	case aiErrorMsg:
		a.state.aiBusy = false
		text := "Couldn't retrieve AI help. Please try again."
		if assist.IsValidation(msg.error) {
			text = assist.UserMessage(msg.error)
		}
		a.showAlert("AI Error", text, true)
		return a, nil

	case settingsSavedMsg:
		a.state.notice = "Settings saved"
		a.connect()
		return a, a.testProvider()

	case settingsErrorMsg:
		a.showAlert("Settings not saved", msg.error.Error(), true)
		return a, nil

	case spinner.TickMsg:
		if !a.state.aiBusy {
			return a, nil
		}
		var cmd tea.Cmd
		a.state.spinner, cmd = a.state.spinner.Update(msg)
		return a, cmd
	}

	return a, a.updateInputs(msg)
}

// updateInputs forwards non-key messages (cursor blink) to the active input.
func (a *App) updateInputs(msg tea.Msg) tea.Cmd {
	switch {
	case a.view == viewForm && a.state.form != nil:
		return a.state.form.update(msg)
	case a.view == viewSettings && a.state.settingsMode == settingsAPIKey:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		return cmd
	}
	return nil
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return tea.Quit
	}

	switch a.view {
	case viewForm:
		return a.handleFormKey(msg)
	case viewConfirm:
		return a.handleConfirmKey(msg)
	case viewProcessing:
		// The request cannot be abandoned from here; it ends in an alert.
		return nil
	case viewAlert:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Back):
			a.state.alert = nil
			a.view = viewList
		case key.Matches(msg, keys.Copy) && a.state.alert != nil && a.state.alert.copyText != "":
			return copyToClipboard(a.state.alert.copyText)
		}
		return nil
	case viewSettings:
		return a.handleSettingsKey(msg)
	case viewHelp:
		if key.Matches(msg, keys.Back) || key.Matches(msg, keys.Help) || key.Matches(msg, keys.Quit) {
			a.view = viewList
		}
		return nil
	}

	return a.handleListKey(msg)
}

func (a *App) handleListKey(msg tea.KeyMsg) tea.Cmd {
	a.state.notice = ""

	switch {
	case key.Matches(msg, keys.Quit), key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Up):
		if a.state.cursor > 0 {
			a.state.cursor--
		}

	case key.Matches(msg, keys.Down):
		if a.state.cursor < len(a.state.todos)-1 {
			a.state.cursor++
		}

	case key.Matches(msg, keys.Toggle):
		a.toggleSelected()

	case key.Matches(msg, keys.DeleteTodo):
		a.deleteSelected()

	case key.Matches(msg, keys.AddCategory):
		return a.openAddCategory()

	case key.Matches(msg, keys.AddTodo):
		return a.openAddTodo()

	case key.Matches(msg, keys.DeleteCategory):
		return a.openDeleteCategory()

	case key.Matches(msg, keys.AIHelp):
		return a.openAIHelp()

	case key.Matches(msg, keys.Settings):
		a.state.settingsMode = settingsMain
		a.state.settingsSelected = 0
		a.view = viewSettings

	case key.Matches(msg, keys.Help):
		a.view = viewHelp
	}

	return nil
}

func (a *App) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Back):
		a.state.form = nil
		a.view = viewList
		return nil
	case key.Matches(msg, keys.Enter):
		return a.submitForm()
	}
	return a.state.form.update(msg)
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Yes):
		c := a.state.confirm
		a.state.confirm = nil
		a.view = viewList
		return c.onConfirm(a)
	case key.Matches(msg, keys.No):
		a.state.confirm = nil
		a.view = viewList
	}
	return nil
}

func (a *App) showAlert(title, message string, isError bool) {
	a.state.alert = &alert{title: title, message: message, isError: isError}
	a.view = viewAlert
}

func (a *App) openForm(f *form) tea.Cmd {
	a.state.form = f
	a.view = viewForm
	return textinput.Blink
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewForm:
		return a.renderForm()
	case viewConfirm:
		return a.renderConfirm()
	case viewProcessing:
		return a.renderProcessing()
	case viewAlert:
		return a.renderAlert()
	case viewSettings:
		return a.renderSettings()
	case viewHelp:
		return a.renderHelp()
	default:
		return a.renderList()
	}
}
